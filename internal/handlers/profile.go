package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/devlink-app/devlink-backend/internal/middleware"
	"github.com/devlink-app/devlink-backend/internal/models"
	"github.com/devlink-app/devlink-backend/internal/services"
)

// ProfileResponse is the envelope for single-profile endpoints.
type ProfileResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Profile *models.Profile `json:"profile,omitempty"`
}

// ProfileListResponse is the envelope for the public listing.
type ProfileListResponse struct {
	Success  bool             `json:"success"`
	Profiles []models.Profile `json:"profiles"`
}

// ProfileHandler serves the profile aggregate: upsert, public reads,
// experience/education edits and account deletion.
type ProfileHandler struct {
	profiles *services.ProfileService
	auth     *services.AuthService
}

func NewProfileHandler(profiles *services.ProfileService, auth *services.AuthService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, auth: auth}
}

// GetMe handles GET /api/profile/me.
func (h *ProfileHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserID(r.Context())

	profile, err := h.profiles.GetByUserID(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, ProfileResponse{Success: true, Profile: profile})
}

// Upsert handles POST /api/profile.
func (h *ProfileHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserID(r.Context())

	var input services.ProfileInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondBadRequest(w, "Invalid request body")
		return
	}

	profile, err := h.profiles.Upsert(r.Context(), userID, input)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, ProfileResponse{Success: true, Profile: profile})
}

// List handles GET /api/profile (public).
func (h *ProfileHandler) List(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.profiles.List(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	if profiles == nil {
		profiles = []models.Profile{}
	}
	respondJSON(w, http.StatusOK, ProfileListResponse{Success: true, Profiles: profiles})
}

// GetByUser handles GET /api/profile/user/{id} (public).
func (h *ProfileHandler) GetByUser(w http.ResponseWriter, r *http.Request) {
	profile, err := h.profiles.GetByUserID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, ProfileResponse{Success: true, Profile: profile})
}

// Delete handles DELETE /api/profile: removes the caller's posts, profile
// and identity.
func (h *ProfileHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserID(r.Context())

	if err := h.auth.DeleteAccount(r.Context(), userID); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, ProfileResponse{Success: true, Message: "User deleted"})
}

// AddExperience handles PUT /api/profile/experience.
func (h *ProfileHandler) AddExperience(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserID(r.Context())

	var input services.ExperienceInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondBadRequest(w, "Invalid request body")
		return
	}

	profile, err := h.profiles.AddExperience(r.Context(), userID, input)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, ProfileResponse{Success: true, Profile: profile})
}

// RemoveExperience handles DELETE /api/profile/experience/{id}.
func (h *ProfileHandler) RemoveExperience(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserID(r.Context())

	profile, err := h.profiles.RemoveExperience(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, ProfileResponse{Success: true, Profile: profile})
}

// AddEducation handles PUT /api/profile/education.
func (h *ProfileHandler) AddEducation(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserID(r.Context())

	var input services.EducationInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondBadRequest(w, "Invalid request body")
		return
	}

	profile, err := h.profiles.AddEducation(r.Context(), userID, input)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, ProfileResponse{Success: true, Profile: profile})
}

// RemoveEducation handles DELETE /api/profile/education/{id}.
func (h *ProfileHandler) RemoveEducation(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserID(r.Context())

	profile, err := h.profiles.RemoveEducation(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, ProfileResponse{Success: true, Profile: profile})
}
