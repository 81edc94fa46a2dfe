package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/devlink-app/devlink-backend/internal/middleware"
	"github.com/devlink-app/devlink-backend/internal/models"
	"github.com/devlink-app/devlink-backend/internal/services"
)

// CreatePostRequest is the new-post payload.
type CreatePostRequest struct {
	Text  string `json:"text"`
	Image string `json:"image,omitempty"`
}

// CommentRequest is the new-comment payload.
type CommentRequest struct {
	Text string `json:"text"`
}

// PostResponse is the envelope for single-post endpoints.
type PostResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	Post    *models.Post `json:"post,omitempty"`
}

// PostListResponse is the envelope for the public listing.
type PostListResponse struct {
	Success bool          `json:"success"`
	Posts   []models.Post `json:"posts"`
}

// PostHandler serves the post aggregate: create, reads, delete, likes and
// comments.
type PostHandler struct {
	posts *services.PostService
}

func NewPostHandler(posts *services.PostService) *PostHandler {
	return &PostHandler{posts: posts}
}

// Create handles POST /api/posts.
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserID(r.Context())

	var req CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "Invalid request body")
		return
	}

	post, err := h.posts.Create(r.Context(), userID, req.Text, req.Image)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, PostResponse{Success: true, Post: post})
}

// List handles GET /api/posts (public).
func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	posts, err := h.posts.List(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	if posts == nil {
		posts = []models.Post{}
	}
	respondJSON(w, http.StatusOK, PostListResponse{Success: true, Posts: posts})
}

// Get handles GET /api/posts/{id} (public).
func (h *PostHandler) Get(w http.ResponseWriter, r *http.Request) {
	post, err := h.posts.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, PostResponse{Success: true, Post: post})
}

// Delete handles DELETE /api/posts/{id}.
func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserID(r.Context())

	if err := h.posts.Delete(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, PostResponse{Success: true, Message: "Post deleted"})
}

// Like handles PUT /api/posts/like/{id}.
func (h *PostHandler) Like(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserID(r.Context())

	post, err := h.posts.Like(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, PostResponse{Success: true, Post: post})
}

// Unlike handles PUT /api/posts/unlike/{id}.
func (h *PostHandler) Unlike(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserID(r.Context())

	post, err := h.posts.Unlike(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, PostResponse{Success: true, Post: post})
}

// AddComment handles POST /api/posts/comment/{id}.
func (h *PostHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserID(r.Context())

	var req CommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "Invalid request body")
		return
	}

	post, err := h.posts.AddComment(r.Context(), userID, chi.URLParam(r, "id"), req.Text)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, PostResponse{Success: true, Post: post})
}

// RemoveComment handles DELETE /api/posts/comment/{id}/{commentID}.
func (h *PostHandler) RemoveComment(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserID(r.Context())

	post, err := h.posts.RemoveComment(r.Context(), userID, chi.URLParam(r, "id"), chi.URLParam(r, "commentID"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, PostResponse{Success: true, Post: post})
}
