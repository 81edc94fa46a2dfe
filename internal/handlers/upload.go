package handlers

import (
	"net/http"

	"github.com/devlink-app/devlink-backend/internal/services"
)

// UploadResponse carries the hosted image URL.
type UploadResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	URL     string `json:"url,omitempty"`
}

// UploadHandler pushes post images and avatars to Cloudinary. uploads may be
// nil when Cloudinary credentials are not configured.
type UploadHandler struct {
	uploads *services.CloudinaryService
}

func NewUploadHandler(uploads *services.CloudinaryService) *UploadHandler {
	return &UploadHandler{uploads: uploads}
}

// Upload handles POST /api/upload.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if h.uploads == nil {
		respondJSON(w, http.StatusServiceUnavailable, UploadResponse{
			Success: false,
			Message: "File upload service not available",
		})
		return
	}

	// Max 10MB
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		respondBadRequest(w, "Failed to parse form: "+err.Error())
		return
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		respondBadRequest(w, "No file provided")
		return
	}
	defer file.Close()

	folder := r.URL.Query().Get("folder")
	if folder == "" {
		folder = "devlink"
	}

	url, err := h.uploads.UploadFileFromHeader(r.Context(), fileHeader, folder)
	if err != nil {
		respondJSON(w, http.StatusInternalServerError, UploadResponse{
			Success: false,
			Message: "Failed to upload file",
		})
		return
	}

	respondJSON(w, http.StatusOK, UploadResponse{
		Success: true,
		Message: "File uploaded successfully",
		URL:     url,
	})
}
