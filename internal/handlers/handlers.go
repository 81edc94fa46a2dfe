// Package handlers is the HTTP glue: decode the request, call the service,
// map the domain error kind to a status code. No business rules live here.
package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/devlink-app/devlink-backend/internal/models"
)

// errorResponse is the envelope for every failure.
type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// respondError maps a domain error to its transport status. Store errors are
// logged with their cause but surfaced opaquely.
func respondError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := "Server error"

	var domainErr *models.Error
	if errors.As(err, &domainErr) {
		switch domainErr.Kind {
		case models.KindValidation:
			status = http.StatusBadRequest
			message = domainErr.Message
		case models.KindUnauthenticated:
			status = http.StatusUnauthorized
			message = domainErr.Message
		case models.KindForbidden:
			status = http.StatusForbidden
			message = domainErr.Message
		case models.KindNotFound:
			status = http.StatusNotFound
			message = domainErr.Message
		case models.KindConflict:
			status = http.StatusConflict
			message = domainErr.Message
		}
	}

	if status == http.StatusInternalServerError {
		log.Printf("internal error: %v", err)
	}

	respondJSON(w, status, errorResponse{Success: false, Message: message})
}

func respondBadRequest(w http.ResponseWriter, message string) {
	respondJSON(w, http.StatusBadRequest, errorResponse{Success: false, Message: message})
}
