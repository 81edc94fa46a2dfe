package models

import (
	"time"

	"github.com/google/uuid"
)

// Identity is an account record. Stored in PostgreSQL; the id is immutable
// and referenced by profiles and posts as a string.
type Identity struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"created_at"`

	Name         string `json:"name"`
	Email        string `json:"email"`
	Avatar       string `json:"avatar,omitempty"`
	PasswordHash string `json:"-"` // never returned in JSON
}
