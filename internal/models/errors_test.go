package models

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindValidation, KindOf(NewValidationError("bad field")))
	assert.Equal(t, KindUnauthenticated, KindOf(NewAuthError("bad token")))
	assert.Equal(t, KindForbidden, KindOf(NewForbiddenError("not yours")))
	assert.Equal(t, KindNotFound, KindOf(NewNotFoundError("gone")))
	assert.Equal(t, KindConflict, KindOf(NewConflictError("dup")))

	// Non-domain errors read as store failures.
	assert.Equal(t, KindStore, KindOf(errors.New("boom")))
	assert.Equal(t, KindStore, KindOf(nil))
}

func TestKindOfWrapped(t *testing.T) {
	wrapped := fmt.Errorf("handler: %w", NewNotFoundError("gone"))
	assert.Equal(t, KindNotFound, KindOf(wrapped))
}

func TestStoreErrorUnwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewStoreError("failed to load post", cause)

	assert.True(t, errors.Is(err, cause))
	assert.Contains(t, err.Error(), "failed to load post")
	assert.Contains(t, err.Error(), "connection reset")
}
