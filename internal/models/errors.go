package models

import (
	"errors"
	"fmt"
)

// ErrorKind categorizes a domain error so handlers can map it to a status
// code without inspecting messages.
type ErrorKind string

const (
	KindValidation      ErrorKind = "validation"
	KindUnauthenticated ErrorKind = "unauthenticated"
	KindForbidden       ErrorKind = "forbidden"
	KindNotFound        ErrorKind = "not_found"
	KindConflict        ErrorKind = "conflict"
	KindStore           ErrorKind = "store"
)

// Error is the unified domain error. Authorization failures (forbidden) are a
// distinct kind from not_found so a denied caller can never be told whether
// the resource exists.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error // wrapped cause, set for store errors
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewValidationError reports a missing or malformed request field.
func NewValidationError(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// NewAuthError reports a failed authentication (bad credentials or token).
// The message never distinguishes unknown email from wrong password.
func NewAuthError(message string) *Error {
	return &Error{Kind: KindUnauthenticated, Message: message}
}

// NewForbiddenError reports that the caller is not the resource owner.
func NewForbiddenError(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

// NewNotFoundError reports an absent aggregate or sub-entity.
func NewNotFoundError(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// NewConflictError reports a duplicate (email already registered, post
// already liked).
func NewConflictError(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

// NewStoreError wraps a persistence failure.
func NewStoreError(message string, err error) *Error {
	return &Error{Kind: KindStore, Message: message, Err: err}
}

// KindOf returns the ErrorKind of err, or KindStore when err is not a domain
// error (unexpected failures are treated as opaque persistence errors).
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindStore
}
