package domain

import (
	"errors"
	"net/http"
)

// HTTPError defines errors that can be mapped to HTTP status codes.
// Implementing this interface enables extensible error handling (OCP compliance).
type HTTPError interface {
	error
	StatusCode() int
}

// Sentinel errors - use with errors.Is()
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("already exists")
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)

// DeniedError represents a policy refusal with a machine-readable reason code.
// Authorization refusals are expected, user-facing outcomes: handlers render
// the reason so the client can show a specific message, never a generic 500.
// Implements HTTPError for extensible error handling.
type DeniedError struct {
	Reason string // machine-readable reason code (e.g. "not_owner")
	Detail string // human-readable detail
}

// Error implements the error interface
func (e *DeniedError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return e.Reason
}

// StatusCode implements the HTTPError interface.
// invalid_transition is a caller error (400-class); everything else is a 403.
func (e *DeniedError) StatusCode() int {
	if e.Reason == "invalid_transition" {
		return http.StatusBadRequest
	}
	return http.StatusForbidden
}

// Is allows errors.Is() to match against ErrForbidden (or ErrValidation for
// invalid transitions)
func (e *DeniedError) Is(target error) bool {
	if e.Reason == "invalid_transition" {
		return target == ErrValidation
	}
	return target == ErrForbidden
}
