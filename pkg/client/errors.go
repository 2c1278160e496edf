package client

import (
	"errors"
	"fmt"
)

var (
	// ErrNotSignedIn is returned by authenticated calls before Login
	ErrNotSignedIn = errors.New("not signed in")

	ErrUnauthorized  = errors.New("unauthorized")
	ErrNotFound      = errors.New("not found")
	ErrValidation    = errors.New("validation failed")
	ErrConflict      = errors.New("conflict")
	ErrQuotaExceeded = errors.New("feedback quota exceeded")
)

// APIError is a non-2xx response of the journal API
type APIError struct {
	StatusCode int
	Code       string `json:"code"`
	Message    string `json:"error"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("journal api: %d %s: %s", e.StatusCode, e.Code, e.Message)
}

// Is matches the package sentinel errors by error code
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.Code == "auth_required"
	case ErrNotFound:
		return e.Code == "not_found"
	case ErrValidation:
		return e.Code == "validation_error"
	case ErrConflict:
		return e.Code == "conflict"
	case ErrQuotaExceeded:
		return e.Code == "quota_exceeded"
	}
	return false
}
