package entity

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when the requested record does not exist
	ErrNotFound = errors.New("not found")

	// ErrBackend marks persistence and infrastructure failures
	ErrBackend = errors.New("backend error")

	// ErrAuthRequired is returned when no valid session is present
	ErrAuthRequired = errors.New("authentication required")

	// ErrInvalidCredentials is returned on a failed login
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrEmailNotVerified is returned on login before email verification
	ErrEmailNotVerified = errors.New("email not verified")

	// ErrConflict is returned when a unique value is already taken
	ErrConflict = errors.New("already exists")

	// ErrQuotaExceeded is returned when the completion provider rejects the
	// request for quota or authorization reasons
	ErrQuotaExceeded = errors.New("feedback quota exceeded")

	// ErrCompletionFailed is any other completion provider failure
	ErrCompletionFailed = errors.New("feedback request failed")
)

// ValidationError is returned for bad input before any backend call
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidationError creates a validation error for field
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// IsValidation reports whether err is (or wraps) a ValidationError
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// BackendError wraps a storage or infrastructure failure.
// errors.Is(err, ErrBackend) holds for every BackendError.
type BackendError struct {
	Op  string
	Err error
}

// NewBackendError wraps err as a backend failure of op
func NewBackendError(op string, err error) error {
	return &BackendError{Op: op, Err: err}
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("failed to %s: %v", e.Op, e.Err)
}

func (e *BackendError) Unwrap() error {
	return e.Err
}

// Is makes BackendError match ErrBackend
func (e *BackendError) Is(target error) bool {
	return target == ErrBackend
}
