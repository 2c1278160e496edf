package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"journal-service/internal/domain/entity"

	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

// errorStatus maps the domain error taxonomy onto HTTP status codes
func errorStatus(err error) int {
	var ve *entity.ValidationError
	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest
	case errors.Is(err, entity.ErrAuthRequired), errors.Is(err, entity.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, entity.ErrEmailNotVerified):
		return http.StatusForbidden
	case errors.Is(err, entity.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, entity.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, entity.ErrQuotaExceeded):
		return http.StatusTooManyRequests
	case errors.Is(err, entity.ErrCompletionFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// errorCode is a stable machine readable name for err
func errorCode(err error) string {
	switch errorStatus(err) {
	case http.StatusBadRequest:
		return "validation_error"
	case http.StatusUnauthorized:
		return "auth_required"
	case http.StatusForbidden:
		return "email_not_verified"
	case http.StatusNotFound:
		return "not_found"
	case http.StatusConflict:
		return "conflict"
	case http.StatusTooManyRequests:
		return "quota_exceeded"
	case http.StatusBadGateway:
		return "feedback_failed"
	default:
		return "backend_error"
	}
}

// writeError writes err as {"error": ..., "code": ...}. Internal details of
// backend failures are logged, not returned.
func writeError(w http.ResponseWriter, logger *zap.Logger, err error) {
	status := errorStatus(err)
	message := err.Error()

	switch {
	case status == http.StatusInternalServerError:
		logger.Error("request failed", zap.Error(err))
		message = "internal server error"
	case errors.Is(err, entity.ErrInvalidCredentials):
		message = entity.ErrInvalidCredentials.Error()
	}

	writeJSON(w, status, map[string]interface{}{
		"error": message,
		"code":  errorCode(err),
	})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]interface{}{"message": message})
}

// decodeJSON reads a single JSON object from the request body
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return entity.NewValidationError("body", "request body is required")
		}
		return entity.NewValidationError("body", fmt.Sprintf("invalid request body: %v", err))
	}

	return nil
}
