package api

import (
	"errors"
	"net/http"

	"github.com/Icezero0/Oblivionis/internal/domain"
	"github.com/Icezero0/Oblivionis/internal/service"
	"github.com/Icezero0/Oblivionis/internal/service/analytics"
	"github.com/Icezero0/Oblivionis/internal/service/auth"
	"github.com/Icezero0/Oblivionis/internal/service/draw"
	"github.com/Icezero0/Oblivionis/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusUnauthorized

	// Authorization errors
	case errors.Is(err, service.ErrNotOwned):
		return http.StatusForbidden

	// Not found errors
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, service.ErrEmptyBatch),
		errors.Is(err, service.ErrBatchTooLarge),
		errors.Is(err, draw.ErrInvalidSettings),
		errors.Is(err, draw.ErrInvalidUserID),
		errors.Is(err, analytics.ErrInvalidUserID):
		return http.StatusBadRequest

	// Contention: the draw could not complete within its retry budget
	case errors.Is(err, draw.ErrDrawConflict):
		return http.StatusServiceUnavailable

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken):
		return "Invalid token"

	case errors.Is(err, auth.ErrInvalidCredentials):
		return "Invalid username or password"

	// Authorization errors
	case errors.Is(err, service.ErrNotOwned):
		return "You do not own this resource"

	// Not found errors
	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"

	case errors.Is(err, store.ErrCardNotFound):
		return "Card not found"

	case errors.Is(err, store.ErrSessionNotFound):
		return "Session not found"

	case errors.Is(err, store.ErrSettingsNotFound):
		return "Draw settings not found"

	// Conflict errors
	case errors.Is(err, store.ErrUsernameExists):
		return "Username already exists"

	case errors.Is(err, store.ErrEmailExists):
		return "Email already exists"

	case errors.Is(err, store.ErrDuplicate):
		return "Resource already exists"

	// Bad request errors
	case errors.Is(err, service.ErrEmptyBatch):
		return "Batch must contain at least one card"

	case errors.Is(err, service.ErrBatchTooLarge):
		return "Batch exceeds the maximum allowed size"

	case errors.Is(err, draw.ErrInvalidSettings):
		return "Invalid draw settings"

	case errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, domain.ErrValidation):
		return "Invalid request data"

	// Contention errors
	case errors.Is(err, draw.ErrDrawConflict):
		return "Draw could not complete due to concurrent activity, please retry"

	default:
		return "An unexpected error occurred"
	}
}
