package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is the root of all domain validation failures. Every
	// entity-specific validation sentinel wraps it, so a single
	// errors.Is(err, ErrValidation) classifies them all.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrUnauthorized is returned when an operation is not permitted.
	ErrUnauthorized = errors.New("unauthorized operation")
)
