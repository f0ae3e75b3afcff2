// Package service provides application-level services for managing cards,
// sessions, settings, and users.
package service

import "errors"

// Common service errors - sentinel errors used across service implementations.
// These errors represent common conditions that callers may want to check for
// with errors.Is().
//
// Error handling principles:
// 1. Service methods return sentinel errors for expected error conditions
// 2. Unexpected errors are wrapped in service-specific error types
// 3. Callers use errors.Is/errors.As to check for specific error conditions
// 4. The API layer maps service errors to appropriate HTTP status codes
var (
	// ErrNotOwned indicates a resource is owned by a different user than the
	// one making the request. API layer should map this to HTTP 403 Forbidden.
	ErrNotOwned = errors.New("resource is owned by another user")

	// ErrEmptyBatch indicates a batch operation was requested with no items.
	ErrEmptyBatch = errors.New("batch must contain at least one card")

	// ErrBatchTooLarge indicates a batch operation exceeded MaxBatchSize.
	ErrBatchTooLarge = errors.New("batch exceeds the maximum allowed size")
)

// MaxBatchSize bounds how many cards a single batch create may carry.
const MaxBatchSize = 100
