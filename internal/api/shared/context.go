// Package shared holds helpers used across the API layer: request context
// keys, JSON request decoding and validation, and response writing.
package shared

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// ContextKey is a custom type for context keys to avoid collisions
// with other packages storing values on the same context.
type ContextKey string

const (
	// UserIDContextKey is the key used to store the authenticated user's ID
	// in the request context.
	UserIDContextKey ContextKey = "userID"

	// TraceIDKey is the key used to store the request trace ID.
	TraceIDKey ContextKey = "traceID"
)

// SetTraceID generates a fresh trace ID and stores it in the context.
func SetTraceID(ctx context.Context) context.Context {
	return context.WithValue(ctx, TraceIDKey, generateTraceID())
}

// GetTraceID returns the trace ID from the context, or an empty string
// if none has been set.
func GetTraceID(ctx context.Context) string {
	traceID, ok := ctx.Value(TraceIDKey).(string)
	if !ok {
		return ""
	}
	return traceID
}

// generateTraceID produces a random 16-byte hex identifier. If the system
// entropy source fails it falls back to a timestamp-derived value so that
// requests always carry some correlation ID.
func generateTraceID() string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return fmt.Sprintf("fallback-%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(buf)
}
