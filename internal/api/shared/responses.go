package shared

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/Icezero0/Oblivionis/internal/platform/logger"
	"github.com/Icezero0/Oblivionis/internal/redact"
)

// ErrorResponse is the standard JSON envelope for API errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	TraceID string `json:"trace_id,omitempty"`
}

// RespondWithJSON writes the payload as JSON with the given status code.
// Encoding failures are logged; at that point the status line has already
// been sent, so the client sees a truncated body.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if payload == nil {
		return
	}

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log := logger.FromContextOrDefault(r.Context(), slog.Default())
		log.Error("failed to encode response payload",
			slog.String("error", redact.Error(err)),
			slog.String("path", r.URL.Path))
	}
}

// RespondWithError writes a standard error envelope carrying the request's
// trace ID so that a client-reported failure can be matched to server logs.
func RespondWithError(w http.ResponseWriter, r *http.Request, status int, message string) {
	RespondWithJSON(w, r, status, ErrorResponse{
		Error:   message,
		TraceID: GetTraceID(r.Context()),
	})
}

// RespondWithErrorAndLog writes an error envelope and logs the underlying
// cause. Server-side failures log at error level, client mistakes at debug,
// and the rest at warn. The raw error never reaches the response body.
func RespondWithErrorAndLog(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	message string,
	err error,
) {
	log := logger.FromContextOrDefault(r.Context(), slog.Default())

	attrs := []any{
		slog.Int("status", status),
		slog.String("path", r.URL.Path),
		slog.String("method", r.Method),
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", redact.Error(err)))
	}

	switch {
	case status >= http.StatusInternalServerError:
		log.Error(message, attrs...)
	case status == http.StatusBadRequest || status == http.StatusNotFound:
		log.Debug(message, attrs...)
	default:
		log.Warn(message, attrs...)
	}

	RespondWithError(w, r, status, message)
}
