package middleware

import (
	"log/slog"
	"net/http"

	"github.com/Icezero0/Oblivionis/internal/api/shared"
	"github.com/Icezero0/Oblivionis/internal/platform/logger"
)

// TraceMiddleware assigns each request a trace ID and attaches a logger
// carrying that ID to the request context. It should sit early in the
// middleware chain so every downstream handler logs with the same ID.
func TraceMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := shared.SetTraceID(r.Context())
		traceID := shared.GetTraceID(ctx)

		log := logger.FromContextOrDefault(ctx, slog.Default()).
			With(slog.String("trace_id", traceID))
		ctx = logger.WithLogger(ctx, log)

		log.Debug("request started",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("remote_addr", r.RemoteAddr))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
