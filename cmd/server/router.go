package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Icezero0/Oblivionis/internal/api"
	apiMiddleware "github.com/Icezero0/Oblivionis/internal/api/middleware"
)

// setupRouter creates and configures the application router with all
// routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	authHandler := api.NewAuthHandler(app.userService, app.jwtService)
	cardHandler := api.NewCardHandler(app.cardService)
	settingsHandler := api.NewSettingsHandler(app.settingsService)
	drawHandler := api.NewDrawHandler(app.drawService, app.sessionService)
	statsHandler := api.NewStatsHandler(app.analyticsService)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Get("/users/me", authHandler.Me)

			// Card management
			r.Post("/cards", cardHandler.Create)
			r.Post("/cards/batch", cardHandler.BatchCreate)
			r.Get("/cards", cardHandler.List)
			r.Get("/cards/{id}", cardHandler.Get)
			r.Put("/cards/{id}", cardHandler.Update)
			r.Delete("/cards/{id}", cardHandler.Delete)

			// Draw settings
			r.Get("/settings", settingsHandler.Get)
			r.Put("/settings", settingsHandler.Put)
			r.Delete("/settings", settingsHandler.Delete)

			// Draw execution and session history
			r.Post("/draw", drawHandler.Draw)
			r.Get("/draw/sessions", drawHandler.ListSessions)
			r.Get("/draw/sessions/export", drawHandler.ExportSessions)
			r.Get("/draw/sessions/{id}", drawHandler.GetSession)
			r.Delete("/draw/sessions/{id}", drawHandler.DeleteSession)

			// Analytics
			r.Get("/stats/overview", statsHandler.Overview)
			r.Get("/stats/cards", statsHandler.Cards)
			r.Get("/stats/sessions", statsHandler.Sessions)
			r.Get("/stats/progress", statsHandler.Progress)
			r.Get("/stats/recommendations", statsHandler.Recommendations)
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
