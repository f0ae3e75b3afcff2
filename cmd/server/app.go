package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/Icezero0/Oblivionis/internal/config"
	"github.com/Icezero0/Oblivionis/internal/platform/postgres"
	"github.com/Icezero0/Oblivionis/internal/service"
	"github.com/Icezero0/Oblivionis/internal/service/analytics"
	"github.com/Icezero0/Oblivionis/internal/service/auth"
	"github.com/Icezero0/Oblivionis/internal/service/draw"
	"github.com/Icezero0/Oblivionis/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	// Stores
	userStore     store.UserStore
	cardStore     store.CardStore
	sessionStore  store.SessionStore
	settingsStore store.DrawSettingsStore
	txRunner      store.TxRunner

	// Services
	jwtService       auth.JWTService
	userService      service.UserService
	cardService      service.CardService
	settingsService  service.SettingsService
	sessionService   service.SessionService
	drawService      draw.DrawService
	analyticsService analytics.Service
}

// newApplication creates a new application instance with all dependencies
// initialized. The configuration, logger, and database connection must be
// established before calling it.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_hours", cfg.Auth.TokenLifetimeHours)

	app.userStore = postgres.NewPostgresUserStore(db, bcrypt.DefaultCost, logger)
	app.cardStore = postgres.NewPostgresCardStore(db, logger)
	app.sessionStore = postgres.NewPostgresSessionStore(db, logger)
	app.settingsStore = postgres.NewPostgresDrawSettingsStore(db, logger)
	app.txRunner = store.NewTxRunner(db)

	app.userService = service.NewUserService(app.userStore, auth.NewBcryptVerifier(), logger)
	app.cardService = service.NewCardService(app.cardStore, app.txRunner, logger)
	app.settingsService = service.NewSettingsService(app.settingsStore, logger)
	app.sessionService = service.NewSessionService(app.sessionStore, logger)

	app.drawService = draw.NewDrawService(
		app.txRunner,
		app.cardStore,
		app.sessionStore,
		app.settingsStore,
		draw.NewSampler(time.Now().UnixNano()),
		cfg.Draw.MaxAttempts,
		logger,
	)

	app.analyticsService = analytics.NewService(app.cardStore, app.sessionStore, logger)

	logger.Info("Application services initialized")
	return app, nil
}
