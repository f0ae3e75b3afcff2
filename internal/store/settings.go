package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/Icezero0/Oblivionis/internal/domain"
)

// DrawSettingsStore defines the interface for per-user draw settings
// persistence. At most one record exists per user.
type DrawSettingsStore interface {
	// GetByUser retrieves the draw settings stored for the given user.
	// Returns ErrSettingsNotFound if the user has no stored settings;
	// callers treat that as "engine defaults apply", not as a failure.
	GetByUser(ctx context.Context, userID uuid.UUID) (*domain.UserDrawSettings, error)

	// Upsert creates the user's settings record or replaces the existing
	// one. The UpdatedAt timestamp is refreshed on replacement.
	Upsert(ctx context.Context, settings *domain.UserDrawSettings) error

	// Delete removes the user's settings record, restoring engine defaults.
	// Returns ErrSettingsNotFound if the user has no stored settings.
	Delete(ctx context.Context, userID uuid.UUID) error

	// WithTx returns a new DrawSettingsStore instance that uses the
	// provided transaction.
	WithTx(tx *sql.Tx) DrawSettingsStore
}
