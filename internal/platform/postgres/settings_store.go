package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Icezero0/Oblivionis/internal/domain"
	"github.com/Icezero0/Oblivionis/internal/platform/logger"
	"github.com/Icezero0/Oblivionis/internal/store"
)

// PostgresDrawSettingsStore implements the store.DrawSettingsStore interface
// using a PostgreSQL database as the storage backend. Each user has at most
// one row; the type counts live in a JSONB column.
type PostgresDrawSettingsStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresDrawSettingsStore creates a new PostgreSQL implementation of the
// DrawSettingsStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresDrawSettingsStore(db store.DBTX, logger *slog.Logger) *PostgresDrawSettingsStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresDrawSettingsStore{
		db:     db,
		logger: logger.With(slog.String("component", "draw_settings_store")),
	}
}

// Ensure PostgresDrawSettingsStore implements store.DrawSettingsStore interface
var _ store.DrawSettingsStore = (*PostgresDrawSettingsStore)(nil)

// GetByUser implements store.DrawSettingsStore.GetByUser
// Returns store.ErrSettingsNotFound when the user has never saved settings.
func (s *PostgresDrawSettingsStore) GetByUser(
	ctx context.Context,
	userID uuid.UUID,
) (*domain.UserDrawSettings, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, type_counts, interval_count, created_at, updated_at
		FROM user_draw_settings
		WHERE user_id = $1
	`

	var settings domain.UserDrawSettings
	var typeCountsJSON []byte

	err := s.db.QueryRowContext(ctx, query, userID).Scan(
		&settings.ID,
		&settings.UserID,
		&typeCountsJSON,
		&settings.IntervalCount,
		&settings.CreatedAt,
		&settings.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("draw settings not found",
				slog.String("user_id", userID.String()))
			return nil, store.ErrSettingsNotFound
		}
		log.Error("failed to get draw settings",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}

	if err := json.Unmarshal(typeCountsJSON, &settings.TypeCounts); err != nil {
		return nil, fmt.Errorf("failed to unmarshal type counts: %w", err)
	}
	if settings.TypeCounts == nil {
		settings.TypeCounts = map[string]int{}
	}

	return &settings, nil
}

// Upsert implements store.DrawSettingsStore.Upsert
// It inserts the user's settings row or overwrites an existing one.
func (s *PostgresDrawSettingsStore) Upsert(
	ctx context.Context,
	settings *domain.UserDrawSettings,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := settings.Validate(); err != nil {
		log.Warn("draw settings validation failed during upsert",
			slog.String("error", err.Error()),
			slog.String("user_id", settings.UserID.String()))
		return err
	}

	typeCountsJSON, err := json.Marshal(settings.TypeCounts)
	if err != nil {
		return fmt.Errorf("failed to marshal type counts: %w", err)
	}

	query := `
		INSERT INTO user_draw_settings
			(id, user_id, type_counts, interval_count, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id) DO UPDATE
		SET type_counts = EXCLUDED.type_counts,
		    interval_count = EXCLUDED.interval_count,
		    updated_at = EXCLUDED.updated_at
	`

	now := time.Now().UTC()
	if settings.CreatedAt.IsZero() {
		settings.CreatedAt = now
	}
	settings.UpdatedAt = now

	_, err = s.db.ExecContext(
		ctx,
		query,
		settings.ID,
		settings.UserID,
		typeCountsJSON,
		settings.IntervalCount,
		settings.CreatedAt,
		settings.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to upsert draw settings",
			slog.String("error", err.Error()),
			slog.String("user_id", settings.UserID.String()))
		return MapError(err)
	}

	log.Debug("draw settings upserted",
		slog.String("user_id", settings.UserID.String()),
		slog.Int("interval_count", settings.IntervalCount))
	return nil
}

// Delete implements store.DrawSettingsStore.Delete
// It removes the user's stored settings so draws fall back to defaults.
// Returns store.ErrSettingsNotFound if no settings row exists.
func (s *PostgresDrawSettingsStore) Delete(ctx context.Context, userID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(
		ctx,
		`DELETE FROM user_draw_settings WHERE user_id = $1`,
		userID,
	)
	if err != nil {
		log.Error("failed to delete draw settings",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return MapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		log.Debug("draw settings not found for delete",
			slog.String("user_id", userID.String()))
		return store.ErrSettingsNotFound
	}

	log.Debug("draw settings deleted", slog.String("user_id", userID.String()))
	return nil
}

// WithTx implements store.DrawSettingsStore.WithTx
// It returns a new DrawSettingsStore running all statements on the given transaction.
func (s *PostgresDrawSettingsStore) WithTx(tx *sql.Tx) store.DrawSettingsStore {
	return &PostgresDrawSettingsStore{
		db:     tx,
		logger: s.logger,
	}
}
