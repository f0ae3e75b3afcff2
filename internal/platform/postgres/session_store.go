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

// PostgresSessionStore implements the store.SessionStore interface
// using a PostgreSQL database as the storage backend. The settings
// snapshot for each session is stored as a JSONB column.
type PostgresSessionStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresSessionStore creates a new PostgreSQL implementation of the SessionStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresSessionStore(db store.DBTX, logger *slog.Logger) *PostgresSessionStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresSessionStore{
		db:     db,
		logger: logger.With(slog.String("component", "session_store")),
	}
}

// Ensure PostgresSessionStore implements store.SessionStore interface
var _ store.SessionStore = (*PostgresSessionStore)(nil)

// settingsSnapshot is the JSONB shape persisted in sessions.settings_used.
type settingsSnapshot struct {
	TypeCounts    map[string]int `json:"type_counts"`
	IntervalCount int            `json:"interval_count"`
}

// MaxSessionNumber implements store.SessionStore.MaxSessionNumber
// It returns the highest session number recorded so far, or 0 when no
// sessions exist yet.
func (s *PostgresSessionStore) MaxSessionNumber(ctx context.Context) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var max int64
	err := s.db.QueryRowContext(
		ctx,
		`SELECT COALESCE(MAX(session_number), 0) FROM sessions`,
	).Scan(&max)
	if err != nil {
		log.Error("failed to query max session number",
			slog.String("error", err.Error()))
		return 0, MapError(err)
	}

	return max, nil
}

// Insert implements store.SessionStore.Insert
// It records a completed draw session. Returns store.ErrSessionNumberTaken
// when another session already claimed the same session number, so the
// caller can retry the whole draw with a fresh number.
func (s *PostgresSessionStore) Insert(ctx context.Context, session *domain.Session) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := session.Validate(); err != nil {
		log.Warn("session validation failed during insert",
			slog.String("error", err.Error()),
			slog.String("session_id", session.ID.String()))
		return err
	}

	settingsJSON, err := json.Marshal(settingsSnapshot{
		TypeCounts:    session.SettingsUsed.TypeCounts,
		IntervalCount: session.SettingsUsed.IntervalCount,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal session settings: %w", err)
	}

	query := `
		INSERT INTO sessions (id, session_number, user_id, settings_used, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err = s.db.ExecContext(
		ctx,
		query,
		session.ID,
		session.SessionNumber,
		session.UserID,
		settingsJSON,
		session.CreatedAt,
	)

	if err != nil {
		if IsUniqueViolation(err) {
			log.Debug("session number already taken",
				slog.Int64("session_number", session.SessionNumber))
			return store.ErrSessionNumberTaken
		}
		log.Error("failed to insert session",
			slog.String("error", err.Error()),
			slog.String("session_id", session.ID.String()),
			slog.Int64("session_number", session.SessionNumber))
		return MapError(err)
	}

	log.Debug("session inserted",
		slog.String("session_id", session.ID.String()),
		slog.Int64("session_number", session.SessionNumber),
		slog.String("user_id", session.UserID.String()))
	return nil
}

// GetByID implements store.SessionStore.GetByID
// Returns store.ErrSessionNotFound if the session does not exist.
func (s *PostgresSessionStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Session, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, session_number, user_id, settings_used, created_at
		FROM sessions
		WHERE id = $1
	`

	session, err := scanSession(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("session not found", slog.String("session_id", id.String()))
			return nil, store.ErrSessionNotFound
		}
		log.Error("failed to get session by ID",
			slog.String("error", err.Error()),
			slog.String("session_id", id.String()))
		return nil, MapError(err)
	}

	return session, nil
}

// FindByUser implements store.SessionStore.FindByUser
// It retrieves the user's sessions ordered by creation time ascending.
// When since is non-nil, only sessions created at or after that instant
// are returned. Returns an empty slice if no sessions match.
func (s *PostgresSessionStore) FindByUser(
	ctx context.Context,
	userID uuid.UUID,
	since *time.Time,
) ([]*domain.Session, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, session_number, user_id, settings_used, created_at
		FROM sessions
		WHERE user_id = $1
		  AND ($2::timestamptz IS NULL OR created_at >= $2)
		ORDER BY created_at ASC
	`

	rows, err := s.db.QueryContext(ctx, query, userID, since)
	if err != nil {
		log.Error("failed to query sessions by user",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	sessions := []*domain.Session{}
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			log.Error("failed to scan session row",
				slog.String("error", err.Error()))
			return nil, err
		}
		sessions = append(sessions, session)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows",
			slog.String("error", err.Error()))
		return nil, err
	}

	log.Debug("found sessions by user",
		slog.String("user_id", userID.String()),
		slog.Int("count", len(sessions)))
	return sessions, nil
}

// CountByUser implements store.SessionStore.CountByUser
func (s *PostgresSessionStore) CountByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var count int
	err := s.db.QueryRowContext(
		ctx,
		`SELECT COUNT(*) FROM sessions WHERE user_id = $1`,
		userID,
	).Scan(&count)
	if err != nil {
		log.Error("failed to count sessions by user",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return 0, MapError(err)
	}

	return count, nil
}

// Delete implements store.SessionStore.Delete
// It removes a session record. Card statistics are left untouched; drawn
// cards keep their appear counts even when the session disappears.
// Returns store.ErrSessionNotFound if the session does not exist.
func (s *PostgresSessionStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete session",
			slog.String("error", err.Error()),
			slog.String("session_id", id.String()))
		return MapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		log.Debug("session not found for delete", slog.String("session_id", id.String()))
		return store.ErrSessionNotFound
	}

	log.Debug("session deleted", slog.String("session_id", id.String()))
	return nil
}

// WithTx implements store.SessionStore.WithTx
// It returns a new SessionStore running all statements on the given transaction.
func (s *PostgresSessionStore) WithTx(tx *sql.Tx) store.SessionStore {
	return &PostgresSessionStore{
		db:     tx,
		logger: s.logger,
	}
}

func scanSession(row rowScanner) (*domain.Session, error) {
	var session domain.Session
	var settingsJSON []byte

	err := row.Scan(
		&session.ID,
		&session.SessionNumber,
		&session.UserID,
		&settingsJSON,
		&session.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	var snapshot settingsSnapshot
	if err := json.Unmarshal(settingsJSON, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session settings: %w", err)
	}
	session.SettingsUsed = domain.DrawSettings{
		TypeCounts:    snapshot.TypeCounts,
		IntervalCount: snapshot.IntervalCount,
	}
	if session.SettingsUsed.TypeCounts == nil {
		session.SettingsUsed.TypeCounts = map[string]int{}
	}

	return &session, nil
}
