package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/Icezero0/Oblivionis/internal/domain"
	"github.com/Icezero0/Oblivionis/internal/platform/logger"
	"github.com/Icezero0/Oblivionis/internal/store"
)

// SessionExportEntry is one session in an export bundle.
type SessionExportEntry struct {
	SessionNumber int64               `json:"session_number"`
	Date          string              `json:"date"`
	SettingsUsed  domain.DrawSettings `json:"settings_used"`
}

// SessionExport is a user's complete session history in a portable shape,
// suitable for backup or offline analysis.
type SessionExport struct {
	UserID        uuid.UUID            `json:"user_id"`
	TotalSessions int                  `json:"total_sessions"`
	ExportDate    string               `json:"export_date"`
	Sessions      []SessionExportEntry `json:"sessions"`
}

// SessionService exposes the read and administrative operations on draw
// session history. Draw execution itself lives in the draw package.
type SessionService interface {
	// ListSessions returns the user's sessions ordered by session number
	// descending, with offset/limit pagination.
	ListSessions(ctx context.Context, userID uuid.UUID, skip, limit int) ([]*domain.Session, error)

	// GetSession retrieves one session. Returns ErrNotOwned when it
	// belongs to another user.
	GetSession(ctx context.Context, userID, sessionID uuid.UUID) (*domain.Session, error)

	// DeleteSession removes a session record. Card statistics derived from
	// it are kept, and the freed session number is never reused, so the
	// numbering keeps a gap.
	DeleteSession(ctx context.Context, userID, sessionID uuid.UUID) error

	// ExportSessions bundles the user's whole session history, ordered by
	// session number ascending, with RFC 3339 timestamps.
	ExportSessions(ctx context.Context, userID uuid.UUID) (*SessionExport, error)
}

// sessionServiceImpl implements the SessionService interface
type sessionServiceImpl struct {
	sessionStore store.SessionStore
	logger       *slog.Logger
}

// Ensure sessionServiceImpl implements SessionService
var _ SessionService = (*sessionServiceImpl)(nil)

// NewSessionService creates a new SessionService.
func NewSessionService(
	sessionStore store.SessionStore,
	logger *slog.Logger,
) SessionService {
	if sessionStore == nil {
		panic("sessionStore cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &sessionServiceImpl{
		sessionStore: sessionStore,
		logger:       logger.With(slog.String("component", "session_service")),
	}
}

// ListSessions implements SessionService.ListSessions.
func (s *sessionServiceImpl) ListSessions(
	ctx context.Context,
	userID uuid.UUID,
	skip, limit int,
) ([]*domain.Session, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	sessions, err := s.sessionStore.FindByUser(ctx, userID, nil)
	if err != nil {
		log.Error("failed to list sessions",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to load sessions: %w", err)
	}

	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].SessionNumber > sessions[j].SessionNumber
	})

	if skip < 0 {
		skip = 0
	}
	if skip >= len(sessions) {
		return []*domain.Session{}, nil
	}
	sessions = sessions[skip:]
	if limit > 0 && limit < len(sessions) {
		sessions = sessions[:limit]
	}
	return sessions, nil
}

// GetSession implements SessionService.GetSession.
func (s *sessionServiceImpl) GetSession(
	ctx context.Context,
	userID, sessionID uuid.UUID,
) (*domain.Session, error) {
	session, err := s.sessionStore.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.UserID != userID {
		return nil, ErrNotOwned
	}
	return session, nil
}

// DeleteSession implements SessionService.DeleteSession.
func (s *sessionServiceImpl) DeleteSession(
	ctx context.Context,
	userID, sessionID uuid.UUID,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := s.GetSession(ctx, userID, sessionID); err != nil {
		return err
	}

	if err := s.sessionStore.Delete(ctx, sessionID); err != nil {
		log.Error("failed to delete session",
			slog.String("error", err.Error()),
			slog.String("session_id", sessionID.String()))
		return fmt.Errorf("failed to delete session: %w", err)
	}

	log.Info("session deleted",
		slog.String("session_id", sessionID.String()),
		slog.String("user_id", userID.String()))
	return nil
}

// ExportSessions implements SessionService.ExportSessions.
func (s *sessionServiceImpl) ExportSessions(
	ctx context.Context,
	userID uuid.UUID,
) (*SessionExport, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	sessions, err := s.sessionStore.FindByUser(ctx, userID, nil)
	if err != nil {
		log.Error("failed to export sessions",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to load sessions: %w", err)
	}

	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].SessionNumber < sessions[j].SessionNumber
	})

	export := &SessionExport{
		UserID:        userID,
		TotalSessions: len(sessions),
		ExportDate:    time.Now().UTC().Format(time.RFC3339),
		Sessions:      make([]SessionExportEntry, 0, len(sessions)),
	}
	for _, session := range sessions {
		export.Sessions = append(export.Sessions, SessionExportEntry{
			SessionNumber: session.SessionNumber,
			Date:          session.CreatedAt.Format(time.RFC3339),
			SettingsUsed:  session.SettingsUsed,
		})
	}

	return export, nil
}
