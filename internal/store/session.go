package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/Icezero0/Oblivionis/internal/domain"
)

// SessionStore defines the interface for draw session persistence.
// Session numbers are globally unique and strictly increasing; the store
// enforces uniqueness, while allocation order is the draw engine's job.
type SessionStore interface {
	// MaxSessionNumber returns the highest session number present in the
	// whole store, or 0 when no sessions exist. The read is only meaningful
	// for allocation when executed inside a serializable transaction
	// together with the subsequent Insert.
	MaxSessionNumber(ctx context.Context) (int64, error)

	// Insert persists a new session record.
	// Returns ErrSessionNumberTaken if a concurrent draw already claimed
	// the same session number.
	Insert(ctx context.Context, session *domain.Session) error

	// GetByID retrieves a session by its unique ID.
	// Returns ErrSessionNotFound if the session does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Session, error)

	// FindByUser retrieves a user's sessions ordered by creation time
	// ascending. A non-nil since restricts the result to sessions created
	// at or after that instant. Returns an empty slice when nothing matches.
	FindByUser(ctx context.Context, userID uuid.UUID, since *time.Time) ([]*domain.Session, error)

	// CountByUser returns the total number of sessions for the user.
	CountByUser(ctx context.Context, userID uuid.UUID) (int, error)

	// Delete removes a session record. Other sessions are not renumbered;
	// the resulting gap in session numbers is expected.
	// Returns ErrSessionNotFound if the session does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new SessionStore instance that uses the provided
	// transaction.
	WithTx(tx *sql.Tx) SessionStore
}
