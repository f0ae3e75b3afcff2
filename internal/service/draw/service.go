package draw

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/Icezero0/Oblivionis/internal/domain"
)

// DrawRequest carries the caller's per-draw overrides. Nil fields mean
// "not supplied" and fall through to the user's stored settings, then to the
// engine defaults. A non-nil but empty TypeCounts map is honored verbatim
// and produces a session that draws nothing.
type DrawRequest struct {
	TypeCounts    map[string]int `json:"type_counts,omitempty"`
	IntervalCount *int           `json:"interval_count,omitempty"`
}

// DrawResult is the outcome of one completed draw session.
type DrawResult struct {
	// Session is the persisted session record, including the allocated
	// session number and the settings snapshot that produced the draw.
	Session *domain.Session

	// CardsByType maps each requested type tag to the cards drawn for it.
	// Types whose count was skipped (zero or negative) are absent; types
	// with no eligible cards map to an empty slice.
	CardsByType map[string][]*domain.Card

	// TotalCards is the number of cards drawn across all types.
	TotalCards int

	// SettingsUsed is the resolved settings snapshot applied to this draw.
	SettingsUsed domain.DrawSettings
}

// DrawService runs draw sessions: it resolves settings, allocates the next
// session number, filters eligible cards per type, samples them, and records
// the outcome, all as one atomic unit.
type DrawService interface {
	// Draw executes a complete draw session for the user.
	//
	// Returns:
	//   - (*DrawResult, nil): The completed session and its drawn cards.
	//   - (nil, ErrInvalidUserID): If userID is absent.
	//   - (nil, ErrInvalidSettings): If the resolved settings are malformed.
	//   - (nil, ErrDrawConflict): If concurrent draws kept colliding past
	//     the retry budget.
	//
	// A draw with no eligible cards anywhere still succeeds and records a
	// session; only the statistics mutation is skipped.
	Draw(ctx context.Context, userID uuid.UUID, req DrawRequest) (*DrawResult, error)
}

// Common error types for DrawService
var (
	// ErrInvalidUserID indicates the draw was requested without a user.
	ErrInvalidUserID = errors.New("invalid user id")

	// ErrInvalidSettings indicates the resolved draw settings are malformed.
	ErrInvalidSettings = errors.New("invalid draw settings")

	// ErrDrawConflict indicates concurrent draws exhausted the retry budget.
	// The caller may simply try again.
	ErrDrawConflict = errors.New("draw conflicted with concurrent sessions")
)

// DrawError wraps errors from the draw engine with the operation that
// failed, so consumers can use errors.Is/errors.As instead of string
// matching.
type DrawError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for DrawError.
func (e *DrawError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s operation failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s operation failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *DrawError) Unwrap() error {
	return e.Err
}

// NewDrawError returns a new DrawError for the draw operation.
func NewDrawError(message string, err error) *DrawError {
	return &DrawError{
		Operation: "draw",
		Message:   message,
		Err:       err,
	}
}
