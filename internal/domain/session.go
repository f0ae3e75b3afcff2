package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Session-specific validation errors. Each wraps ErrValidation.
var (
	// ErrSessionIDEmpty is returned when a session ID is empty or nil.
	ErrSessionIDEmpty = fmt.Errorf("%w: session ID cannot be empty", ErrValidation)

	// ErrSessionUserIDEmpty is returned when a session's user ID is empty or nil.
	ErrSessionUserIDEmpty = fmt.Errorf("%w: session user ID cannot be empty", ErrValidation)

	// ErrSessionNumberInvalid is returned when a session number is not positive.
	ErrSessionNumberInvalid = fmt.Errorf("%w: session number must be positive", ErrValidation)

	// ErrDrawSettingsInvalid is returned when a draw settings snapshot
	// carries an empty type tag or a negative interval.
	ErrDrawSettingsInvalid = fmt.Errorf("%w: invalid draw settings", ErrValidation)
)

// DrawSettings is the settings snapshot recorded on every session: the
// resolved type-to-count mapping and the cooldown interval actually used
// for that draw. It is stored verbatim so historical analytics remain
// reproducible even after the user's stored settings change.
type DrawSettings struct {
	TypeCounts    map[string]int `json:"type_counts"`
	IntervalCount int            `json:"interval_count"`
}

// Validate checks the snapshot: type tags must be non-empty strings and the
// interval must be non-negative. Counts may be zero or negative; the draw
// engine skips those entries.
func (s DrawSettings) Validate() error {
	if s.IntervalCount < 0 {
		return ErrDrawSettingsInvalid
	}

	for cardType := range s.TypeCounts {
		if cardType == "" {
			return ErrDrawSettingsInvalid
		}
	}

	return nil
}

// Clone returns a deep copy of the snapshot so later mutation of the
// caller's map cannot alter a recorded session.
func (s DrawSettings) Clone() DrawSettings {
	counts := make(map[string]int, len(s.TypeCounts))
	for cardType, count := range s.TypeCounts {
		counts[cardType] = count
	}
	return DrawSettings{TypeCounts: counts, IntervalCount: s.IntervalCount}
}

// Session represents one completed draw. SessionNumber is strictly
// increasing and unique across the whole store, not per user. Sessions are
// immutable once created; administrative deletion leaves a gap in the
// numbering, which is acceptable and not treated as corruption.
type Session struct {
	ID            uuid.UUID    `json:"id"`
	SessionNumber int64        `json:"session_number"`
	UserID        uuid.UUID    `json:"user_id"`
	SettingsUsed  DrawSettings `json:"settings_used"`
	CreatedAt     time.Time    `json:"created_at"`
}

// NewSession creates a Session record for the given user with the allocated
// session number and the resolved settings snapshot.
// Returns an error if validation fails.
func NewSession(userID uuid.UUID, sessionNumber int64, settings DrawSettings) (*Session, error) {
	session := &Session{
		ID:            uuid.New(),
		SessionNumber: sessionNumber,
		UserID:        userID,
		SettingsUsed:  settings.Clone(),
		CreatedAt:     time.Now().UTC(),
	}

	if err := session.Validate(); err != nil {
		return nil, err
	}

	return session, nil
}

// Validate checks if the Session has valid data.
// Returns an error if any field fails validation.
func (s *Session) Validate() error {
	if s.ID == uuid.Nil {
		return ErrSessionIDEmpty
	}

	if s.UserID == uuid.Nil {
		return ErrSessionUserIDEmpty
	}

	if s.SessionNumber <= 0 {
		return ErrSessionNumberInvalid
	}

	return s.SettingsUsed.Validate()
}
