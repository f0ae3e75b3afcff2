package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Defaults applied when a user has no stored draw settings and a draw
// request omits explicit parameters.
const DefaultIntervalCount = 2

// DefaultTypeCounts returns the engine-wide fallback type-to-count mapping.
// A fresh map is returned on every call so callers can mutate it freely.
func DefaultTypeCounts() map[string]int {
	return map[string]int{"M": 3, "N": 2}
}

// UserDrawSettings-specific validation errors. Each wraps ErrValidation.
var (
	// ErrSettingsIDEmpty is returned when a settings ID is empty or nil.
	ErrSettingsIDEmpty = fmt.Errorf("%w: settings ID cannot be empty", ErrValidation)

	// ErrSettingsUserIDEmpty is returned when a settings user ID is empty or nil.
	ErrSettingsUserIDEmpty = fmt.Errorf("%w: settings user ID cannot be empty", ErrValidation)
)

// UserDrawSettings holds a user's default draw parameters. At most one
// record exists per user; absence means the engine-wide defaults apply.
type UserDrawSettings struct {
	ID            uuid.UUID      `json:"id"`
	UserID        uuid.UUID      `json:"user_id"`
	TypeCounts    map[string]int `json:"type_counts"`
	IntervalCount int            `json:"interval_count"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// NewUserDrawSettings creates draw settings for the given user.
// Returns an error if validation fails.
func NewUserDrawSettings(
	userID uuid.UUID,
	typeCounts map[string]int,
	intervalCount int,
) (*UserDrawSettings, error) {
	settings := &UserDrawSettings{
		ID:            uuid.New(),
		UserID:        userID,
		TypeCounts:    typeCounts,
		IntervalCount: intervalCount,
		CreatedAt:     time.Now().UTC(),
		UpdatedAt:     time.Now().UTC(),
	}

	if err := settings.Validate(); err != nil {
		return nil, err
	}

	return settings, nil
}

// Validate checks if the UserDrawSettings has valid data.
// Returns an error if any field fails validation.
func (s *UserDrawSettings) Validate() error {
	if s.ID == uuid.Nil {
		return ErrSettingsIDEmpty
	}

	if s.UserID == uuid.Nil {
		return ErrSettingsUserIDEmpty
	}

	snapshot := DrawSettings{TypeCounts: s.TypeCounts, IntervalCount: s.IntervalCount}
	return snapshot.Validate()
}

// Snapshot converts the stored settings into a DrawSettings value suitable
// for recording on a session.
func (s *UserDrawSettings) Snapshot() DrawSettings {
	return DrawSettings{
		TypeCounts:    s.TypeCounts,
		IntervalCount: s.IntervalCount,
	}.Clone()
}
