package domain

import (
	"testing"

	"github.com/google/uuid"
)

func TestNewSession(t *testing.T) {
	t.Parallel() // Enable parallel execution
	userID := uuid.New()
	settings := DrawSettings{
		TypeCounts:    map[string]int{"M": 3, "N": 2},
		IntervalCount: 2,
	}

	session, err := NewSession(userID, 1, settings)

	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if session.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}

	if session.SessionNumber != 1 {
		t.Errorf("Expected session number 1, got %d", session.SessionNumber)
	}

	if session.UserID != userID {
		t.Errorf("Expected user ID %s, got %s", userID, session.UserID)
	}

	if session.CreatedAt.IsZero() {
		t.Error("Expected non-zero CreatedAt time")
	}

	// The snapshot is copied, so mutating the caller's map must not alter it
	settings.TypeCounts["M"] = 99
	if session.SettingsUsed.TypeCounts["M"] != 3 {
		t.Errorf("Expected snapshot count 3, got %d", session.SettingsUsed.TypeCounts["M"])
	}

	// Test invalid user ID
	_, err = NewSession(uuid.Nil, 1, settings)
	if err != ErrSessionUserIDEmpty {
		t.Errorf("Expected error %v, got %v", ErrSessionUserIDEmpty, err)
	}

	// Test non-positive session number
	_, err = NewSession(userID, 0, settings)
	if err != ErrSessionNumberInvalid {
		t.Errorf("Expected error %v, got %v", ErrSessionNumberInvalid, err)
	}
}

func TestDrawSettingsValidate(t *testing.T) {
	t.Parallel() // Enable parallel execution
	testCases := []struct {
		name     string
		settings DrawSettings
		wantErr  error
	}{
		{
			name:     "valid settings",
			settings: DrawSettings{TypeCounts: map[string]int{"M": 3}, IntervalCount: 2},
			wantErr:  nil,
		},
		{
			name:     "zero interval allows immediate reappearance",
			settings: DrawSettings{TypeCounts: map[string]int{"M": 3}, IntervalCount: 0},
			wantErr:  nil,
		},
		{
			name:     "empty mapping is valid",
			settings: DrawSettings{TypeCounts: map[string]int{}, IntervalCount: 2},
			wantErr:  nil,
		},
		{
			name:     "negative counts are valid and skipped by the engine",
			settings: DrawSettings{TypeCounts: map[string]int{"M": -1}, IntervalCount: 2},
			wantErr:  nil,
		},
		{
			name:     "negative interval",
			settings: DrawSettings{TypeCounts: map[string]int{"M": 3}, IntervalCount: -1},
			wantErr:  ErrDrawSettingsInvalid,
		},
		{
			name:     "empty type tag",
			settings: DrawSettings{TypeCounts: map[string]int{"": 3}, IntervalCount: 2},
			wantErr:  ErrDrawSettingsInvalid,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.settings.Validate()
			if err != tc.wantErr {
				t.Errorf("Expected error %v, got %v", tc.wantErr, err)
			}
		})
	}
}
