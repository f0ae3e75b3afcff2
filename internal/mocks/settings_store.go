package mocks

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/Icezero0/Oblivionis/internal/domain"
	"github.com/Icezero0/Oblivionis/internal/store"
)

// MockDrawSettingsStore implements store.DrawSettingsStore for testing
type MockDrawSettingsStore struct {
	// Function fields for customizable behavior
	GetByUserFn func(ctx context.Context, userID uuid.UUID) (*domain.UserDrawSettings, error)
	UpsertFn    func(ctx context.Context, settings *domain.UserDrawSettings) error
	DeleteFn    func(ctx context.Context, userID uuid.UUID) error

	// Data for default implementation
	Settings map[uuid.UUID]*domain.UserDrawSettings
}

// NewMockDrawSettingsStore creates a new mock store with initialized defaults
func NewMockDrawSettingsStore() *MockDrawSettingsStore {
	return &MockDrawSettingsStore{
		Settings: make(map[uuid.UUID]*domain.UserDrawSettings),
	}
}

// Ensure MockDrawSettingsStore implements store.DrawSettingsStore
var _ store.DrawSettingsStore = (*MockDrawSettingsStore)(nil)

// GetByUser implements the DrawSettingsStore interface
func (m *MockDrawSettingsStore) GetByUser(
	ctx context.Context,
	userID uuid.UUID,
) (*domain.UserDrawSettings, error) {
	if m.GetByUserFn != nil {
		return m.GetByUserFn(ctx, userID)
	}

	settings, exists := m.Settings[userID]
	if !exists {
		return nil, store.ErrSettingsNotFound
	}
	return settings, nil
}

// Upsert implements the DrawSettingsStore interface
func (m *MockDrawSettingsStore) Upsert(
	ctx context.Context,
	settings *domain.UserDrawSettings,
) error {
	if m.UpsertFn != nil {
		return m.UpsertFn(ctx, settings)
	}

	m.Settings[settings.UserID] = settings
	return nil
}

// Delete implements the DrawSettingsStore interface
func (m *MockDrawSettingsStore) Delete(ctx context.Context, userID uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, userID)
	}

	if _, exists := m.Settings[userID]; !exists {
		return store.ErrSettingsNotFound
	}
	delete(m.Settings, userID)
	return nil
}

// WithTx implements the DrawSettingsStore interface.
// The mock has no real transactions, so it returns itself.
func (m *MockDrawSettingsStore) WithTx(tx *sql.Tx) store.DrawSettingsStore {
	return m
}
