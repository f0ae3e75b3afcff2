package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Icezero0/Oblivionis/internal/domain"
	"github.com/Icezero0/Oblivionis/internal/mocks"
	"github.com/Icezero0/Oblivionis/internal/store"
)

func newSettingsServiceFixture(t *testing.T) (*mocks.MockDrawSettingsStore, SettingsService) {
	t.Helper()

	settingsStore := mocks.NewMockDrawSettingsStore()
	return settingsStore, NewSettingsService(settingsStore, nil)
}

func TestGetSettingsNotFound(t *testing.T) {
	t.Parallel()

	_, svc := newSettingsServiceFixture(t)

	_, err := svc.GetSettings(context.Background(), uuid.New())
	assert.ErrorIs(t, err, store.ErrSettingsNotFound)
}

func TestPutSettingsCreatesWithDefaults(t *testing.T) {
	t.Parallel()

	settingsStore, svc := newSettingsServiceFixture(t)
	userID := uuid.New()

	settings, err := svc.PutSettings(context.Background(), userID, SettingsUpdate{})
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultTypeCounts(), settings.TypeCounts)
	assert.Equal(t, domain.DefaultIntervalCount, settings.IntervalCount)
	assert.Contains(t, settingsStore.Settings, userID)
}

func TestPutSettingsPartialUpdateKeepsStoredValues(t *testing.T) {
	t.Parallel()

	settingsStore, svc := newSettingsServiceFixture(t)
	userID := uuid.New()

	stored, err := domain.NewUserDrawSettings(userID, map[string]int{"M": 4}, 3)
	require.NoError(t, err)
	settingsStore.Settings[userID] = stored

	interval := 1
	settings, err := svc.PutSettings(context.Background(), userID, SettingsUpdate{
		IntervalCount: &interval,
	})
	require.NoError(t, err)

	assert.Equal(t, map[string]int{"M": 4}, settings.TypeCounts)
	assert.Equal(t, 1, settings.IntervalCount)
}

func TestPutSettingsRejectsInvalid(t *testing.T) {
	t.Parallel()

	_, svc := newSettingsServiceFixture(t)

	negative := -1
	_, err := svc.PutSettings(context.Background(), uuid.New(), SettingsUpdate{
		IntervalCount: &negative,
	})
	assert.Error(t, err)
}

func TestDeleteSettings(t *testing.T) {
	t.Parallel()

	settingsStore, svc := newSettingsServiceFixture(t)
	userID := uuid.New()

	assert.ErrorIs(t,
		svc.DeleteSettings(context.Background(), userID),
		store.ErrSettingsNotFound)

	stored, err := domain.NewUserDrawSettings(userID, map[string]int{"M": 4}, 3)
	require.NoError(t, err)
	settingsStore.Settings[userID] = stored

	require.NoError(t, svc.DeleteSettings(context.Background(), userID))
	assert.NotContains(t, settingsStore.Settings, userID)
}
