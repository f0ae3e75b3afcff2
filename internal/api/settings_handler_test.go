package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Icezero0/Oblivionis/internal/api"
	"github.com/Icezero0/Oblivionis/internal/domain"
	"github.com/Icezero0/Oblivionis/internal/service"
	"github.com/Icezero0/Oblivionis/internal/store"
)

// stubSettingsService implements service.SettingsService with function fields.
type stubSettingsService struct {
	GetSettingsFn    func(ctx context.Context, userID uuid.UUID) (*domain.UserDrawSettings, error)
	PutSettingsFn    func(ctx context.Context, userID uuid.UUID, update service.SettingsUpdate) (*domain.UserDrawSettings, error)
	DeleteSettingsFn func(ctx context.Context, userID uuid.UUID) error
}

func (s *stubSettingsService) GetSettings(
	ctx context.Context,
	userID uuid.UUID,
) (*domain.UserDrawSettings, error) {
	return s.GetSettingsFn(ctx, userID)
}

func (s *stubSettingsService) PutSettings(
	ctx context.Context,
	userID uuid.UUID,
	update service.SettingsUpdate,
) (*domain.UserDrawSettings, error) {
	return s.PutSettingsFn(ctx, userID, update)
}

func (s *stubSettingsService) DeleteSettings(ctx context.Context, userID uuid.UUID) error {
	return s.DeleteSettingsFn(ctx, userID)
}

var _ service.SettingsService = (*stubSettingsService)(nil)

func TestGetSettings(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	settings, err := domain.NewUserDrawSettings(userID, map[string]int{"M": 4}, 1)
	require.NoError(t, err)

	svc := &stubSettingsService{
		GetSettingsFn: func(ctx context.Context, gotUser uuid.UUID) (*domain.UserDrawSettings, error) {
			assert.Equal(t, userID, gotUser)
			return settings, nil
		},
	}
	handler := api.NewSettingsHandler(svc)

	r := authedRequest(http.MethodGet, "/api/settings", userID, nil)
	w := httptest.NewRecorder()
	handler.Get(w, r)

	require.Equal(t, http.StatusOK, w.Code)

	var got domain.UserDrawSettings
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, map[string]int{"M": 4}, got.TypeCounts)
	assert.Equal(t, 1, got.IntervalCount)
}

func TestGetSettingsNotFound(t *testing.T) {
	t.Parallel()

	svc := &stubSettingsService{
		GetSettingsFn: func(ctx context.Context, userID uuid.UUID) (*domain.UserDrawSettings, error) {
			return nil, store.ErrSettingsNotFound
		},
	}
	handler := api.NewSettingsHandler(svc)

	r := authedRequest(http.MethodGet, "/api/settings", uuid.New(), nil)
	w := httptest.NewRecorder()
	handler.Get(w, r)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Draw settings not found")
}

func TestPutSettingsPartialUpdate(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	svc := &stubSettingsService{
		PutSettingsFn: func(ctx context.Context, gotUser uuid.UUID, update service.SettingsUpdate) (*domain.UserDrawSettings, error) {
			assert.Equal(t, map[string]int{"M": 5, "N": 1}, update.TypeCounts)
			assert.Nil(t, update.IntervalCount)
			return domain.NewUserDrawSettings(gotUser, update.TypeCounts, domain.DefaultIntervalCount)
		},
	}
	handler := api.NewSettingsHandler(svc)

	r := authedRequest(
		http.MethodPut,
		"/api/settings",
		userID,
		strings.NewReader(`{"type_counts":{"M":5,"N":1}}`),
	)
	w := httptest.NewRecorder()
	handler.Put(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestPutSettingsRejectsNegativeInterval(t *testing.T) {
	t.Parallel()

	handler := api.NewSettingsHandler(&stubSettingsService{})

	r := authedRequest(
		http.MethodPut,
		"/api/settings",
		uuid.New(),
		strings.NewReader(`{"interval_count":-1}`),
	)
	w := httptest.NewRecorder()
	handler.Put(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteSettings(t *testing.T) {
	t.Parallel()

	var deleted bool
	svc := &stubSettingsService{
		DeleteSettingsFn: func(ctx context.Context, userID uuid.UUID) error {
			deleted = true
			return nil
		},
	}
	handler := api.NewSettingsHandler(svc)

	r := authedRequest(http.MethodDelete, "/api/settings", uuid.New(), nil)
	w := httptest.NewRecorder()
	handler.Delete(w, r)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.True(t, deleted)
}

func TestSettingsRequireAuthentication(t *testing.T) {
	t.Parallel()

	handler := api.NewSettingsHandler(&stubSettingsService{})

	r := httptest.NewRequest(http.MethodGet, "/api/settings", nil)
	w := httptest.NewRecorder()
	handler.Get(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
