package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Icezero0/Oblivionis/internal/domain"
	"github.com/Icezero0/Oblivionis/internal/platform/logger"
	"github.com/Icezero0/Oblivionis/internal/store"
)

// SettingsUpdate carries the mutable fields of a user's draw settings.
// Nil fields keep the current value when settings already exist, or take
// the engine default when they don't.
type SettingsUpdate struct {
	TypeCounts    map[string]int
	IntervalCount *int
}

// SettingsService manages per-user draw settings. Stored settings are an
// override layer; deleting them restores the engine defaults.
type SettingsService interface {
	// GetSettings returns the user's stored settings.
	// Returns store.ErrSettingsNotFound when none were saved.
	GetSettings(ctx context.Context, userID uuid.UUID) (*domain.UserDrawSettings, error)

	// PutSettings creates or updates the user's settings. On update, nil
	// fields of the update keep their stored values.
	PutSettings(ctx context.Context, userID uuid.UUID, update SettingsUpdate) (*domain.UserDrawSettings, error)

	// DeleteSettings removes the stored settings so draws fall back to the
	// engine defaults. Returns store.ErrSettingsNotFound when none exist.
	DeleteSettings(ctx context.Context, userID uuid.UUID) error
}

// settingsServiceImpl implements the SettingsService interface
type settingsServiceImpl struct {
	settingsStore store.DrawSettingsStore
	logger        *slog.Logger
}

// Ensure settingsServiceImpl implements SettingsService
var _ SettingsService = (*settingsServiceImpl)(nil)

// NewSettingsService creates a new SettingsService.
func NewSettingsService(
	settingsStore store.DrawSettingsStore,
	logger *slog.Logger,
) SettingsService {
	if settingsStore == nil {
		panic("settingsStore cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &settingsServiceImpl{
		settingsStore: settingsStore,
		logger:        logger.With(slog.String("component", "settings_service")),
	}
}

// GetSettings implements SettingsService.GetSettings.
func (s *settingsServiceImpl) GetSettings(
	ctx context.Context,
	userID uuid.UUID,
) (*domain.UserDrawSettings, error) {
	return s.settingsStore.GetByUser(ctx, userID)
}

// PutSettings implements SettingsService.PutSettings.
func (s *settingsServiceImpl) PutSettings(
	ctx context.Context,
	userID uuid.UUID,
	update SettingsUpdate,
) (*domain.UserDrawSettings, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	settings, err := s.settingsStore.GetByUser(ctx, userID)
	switch {
	case err == nil:
		if update.TypeCounts != nil {
			settings.TypeCounts = update.TypeCounts
		}
		if update.IntervalCount != nil {
			settings.IntervalCount = *update.IntervalCount
		}
		settings.UpdatedAt = time.Now().UTC()
	case errors.Is(err, store.ErrSettingsNotFound):
		typeCounts := update.TypeCounts
		if typeCounts == nil {
			typeCounts = domain.DefaultTypeCounts()
		}
		interval := domain.DefaultIntervalCount
		if update.IntervalCount != nil {
			interval = *update.IntervalCount
		}
		settings, err = domain.NewUserDrawSettings(userID, typeCounts, interval)
		if err != nil {
			return nil, err
		}
	default:
		log.Error("failed to load settings",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	if err := settings.Validate(); err != nil {
		return nil, err
	}

	if err := s.settingsStore.Upsert(ctx, settings); err != nil {
		log.Error("failed to store settings",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to store settings: %w", err)
	}

	log.Debug("settings saved",
		slog.String("user_id", userID.String()),
		slog.Int("interval_count", settings.IntervalCount))
	return settings, nil
}

// DeleteSettings implements SettingsService.DeleteSettings.
func (s *settingsServiceImpl) DeleteSettings(ctx context.Context, userID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.settingsStore.Delete(ctx, userID); err != nil {
		if errors.Is(err, store.ErrSettingsNotFound) {
			return err
		}
		log.Error("failed to delete settings",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return fmt.Errorf("failed to delete settings: %w", err)
	}

	log.Debug("settings deleted", slog.String("user_id", userID.String()))
	return nil
}
