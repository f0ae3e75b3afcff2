package draw

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/google/uuid"

	"github.com/Icezero0/Oblivionis/internal/domain"
	"github.com/Icezero0/Oblivionis/internal/platform/logger"
	"github.com/Icezero0/Oblivionis/internal/platform/postgres"
	"github.com/Icezero0/Oblivionis/internal/store"
)

// Verify interface compliance at compile time
var _ DrawService = (*drawServiceImpl)(nil)

// drawServiceImpl implements the DrawService interface.
type drawServiceImpl struct {
	txRunner      store.TxRunner
	cardStore     store.CardStore
	sessionStore  store.SessionStore
	settingsStore store.DrawSettingsStore
	sampler       Sampler
	maxAttempts   int
	logger        *slog.Logger
}

// NewDrawService creates a new DrawService implementation.
// maxAttempts bounds how many times a draw is retried after a concurrency
// conflict; values below 1 are raised to 1.
func NewDrawService(
	txRunner store.TxRunner,
	cardStore store.CardStore,
	sessionStore store.SessionStore,
	settingsStore store.DrawSettingsStore,
	sampler Sampler,
	maxAttempts int,
	logger *slog.Logger,
) DrawService {
	if txRunner == nil {
		panic("txRunner cannot be nil")
	}
	if cardStore == nil {
		panic("cardStore cannot be nil")
	}
	if sessionStore == nil {
		panic("sessionStore cannot be nil")
	}
	if settingsStore == nil {
		panic("settingsStore cannot be nil")
	}
	if sampler == nil {
		panic("sampler cannot be nil")
	}
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &drawServiceImpl{
		txRunner:      txRunner,
		cardStore:     cardStore,
		sessionStore:  sessionStore,
		settingsStore: settingsStore,
		sampler:       sampler,
		maxAttempts:   maxAttempts,
		logger:        logger.With(slog.String("component", "draw_service")),
	}
}

// Draw implements DrawService.Draw.
func (s *drawServiceImpl) Draw(
	ctx context.Context,
	userID uuid.UUID,
	req DrawRequest,
) (*DrawResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if userID == uuid.Nil {
		return nil, ErrInvalidUserID
	}

	settings, err := s.resolveSettings(ctx, userID, req)
	if err != nil {
		return nil, err
	}

	log.Debug("starting draw",
		slog.String("user_id", userID.String()),
		slog.Int("interval_count", settings.IntervalCount),
		slog.Int("type_count", len(settings.TypeCounts)))

	var lastErr error
	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		result, err := s.drawOnce(ctx, userID, settings)
		if err == nil {
			log.Debug("draw completed",
				slog.String("user_id", userID.String()),
				slog.Int64("session_number", result.Session.SessionNumber),
				slog.Int("total_cards", result.TotalCards),
				slog.Int("attempt", attempt))
			return result, nil
		}

		if !isRetryableConflict(err) {
			log.Error("draw failed",
				slog.String("error", err.Error()),
				slog.String("user_id", userID.String()))
			return nil, err
		}

		lastErr = err
		log.Debug("draw conflicted, retrying",
			slog.String("user_id", userID.String()),
			slog.Int("attempt", attempt),
			slog.String("error", err.Error()))
	}

	log.Warn("draw retry budget exhausted",
		slog.String("user_id", userID.String()),
		slog.Int("max_attempts", s.maxAttempts))
	return nil, fmt.Errorf("%w: %v", ErrDrawConflict, lastErr)
}

// resolveSettings builds the effective settings for one draw: explicit
// request values win, then the user's stored settings, then the engine
// defaults. A nil request map falls through; a non-nil empty one is kept.
func (s *drawServiceImpl) resolveSettings(
	ctx context.Context,
	userID uuid.UUID,
	req DrawRequest,
) (domain.DrawSettings, error) {
	resolved := domain.DrawSettings{}

	var stored *domain.UserDrawSettings
	if req.TypeCounts == nil || req.IntervalCount == nil {
		var err error
		stored, err = s.settingsStore.GetByUser(ctx, userID)
		if err != nil && !errors.Is(err, store.ErrSettingsNotFound) {
			return domain.DrawSettings{}, NewDrawError("failed to load stored settings", err)
		}
	}

	switch {
	case req.TypeCounts != nil:
		resolved.TypeCounts = cloneCounts(req.TypeCounts)
	case stored != nil && len(stored.TypeCounts) > 0:
		resolved.TypeCounts = cloneCounts(stored.TypeCounts)
	default:
		resolved.TypeCounts = domain.DefaultTypeCounts()
	}

	switch {
	case req.IntervalCount != nil:
		resolved.IntervalCount = *req.IntervalCount
	case stored != nil:
		resolved.IntervalCount = stored.IntervalCount
	default:
		resolved.IntervalCount = domain.DefaultIntervalCount
	}

	if err := resolved.Validate(); err != nil {
		return domain.DrawSettings{}, fmt.Errorf("%w: %v", ErrInvalidSettings, err)
	}

	return resolved, nil
}

// drawOnce runs one attempt of the full draw unit inside a serializable
// transaction: session number allocation, per-type eligibility filtering
// and sampling, statistics mutation, and the session insert.
func (s *drawServiceImpl) drawOnce(
	ctx context.Context,
	userID uuid.UUID,
	settings domain.DrawSettings,
) (*DrawResult, error) {
	var result *DrawResult

	err := s.txRunner.RunSerializable(ctx, func(ctx context.Context, tx *sql.Tx) error {
		cardStore := s.cardStore.WithTx(tx)
		sessionStore := s.sessionStore.WithTx(tx)

		maxNumber, err := sessionStore.MaxSessionNumber(ctx)
		if err != nil {
			return fmt.Errorf("failed to read max session number: %w", err)
		}
		sessionNumber := maxNumber + 1

		drawn := make(map[string][]*domain.Card)
		total := 0
		for _, cardType := range sortedTypes(settings.TypeCounts) {
			count := settings.TypeCounts[cardType]
			if count <= 0 {
				continue
			}

			pool, err := cardStore.FindByOwner(ctx, userID, cardType)
			if err != nil {
				return fmt.Errorf("failed to load cards of type %q: %w", cardType, err)
			}

			eligible := FilterEligible(pool, settings.IntervalCount, sessionNumber)
			picked := s.sampler.Sample(eligible, count)
			drawn[cardType] = picked
			total += len(picked)
		}

		if total > 0 {
			ids := make([]uuid.UUID, 0, total)
			for _, cardType := range sortedTypes(settings.TypeCounts) {
				for _, card := range drawn[cardType] {
					ids = append(ids, card.ID)
				}
			}
			if err := cardStore.RecordAppearances(ctx, ids, sessionNumber); err != nil {
				return fmt.Errorf("failed to record appearances: %w", err)
			}
		}

		session, err := domain.NewSession(userID, sessionNumber, settings)
		if err != nil {
			return fmt.Errorf("failed to build session: %w", err)
		}
		if err := sessionStore.Insert(ctx, session); err != nil {
			return err
		}

		// Reflect the statistics mutation on the fetched entities only once
		// the whole unit has gone through, so a rolled back attempt leaves
		// them untouched for the retry.
		for _, cards := range drawn {
			for _, card := range cards {
				card.RecordAppearance(sessionNumber)
			}
		}

		result = &DrawResult{
			Session:      session,
			CardsByType:  drawn,
			TotalCards:   total,
			SettingsUsed: session.SettingsUsed,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// isRetryableConflict reports whether a draw attempt failed only because a
// concurrent draw won the race, so a fresh attempt may succeed.
func isRetryableConflict(err error) bool {
	return errors.Is(err, store.ErrSessionNumberTaken) ||
		postgres.IsSerializationFailure(err)
}

func sortedTypes(counts map[string]int) []string {
	types := make([]string, 0, len(counts))
	for cardType := range counts {
		types = append(types, cardType)
	}
	sort.Strings(types)
	return types
}

func cloneCounts(counts map[string]int) map[string]int {
	cloned := make(map[string]int, len(counts))
	for cardType, count := range counts {
		cloned[cardType] = count
	}
	return cloned
}
