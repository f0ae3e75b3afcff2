package analytics

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/Icezero0/Oblivionis/internal/domain"
	"github.com/Icezero0/Oblivionis/internal/platform/logger"
	"github.com/Icezero0/Oblivionis/internal/store"
)

// timelineTimeFormat renders session timestamps for humans, minute
// precision is enough.
const timelineTimeFormat = "2006-01-02 15:04"

// Verify interface compliance at compile time
var _ Service = (*serviceImpl)(nil)

// serviceImpl implements the Service interface over the card and session
// stores. It holds no state of its own; every operation is a fresh read.
type serviceImpl struct {
	cardStore    store.CardStore
	sessionStore store.SessionStore
	logger       *slog.Logger
}

// NewService creates a new analytics Service implementation.
func NewService(
	cardStore store.CardStore,
	sessionStore store.SessionStore,
	logger *slog.Logger,
) Service {
	if cardStore == nil {
		panic("cardStore cannot be nil")
	}
	if sessionStore == nil {
		panic("sessionStore cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &serviceImpl{
		cardStore:    cardStore,
		sessionStore: sessionStore,
		logger:       logger.With(slog.String("component", "analytics_service")),
	}
}

// Overview implements Service.Overview.
func (s *serviceImpl) Overview(ctx context.Context, userID uuid.UUID) (*Overview, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if userID == uuid.Nil {
		return nil, ErrInvalidUserID
	}

	cards, err := s.cardStore.FindByOwner(ctx, userID, "")
	if err != nil {
		log.Error("failed to load cards for overview",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to load cards: %w", err)
	}

	totalSessions, err := s.sessionStore.CountByUser(ctx, userID)
	if err != nil {
		log.Error("failed to count sessions for overview",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to count sessions: %w", err)
	}

	sevenDaysAgo := time.Now().UTC().AddDate(0, 0, -7)
	recent, err := s.sessionStore.FindByUser(ctx, userID, &sevenDaysAgo)
	if err != nil {
		log.Error("failed to load recent sessions for overview",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to load recent sessions: %w", err)
	}

	overview := buildOverview(cards, totalSessions, len(recent))
	return overview, nil
}

// buildOverview derives the overview counts from already loaded data so the
// recommendation engine can reuse it without a second round of queries.
func buildOverview(cards []*domain.Card, totalSessions, recentSessions int) *Overview {
	byType := map[string]int{}
	drawn := 0
	for _, card := range cards {
		byType[card.CardType]++
		if card.AppearCount > 0 {
			drawn++
		}
	}

	drawRate := 0.0
	if len(cards) > 0 {
		drawRate = round1(float64(drawn) / float64(len(cards)) * 100)
	}

	return &Overview{
		TotalCards:       len(cards),
		TotalSessions:    totalSessions,
		CardsByType:      byType,
		DrawnCards:       drawn,
		NeverDrawn:       len(cards) - drawn,
		RecentSessions7d: recentSessions,
		DrawRate:         drawRate,
	}
}

// CardStatistics implements Service.CardStatistics.
func (s *serviceImpl) CardStatistics(
	ctx context.Context,
	userID uuid.UUID,
	cardType string,
) (*CardStatistics, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if userID == uuid.Nil {
		return nil, ErrInvalidUserID
	}

	cards, err := s.cardStore.FindByOwner(ctx, userID, cardType)
	if err != nil {
		log.Error("failed to load cards for statistics",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("card_type", cardType))
		return nil, fmt.Errorf("failed to load cards: %w", err)
	}

	stats := &CardStatistics{
		AppearDistribution: map[string]int{},
		MostDrawnCards:     []DrawnCardSummary{},
		NeverDrawnCards:    []NeverDrawnCardSummary{},
	}

	stats.TotalCards = len(cards)
	for i, card := range cards {
		stats.TotalAppears += card.AppearCount
		if i == 0 || card.AppearCount > stats.MaxAppears {
			stats.MaxAppears = card.AppearCount
		}
		if i == 0 || card.AppearCount < stats.MinAppears {
			stats.MinAppears = card.AppearCount
		}
		stats.AppearDistribution[fmt.Sprintf("%d", card.AppearCount)]++
	}
	if len(cards) > 0 {
		stats.AvgAppears = round2(float64(stats.TotalAppears) / float64(len(cards)))
	}

	drawnCards := make([]*domain.Card, 0, len(cards))
	for _, card := range cards {
		if card.AppearCount > 0 {
			drawnCards = append(drawnCards, card)
		} else if len(stats.NeverDrawnCards) < 5 {
			stats.NeverDrawnCards = append(stats.NeverDrawnCards, NeverDrawnCardSummary{
				ID:       card.ID,
				Content:  truncateContent(card.Content),
				CardType: card.CardType,
			})
		}
	}

	sort.SliceStable(drawnCards, func(i, j int) bool {
		if drawnCards[i].AppearCount != drawnCards[j].AppearCount {
			return drawnCards[i].AppearCount > drawnCards[j].AppearCount
		}
		return lastSession(drawnCards[i]) > lastSession(drawnCards[j])
	})
	if len(drawnCards) > 5 {
		drawnCards = drawnCards[:5]
	}
	for _, card := range drawnCards {
		stats.MostDrawnCards = append(stats.MostDrawnCards, DrawnCardSummary{
			ID:          card.ID,
			Content:     truncateContent(card.Content),
			AppearCount: card.AppearCount,
			LastSession: card.LastAppearedSession,
		})
	}

	return stats, nil
}

// SessionAnalytics implements Service.SessionAnalytics.
func (s *serviceImpl) SessionAnalytics(
	ctx context.Context,
	userID uuid.UUID,
	days int,
) (*SessionAnalytics, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if userID == uuid.Nil {
		return nil, ErrInvalidUserID
	}
	if days < 1 {
		days = DefaultWindowDays
	}

	since := time.Now().UTC().AddDate(0, 0, -days)
	sessions, err := s.sessionStore.FindByUser(ctx, userID, &since)
	if err != nil {
		log.Error("failed to load sessions for analytics",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.Int("days", days))
		return nil, fmt.Errorf("failed to load sessions: %w", err)
	}

	analytics := &SessionAnalytics{
		DailySessions:   map[string]int{},
		TypePreferences: map[string]int{},
		SessionTimeline: []TimelineEntry{},
	}
	if len(sessions) == 0 {
		return analytics, nil
	}

	totalCardsRequested := 0
	timeline := make([]TimelineEntry, 0, len(sessions))
	for _, session := range sessions {
		dateKey := session.CreatedAt.Format("2006-01-02")
		analytics.DailySessions[dateKey]++

		for cardType, count := range session.SettingsUsed.TypeCounts {
			analytics.TypePreferences[cardType] += count
			totalCardsRequested += count
		}

		timeline = append(timeline, TimelineEntry{
			SessionNumber: session.SessionNumber,
			Date:          session.CreatedAt.Format(timelineTimeFormat),
			Settings:      session.SettingsUsed,
		})
	}

	analytics.TotalSessions = len(sessions)
	analytics.AvgCardsPerSession = round1(float64(totalCardsRequested) / float64(len(sessions)))
	if len(timeline) > 10 {
		timeline = timeline[len(timeline)-10:]
	}
	analytics.SessionTimeline = timeline

	return analytics, nil
}

// LearningProgress implements Service.LearningProgress.
func (s *serviceImpl) LearningProgress(
	ctx context.Context,
	userID uuid.UUID,
) (*LearningProgress, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if userID == uuid.Nil {
		return nil, ErrInvalidUserID
	}

	cards, err := s.cardStore.FindByOwner(ctx, userID, "")
	if err != nil {
		log.Error("failed to load cards for progress",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to load cards: %w", err)
	}

	return buildLearningProgress(cards), nil
}

func buildLearningProgress(cards []*domain.Card) *LearningProgress {
	type typeAccum struct {
		total     int
		practiced int
		appears   int
	}
	byType := map[string]*typeAccum{}

	levels := map[string]int{
		ProficiencyBeginner:   0,
		ProficiencyPracticing: 0,
		ProficiencyFamiliar:   0,
		ProficiencyMastered:   0,
	}

	for _, card := range cards {
		accum := byType[card.CardType]
		if accum == nil {
			accum = &typeAccum{}
			byType[card.CardType] = accum
		}
		accum.total++
		accum.appears += card.AppearCount
		if card.AppearCount > 0 {
			accum.practiced++
		}

		switch {
		case card.AppearCount == 0:
			levels[ProficiencyBeginner]++
		case card.AppearCount <= 2:
			levels[ProficiencyPracticing]++
		case card.AppearCount <= 5:
			levels[ProficiencyFamiliar]++
		default:
			levels[ProficiencyMastered]++
		}
	}

	progress := map[string]TypeProgress{}
	for cardType, accum := range byType {
		rate := 0.0
		avg := 0.0
		if accum.total > 0 {
			rate = round1(float64(accum.practiced) / float64(accum.total) * 100)
			avg = round1(float64(accum.appears) / float64(accum.total))
		}
		progress[cardType] = TypeProgress{
			Total:        accum.total,
			Practiced:    accum.practiced,
			ProgressRate: rate,
			AvgAppears:   avg,
		}
	}

	return &LearningProgress{
		ProgressByType:    progress,
		ProficiencyLevels: levels,
		TotalCards:        len(cards),
	}
}

// Recommendations implements Service.Recommendations.
func (s *serviceImpl) Recommendations(
	ctx context.Context,
	userID uuid.UUID,
) (*Recommendations, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if userID == uuid.Nil {
		return nil, ErrInvalidUserID
	}

	cards, err := s.cardStore.FindByOwner(ctx, userID, "")
	if err != nil {
		log.Error("failed to load cards for recommendations",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to load cards: %w", err)
	}

	sevenDaysAgo := time.Now().UTC().AddDate(0, 0, -7)
	recent, err := s.sessionStore.FindByUser(ctx, userID, &sevenDaysAgo)
	if err != nil {
		log.Error("failed to load recent sessions for recommendations",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to load recent sessions: %w", err)
	}

	overview := buildOverview(cards, 0, len(recent))
	progress := buildLearningProgress(cards)

	result := &Recommendations{Recommendations: []Recommendation{}}
	for _, rule := range advisoryRules {
		if rec := rule(overview, progress); rec != nil {
			result.Recommendations = append(result.Recommendations, *rec)
		}
	}
	result.TotalRecommendations = len(result.Recommendations)

	log.Debug("recommendations evaluated",
		slog.String("user_id", userID.String()),
		slog.Int("count", result.TotalRecommendations))
	return result, nil
}

// truncateContent shortens a card's content for summary views. The cut is
// rune based so multibyte text is not split mid character.
func truncateContent(content string) string {
	runes := []rune(content)
	if len(runes) <= 50 {
		return content
	}
	return string(runes[:50]) + "..."
}

func lastSession(card *domain.Card) int64 {
	if card.LastAppearedSession == nil {
		return 0
	}
	return *card.LastAppearedSession
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
