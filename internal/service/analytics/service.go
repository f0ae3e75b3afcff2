package analytics

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/Icezero0/Oblivionis/internal/domain"
)

// DefaultWindowDays is the trailing window applied to session analytics
// when the caller does not specify one.
const DefaultWindowDays = 30

// Overview summarizes one user's whole collection and practice history.
type Overview struct {
	TotalCards       int            `json:"total_cards"`
	TotalSessions    int            `json:"total_sessions"`
	CardsByType      map[string]int `json:"cards_by_type"`
	DrawnCards       int            `json:"drawn_cards"`
	NeverDrawn       int            `json:"never_drawn"`
	RecentSessions7d int            `json:"recent_sessions_7d"`

	// DrawRate is drawn / total * 100 rounded to one decimal, and 0 when
	// the user has no cards.
	DrawRate float64 `json:"draw_rate"`
}

// DrawnCardSummary is the trimmed view of a frequently drawn card.
// Content longer than 50 characters is truncated with a trailing "...";
// the stored card is untouched.
type DrawnCardSummary struct {
	ID          uuid.UUID `json:"id"`
	Content     string    `json:"content"`
	AppearCount int       `json:"appear_count"`
	LastSession *int64    `json:"last_session"`
}

// NeverDrawnCardSummary is the trimmed view of a card that has not been
// drawn yet.
type NeverDrawnCardSummary struct {
	ID       uuid.UUID `json:"id"`
	Content  string    `json:"content"`
	CardType string    `json:"card_type"`
}

// CardStatistics describes the appear-count distribution of a user's
// cards, optionally restricted to one type.
type CardStatistics struct {
	TotalCards         int                     `json:"total_cards"`
	TotalAppears       int                     `json:"total_appears"`
	AvgAppears         float64                 `json:"avg_appears"`
	MaxAppears         int                     `json:"max_appears"`
	MinAppears         int                     `json:"min_appears"`
	AppearDistribution map[string]int          `json:"appear_distribution"`
	MostDrawnCards     []DrawnCardSummary      `json:"most_drawn_cards"`
	NeverDrawnCards    []NeverDrawnCardSummary `json:"never_drawn_cards"`
}

// TimelineEntry is one session in the recent-session timeline.
type TimelineEntry struct {
	SessionNumber int64               `json:"session_number"`
	Date          string              `json:"date"`
	Settings      domain.DrawSettings `json:"settings"`
}

// SessionAnalytics aggregates the user's sessions over a trailing window.
type SessionAnalytics struct {
	TotalSessions      int             `json:"total_sessions"`
	AvgCardsPerSession float64         `json:"avg_cards_per_session"`
	DailySessions      map[string]int  `json:"daily_sessions"`
	TypePreferences    map[string]int  `json:"type_preferences"`
	SessionTimeline    []TimelineEntry `json:"session_timeline"`
}

// TypeProgress is the per-type slice of LearningProgress.
type TypeProgress struct {
	Total        int     `json:"total"`
	Practiced    int     `json:"practiced"`
	ProgressRate float64 `json:"progress_rate"`
	AvgAppears   float64 `json:"avg_appears"`
}

// Proficiency bucket names. Every card lands in exactly one bucket based
// on its appear count: 0, 1-2, 3-5, above 5.
const (
	ProficiencyBeginner   = "beginner"
	ProficiencyPracticing = "practicing"
	ProficiencyFamiliar   = "familiar"
	ProficiencyMastered   = "mastered"
)

// LearningProgress reports practice coverage per type plus the
// proficiency bucket counts across the whole collection.
type LearningProgress struct {
	ProgressByType    map[string]TypeProgress `json:"progress_by_type"`
	ProficiencyLevels map[string]int          `json:"proficiency_levels"`
	TotalCards        int                     `json:"total_cards"`
}

// Recommendation is one advisory emitted by the rule engine.
type Recommendation struct {
	Type     string `json:"type"`
	Priority string `json:"priority"`
	Message  string `json:"message"`
}

// Recommendations is the ordered advisory list for one user.
type Recommendations struct {
	Recommendations      []Recommendation `json:"recommendations"`
	TotalRecommendations int              `json:"total_recommendations"`
}

// Service exposes the stateless analytics read operations. All of them
// tolerate empty history: zero-denominator rates are defined as 0 rather
// than errors.
type Service interface {
	// Overview returns collection-wide counts and the draw rate.
	Overview(ctx context.Context, userID uuid.UUID) (*Overview, error)

	// CardStatistics returns the appear-count distribution, the five most
	// drawn cards, and five never drawn cards. An empty cardType means no
	// type filter.
	CardStatistics(ctx context.Context, userID uuid.UUID, cardType string) (*CardStatistics, error)

	// SessionAnalytics aggregates sessions over the trailing window of
	// the given number of days. Values below 1 fall back to
	// DefaultWindowDays.
	SessionAnalytics(ctx context.Context, userID uuid.UUID, days int) (*SessionAnalytics, error)

	// LearningProgress returns per-type practice coverage and the
	// proficiency buckets.
	LearningProgress(ctx context.Context, userID uuid.UUID) (*LearningProgress, error)

	// Recommendations evaluates the advisory rules in fixed order and
	// returns every rule that fired.
	Recommendations(ctx context.Context, userID uuid.UUID) (*Recommendations, error)
}

// ErrInvalidUserID indicates an analytics read was requested without a user.
var ErrInvalidUserID = errors.New("invalid user id")
