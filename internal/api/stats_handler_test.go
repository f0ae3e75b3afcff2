package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Icezero0/Oblivionis/internal/api"
	"github.com/Icezero0/Oblivionis/internal/service/analytics"
)

// stubAnalyticsService implements analytics.Service with function fields.
type stubAnalyticsService struct {
	OverviewFn         func(ctx context.Context, userID uuid.UUID) (*analytics.Overview, error)
	CardStatisticsFn   func(ctx context.Context, userID uuid.UUID, cardType string) (*analytics.CardStatistics, error)
	SessionAnalyticsFn func(ctx context.Context, userID uuid.UUID, days int) (*analytics.SessionAnalytics, error)
	LearningProgressFn func(ctx context.Context, userID uuid.UUID) (*analytics.LearningProgress, error)
	RecommendationsFn  func(ctx context.Context, userID uuid.UUID) (*analytics.Recommendations, error)
}

func (s *stubAnalyticsService) Overview(
	ctx context.Context,
	userID uuid.UUID,
) (*analytics.Overview, error) {
	return s.OverviewFn(ctx, userID)
}

func (s *stubAnalyticsService) CardStatistics(
	ctx context.Context,
	userID uuid.UUID,
	cardType string,
) (*analytics.CardStatistics, error) {
	return s.CardStatisticsFn(ctx, userID, cardType)
}

func (s *stubAnalyticsService) SessionAnalytics(
	ctx context.Context,
	userID uuid.UUID,
	days int,
) (*analytics.SessionAnalytics, error) {
	return s.SessionAnalyticsFn(ctx, userID, days)
}

func (s *stubAnalyticsService) LearningProgress(
	ctx context.Context,
	userID uuid.UUID,
) (*analytics.LearningProgress, error) {
	return s.LearningProgressFn(ctx, userID)
}

func (s *stubAnalyticsService) Recommendations(
	ctx context.Context,
	userID uuid.UUID,
) (*analytics.Recommendations, error) {
	return s.RecommendationsFn(ctx, userID)
}

var _ analytics.Service = (*stubAnalyticsService)(nil)

func newStatsRouter(h *api.StatsHandler) chi.Router {
	router := chi.NewRouter()
	router.Get("/api/stats/overview", h.Overview)
	router.Get("/api/stats/cards", h.Cards)
	router.Get("/api/stats/sessions", h.Sessions)
	router.Get("/api/stats/progress", h.Progress)
	router.Get("/api/stats/recommendations", h.Recommendations)
	return router
}

func TestStatsOverview(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	svc := &stubAnalyticsService{
		OverviewFn: func(ctx context.Context, gotUser uuid.UUID) (*analytics.Overview, error) {
			assert.Equal(t, userID, gotUser)
			return &analytics.Overview{
				TotalCards:    10,
				TotalSessions: 4,
				CardsByType:   map[string]int{"M": 6, "N": 4},
				DrawnCards:    7,
				NeverDrawn:    3,
				DrawRate:      70.0,
			}, nil
		},
	}
	handler := api.NewStatsHandler(svc)

	r := authedRequest(http.MethodGet, "/api/stats/overview", userID, nil)
	w := httptest.NewRecorder()
	newStatsRouter(handler).ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body, "total_cards")
	assert.Contains(t, body, "cards_by_type")
	assert.Contains(t, body, "draw_rate")
	assert.Contains(t, body, "recent_sessions_7d")
}

func TestStatsCardsFiltersByType(t *testing.T) {
	t.Parallel()

	svc := &stubAnalyticsService{
		CardStatisticsFn: func(ctx context.Context, userID uuid.UUID, cardType string) (*analytics.CardStatistics, error) {
			assert.Equal(t, "M", cardType)
			return &analytics.CardStatistics{
				TotalCards:         3,
				AppearDistribution: map[string]int{"0": 1, "2": 2},
			}, nil
		},
	}
	handler := api.NewStatsHandler(svc)

	r := authedRequest(http.MethodGet, "/api/stats/cards?card_type=M", uuid.New(), nil)
	w := httptest.NewRecorder()
	newStatsRouter(handler).ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestStatsSessionsDaysParam(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		query    string
		wantDays int
	}{
		{"explicit days", "?days=7", 7},
		{"missing days", "", analytics.DefaultWindowDays},
		{"invalid days", "?days=bogus", analytics.DefaultWindowDays},
		{"non-positive days", "?days=0", analytics.DefaultWindowDays},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			svc := &stubAnalyticsService{
				SessionAnalyticsFn: func(ctx context.Context, userID uuid.UUID, days int) (*analytics.SessionAnalytics, error) {
					assert.Equal(t, tc.wantDays, days)
					return &analytics.SessionAnalytics{}, nil
				},
			}
			handler := api.NewStatsHandler(svc)

			r := authedRequest(http.MethodGet, "/api/stats/sessions"+tc.query, uuid.New(), nil)
			w := httptest.NewRecorder()
			newStatsRouter(handler).ServeHTTP(w, r)

			assert.Equal(t, http.StatusOK, w.Code)
		})
	}
}

func TestStatsProgress(t *testing.T) {
	t.Parallel()

	svc := &stubAnalyticsService{
		LearningProgressFn: func(ctx context.Context, userID uuid.UUID) (*analytics.LearningProgress, error) {
			return &analytics.LearningProgress{
				ProgressByType: map[string]analytics.TypeProgress{
					"M": {Total: 4, Practiced: 2, ProgressRate: 50.0},
				},
				ProficiencyLevels: map[string]int{"beginner": 2, "practicing": 2},
			}, nil
		},
	}
	handler := api.NewStatsHandler(svc)

	r := authedRequest(http.MethodGet, "/api/stats/progress", uuid.New(), nil)
	w := httptest.NewRecorder()
	newStatsRouter(handler).ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "progress_by_type")
	assert.Contains(t, w.Body.String(), "proficiency_levels")
}

func TestStatsRecommendations(t *testing.T) {
	t.Parallel()

	svc := &stubAnalyticsService{
		RecommendationsFn: func(ctx context.Context, userID uuid.UUID) (*analytics.Recommendations, error) {
			return &analytics.Recommendations{
				Recommendations: []analytics.Recommendation{
					{Type: analytics.RulePracticeNew, Priority: analytics.PriorityHigh, Message: "You have new cards to practice"},
				},
			}, nil
		},
	}
	handler := api.NewStatsHandler(svc)

	r := authedRequest(http.MethodGet, "/api/stats/recommendations", uuid.New(), nil)
	w := httptest.NewRecorder()
	newStatsRouter(handler).ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "practice_new")
}

func TestStatsRequireAuthentication(t *testing.T) {
	t.Parallel()

	handler := api.NewStatsHandler(&stubAnalyticsService{})
	router := newStatsRouter(handler)

	for _, path := range []string{
		"/api/stats/overview",
		"/api/stats/cards",
		"/api/stats/sessions",
		"/api/stats/progress",
		"/api/stats/recommendations",
	} {
		r := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, r)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}
