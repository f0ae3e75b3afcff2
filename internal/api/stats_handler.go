package api

import (
	"net/http"
	"strconv"

	"github.com/Icezero0/Oblivionis/internal/api/middleware"
	"github.com/Icezero0/Oblivionis/internal/service/analytics"
)

// StatsHandler handles the analytics API requests.
type StatsHandler struct {
	analyticsService analytics.Service
}

// NewStatsHandler creates a new StatsHandler with the given dependencies.
func NewStatsHandler(analyticsService analytics.Service) *StatsHandler {
	return &StatsHandler{
		analyticsService: analyticsService,
	}
}

// Overview handles GET /api/stats/overview.
func (h *StatsHandler) Overview(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	overview, err := h.analyticsService.Overview(r.Context(), userID)
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, overview)
}

// Cards handles GET /api/stats/cards with an optional card_type filter.
func (h *StatsHandler) Cards(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	stats, err := h.analyticsService.CardStatistics(r.Context(), userID, r.URL.Query().Get("card_type"))
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, stats)
}

// Sessions handles GET /api/stats/sessions. The days query parameter
// bounds the analysis window; invalid or missing values use the default.
func (h *StatsHandler) Sessions(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	days := analytics.DefaultWindowDays
	if v := r.URL.Query().Get("days"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			days = n
		}
	}

	stats, err := h.analyticsService.SessionAnalytics(r.Context(), userID, days)
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, stats)
}

// Progress handles GET /api/stats/progress.
func (h *StatsHandler) Progress(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	progress, err := h.analyticsService.LearningProgress(r.Context(), userID)
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, progress)
}

// Recommendations handles GET /api/stats/recommendations.
func (h *StatsHandler) Recommendations(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	recs, err := h.analyticsService.Recommendations(r.Context(), userID)
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, recs)
}
