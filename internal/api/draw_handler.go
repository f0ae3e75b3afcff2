package api

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/Icezero0/Oblivionis/internal/api/middleware"
	"github.com/Icezero0/Oblivionis/internal/service"
	"github.com/Icezero0/Oblivionis/internal/service/draw"
)

// DrawHandler handles draw execution and session history API requests.
type DrawHandler struct {
	drawService    draw.DrawService
	sessionService service.SessionService
	validator      *validator.Validate
}

// NewDrawHandler creates a new DrawHandler with the given dependencies.
func NewDrawHandler(drawService draw.DrawService, sessionService service.SessionService) *DrawHandler {
	return &DrawHandler{
		drawService:    drawService,
		sessionService: sessionService,
		validator:      validator.New(),
	}
}

// Draw handles POST /api/draw. An empty body is allowed; the draw then
// resolves its settings from the user's stored values or the defaults.
func (h *DrawHandler) Draw(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req DrawRequest
	if r.ContentLength != 0 {
		if err := DecodeJSON(r, &req); err != nil {
			RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
			return
		}
		if err := h.validator.Struct(req); err != nil {
			RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
			return
		}
	}

	result, err := h.drawService.Draw(r.Context(), userID, draw.DrawRequest{
		TypeCounts:    req.TypeCounts,
		IntervalCount: req.IntervalCount,
	})
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, DrawResponse{
		Session:      result.Session,
		CardsByType:  result.CardsByType,
		TotalCards:   result.TotalCards,
		SettingsUsed: result.SettingsUsed,
	})
}

// ListSessions handles GET /api/draw/sessions with skip/limit pagination,
// newest session first.
func (h *DrawHandler) ListSessions(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	skip, limit := parsePagination(r, 100)

	sessions, err := h.sessionService.ListSessions(r.Context(), userID, skip, limit)
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, sessions)
}

// GetSession handles GET /api/draw/sessions/{id}.
func (h *DrawHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	sessionID, err := pathID(r, "id")
	if err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid session ID")
		return
	}

	session, err := h.sessionService.GetSession(r.Context(), userID, sessionID)
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, session)
}

// DeleteSession handles DELETE /api/draw/sessions/{id}. Card statistics from
// the deleted session are kept and its number is never reused.
func (h *DrawHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	sessionID, err := pathID(r, "id")
	if err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid session ID")
		return
	}

	if err := h.sessionService.DeleteSession(r.Context(), userID, sessionID); err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusNoContent, nil)
}

// ExportSessions handles GET /api/draw/sessions/export, returning the user's
// full session history in a portable shape.
func (h *DrawHandler) ExportSessions(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	export, err := h.sessionService.ExportSessions(r.Context(), userID)
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, export)
}
