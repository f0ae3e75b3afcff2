package api

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/Icezero0/Oblivionis/internal/api/middleware"
	"github.com/Icezero0/Oblivionis/internal/service"
)

// SettingsHandler handles draw settings API requests.
type SettingsHandler struct {
	settingsService service.SettingsService
	validator       *validator.Validate
}

// NewSettingsHandler creates a new SettingsHandler with the given dependencies.
func NewSettingsHandler(settingsService service.SettingsService) *SettingsHandler {
	return &SettingsHandler{
		settingsService: settingsService,
		validator:       validator.New(),
	}
}

// Get handles GET /api/settings. Returns 404 when the user has never
// saved settings; draws then use the engine defaults.
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	settings, err := h.settingsService.GetSettings(r.Context(), userID)
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, settings)
}

// Put handles PUT /api/settings, creating or partially updating the
// user's stored draw settings.
func (h *SettingsHandler) Put(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req SettingsRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	settings, err := h.settingsService.PutSettings(r.Context(), userID, service.SettingsUpdate{
		TypeCounts:    req.TypeCounts,
		IntervalCount: req.IntervalCount,
	})
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, settings)
}

// Delete handles DELETE /api/settings.
func (h *SettingsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	if err := h.settingsService.DeleteSettings(r.Context(), userID); err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusNoContent, nil)
}
