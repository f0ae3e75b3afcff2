package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/Icezero0/Oblivionis/internal/api/middleware"
	"github.com/Icezero0/Oblivionis/internal/domain"
	"github.com/Icezero0/Oblivionis/internal/service"
)

// CardHandler handles card management API requests.
type CardHandler struct {
	cardService service.CardService
	validator   *validator.Validate
}

// NewCardHandler creates a new CardHandler with the given dependencies.
func NewCardHandler(cardService service.CardService) *CardHandler {
	return &CardHandler{
		cardService: cardService,
		validator:   validator.New(),
	}
}

// parsePagination reads skip/limit query parameters with defaults.
// Invalid values fall back to the defaults rather than erroring.
func parsePagination(r *http.Request, defaultLimit int) (skip, limit int) {
	skip = 0
	limit = defaultLimit

	if v := r.URL.Query().Get("skip"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			skip = n
		}
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	return skip, limit
}

// pathID parses the named URL parameter as a UUID.
func pathID(r *http.Request, name string) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, name))
}

// Create handles POST /api/cards.
func (h *CardHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req CreateCardRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	card, err := h.cardService.CreateCard(r.Context(), userID, req.CardType, req.Content, req.Notes)
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusCreated, card)
}

// BatchCreate handles POST /api/cards/batch. The batch is persisted
// atomically; a single invalid card rejects the whole request.
func (h *CardHandler) BatchCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req BatchCreateCardsRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	cards := make([]*domain.Card, 0, len(req.Cards))
	for _, c := range req.Cards {
		card, err := domain.NewCard(userID, c.CardType, c.Content, c.Notes)
		if err != nil {
			RespondWithError(w, r, http.StatusBadRequest, "Invalid card data: "+err.Error())
			return
		}
		cards = append(cards, card)
	}

	if err := h.cardService.CreateCards(r.Context(), userID, cards); err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusCreated, cards)
}

// List handles GET /api/cards with optional card_type, skip, and limit
// query parameters.
func (h *CardHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	cardType := r.URL.Query().Get("card_type")
	skip, limit := parsePagination(r, 100)

	cards, err := h.cardService.ListCards(r.Context(), userID, cardType, skip, limit)
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, cards)
}

// Get handles GET /api/cards/{id}.
func (h *CardHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	cardID, err := pathID(r, "id")
	if err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid card ID")
		return
	}

	card, err := h.cardService.GetCard(r.Context(), userID, cardID)
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, card)
}

// Update handles PUT /api/cards/{id} with a partial update payload.
func (h *CardHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	cardID, err := pathID(r, "id")
	if err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid card ID")
		return
	}

	var req UpdateCardRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	card, err := h.cardService.UpdateCard(r.Context(), userID, cardID, service.CardUpdate{
		CardType: req.CardType,
		Content:  req.Content,
		Notes:    req.Notes,
	})
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, card)
}

// Delete handles DELETE /api/cards/{id}.
func (h *CardHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	cardID, err := pathID(r, "id")
	if err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid card ID")
		return
	}

	if err := h.cardService.DeleteCard(r.Context(), userID, cardID); err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusNoContent, nil)
}
