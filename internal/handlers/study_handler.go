package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/lingostudio/srs-service/internal/middleware"
	"github.com/lingostudio/srs-service/internal/models"
	"go.uber.org/zap"
)

// StudyService defines methods for study session business logic
type StudyService interface {
	// GetDueCards retrieves the cards due for review in one deck, ordered
	// earliest-due first.
	//
	// "limit" of zero falls back to the configured default page size.
	GetDueCards(ctx context.Context, userID int, deckID int64, limit int) ([]models.Card, error)
	// GetDeckStats retrieves the aggregate counts for one deck.
	GetDeckStats(ctx context.Context, userID int, deckID int64) (*models.DeckStats, error)
}

// StudyHandler serves study sessions and deck dashboards
type StudyHandler struct {
	BaseHandler
	service StudyService
}

// NewStudyHandler creates a new study handler
func NewStudyHandler(service StudyService, logger *zap.Logger) *StudyHandler {
	return &StudyHandler{
		BaseHandler: BaseHandler{Logger: logger},
		service:     service,
	}
}

// RegisterRoutes registers all study handler routes
func (h *StudyHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/decks/{deckID}", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/due", h.GetDueCards)
		r.Get("/stats", h.GetDeckStats)
	})
}

// GetDueCards handles GET /api/v1/decks/{deckID}/due
// @Summary Get due cards
// @Description Retrieve the cards currently due for review in a deck, earliest due first. Requires authentication.
// @Tags study
// @Produce json
// @Security ApiKeyAuth
// @Param deckID path int true "Deck ID"
// @Param limit query int false "Maximum number of cards to return"
// @Success 200 {array} models.Card
// @Failure 400 {object} map[string]string "Bad request - invalid deck ID or limit"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/v1/decks/{deckID}/due [get]
func (h *StudyHandler) GetDueCards(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "user ID not found in context")
		return
	}

	deckID, err := strconv.ParseInt(chi.URLParam(r, "deckID"), 10, 64)
	if err != nil || deckID <= 0 {
		h.RespondError(w, http.StatusBadRequest, "invalid deck ID")
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 1 {
			h.RespondError(w, http.StatusBadRequest, "invalid limit")
			return
		}
	}

	cards, err := h.service.GetDueCards(r.Context(), userID, deckID, limit)
	if err != nil {
		h.Logger.Error("failed to get due cards", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.RespondJSON(w, http.StatusOK, cards)
}

// GetDeckStats handles GET /api/v1/decks/{deckID}/stats
// @Summary Get deck statistics
// @Description Retrieve aggregate card counts for a deck dashboard. Requires authentication.
// @Tags study
// @Produce json
// @Security ApiKeyAuth
// @Param deckID path int true "Deck ID"
// @Success 200 {object} models.DeckStats
// @Failure 400 {object} map[string]string "Bad request - invalid deck ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/v1/decks/{deckID}/stats [get]
func (h *StudyHandler) GetDeckStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "user ID not found in context")
		return
	}

	deckID, err := strconv.ParseInt(chi.URLParam(r, "deckID"), 10, 64)
	if err != nil || deckID <= 0 {
		h.RespondError(w, http.StatusBadRequest, "invalid deck ID")
		return
	}

	stats, err := h.service.GetDeckStats(r.Context(), userID, deckID)
	if err != nil {
		h.Logger.Error("failed to get deck stats", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.RespondJSON(w, http.StatusOK, stats)
}
