package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/lingostudio/srs-service/internal/models"
	"go.uber.org/zap"
)

// CardIntakeService defines methods for card intake business logic
type CardIntakeService interface {
	// CreateCards stores the submitted items as new cards, immediately
	// eligible for review in their enabled modalities.
	CreateCards(ctx context.Context, inputs []models.NewCardInput) (int, error)
}

// IntakeHandler receives finished content from the generation pipeline
type IntakeHandler struct {
	BaseHandler
	service  CardIntakeService
	validate *validator.Validate
}

// NewIntakeHandler creates a new intake handler
func NewIntakeHandler(service CardIntakeService, logger *zap.Logger) *IntakeHandler {
	return &IntakeHandler{
		BaseHandler: BaseHandler{Logger: logger},
		service:     service,
		validate:    validator.New(),
	}
}

// IntakeRequest is a batch of cards from the content pipeline
type IntakeRequest struct {
	Cards []models.NewCardInput `json:"cards" validate:"required,min=1,dive"`
}

// RegisterRoutes registers all intake handler routes
func (h *IntakeHandler) RegisterRoutes(r chi.Router, apiKeyMiddleware func(http.Handler) http.Handler) {
	r.Group(func(r chi.Router) {
		r.Use(apiKeyMiddleware)
		r.Post("/internal/cards", h.CreateCards)
	})
}

// CreateCards handles POST /api/v1/internal/cards
// @Summary Create cards from generated content
// @Description Accept a batch of dialogue sentences or course vocabulary from the content pipeline and store them as new cards, immediately due in their enabled modalities. Requires an API key.
// @Tags intake
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param cards body IntakeRequest true "Cards to create"
// @Success 201 {object} map[string]int "Number of cards created"
// @Failure 400 {object} map[string]string "Bad request - invalid body or card fields"
// @Failure 401 {object} map[string]string "Unauthorized - invalid or missing API key"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/v1/internal/cards [post]
func (h *IntakeHandler) CreateCards(w http.ResponseWriter, r *http.Request) {
	var req IntakeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid cards: "+err.Error())
		return
	}

	created, err := h.service.CreateCards(r.Context(), req.Cards)
	if err != nil {
		h.Logger.Error("failed to create cards", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.RespondJSON(w, http.StatusCreated, map[string]int{"created": created})
}
