package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/lingostudio/srs-service/internal/middleware"
	"github.com/lingostudio/srs-service/internal/models"
	"go.uber.org/zap"
)

// ReviewService defines methods for review business logic
type ReviewService interface {
	// ReviewCard applies one review to one modality of one card, persisting
	// the new scheduling state and the review record atomically.
	//
	// "input" carries the card ID, owner, modality, rating and optional
	// answer duration.
	// Returns the updated card, the created review and the next due time,
	// or one of the models sentinel errors.
	ReviewCard(ctx context.Context, input models.ReviewInput) (*models.ReviewResult, error)
	// PreviewCard returns the hypothetical outcome of each rating on one
	// modality of a card without persisting anything.
	PreviewCard(ctx context.Context, cardID int64, userID int, cardType models.Modality) ([]models.RatingPreview, error)
}

// ReviewHandler handles review submission and preview
type ReviewHandler struct {
	BaseHandler
	service  ReviewService
	validate *validator.Validate
}

// NewReviewHandler creates a new review handler
func NewReviewHandler(service ReviewService, logger *zap.Logger) *ReviewHandler {
	return &ReviewHandler{
		BaseHandler: BaseHandler{Logger: logger},
		service:     service,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers all review handler routes
func (h *ReviewHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Post("/reviews", h.SubmitReview)
		r.Get("/cards/{cardID}/preview", h.PreviewCard)
	})
}

// SubmitReview handles POST /api/v1/reviews
// @Summary Submit a card review
// @Description Apply one review rating to one modality of a card. Updates the card's scheduling state and records the review atomically. Requires authentication.
// @Tags reviews
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param review body models.ReviewInput true "Review submission"
// @Success 200 {object} models.ReviewResult "Updated card, created review and next due time"
// @Failure 400 {object} map[string]string "Bad request - invalid body, rating out of range, or unknown/disabled card type"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Card not found"
// @Failure 409 {object} map[string]string "Storage conflict - safe to retry"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/v1/reviews [post]
func (h *ReviewHandler) SubmitReview(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "user ID not found in context")
		return
	}

	var input models.ReviewInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	input.UserID = userID

	if err := h.validate.Struct(input); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid review submission: "+err.Error())
		return
	}

	result, err := h.service.ReviewCard(r.Context(), input)
	if err != nil {
		h.respondReviewError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, result)
}

// PreviewCard handles GET /api/v1/cards/{cardID}/preview
// @Summary Preview rating outcomes
// @Description Return the scheduling outcome of each possible rating for one modality of a card, without persisting anything. Requires authentication.
// @Tags reviews
// @Produce json
// @Security ApiKeyAuth
// @Param cardID path int true "Card ID"
// @Param cardType query string true "Modality: recognition or audio"
// @Success 200 {array} models.RatingPreview
// @Failure 400 {object} map[string]string "Bad request - invalid card ID or unknown/disabled card type"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Card not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/v1/cards/{cardID}/preview [get]
func (h *ReviewHandler) PreviewCard(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "user ID not found in context")
		return
	}

	cardID, err := strconv.ParseInt(chi.URLParam(r, "cardID"), 10, 64)
	if err != nil || cardID <= 0 {
		h.RespondError(w, http.StatusBadRequest, "invalid card ID")
		return
	}

	cardType := models.Modality(r.URL.Query().Get("cardType"))

	previews, err := h.service.PreviewCard(r.Context(), cardID, userID, cardType)
	if err != nil {
		h.respondReviewError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, previews)
}

// respondReviewError maps the scheduling error taxonomy to HTTP statuses
func (h *ReviewHandler) respondReviewError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrCardNotFound):
		h.RespondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, models.ErrInvalidRating), errors.Is(err, models.ErrInvalidModality):
		h.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, models.ErrStorageConflict):
		h.RespondError(w, http.StatusConflict, err.Error())
	default:
		h.Logger.Error("failed to process review", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "internal server error")
	}
}
