package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lingostudio/srs-service/internal/fsrs"
	"github.com/lingostudio/srs-service/internal/models"
	"github.com/lingostudio/srs-service/internal/repositories"
)

// ReviewCardRepository defines the card data access needed to process a review
type ReviewCardRepository interface {
	// Get retrieves a card by ID scoped to its owner, without locking.
	//
	// "ctx" is the context for the request.
	// "cardID" is the ID of the card.
	// "userID" is the ID of the owning user.
	//
	// Returns models.ErrCardNotFound when no card matches both.
	Get(ctx context.Context, cardID int64, userID int) (*models.Card, error)
	// GetForUpdate retrieves a card with a row-level lock inside the given
	// transaction, serializing concurrent reviews of the same card.
	//
	// Please reference Get for parameter and error semantics.
	GetForUpdate(ctx context.Context, tx *sql.Tx, cardID int64, userID int) (*models.Card, error)
	// UpdateModalityState writes one modality's scheduling columns inside
	// the given transaction, leaving the other modality untouched.
	UpdateModalityState(ctx context.Context, tx *sql.Tx, cardID int64, modality models.Modality, state models.ModalityState) error
}

// ReviewRepository defines methods for review audit record data access
type ReviewRepository interface {
	// Create inserts one review record on the caller's transaction.
	Create(ctx context.Context, tx *sql.Tx, review *models.Review) error
}

// reviewService processes review submissions: it loads the card, runs the
// memory model and persists the new modality state together with the review
// record in one transaction.
type reviewService struct {
	db            *sql.DB
	cardRepo      ReviewCardRepository
	reviewRepo    ReviewRepository
	params        *fsrs.Params
	retryAttempts int
}

// NewReviewService creates a new review service
func NewReviewService(db *sql.DB, cardRepo ReviewCardRepository, reviewRepo ReviewRepository, params *fsrs.Params, retryAttempts int) *reviewService {
	if retryAttempts < 0 {
		retryAttempts = 0
	}
	return &reviewService{
		db:            db,
		cardRepo:      cardRepo,
		reviewRepo:    reviewRepo,
		params:        params,
		retryAttempts: retryAttempts,
	}
}

// ReviewCard applies one review to one modality of one card.
//
// Validation happens before any storage access: an out-of-range rating or an
// unknown card type never reaches the database. A storage conflict is retried
// from scratch with backoff up to the configured number of attempts; every
// retry re-reads the card state, so the losing writer of a race recomputes on
// the winner's committed state.
func (s *reviewService) ReviewCard(ctx context.Context, input models.ReviewInput) (*models.ReviewResult, error) {
	if !input.Rating.Valid() {
		return nil, models.ErrInvalidRating
	}
	if !input.CardType.Valid() {
		return nil, models.ErrInvalidModality
	}

	for attempt := 0; ; attempt++ {
		result, err := s.reviewOnce(ctx, input)
		if err == nil || !errors.Is(err, models.ErrStorageConflict) || attempt >= s.retryAttempts {
			return result, err
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(time.Duration(attempt+1) * 50 * time.Millisecond):
		}
	}
}

// reviewOnce runs one transactional attempt of a review.
func (s *reviewService) reviewOnce(ctx context.Context, input models.ReviewInput) (*models.ReviewResult, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	card, err := s.cardRepo.GetForUpdate(ctx, tx, input.CardID, input.UserID)
	if err != nil {
		return nil, wrapConflict(err)
	}

	if !card.ModalityEnabled(input.CardType) {
		return nil, models.ErrInvalidModality
	}

	current := card.StateFor(input.CardType)
	stateBefore := current.State

	now := time.Now()
	next := s.params.Schedule(current.Memory(), input.Rating, now)
	current.ApplyMemory(next)

	if err := s.cardRepo.UpdateModalityState(ctx, tx, card.ID, input.CardType, *current); err != nil {
		return nil, wrapConflict(err)
	}

	review := &models.Review{
		CardID:      card.ID,
		UserID:      input.UserID,
		CardType:    input.CardType,
		Rating:      input.Rating,
		StateBefore: stateBefore,
		StateAfter:  next.State,
		DurationMs:  input.DurationMs,
		CreatedAt:   now,
	}
	if err := s.reviewRepo.Create(ctx, tx, review); err != nil {
		return nil, wrapConflict(err)
	}

	if err := tx.Commit(); err != nil {
		return nil, wrapConflict(fmt.Errorf("failed to commit review: %w", err))
	}

	return &models.ReviewResult{
		Card:    card,
		Review:  review,
		NextDue: next.Due,
	}, nil
}

// PreviewCard returns the hypothetical outcome of each rating on one
// modality of a card without persisting anything.
func (s *reviewService) PreviewCard(ctx context.Context, cardID int64, userID int, cardType models.Modality) ([]models.RatingPreview, error) {
	if !cardType.Valid() {
		return nil, models.ErrInvalidModality
	}

	card, err := s.cardRepo.Get(ctx, cardID, userID)
	if err != nil {
		return nil, err
	}

	if !card.ModalityEnabled(cardType) {
		return nil, models.ErrInvalidModality
	}

	current := card.StateFor(cardType).Memory()
	now := time.Now()

	previews := make([]models.RatingPreview, 0, 4)
	for _, rating := range []fsrs.Rating{fsrs.Again, fsrs.Hard, fsrs.Good, fsrs.Easy} {
		next := s.params.Schedule(current, rating, now)
		previews = append(previews, models.RatingPreview{
			Rating:       rating,
			State:        next.State,
			Due:          next.Due,
			IntervalDays: s.params.Interval(next.Stability),
		})
	}

	return previews, nil
}

// wrapConflict translates MySQL lock errors into the retryable
// ErrStorageConflict; every other error passes through untouched.
func wrapConflict(err error) error {
	if repositories.IsLockConflict(err) {
		return fmt.Errorf("%w: %v", models.ErrStorageConflict, err)
	}
	return err
}
