package services

import (
	"context"
	"time"

	"github.com/lingostudio/srs-service/internal/models"
)

// StudyCardRepository defines the card data access for study sessions and
// dashboards. Both methods are read-only.
type StudyCardRepository interface {
	// GetDue retrieves cards eligible for review at "now", ordered by the
	// earliest eligible due timestamp with card ID as a tiebreaker.
	//
	// "userID" and "deckID" scope the query to one user's deck.
	// "limit" caps the result size.
	// If no cards are due, an empty slice will be returned.
	GetDue(ctx context.Context, userID int, deckID int64, now time.Time, limit int) ([]models.Card, error)
	// GetDeckStats aggregates the dashboard counts for one deck.
	//
	// An empty deck returns all-zero counts, not an error.
	GetDeckStats(ctx context.Context, userID int, deckID int64, now time.Time) (*models.DeckStats, error)
}

// studyService serves due-card selection and deck statistics. It never
// mutates cards.
type studyService struct {
	cardRepo     StudyCardRepository
	limitDefault int
	limitMax     int
}

// NewStudyService creates a new study service
func NewStudyService(cardRepo StudyCardRepository, limitDefault, limitMax int) *studyService {
	return &studyService{
		cardRepo:     cardRepo,
		limitDefault: limitDefault,
		limitMax:     limitMax,
	}
}

// GetDueCards retrieves the cards due for review in one deck. A
// non-positive limit falls back to the configured default; a limit above the
// configured maximum is clamped to it.
func (s *studyService) GetDueCards(ctx context.Context, userID int, deckID int64, limit int) ([]models.Card, error) {
	if limit <= 0 {
		limit = s.limitDefault
	}
	if limit > s.limitMax {
		limit = s.limitMax
	}

	return s.cardRepo.GetDue(ctx, userID, deckID, time.Now(), limit)
}

// GetDeckStats retrieves the aggregate counts for one deck.
func (s *studyService) GetDeckStats(ctx context.Context, userID int, deckID int64) (*models.DeckStats, error) {
	return s.cardRepo.GetDeckStats(ctx, userID, deckID, time.Now())
}
