package services

import (
	"context"
	"fmt"
	"time"

	"github.com/lingostudio/srs-service/internal/fsrs"
	"github.com/lingostudio/srs-service/internal/models"
)

// defaultDifficulty seeds new cards; the first review replaces it with the
// rating-specific initial difficulty.
const defaultDifficulty = 5.0

// IntakeCardRepository defines the card data access for card intake
type IntakeCardRepository interface {
	// CreateBatch inserts a batch of cards in one statement.
	CreateBatch(ctx context.Context, cards []models.Card) error
}

// cardIntakeService converts finished content-pipeline output (dialogue
// sentences, course vocabulary) into studyable cards.
type cardIntakeService struct {
	cardRepo IntakeCardRepository
}

// NewCardIntakeService creates a new card intake service
func NewCardIntakeService(cardRepo IntakeCardRepository) *cardIntakeService {
	return &cardIntakeService{
		cardRepo: cardRepo,
	}
}

// CreateCards stores the submitted items as new cards, immediately eligible
// for review in their enabled modalities. Returns the number of cards
// created.
func (s *cardIntakeService) CreateCards(ctx context.Context, inputs []models.NewCardInput) (int, error) {
	if len(inputs) == 0 {
		return 0, fmt.Errorf("cards list cannot be empty")
	}

	now := time.Now()
	initial := models.ModalityState{
		State:      fsrs.StateNew,
		Due:        now,
		Stability:  0,
		Difficulty: defaultDifficulty,
	}

	cards := make([]models.Card, 0, len(inputs))
	for _, in := range inputs {
		cards = append(cards, models.Card{
			DeckID:            in.DeckID,
			UserID:            in.UserID,
			TextL2:            in.TextL2,
			ReadingL2:         in.ReadingL2,
			TranslationL1:     in.TranslationL1,
			EnableRecognition: in.EnableRecognition,
			EnableAudio:       in.EnableAudio,
			Recognition:       initial,
			Audio:             initial,
			CreatedAt:         now,
		})
	}

	if err := s.cardRepo.CreateBatch(ctx, cards); err != nil {
		return 0, err
	}

	return len(cards), nil
}
