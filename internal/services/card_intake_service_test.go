package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lingostudio/srs-service/internal/fsrs"
	"github.com/lingostudio/srs-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockIntakeCardRepo mocks IntakeCardRepository
type mockIntakeCardRepo struct {
	createBatchFunc func(ctx context.Context, cards []models.Card) error
}

func (m *mockIntakeCardRepo) CreateBatch(ctx context.Context, cards []models.Card) error {
	return m.createBatchFunc(ctx, cards)
}

func TestCardIntakeService_CreateCards(t *testing.T) {
	inputs := []models.NewCardInput{
		{
			DeckID:            1,
			UserID:            7,
			TextL2:            "犬が好きです",
			ReadingL2:         "いぬがすきです",
			TranslationL1:     "I like dogs",
			EnableRecognition: true,
			EnableAudio:       true,
		},
		{
			DeckID:            1,
			UserID:            7,
			TextL2:            "水",
			TranslationL1:     "water",
			EnableRecognition: true,
		},
	}

	var created []models.Card
	repo := &mockIntakeCardRepo{
		createBatchFunc: func(ctx context.Context, cards []models.Card) error {
			created = cards
			return nil
		},
	}
	svc := NewCardIntakeService(repo)

	count, err := svc.CreateCards(context.Background(), inputs)

	require.NoError(t, err)
	assert.Equal(t, 2, count)
	require.Len(t, created, 2)

	first := created[0]
	assert.Equal(t, int64(1), first.DeckID)
	assert.Equal(t, 7, first.UserID)
	assert.Equal(t, "犬が好きです", first.TextL2)
	assert.Equal(t, "いぬがすきです", first.ReadingL2)
	assert.True(t, first.EnableAudio)
	assert.False(t, created[1].EnableAudio)

	// every new card starts immediately due in the new state
	for _, card := range created {
		for _, state := range []models.ModalityState{card.Recognition, card.Audio} {
			assert.Equal(t, fsrs.StateNew, state.State)
			assert.Equal(t, 0.0, state.Stability)
			assert.Equal(t, 5.0, state.Difficulty)
			assert.Equal(t, 0, state.Reps)
			assert.Equal(t, 0, state.Lapses)
			assert.Nil(t, state.LastReview)
			assert.WithinDuration(t, time.Now(), state.Due, time.Second)
		}
		assert.WithinDuration(t, time.Now(), card.CreatedAt, time.Second)
	}
}

func TestCardIntakeService_CreateCards_Empty(t *testing.T) {
	called := false
	repo := &mockIntakeCardRepo{
		createBatchFunc: func(ctx context.Context, cards []models.Card) error {
			called = true
			return nil
		},
	}
	svc := NewCardIntakeService(repo)

	count, err := svc.CreateCards(context.Background(), nil)

	assert.Error(t, err)
	assert.Zero(t, count)
	assert.False(t, called)
}

func TestCardIntakeService_CreateCards_RepositoryError(t *testing.T) {
	repo := &mockIntakeCardRepo{
		createBatchFunc: func(ctx context.Context, cards []models.Card) error {
			return errors.New("database error")
		},
	}
	svc := NewCardIntakeService(repo)

	count, err := svc.CreateCards(context.Background(), []models.NewCardInput{
		{DeckID: 1, UserID: 7, TextL2: "水", TranslationL1: "water", EnableRecognition: true},
	})

	assert.Error(t, err)
	assert.Zero(t, count)
}
