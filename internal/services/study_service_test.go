package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lingostudio/srs-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockStudyCardRepo mocks StudyCardRepository
type mockStudyCardRepo struct {
	getDueFunc       func(ctx context.Context, userID int, deckID int64, now time.Time, limit int) ([]models.Card, error)
	getDeckStatsFunc func(ctx context.Context, userID int, deckID int64, now time.Time) (*models.DeckStats, error)
}

func (m *mockStudyCardRepo) GetDue(ctx context.Context, userID int, deckID int64, now time.Time, limit int) ([]models.Card, error) {
	return m.getDueFunc(ctx, userID, deckID, now, limit)
}

func (m *mockStudyCardRepo) GetDeckStats(ctx context.Context, userID int, deckID int64, now time.Time) (*models.DeckStats, error) {
	return m.getDeckStatsFunc(ctx, userID, deckID, now)
}

func TestStudyService_GetDueCards(t *testing.T) {
	tests := []struct {
		name          string
		limit         int
		expectedLimit int
	}{
		{name: "zero limit falls back to default", limit: 0, expectedLimit: 20},
		{name: "negative limit falls back to default", limit: -5, expectedLimit: 20},
		{name: "limit within bounds passes through", limit: 50, expectedLimit: 50},
		{name: "limit above maximum is clamped", limit: 500, expectedLimit: 100},
		{name: "limit at maximum passes through", limit: 100, expectedLimit: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotLimit int
			var gotNow time.Time
			repo := &mockStudyCardRepo{
				getDueFunc: func(ctx context.Context, userID int, deckID int64, now time.Time, limit int) ([]models.Card, error) {
					assert.Equal(t, 7, userID)
					assert.Equal(t, int64(1), deckID)
					gotLimit = limit
					gotNow = now
					return []models.Card{{ID: 3}, {ID: 9}}, nil
				},
			}
			svc := NewStudyService(repo, 20, 100)

			cards, err := svc.GetDueCards(context.Background(), 7, 1, tt.limit)

			require.NoError(t, err)
			assert.Len(t, cards, 2)
			assert.Equal(t, tt.expectedLimit, gotLimit)
			assert.WithinDuration(t, time.Now(), gotNow, time.Second)
		})
	}
}

func TestStudyService_GetDueCards_Error(t *testing.T) {
	repo := &mockStudyCardRepo{
		getDueFunc: func(ctx context.Context, userID int, deckID int64, now time.Time, limit int) ([]models.Card, error) {
			return nil, errors.New("database error")
		},
	}
	svc := NewStudyService(repo, 20, 100)

	cards, err := svc.GetDueCards(context.Background(), 7, 1, 10)

	assert.Error(t, err)
	assert.Nil(t, cards)
}

func TestStudyService_GetDueCards_Empty(t *testing.T) {
	repo := &mockStudyCardRepo{
		getDueFunc: func(ctx context.Context, userID int, deckID int64, now time.Time, limit int) ([]models.Card, error) {
			return []models.Card{}, nil
		},
	}
	svc := NewStudyService(repo, 20, 100)

	cards, err := svc.GetDueCards(context.Background(), 7, 1, 10)

	require.NoError(t, err)
	assert.Empty(t, cards)
	assert.NotNil(t, cards)
}

func TestStudyService_GetDeckStats(t *testing.T) {
	expected := &models.DeckStats{
		TotalCards:     10,
		DueRecognition: 4,
		DueAudio:       3,
		DueTotal:       7,
		NewCards:       2,
		LearningCards:  3,
		ReviewCards:    5,
	}
	repo := &mockStudyCardRepo{
		getDeckStatsFunc: func(ctx context.Context, userID int, deckID int64, now time.Time) (*models.DeckStats, error) {
			assert.Equal(t, 7, userID)
			assert.Equal(t, int64(1), deckID)
			assert.WithinDuration(t, time.Now(), now, time.Second)
			return expected, nil
		},
	}
	svc := NewStudyService(repo, 20, 100)

	stats, err := svc.GetDeckStats(context.Background(), 7, 1)

	require.NoError(t, err)
	assert.Equal(t, expected, stats)
}

func TestStudyService_GetDeckStats_Error(t *testing.T) {
	repo := &mockStudyCardRepo{
		getDeckStatsFunc: func(ctx context.Context, userID int, deckID int64, now time.Time) (*models.DeckStats, error) {
			return nil, errors.New("database error")
		},
	}
	svc := NewStudyService(repo, 20, 100)

	stats, err := svc.GetDeckStats(context.Background(), 7, 1)

	assert.Error(t, err)
	assert.Nil(t, stats)
}
