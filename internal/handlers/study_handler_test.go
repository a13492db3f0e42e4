package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/lingostudio/srs-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// mockStudyService mocks StudyService
type mockStudyService struct {
	getDueCardsFunc  func(ctx context.Context, userID int, deckID int64, limit int) ([]models.Card, error)
	getDeckStatsFunc func(ctx context.Context, userID int, deckID int64) (*models.DeckStats, error)
}

func (m *mockStudyService) GetDueCards(ctx context.Context, userID int, deckID int64, limit int) ([]models.Card, error) {
	return m.getDueCardsFunc(ctx, userID, deckID, limit)
}

func (m *mockStudyService) GetDeckStats(ctx context.Context, userID int, deckID int64) (*models.DeckStats, error) {
	return m.getDeckStatsFunc(ctx, userID, deckID)
}

func setupStudyTestRouter(service StudyService, userID int) chi.Router {
	handler := NewStudyHandler(service, zap.NewNop())
	r := chi.NewRouter()
	handler.RegisterRoutes(r, testAuthMiddleware(userID))
	return r
}

func TestStudyHandler_GetDueCards(t *testing.T) {
	tests := []struct {
		name           string
		url            string
		expectedLimit  int
		serviceError   error
		expectedStatus int
	}{
		{
			name:           "success without limit",
			url:            "/decks/1/due",
			expectedLimit:  0,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "success with limit",
			url:            "/decks/1/due?limit=10",
			expectedLimit:  10,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "invalid deck ID",
			url:            "/decks/abc/due",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "zero deck ID",
			url:            "/decks/0/due",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "non-numeric limit",
			url:            "/decks/1/due?limit=abc",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "zero limit rejected",
			url:            "/decks/1/due?limit=0",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "service error",
			url:            "/decks/1/due",
			serviceError:   assert.AnError,
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := &mockStudyService{
				getDueCardsFunc: func(ctx context.Context, userID int, deckID int64, limit int) ([]models.Card, error) {
					assert.Equal(t, 7, userID)
					assert.Equal(t, int64(1), deckID)
					assert.Equal(t, tt.expectedLimit, limit)
					if tt.serviceError != nil {
						return nil, tt.serviceError
					}
					return []models.Card{{ID: 3}, {ID: 9}}, nil
				},
			}
			router := setupStudyTestRouter(service, 7)

			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)

			if tt.expectedStatus == http.StatusOK {
				var cards []models.Card
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&cards))
				assert.Len(t, cards, 2)
			}
		})
	}
}

func TestStudyHandler_GetDeckStats(t *testing.T) {
	tests := []struct {
		name           string
		url            string
		serviceError   error
		expectedStatus int
	}{
		{
			name:           "success",
			url:            "/decks/1/stats",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "invalid deck ID",
			url:            "/decks/abc/stats",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "service error",
			url:            "/decks/1/stats",
			serviceError:   assert.AnError,
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := &mockStudyService{
				getDeckStatsFunc: func(ctx context.Context, userID int, deckID int64) (*models.DeckStats, error) {
					assert.Equal(t, 7, userID)
					if tt.serviceError != nil {
						return nil, tt.serviceError
					}
					return &models.DeckStats{TotalCards: 10, DueRecognition: 4, DueAudio: 3, DueTotal: 7}, nil
				},
			}
			router := setupStudyTestRouter(service, 7)

			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)

			if tt.expectedStatus == http.StatusOK {
				var stats models.DeckStats
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&stats))
				assert.Equal(t, 10, stats.TotalCards)
				assert.Equal(t, 7, stats.DueTotal)
			}
		})
	}
}
