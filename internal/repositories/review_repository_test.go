package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lingostudio/srs-service/internal/fsrs"
	"github.com/lingostudio/srs-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupReviewTestRepository creates a review repository with a mock database
func setupReviewTestRepository(t *testing.T) (*reviewRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := NewReviewRepository(db)

	cleanup := func() {
		db.Close()
	}

	return repo, mock, cleanup
}

func TestReviewRepository_Create(t *testing.T) {
	durationMs := 3200
	createdAt := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		review        *models.Review
		setupMock     func(sqlmock.Sqlmock)
		expectedID    int64
		expectedError bool
	}{
		{
			name: "success with duration",
			review: &models.Review{
				CardID:      42,
				UserID:      7,
				CardType:    models.ModalityRecognition,
				Rating:      fsrs.Good,
				StateBefore: fsrs.StateLearning,
				StateAfter:  fsrs.StateReview,
				DurationMs:  &durationMs,
				CreatedAt:   createdAt,
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO reviews \(card_id, user_id, card_type, rating, state_before, state_after, duration_ms, created_at\)`).
					WithArgs(int64(42), 7, models.ModalityRecognition, fsrs.Good,
						fsrs.StateLearning, fsrs.StateReview, sqlmock.AnyArg(), createdAt).
					WillReturnResult(sqlmock.NewResult(101, 1))
			},
			expectedID: 101,
		},
		{
			name: "success without duration",
			review: &models.Review{
				CardID:      42,
				UserID:      7,
				CardType:    models.ModalityAudio,
				Rating:      fsrs.Again,
				StateBefore: fsrs.StateReview,
				StateAfter:  fsrs.StateRelearning,
				CreatedAt:   createdAt,
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO reviews`).
					WithArgs(int64(42), 7, models.ModalityAudio, fsrs.Again,
						fsrs.StateReview, fsrs.StateRelearning, sqlmock.AnyArg(), createdAt).
					WillReturnResult(sqlmock.NewResult(102, 1))
			},
			expectedID: 102,
		},
		{
			name: "database error",
			review: &models.Review{
				CardID:    42,
				UserID:    7,
				CardType:  models.ModalityRecognition,
				Rating:    fsrs.Good,
				CreatedAt: createdAt,
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO reviews`).
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupReviewTestRepository(t)
			defer cleanup()

			mock.ExpectBegin()
			tt.setupMock(mock)

			tx, err := repo.db.Begin()
			require.NoError(t, err)

			err = repo.Create(context.Background(), tx, tt.review)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedID, tt.review.ID)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
