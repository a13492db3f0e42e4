package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lingostudio/srs-service/internal/models"
)

// reviewRepository implements ReviewRepository
type reviewRepository struct {
	db *sql.DB
}

// NewReviewRepository creates a new review repository
func NewReviewRepository(db *sql.DB) *reviewRepository {
	return &reviewRepository{
		db: db,
	}
}

// Create inserts one review audit record. It runs on the caller's
// transaction so the card update and the review commit together.
func (r *reviewRepository) Create(ctx context.Context, tx *sql.Tx, review *models.Review) error {
	query := `
		INSERT INTO reviews (card_id, user_id, card_type, rating, state_before, state_after, duration_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	var durationMs sql.NullInt64
	if review.DurationMs != nil {
		durationMs = sql.NullInt64{Int64: int64(*review.DurationMs), Valid: true}
	}

	result, err := tx.ExecContext(ctx, query,
		review.CardID,
		review.UserID,
		review.CardType,
		review.Rating,
		review.StateBefore,
		review.StateAfter,
		durationMs,
		review.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	review.ID = id
	return nil
}
