package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/lingostudio/srs-service/internal/models"
)

// farFuture pushes ineligible modalities past every real due date when
// ordering due cards.
const farFuture = "9999-12-31 23:59:59"

// cardColumns is the column list shared by every card SELECT; keep in sync
// with scanCard.
const cardColumns = `id, deck_id, user_id, text_l2, reading_l2, translation_l1,
       enable_recognition, enable_audio,
       recognition_state, recognition_due, recognition_stability, recognition_difficulty,
       recognition_reps, recognition_lapses, recognition_last_review,
       audio_state, audio_due, audio_stability, audio_difficulty,
       audio_reps, audio_lapses, audio_last_review,
       created_at, updated_at`

// cardRepository implements CardRepository
type cardRepository struct {
	db *sql.DB
}

// NewCardRepository creates a new card repository
func NewCardRepository(db *sql.DB) *cardRepository {
	return &cardRepository{
		db: db,
	}
}

// rowScanner covers *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

// scanCard reads one card row in cardColumns order
func scanCard(row rowScanner) (*models.Card, error) {
	card := &models.Card{}
	var readingL2 sql.NullString
	var recognitionLast, audioLast sql.NullTime

	err := row.Scan(
		&card.ID,
		&card.DeckID,
		&card.UserID,
		&card.TextL2,
		&readingL2,
		&card.TranslationL1,
		&card.EnableRecognition,
		&card.EnableAudio,
		&card.Recognition.State,
		&card.Recognition.Due,
		&card.Recognition.Stability,
		&card.Recognition.Difficulty,
		&card.Recognition.Reps,
		&card.Recognition.Lapses,
		&recognitionLast,
		&card.Audio.State,
		&card.Audio.Due,
		&card.Audio.Stability,
		&card.Audio.Difficulty,
		&card.Audio.Reps,
		&card.Audio.Lapses,
		&audioLast,
		&card.CreatedAt,
		&card.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if readingL2.Valid {
		card.ReadingL2 = readingL2.String
	}
	if recognitionLast.Valid {
		t := recognitionLast.Time
		card.Recognition.LastReview = &t
	}
	if audioLast.Valid {
		t := audioLast.Time
		card.Audio.LastReview = &t
	}

	return card, nil
}

// Get retrieves a card by ID scoped to its owner. A card owned by another
// user is indistinguishable from a missing one.
func (r *cardRepository) Get(ctx context.Context, cardID int64, userID int) (*models.Card, error) {
	query := fmt.Sprintf(`SELECT %s FROM cards WHERE id = ? AND user_id = ? LIMIT 1`, cardColumns)

	card, err := scanCard(r.db.QueryRowContext(ctx, query, cardID, userID))
	if err == sql.ErrNoRows {
		return nil, models.ErrCardNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get card: %w", err)
	}

	return card, nil
}

// GetForUpdate retrieves a card with a row-level lock. Must run inside a
// transaction; concurrent reviews of the same card serialize on this lock.
func (r *cardRepository) GetForUpdate(ctx context.Context, tx *sql.Tx, cardID int64, userID int) (*models.Card, error) {
	query := fmt.Sprintf(`SELECT %s FROM cards WHERE id = ? AND user_id = ? LIMIT 1 FOR UPDATE`, cardColumns)

	card, err := scanCard(tx.QueryRowContext(ctx, query, cardID, userID))
	if err == sql.ErrNoRows {
		return nil, models.ErrCardNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get card for update: %w", err)
	}

	return card, nil
}

// UpdateModalityState writes one modality's scheduling columns. The other
// modality's columns are never touched.
func (r *cardRepository) UpdateModalityState(ctx context.Context, tx *sql.Tx, cardID int64, modality models.Modality, state models.ModalityState) error {
	prefix := string(modality)

	query := fmt.Sprintf(`
		UPDATE cards
		SET %s_state = ?, %s_due = ?, %s_stability = ?, %s_difficulty = ?,
		    %s_reps = ?, %s_lapses = ?, %s_last_review = ?, updated_at = ?
		WHERE id = ?
	`, prefix, prefix, prefix, prefix, prefix, prefix, prefix)

	var lastReview sql.NullTime
	if state.LastReview != nil {
		lastReview = sql.NullTime{Time: *state.LastReview, Valid: true}
	}

	result, err := tx.ExecContext(ctx, query,
		state.State,
		state.Due,
		state.Stability,
		state.Difficulty,
		state.Reps,
		state.Lapses,
		lastReview,
		time.Now(),
		cardID,
	)
	if err != nil {
		return fmt.Errorf("failed to update card state: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return models.ErrCardNotFound
	}

	return nil
}

// GetDue retrieves cards eligible for review right now, ordered by earliest
// eligible due timestamp with card ID as the tiebreaker.
func (r *cardRepository) GetDue(ctx context.Context, userID int, deckID int64, now time.Time, limit int) ([]models.Card, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM cards
		WHERE user_id = ? AND deck_id = ?
		  AND ((enable_recognition AND recognition_due <= ?) OR (enable_audio AND audio_due <= ?))
		ORDER BY LEAST(
			CASE WHEN enable_recognition AND recognition_due <= ? THEN recognition_due ELSE ? END,
			CASE WHEN enable_audio AND audio_due <= ? THEN audio_due ELSE ? END
		), id
		LIMIT ?
	`, cardColumns)

	rows, err := r.db.QueryContext(ctx, query,
		userID, deckID, now, now, now, farFuture, now, farFuture, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query due cards: %w", err)
	}
	defer rows.Close()

	cards := []models.Card{}
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan card: %w", err)
		}
		cards = append(cards, *card)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return cards, nil
}

// GetDeckStats aggregates the dashboard counts for one deck in a single
// query. An empty deck yields all zeros.
func (r *cardRepository) GetDeckStats(ctx context.Context, userID int, deckID int64, now time.Time) (*models.DeckStats, error) {
	query := `
		SELECT COUNT(*),
		       COALESCE(SUM(enable_recognition AND recognition_due <= ?), 0),
		       COALESCE(SUM(enable_audio AND audio_due <= ?), 0),
		       COALESCE(SUM((CASE WHEN enable_recognition THEN recognition_state ELSE audio_state END) = 'new'), 0),
		       COALESCE(SUM((CASE WHEN enable_recognition THEN recognition_state ELSE audio_state END) = 'learning'), 0),
		       COALESCE(SUM((CASE WHEN enable_recognition THEN recognition_state ELSE audio_state END) = 'review'), 0)
		FROM cards
		WHERE user_id = ? AND deck_id = ?
	`

	stats := &models.DeckStats{}
	err := r.db.QueryRowContext(ctx, query, now, now, userID, deckID).Scan(
		&stats.TotalCards,
		&stats.DueRecognition,
		&stats.DueAudio,
		&stats.NewCards,
		&stats.LearningCards,
		&stats.ReviewCards,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get deck stats: %w", err)
	}

	stats.DueTotal = stats.DueRecognition + stats.DueAudio

	return stats, nil
}

// CreateBatch inserts a batch of cards in the new-card shape produced by the
// content pipeline.
func (r *cardRepository) CreateBatch(ctx context.Context, cards []models.Card) error {
	if len(cards) == 0 {
		return nil
	}

	const placeholders = "(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)"
	values := make([]string, len(cards))
	args := make([]any, 0, len(cards)*20)

	for i, card := range cards {
		values[i] = placeholders
		var readingL2 sql.NullString
		if card.ReadingL2 != "" {
			readingL2 = sql.NullString{String: card.ReadingL2, Valid: true}
		}
		args = append(args,
			card.DeckID, card.UserID, card.TextL2, readingL2, card.TranslationL1,
			card.EnableRecognition, card.EnableAudio,
			card.Recognition.State, card.Recognition.Due, card.Recognition.Stability,
			card.Recognition.Difficulty, card.Recognition.Reps, card.Recognition.Lapses,
			card.Audio.State, card.Audio.Due, card.Audio.Stability,
			card.Audio.Difficulty, card.Audio.Reps, card.Audio.Lapses,
			card.CreatedAt,
		)
	}

	query := fmt.Sprintf(`
		INSERT INTO cards (deck_id, user_id, text_l2, reading_l2, translation_l1,
		                   enable_recognition, enable_audio,
		                   recognition_state, recognition_due, recognition_stability,
		                   recognition_difficulty, recognition_reps, recognition_lapses,
		                   audio_state, audio_due, audio_stability,
		                   audio_difficulty, audio_reps, audio_lapses,
		                   created_at)
		VALUES %s
	`, strings.Join(values, ", "))

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to create cards: %w", err)
	}

	return nil
}

// IsLockConflict reports whether err is a MySQL deadlock or lock-wait
// timeout, the two cases where retrying the whole review is correct.
func IsLockConflict(err error) bool {
	var mysqlErr *mysql.MySQLError
	if !errors.As(err, &mysqlErr) {
		return false
	}
	// 1213: deadlock found, 1205: lock wait timeout exceeded
	return mysqlErr.Number == 1213 || mysqlErr.Number == 1205
}
