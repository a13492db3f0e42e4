package models

import (
	"time"

	"github.com/lingostudio/srs-service/internal/fsrs"
)

// Review is the immutable audit record of one review event. It is written
// in the same transaction as the card update and never mutated afterwards.
type Review struct {
	ID          int64       `json:"id"`
	CardID      int64       `json:"cardId"`
	UserID      int         `json:"userId"`
	CardType    Modality    `json:"cardType"`
	Rating      fsrs.Rating `json:"rating"`
	StateBefore fsrs.State  `json:"stateBefore"`
	StateAfter  fsrs.State  `json:"stateAfter"`
	DurationMs  *int        `json:"durationMs"`
	CreatedAt   time.Time   `json:"createdAt"`
}

// ReviewInput is one review submission. UserID comes from the auth
// context, never from the request body.
type ReviewInput struct {
	CardID     int64       `json:"cardId" validate:"required,gt=0"`
	UserID     int         `json:"-"`
	CardType   Modality    `json:"cardType" validate:"required"`
	Rating     fsrs.Rating `json:"rating" validate:"required"`
	DurationMs *int        `json:"durationMs" validate:"omitempty,gte=0"`
}

// ReviewResult is what a review submission returns to the caller.
type ReviewResult struct {
	Card    *Card     `json:"card"`
	Review  *Review   `json:"review"`
	NextDue time.Time `json:"nextDue"`
}

// RatingPreview is the hypothetical outcome of one rating on a card,
// used by the study UI to label its answer buttons.
type RatingPreview struct {
	Rating       fsrs.Rating `json:"rating"`
	State        fsrs.State  `json:"state"`
	Due          time.Time   `json:"due"`
	IntervalDays int         `json:"intervalDays"`
}
