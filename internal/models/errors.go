package models

import "errors"

// Error taxonomy of the scheduling core. Handlers translate these to HTTP
// status codes with errors.Is; everything else is an internal error.
var (
	// ErrCardNotFound covers both a nonexistent card and a card owned by a
	// different user, so ownership is never revealed.
	ErrCardNotFound = errors.New("card not found")

	// ErrInvalidRating means the rating is outside 1..4.
	ErrInvalidRating = errors.New("rating must be between 1 and 4")

	// ErrInvalidModality means the card type is unknown or the modality is
	// disabled on the card.
	ErrInvalidModality = errors.New("invalid or disabled card type")

	// ErrStorageConflict is a concurrent-write conflict at the transaction
	// boundary. The review is safe to retry from scratch.
	ErrStorageConflict = errors.New("storage conflict, retry the review")
)
