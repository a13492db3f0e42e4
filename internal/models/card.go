package models

import (
	"time"

	"github.com/lingostudio/srs-service/internal/fsrs"
)

// Modality is one of the two independent review channels of a card.
type Modality string

const (
	ModalityRecognition Modality = "recognition"
	ModalityAudio       Modality = "audio"
)

// Valid reports whether m is a known modality.
func (m Modality) Valid() bool {
	return m == ModalityRecognition || m == ModalityAudio
}

// ModalityState is the scheduling state of one modality of a card.
// The recognition and audio sub-states evolve completely independently.
type ModalityState struct {
	State      fsrs.State `json:"state"`
	Due        time.Time  `json:"due"`
	Stability  float64    `json:"stability"`
	Difficulty float64    `json:"difficulty"`
	Reps       int        `json:"reps"`
	Lapses     int        `json:"lapses"`
	LastReview *time.Time `json:"lastReview"`
}

// Memory converts the sub-state to the fsrs input shape.
func (s ModalityState) Memory() fsrs.MemoryState {
	return fsrs.MemoryState{
		State:      s.State,
		Stability:  s.Stability,
		Difficulty: s.Difficulty,
		Reps:       s.Reps,
		Lapses:     s.Lapses,
		Due:        s.Due,
		LastReview: s.LastReview,
	}
}

// ApplyMemory writes a scheduling result back into the sub-state.
func (s *ModalityState) ApplyMemory(m fsrs.MemoryState) {
	s.State = m.State
	s.Due = m.Due
	s.Stability = m.Stability
	s.Difficulty = m.Difficulty
	s.Reps = m.Reps
	s.Lapses = m.Lapses
	s.LastReview = m.LastReview
}

// Card represents one learner-specific unit of study material with its two
// per-modality memory states.
type Card struct {
	ID     int64 `json:"id"`
	DeckID int64 `json:"deckId"`
	UserID int   `json:"userId"`

	TextL2        string `json:"textL2"`        // sentence or word in the target language
	ReadingL2     string `json:"readingL2"`     // phonetic reading (furigana/pinyin), may be empty
	TranslationL1 string `json:"translationL1"` // translation in the learner's language

	EnableRecognition bool `json:"enableRecognition"`
	EnableAudio       bool `json:"enableAudio"`

	Recognition ModalityState `json:"recognition"`
	Audio       ModalityState `json:"audio"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// StateFor returns a pointer to the sub-state of the given modality.
// Returns nil for an unknown modality.
func (c *Card) StateFor(m Modality) *ModalityState {
	switch m {
	case ModalityRecognition:
		return &c.Recognition
	case ModalityAudio:
		return &c.Audio
	default:
		return nil
	}
}

// ModalityEnabled reports whether the given modality is enabled on the card.
func (c *Card) ModalityEnabled(m Modality) bool {
	switch m {
	case ModalityRecognition:
		return c.EnableRecognition
	case ModalityAudio:
		return c.EnableAudio
	default:
		return false
	}
}

// NewCardInput is the shape in which the content pipeline submits finished
// dialogue sentences and course vocabulary for study.
type NewCardInput struct {
	DeckID            int64  `json:"deckId" validate:"required,gt=0"`
	UserID            int    `json:"userId" validate:"required,gt=0"`
	TextL2            string `json:"textL2" validate:"required"`
	ReadingL2         string `json:"readingL2"`
	TranslationL1     string `json:"translationL1" validate:"required"`
	EnableRecognition bool   `json:"enableRecognition"`
	EnableAudio       bool   `json:"enableAudio"`
}
