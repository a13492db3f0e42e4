package models

// DeckStats holds the aggregate card counts shown on the deck dashboard.
//
// DueTotal counts review slots, not unique cards: a card due in both
// modalities contributes to both DueRecognition and DueAudio.
// The new/learning/review counts inspect the card's primary state: the
// recognition sub-state when recognition is enabled, the audio sub-state
// otherwise.
type DeckStats struct {
	TotalCards     int `json:"totalCards"`
	DueRecognition int `json:"dueRecognition"`
	DueAudio       int `json:"dueAudio"`
	DueTotal       int `json:"dueTotal"`
	NewCards       int `json:"newCards"`
	LearningCards  int `json:"learningCards"`
	ReviewCards    int `json:"reviewCards"`
}
