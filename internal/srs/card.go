package srs

import "time"

// LearningState tracks a card's position in the review lifecycle.
type LearningState string

const (
	StateNew        LearningState = "new"
	StateLearning   LearningState = "learning"
	StateReview     LearningState = "review"
	StateRelearning LearningState = "relearning"
)

// Rating is the learner's recall grade for a single review.
type Rating int

const (
	RatingAgain Rating = iota // failed recall, card resets
	RatingHard
	RatingGood
	RatingEasy
)

// String returns the display name of the rating.
func (r Rating) String() string {
	switch r {
	case RatingAgain:
		return "again"
	case RatingHard:
		return "hard"
	case RatingGood:
		return "good"
	case RatingEasy:
		return "easy"
	default:
		return "unknown"
	}
}

// Valid reports whether r is one of the four defined ratings.
func (r Rating) Valid() bool {
	return r >= RatingAgain && r <= RatingEasy
}

// Flashcard is a vocabulary item with its scheduling state.
// Content fields are set at creation; scheduling fields are mutated
// only by ProcessReview.
type Flashcard struct {
	ID            string        `json:"id"`
	Term          string        `json:"term"`
	Definition    string        `json:"definition"`
	Transcription string        `json:"transcription,omitempty"`
	Example       string        `json:"example,omitempty"`
	ImageRef      string        `json:"image_ref,omitempty"`
	Interval      int           `json:"interval"`    // whole days until next due date
	Repetition    int           `json:"repetition"`  // consecutive successes since last failure
	EaseFactor    float64       `json:"ease_factor"` // difficulty multiplier, min 1.3
	NextReview    time.Time     `json:"next_review"`
	State         LearningState `json:"state"`
}

// IsDue reports whether the card is due for review at now.
func (c *Flashcard) IsDue(now time.Time) bool {
	return !c.NextReview.After(now)
}

// CardEntry is generator-supplied content for a new flashcard.
// Fields other than Term may be empty; entries without a term are skipped.
type CardEntry struct {
	Term          string `json:"term"`
	Definition    string `json:"definition"`
	Transcription string `json:"transcription,omitempty"`
	Example       string `json:"example,omitempty"`
	ImageRef      string `json:"image_ref,omitempty"`
}
