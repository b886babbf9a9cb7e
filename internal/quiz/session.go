package quiz

import (
	"errors"
	"math"
)

// ErrIncomplete is returned by Submit when at least one question has no
// selected answer. The session stays open so the learner can finish.
var ErrIncomplete = errors.New("quiz: not all questions answered")

// State is the session lifecycle tag.
type State string

const (
	StateCollecting State = "collecting-answers"
	StateScored     State = "scored" // terminal; retake requires a new session
)

// Question is one generated multiple-choice item.
type Question struct {
	ID           int      `json:"id"` // unique within the session
	Prompt       string   `json:"prompt"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correct_index"`
	Explanation  string   `json:"explanation"`
	Selected     *int     `json:"selected,omitempty"` // nil until answered
}

// Answered reports whether the learner has selected an option.
func (q *Question) Answered() bool {
	return q.Selected != nil
}

// Correct reports whether the selected option matches the correct index.
func (q *Question) Correct() bool {
	return q.Selected != nil && *q.Selected == q.CorrectIndex
}

// Session governs answering and scoring for one generated question set.
// It is independent of where the questions came from.
type Session struct {
	passage   string
	questions []Question
	state     State
	score     int // canonical score, set at Submit
}

// NewSession creates a session in the collecting-answers state.
// Question IDs are assigned sequentially when unset.
func NewSession(passage string, questions []Question) *Session {
	qs := make([]Question, len(questions))
	copy(qs, questions)
	for i := range qs {
		if qs[i].ID == 0 {
			qs[i].ID = i + 1
		}
		qs[i].Options = append([]string(nil), qs[i].Options...)
		qs[i].Selected = nil
	}
	return &Session{
		passage:   passage,
		questions: qs,
		state:     StateCollecting,
	}
}

// Passage returns the optional reference passage.
func (s *Session) Passage() string {
	return s.passage
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	return s.state
}

// Questions returns copies of the questions with their current selections.
// The copies share nothing with owned state; mutating them has no effect.
func (s *Session) Questions() []Question {
	out := make([]Question, len(s.questions))
	copy(out, s.questions)
	for i := range out {
		out[i].Options = append([]string(nil), s.questions[i].Options...)
		if s.questions[i].Selected != nil {
			sel := *s.questions[i].Selected
			out[i].Selected = &sel
		}
	}
	return out
}

// SelectAnswer records the learner's choice for a question. Selections
// may be changed freely before submission. A scored session or an
// unknown question id makes the call a no-op.
func (s *Session) SelectAnswer(questionID, optionIndex int) {
	if s.state == StateScored {
		return
	}
	for i := range s.questions {
		if s.questions[i].ID == questionID {
			sel := optionIndex
			s.questions[i].Selected = &sel
			return
		}
	}
}

// AllAnswered reports whether every question holds a selection.
func (s *Session) AllAnswered() bool {
	for i := range s.questions {
		if !s.questions[i].Answered() {
			return false
		}
	}
	return true
}

// Submit transitions the session to scored. It is rejected with
// ErrIncomplete while any question is unanswered; the caller checks the
// precondition before flipping UI state. Submitting twice is a no-op.
func (s *Session) Submit() error {
	if s.state == StateScored {
		return nil
	}
	if !s.AllAnswered() {
		return ErrIncomplete
	}
	s.state = StateScored
	s.score = s.computeScore()
	return nil
}

// Score returns the percentage of correct selections. Before submission
// it is computed live for feedback; after submission it is the canonical
// value captured at Submit. A session with no questions scores 0.
func (s *Session) Score() int {
	if s.state == StateScored {
		return s.score
	}
	return s.computeScore()
}

func (s *Session) computeScore() int {
	if len(s.questions) == 0 {
		return 0
	}
	correct := 0
	for i := range s.questions {
		if s.questions[i].Correct() {
			correct++
		}
	}
	return int(math.Round(100 * float64(correct) / float64(len(s.questions))))
}
