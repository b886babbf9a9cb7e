package srs

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ducthang1752k4-ctrl/lingua/internal/store"
)

const (
	// InitialEase is the ease factor assigned to new cards.
	InitialEase = 2.5

	// MinEase is the floor below which repeated Hard ratings cannot push a card.
	MinEase = 1.3

	// easeStep is the ease adjustment applied on Hard/Easy ratings.
	easeStep = 0.15

	// firstInterval and secondInterval are the fixed early-growth intervals in days.
	firstInterval  = 1
	secondInterval = 6

	// relearnDelay is how soon a failed card comes back.
	relearnDelay = time.Minute
)

// Scheduler owns the flashcard deck and decides what is due when.
// All mutating operations persist the full deck before returning.
type Scheduler struct {
	deck []*Flashcard
	repo store.RecordRepo
	log  *zap.Logger
}

// NewScheduler creates a scheduler, loading the deck from the record store.
// An absent or unreadable record seeds the built-in starter deck.
func NewScheduler(ctx context.Context, repo store.RecordRepo, log *zap.Logger, now time.Time) *Scheduler {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Scheduler{repo: repo, log: log}

	deck, err := loadDeck(ctx, repo)
	if err != nil {
		log.Warn("vocab deck unreadable, seeding starter deck", zap.Error(err))
	}
	if deck == nil {
		s.seed(ctx, now)
		return s
	}

	s.deck = deck
	return s
}

func (s *Scheduler) seed(ctx context.Context, now time.Time) {
	if err := s.AddCards(ctx, starterEntries(), now); err != nil {
		s.log.Warn("persist starter deck", zap.Error(err))
	}
}

// AddCards creates flashcards from generator entries. Entries with an
// empty term are skipped: generator output may be partially filled and a
// term-less card is useless, not an error. Returns only persistence errors.
func (s *Scheduler) AddCards(ctx context.Context, entries []CardEntry, now time.Time) error {
	added := 0
	for _, e := range entries {
		if e.Term == "" {
			continue
		}
		s.deck = append(s.deck, &Flashcard{
			ID:            uuid.NewString(),
			Term:          e.Term,
			Definition:    e.Definition,
			Transcription: e.Transcription,
			Example:       e.Example,
			ImageRef:      e.ImageRef,
			Interval:      0,
			Repetition:    0,
			EaseFactor:    InitialEase,
			NextReview:    now, // due immediately
			State:         StateNew,
		})
		added++
	}
	s.log.Debug("cards added", zap.Int("count", added), zap.Int("skipped", len(entries)-added))
	return s.persist(ctx)
}

// DeleteCard removes the card with the given id. Deleting an unknown id
// is a no-op; the id may have gone stale between a read and this call.
func (s *Scheduler) DeleteCard(ctx context.Context, id string) error {
	for i, c := range s.deck {
		if c.ID == id {
			s.deck = append(s.deck[:i], s.deck[i+1:]...)
			return s.persist(ctx)
		}
	}
	return nil
}

// DueCards returns copies of all cards with NextReview <= now, most
// overdue first. Ties keep insertion order so the learner always sees
// the oldest material first.
func (s *Scheduler) DueCards(now time.Time) []Flashcard {
	var due []Flashcard
	for _, c := range s.deck {
		if c.IsDue(now) {
			due = append(due, *c)
		}
	}
	sort.SliceStable(due, func(i, j int) bool {
		return due[i].NextReview.Before(due[j].NextReview)
	})
	return due
}

// Cards returns read-only copies of the full deck in insertion order.
func (s *Scheduler) Cards() []Flashcard {
	out := make([]Flashcard, len(s.deck))
	for i, c := range s.deck {
		out[i] = *c
	}
	return out
}

// Card returns a copy of the card with the given id, or nil if unknown.
func (s *Scheduler) Card(id string) *Flashcard {
	if c := s.find(id); c != nil {
		copied := *c
		return &copied
	}
	return nil
}

// ProcessReview applies a review rating to one card using the simplified
// SM-2 variant and returns a copy of the updated card. An unknown id
// returns (nil, nil): the caller may hold a stale reference and the
// tolerated outcome is "this item was skipped", never a fault.
func (s *Scheduler) ProcessReview(ctx context.Context, id string, rating Rating, now time.Time) (*Flashcard, error) {
	c := s.find(id)
	if c == nil {
		s.log.Debug("review for unknown card", zap.String("id", id))
		return nil, nil
	}

	applyReview(c, rating, now)

	s.log.Debug("review processed",
		zap.String("term", c.Term),
		zap.Stringer("rating", rating),
		zap.Int("interval", c.Interval),
		zap.Float64("ease", c.EaseFactor),
	)

	updated := *c
	if err := s.persist(ctx); err != nil {
		return &updated, err
	}
	return &updated, nil
}

// applyReview mutates a card's scheduling state for one review.
//
// The ease factor only moves on the extreme ratings to avoid oscillation,
// and Again resets both counters so a failed card re-enters the new-card
// growth curve instead of keeping its inflated interval.
func applyReview(c *Flashcard, rating Rating, now time.Time) {
	if rating == RatingAgain {
		c.Repetition = 0
		c.Interval = 0
		c.State = StateRelearning
		c.NextReview = now.Add(relearnDelay)
		return
	}

	// Hard, Good and Easy all count as success.
	switch c.Repetition {
	case 0:
		c.Interval = firstInterval
	case 1:
		c.Interval = secondInterval
	default:
		c.Interval = int(math.Round(float64(c.Interval) * c.EaseFactor))
	}
	c.Repetition++
	c.State = StateReview

	switch rating {
	case RatingHard:
		c.EaseFactor = math.Max(MinEase, c.EaseFactor-easeStep)
	case RatingEasy:
		c.EaseFactor += easeStep
	}

	c.NextReview = now.AddDate(0, 0, c.Interval)
}

func (s *Scheduler) find(id string) *Flashcard {
	for _, c := range s.deck {
		if c.ID == id {
			return c
		}
	}
	return nil
}

func (s *Scheduler) persist(ctx context.Context) error {
	if s.repo == nil {
		return nil
	}
	if err := saveDeck(ctx, s.repo, s.deck); err != nil {
		// In-memory state stays authoritative; surface the failure so the
		// caller can warn that progress may not survive a reload.
		s.log.Warn("persist vocab deck", zap.Error(err))
		return err
	}
	return nil
}
