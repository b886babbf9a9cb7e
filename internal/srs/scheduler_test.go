package srs

import (
	"context"
	"errors"
	"testing"
	"time"
)

// memRepo is a minimal in-memory RecordRepo for tests.
type memRepo struct {
	records map[string][]byte
	saveErr error
	saves   int
}

func newMemRepo() *memRepo {
	return &memRepo{records: make(map[string][]byte)}
}

func (m *memRepo) Save(_ context.Context, key string, data []byte) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	cp := make([]byte, len(data))
	copy(cp, data)
	m.records[key] = cp
	return nil
}

func (m *memRepo) Load(_ context.Context, key string) ([]byte, error) {
	data, ok := m.records[key]
	if !ok {
		return nil, nil
	}
	return data, nil
}

func (m *memRepo) Delete(_ context.Context, key string) error {
	delete(m.records, key)
	return nil
}

var testNow = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

func newTestScheduler(t *testing.T, repo *memRepo) *Scheduler {
	t.Helper()
	if repo == nil {
		repo = newMemRepo()
	}
	s := NewScheduler(context.Background(), repo, nil, testNow)
	// Start from an empty deck; the starter cards are seeded for first runs
	// and would interfere with ordering assertions.
	s.deck = nil
	return s
}

func addCard(t *testing.T, s *Scheduler, term string) Flashcard {
	t.Helper()
	if err := s.AddCards(context.Background(), []CardEntry{{Term: term, Definition: "def"}}, testNow); err != nil {
		t.Fatalf("AddCards: %v", err)
	}
	cards := s.Cards()
	return cards[len(cards)-1]
}

func TestNewScheduler_SeedsStarterDeck(t *testing.T) {
	repo := newMemRepo()
	s := NewScheduler(context.Background(), repo, nil, testNow)

	cards := s.Cards()
	if len(cards) != 2 {
		t.Fatalf("starter deck = %d cards, want 2", len(cards))
	}
	for _, c := range cards {
		if c.Interval != 0 || c.Repetition != 0 {
			t.Errorf("%s: interval=%d repetition=%d, want 0/0", c.Term, c.Interval, c.Repetition)
		}
		if c.EaseFactor != InitialEase {
			t.Errorf("%s: ease = %v, want %v", c.Term, c.EaseFactor, InitialEase)
		}
		if c.State != StateNew {
			t.Errorf("%s: state = %s, want new", c.Term, c.State)
		}
		if !c.NextReview.Equal(testNow) {
			t.Errorf("%s: next review = %v, want %v", c.Term, c.NextReview, testNow)
		}
	}
	if repo.records["vocab_deck"] == nil {
		t.Error("starter deck was not persisted")
	}
}

func TestAddCards_SkipsEntriesWithoutTerm(t *testing.T) {
	s := newTestScheduler(t, nil)

	entries := []CardEntry{
		{Term: "Apple", Definition: "a fruit"},
		{Term: "", Definition: "orphaned definition"},
		{Term: "Brook", Definition: "a small stream"},
	}
	if err := s.AddCards(context.Background(), entries, testNow); err != nil {
		t.Fatalf("AddCards: %v", err)
	}

	cards := s.Cards()
	if len(cards) != 2 {
		t.Fatalf("deck = %d cards, want 2", len(cards))
	}
	if cards[0].Term != "Apple" || cards[1].Term != "Brook" {
		t.Errorf("deck terms = %q, %q", cards[0].Term, cards[1].Term)
	}
}

func TestDeleteCard_UnknownIDIsNoOp(t *testing.T) {
	s := newTestScheduler(t, nil)
	card := addCard(t, s, "Apple")

	if err := s.DeleteCard(context.Background(), "missing-id"); err != nil {
		t.Fatalf("DeleteCard: %v", err)
	}
	if len(s.Cards()) != 1 {
		t.Fatal("no-op delete changed the deck")
	}

	if err := s.DeleteCard(context.Background(), card.ID); err != nil {
		t.Fatalf("DeleteCard: %v", err)
	}
	if len(s.Cards()) != 0 {
		t.Error("card was not deleted")
	}
}

func TestDueCards_AscendingByNextReview(t *testing.T) {
	s := newTestScheduler(t, nil)
	a := addCard(t, s, "a")
	b := addCard(t, s, "b")
	c := addCard(t, s, "c")

	// Spread the due dates out of insertion order.
	s.find(a.ID).NextReview = testNow.Add(-1 * time.Hour)
	s.find(b.ID).NextReview = testNow.Add(-3 * time.Hour)
	s.find(c.ID).NextReview = testNow.Add(-2 * time.Hour)

	due := s.DueCards(testNow)
	if len(due) != 3 {
		t.Fatalf("due = %d cards, want 3", len(due))
	}
	want := []string{"b", "c", "a"}
	for i, term := range want {
		if due[i].Term != term {
			t.Errorf("due[%d] = %s, want %s", i, due[i].Term, term)
		}
	}
}

func TestDueCards_TiesKeepInsertionOrder(t *testing.T) {
	s := newTestScheduler(t, nil)
	addCard(t, s, "first")
	addCard(t, s, "second")
	addCard(t, s, "third")

	due := s.DueCards(testNow)
	want := []string{"first", "second", "third"}
	for i, term := range want {
		if due[i].Term != term {
			t.Errorf("due[%d] = %s, want %s", i, due[i].Term, term)
		}
	}
}

func TestDueCards_ExcludesFutureCards(t *testing.T) {
	s := newTestScheduler(t, nil)
	a := addCard(t, s, "due")
	b := addCard(t, s, "future")
	_ = a
	s.find(b.ID).NextReview = testNow.Add(24 * time.Hour)

	due := s.DueCards(testNow)
	if len(due) != 1 || due[0].Term != "due" {
		t.Errorf("due = %+v, want only the overdue card", due)
	}
}

func TestProcessReview_AgainResets(t *testing.T) {
	s := newTestScheduler(t, nil)
	card := addCard(t, s, "Apple")

	// Grow the card first so the reset is observable.
	for i := 0; i < 4; i++ {
		if _, err := s.ProcessReview(context.Background(), card.ID, RatingGood, testNow); err != nil {
			t.Fatalf("ProcessReview: %v", err)
		}
	}

	got, err := s.ProcessReview(context.Background(), card.ID, RatingAgain, testNow)
	if err != nil {
		t.Fatalf("ProcessReview: %v", err)
	}
	if got.Repetition != 0 {
		t.Errorf("repetition = %d, want 0", got.Repetition)
	}
	if got.Interval != 0 {
		t.Errorf("interval = %d, want 0", got.Interval)
	}
	if got.State != StateRelearning {
		t.Errorf("state = %s, want relearning", got.State)
	}
	wantNext := testNow.Add(time.Minute)
	if !got.NextReview.Equal(wantNext) {
		t.Errorf("next review = %v, want %v", got.NextReview, wantNext)
	}
}

func TestProcessReview_EarlyIntervals(t *testing.T) {
	s := newTestScheduler(t, nil)
	card := addCard(t, s, "Apple")

	got, _ := s.ProcessReview(context.Background(), card.ID, RatingGood, testNow)
	if got.Interval != 1 || got.Repetition != 1 {
		t.Errorf("first success: interval=%d repetition=%d, want 1/1", got.Interval, got.Repetition)
	}
	if !got.NextReview.Equal(testNow.AddDate(0, 0, 1)) {
		t.Errorf("next review = %v, want now+1d", got.NextReview)
	}

	got, _ = s.ProcessReview(context.Background(), card.ID, RatingGood, testNow)
	if got.Interval != 6 || got.Repetition != 2 {
		t.Errorf("second success: interval=%d repetition=%d, want 6/2", got.Interval, got.Repetition)
	}

	// Third success multiplies by ease: round(6 * 2.5) = 15.
	got, _ = s.ProcessReview(context.Background(), card.ID, RatingGood, testNow)
	if got.Interval != 15 {
		t.Errorf("third success: interval = %d, want 15", got.Interval)
	}
	if got.State != StateReview {
		t.Errorf("state = %s, want review", got.State)
	}
}

func TestProcessReview_GrowthMonotonicity(t *testing.T) {
	s := newTestScheduler(t, nil)
	card := addCard(t, s, "Apple")

	// Reach repetition >= 2 first.
	s.ProcessReview(context.Background(), card.ID, RatingGood, testNow)
	s.ProcessReview(context.Background(), card.ID, RatingGood, testNow)

	prev := s.Card(card.ID).Interval
	for i := 0; i < 3; i++ {
		got, _ := s.ProcessReview(context.Background(), card.ID, RatingGood, testNow)
		if got.Interval <= prev {
			t.Fatalf("interval did not grow: %d -> %d", prev, got.Interval)
		}
		prev = got.Interval
	}
}

func TestProcessReview_EaseNeverBelowFloor(t *testing.T) {
	s := newTestScheduler(t, nil)
	card := addCard(t, s, "Apple")

	for i := 0; i < 20; i++ {
		got, _ := s.ProcessReview(context.Background(), card.ID, RatingHard, testNow)
		if got.EaseFactor < MinEase {
			t.Fatalf("ease = %v, below floor %v", got.EaseFactor, MinEase)
		}
	}
	if got := s.Card(card.ID); got.EaseFactor != MinEase {
		t.Errorf("ease = %v, want floor %v after repeated Hard", got.EaseFactor, MinEase)
	}
}

func TestProcessReview_EasyRaisesEase(t *testing.T) {
	s := newTestScheduler(t, nil)
	card := addCard(t, s, "Apple")

	got, _ := s.ProcessReview(context.Background(), card.ID, RatingEasy, testNow)
	if got.EaseFactor != InitialEase+0.15 {
		t.Errorf("ease = %v, want %v", got.EaseFactor, InitialEase+0.15)
	}

	got, _ = s.ProcessReview(context.Background(), card.ID, RatingGood, testNow)
	if got.EaseFactor != InitialEase+0.15 {
		t.Errorf("Good changed ease: %v", got.EaseFactor)
	}
}

func TestProcessReview_UnknownIDIsNoOp(t *testing.T) {
	repo := newMemRepo()
	s := newTestScheduler(t, repo)
	addCard(t, s, "Apple")
	savesBefore := repo.saves

	got, err := s.ProcessReview(context.Background(), "missing-id", RatingGood, testNow)
	if err != nil {
		t.Fatalf("ProcessReview: %v", err)
	}
	if got != nil {
		t.Errorf("got card %+v for unknown id", got)
	}
	if repo.saves != savesBefore {
		t.Error("no-op review persisted")
	}
}

func TestProcessReview_SaveFailureKeepsMemoryState(t *testing.T) {
	repo := newMemRepo()
	s := newTestScheduler(t, repo)
	card := addCard(t, s, "Apple")

	repo.saveErr = errors.New("disk full")
	got, err := s.ProcessReview(context.Background(), card.ID, RatingGood, testNow)
	if err == nil {
		t.Fatal("expected persistence error")
	}
	if got == nil || got.Repetition != 1 {
		t.Errorf("in-memory update lost: %+v", got)
	}
	if live := s.Card(card.ID); live.Repetition != 1 {
		t.Errorf("scheduler state rolled back: %+v", live)
	}
}

func TestDeck_RoundTripThroughStore(t *testing.T) {
	repo := newMemRepo()
	s := newTestScheduler(t, repo)
	card := addCard(t, s, "Apple")
	s.ProcessReview(context.Background(), card.ID, RatingGood, testNow)
	s.ProcessReview(context.Background(), card.ID, RatingHard, testNow)

	reloaded := NewScheduler(context.Background(), repo, nil, testNow)
	cards := reloaded.Cards()
	if len(cards) != 1 {
		t.Fatalf("reloaded deck = %d cards, want 1", len(cards))
	}

	want := *s.Card(card.ID)
	got := cards[0]
	if got.ID != want.ID || got.Term != want.Term || got.Definition != want.Definition {
		t.Errorf("content mismatch: got %+v, want %+v", got, want)
	}
	if got.Interval != want.Interval || got.Repetition != want.Repetition || got.EaseFactor != want.EaseFactor {
		t.Errorf("scheduling mismatch: got %+v, want %+v", got, want)
	}
	if !got.NextReview.Equal(want.NextReview) {
		t.Errorf("next review = %v, want %v", got.NextReview, want.NextReview)
	}
	if got.State != want.State {
		t.Errorf("state = %s, want %s", got.State, want.State)
	}
}

func TestDeck_RoundTripKeepsSubSecondPrecision(t *testing.T) {
	repo := newMemRepo()
	s := newTestScheduler(t, repo)

	// Wall-clock review times carry nanoseconds.
	wallClock := time.Date(2026, 3, 2, 9, 0, 0, 123456789, time.UTC)
	card := addCard(t, s, "Apple")
	if _, err := s.ProcessReview(context.Background(), card.ID, RatingAgain, wallClock); err != nil {
		t.Fatalf("ProcessReview: %v", err)
	}
	want := s.Card(card.ID).NextReview

	reloaded := NewScheduler(context.Background(), repo, nil, testNow)
	got := reloaded.Cards()[0].NextReview
	if !got.Equal(want) {
		t.Errorf("round trip changed NextReview: saved %v, reloaded %v", want, got)
	}
}

func TestNewScheduler_CorruptNextReviewSeedsStarterDeck(t *testing.T) {
	repo := newMemRepo()
	repo.records["vocab_deck"] = []byte(`{
		"version": 1,
		"cards": [
			{"id": "x1", "term": "Apple", "definition": "a fruit", "interval": 3,
			 "repetition": 2, "ease_factor": 2.5, "next_review": "not-a-time", "state": "review"}
		]
	}`)

	s := NewScheduler(context.Background(), repo, nil, testNow)

	cards := s.Cards()
	if len(cards) != 2 {
		t.Fatalf("deck = %d cards, want the 2 starter cards", len(cards))
	}
	for _, c := range cards {
		if c.Term == "Apple" {
			t.Error("card from the corrupt record survived")
		}
	}
}

func TestCards_ReturnsCopies(t *testing.T) {
	s := newTestScheduler(t, nil)
	addCard(t, s, "Apple")

	cards := s.Cards()
	cards[0].Term = "mutated"
	if s.Cards()[0].Term != "Apple" {
		t.Error("mutating a returned card changed owned state")
	}
}
