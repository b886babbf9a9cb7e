package srs

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ducthang1752k4-ctrl/lingua/internal/store"
)

// deckDocument is the serialized form of the flashcard collection.
type deckDocument struct {
	Version int        `json:"version"`
	Cards   []cardData `json:"cards"`
}

type cardData struct {
	ID            string  `json:"id"`
	Term          string  `json:"term"`
	Definition    string  `json:"definition"`
	Transcription string  `json:"transcription,omitempty"`
	Example       string  `json:"example,omitempty"`
	ImageRef      string  `json:"image_ref,omitempty"`
	Interval      int     `json:"interval"`
	Repetition    int     `json:"repetition"`
	EaseFactor    float64 `json:"ease_factor"`
	NextReview    string  `json:"next_review"`
	State         string  `json:"state"`
}

const deckDocVersion = 1

// loadDeck reads the flashcard collection from the record store.
// Returns (nil, nil) when no record exists, and (nil, err) when the
// record is unreadable; callers seed defaults in both cases.
func loadDeck(ctx context.Context, repo store.RecordRepo) ([]*Flashcard, error) {
	if repo == nil {
		return nil, nil
	}
	raw, err := repo.Load(ctx, store.KeyVocabDeck)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}

	var doc deckDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode vocab deck: %w", err)
	}

	deck := make([]*Flashcard, 0, len(doc.Cards))
	for _, cd := range doc.Cards {
		nextReview, err := time.Parse(time.RFC3339Nano, cd.NextReview)
		if err != nil {
			// One bad timestamp makes the whole record untrustworthy.
			return nil, fmt.Errorf("decode vocab deck: card %q has bad next_review: %w", cd.ID, err)
		}
		deck = append(deck, &Flashcard{
			ID:            cd.ID,
			Term:          cd.Term,
			Definition:    cd.Definition,
			Transcription: cd.Transcription,
			Example:       cd.Example,
			ImageRef:      cd.ImageRef,
			Interval:      cd.Interval,
			Repetition:    cd.Repetition,
			EaseFactor:    cd.EaseFactor,
			NextReview:    nextReview,
			State:         LearningState(cd.State),
		})
	}
	return deck, nil
}

// saveDeck re-serializes the full deck and overwrites the record.
func saveDeck(ctx context.Context, repo store.RecordRepo, deck []*Flashcard) error {
	doc := deckDocument{
		Version: deckDocVersion,
		Cards:   make([]cardData, len(deck)),
	}
	for i, c := range deck {
		doc.Cards[i] = cardData{
			ID:            c.ID,
			Term:          c.Term,
			Definition:    c.Definition,
			Transcription: c.Transcription,
			Example:       c.Example,
			ImageRef:      c.ImageRef,
			Interval:      c.Interval,
			Repetition:    c.Repetition,
			EaseFactor:    c.EaseFactor,
			NextReview:    c.NextReview.Format(time.RFC3339Nano),
			State:         string(c.State),
		}
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode vocab deck: %w", err)
	}
	return repo.Save(ctx, store.KeyVocabDeck, raw)
}

// starterEntries is the deck seeded on first run, so the review screen
// has material before any generator output arrives.
func starterEntries() []CardEntry {
	return []CardEntry{
		{
			Term:          "Serendipity",
			Definition:    "The occurrence of events by chance in a happy or beneficial way.",
			Transcription: "/ˌser.ənˈdɪp.ə.ti/",
			Example:       "It was pure serendipity that we met.",
		},
		{
			Term:          "Ephemeral",
			Definition:    "Lasting for a very short time.",
			Transcription: "/ɪˈfem.ər.əl/",
			Example:       "Fashions are ephemeral, changing with every season.",
		},
	}
}
