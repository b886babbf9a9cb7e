package store

import "context"

// Record keys for the engine's persisted documents.
const (
	// KeyVocabDeck holds the serialized flashcard collection.
	KeyVocabDeck = "vocab_deck"

	// KeyProgress holds the serialized skill profile and score history.
	KeyProgress = "progress"
)

// RecordRepo provides read/write access to named serialized records.
// A missing record is not an error: Load returns (nil, nil) so callers
// can seed built-in defaults.
type RecordRepo interface {
	// Save overwrites the record under key with data.
	Save(ctx context.Context, key string, data []byte) error

	// Load returns the record under key, or nil if absent.
	Load(ctx context.Context, key string) ([]byte, error)

	// Delete removes the record under key. No-op if absent.
	Delete(ctx context.Context, key string) error
}
