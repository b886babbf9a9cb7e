package generator

import (
	"encoding/json"
	"errors"
	"testing"
)

func testSchema() *Schema {
	return &Schema{
		Name:        "test-card",
		Description: "A test flashcard",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"term":       map[string]any{"type": "string"},
				"difficulty": map[string]any{"type": "integer", "minimum": 0},
				"level":      map[string]any{"type": "string", "enum": []any{"Beginner", "Intermediate", "Advanced"}},
			},
			"required": []any{"term", "difficulty"},
		},
	}
}

func TestValidateResponse_ValidJSON(t *testing.T) {
	raw := json.RawMessage(`{"term":"serene","difficulty":2,"level":"Intermediate"}`)
	err := validateResponse(testSchema(), raw)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
}

func TestValidateResponse_ValidWithoutOptional(t *testing.T) {
	raw := json.RawMessage(`{"term":"brisk","difficulty":1}`)
	err := validateResponse(testSchema(), raw)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
}

func TestValidateResponse_MissingRequired(t *testing.T) {
	raw := json.RawMessage(`{"term":"vivid"}`)
	err := validateResponse(testSchema(), raw)
	if err == nil {
		t.Fatal("expected error for missing required field")
	}
	var invErr *ErrInvalidResponse
	if !errors.As(err, &invErr) {
		t.Fatalf("expected ErrInvalidResponse, got: %T", err)
	}
}

func TestValidateResponse_WrongType(t *testing.T) {
	raw := json.RawMessage(`{"term":"keen","difficulty":"two"}`)
	err := validateResponse(testSchema(), raw)
	if err == nil {
		t.Fatal("expected error for wrong type")
	}
	var invErr *ErrInvalidResponse
	if !errors.As(err, &invErr) {
		t.Fatalf("expected ErrInvalidResponse, got: %T", err)
	}
}

func TestValidateResponse_InvalidEnum(t *testing.T) {
	raw := json.RawMessage(`{"term":"lucid","difficulty":3,"level":"Expert"}`)
	err := validateResponse(testSchema(), raw)
	if err == nil {
		t.Fatal("expected error for invalid enum value")
	}
	var invErr *ErrInvalidResponse
	if !errors.As(err, &invErr) {
		t.Fatalf("expected ErrInvalidResponse, got: %T", err)
	}
}

func TestValidateResponse_MalformedJSON(t *testing.T) {
	raw := json.RawMessage(`{not json}`)
	err := validateResponse(testSchema(), raw)
	if err == nil {
		t.Fatal("expected error for malformed JSON")
	}
	var invErr *ErrInvalidResponse
	if !errors.As(err, &invErr) {
		t.Fatalf("expected ErrInvalidResponse, got: %T", err)
	}
}

func TestValidateResponse_EmptyResponse(t *testing.T) {
	raw := json.RawMessage(``)
	err := validateResponse(testSchema(), raw)
	if err == nil {
		t.Fatal("expected error for empty response")
	}
}

func TestValidateResponse_NilSchema(t *testing.T) {
	raw := json.RawMessage(`{"anything":"goes"}`)
	err := validateResponse(nil, raw)
	if err != nil {
		t.Fatalf("expected no error with nil schema, got: %v", err)
	}
}

func TestValidateResponse_GeneratedSchemas(t *testing.T) {
	vocab := json.RawMessage(`{"cards":[{"term":"a","definition":"b","transcription":"/a/","example":"c"}]}`)
	if err := validateResponse(VocabularyPackSchema, vocab); err != nil {
		t.Fatalf("expected vocabulary pack to validate, got: %v", err)
	}

	quiz := json.RawMessage(`{"passage":"Text.","questions":[{"prompt":"Q?","options":["a","b","c","d"],"correct_index":0,"explanation":"Because."}]}`)
	if err := validateResponse(ReadingQuizSchema, quiz); err != nil {
		t.Fatalf("expected reading quiz to validate, got: %v", err)
	}

	practice := json.RawMessage(`{"questions":[{"prompt":"The meeting _____ at nine.","options":["starts","start","starting","started at"],"correct_index":0,"explanation":"Third person singular."}]}`)
	if err := validateResponse(ReadingPracticeSchema, practice); err != nil {
		t.Fatalf("expected practice set without passage to validate, got: %v", err)
	}

	missing := json.RawMessage(`{"questions":[]}`)
	if err := validateResponse(ReadingQuizSchema, missing); err == nil {
		t.Fatal("expected error for quiz without passage")
	}
}
