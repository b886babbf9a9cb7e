package generator

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func fastRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		InitialWait: 1 * time.Millisecond,
		MaxWait:     10 * time.Millisecond,
		Multiplier:  2.0,
	}
}

func vocabRequest() Request {
	return Request{
		System: vocabSystemPrompt,
		Messages: []Message{
			{Role: RoleUser, Content: buildVocabUserMessage("weather", "Beginner", 3)},
		},
		Schema:    VocabularyPackSchema,
		MaxTokens: vocabMaxTokens,
	}
}

func outage() MockResponse {
	return MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("backend down")}}
}

func TestRetry_FirstAttemptSucceeds(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: validVocabJSON()})
	p := WithRetry(mock, fastRetryConfig())

	resp, err := p.Generate(context.Background(), vocabRequest())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if resp.Content == nil {
		t.Fatal("expected content")
	}
	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call, got %d", mock.CallCount())
	}

	// The request reaches the backend unchanged.
	if mock.Calls[0].Schema.Name != "vocabulary-pack" {
		t.Errorf("unexpected schema %q", mock.Calls[0].Schema.Name)
	}
}

func TestRetry_RecoversFromOutage(t *testing.T) {
	mock := NewMockProvider(outage(), MockResponse{Content: validVocabJSON()})
	p := WithRetry(mock, fastRetryConfig())

	if _, err := p.Generate(context.Background(), vocabRequest()); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if mock.CallCount() != 2 {
		t.Fatalf("expected 2 calls, got %d", mock.CallCount())
	}
}

func TestRetry_GivesUpAfterMaxAttempts(t *testing.T) {
	mock := NewMockProvider(outage(), outage(), outage(), MockResponse{Content: validVocabJSON()})
	p := WithRetry(mock, fastRetryConfig())

	_, err := p.Generate(context.Background(), vocabRequest())
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got %v", err)
	}
	if mock.CallCount() != 3 {
		t.Fatalf("expected 3 calls, got %d", mock.CallCount())
	}
}

func TestRetry_TruncationIsFinal(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrMaxTokensExceeded{Content: json.RawMessage(`{"cards": [`)}},
	)
	p := WithRetry(mock, fastRetryConfig())

	_, err := p.Generate(context.Background(), vocabRequest())
	var truncated *ErrMaxTokensExceeded
	if !errors.As(err, &truncated) {
		t.Fatalf("expected ErrMaxTokensExceeded, got %v", err)
	}
	if mock.CallCount() != 1 {
		t.Fatalf("expected no retry after truncation, got %d calls", mock.CallCount())
	}
}

func TestRetry_BadSchemaGetsOneMoreTry(t *testing.T) {
	bad := MockResponse{Err: &ErrInvalidResponse{
		Content: json.RawMessage(`{"cards": "not a list"}`),
		Err:     errors.New("schema validation failed"),
	}}
	mock := NewMockProvider(bad, bad, MockResponse{Content: validVocabJSON()})
	p := WithRetry(mock, fastRetryConfig())

	_, err := p.Generate(context.Background(), vocabRequest())
	var invalid *ErrInvalidResponse
	if !errors.As(err, &invalid) {
		t.Fatalf("expected ErrInvalidResponse, got %v", err)
	}
	if mock.CallCount() != 2 {
		t.Fatalf("expected 2 calls, got %d", mock.CallCount())
	}
}

func TestRetry_CanceledContextStopsWaiting(t *testing.T) {
	mock := NewMockProvider(outage(), MockResponse{Content: validVocabJSON()})
	p := WithRetry(mock, fastRetryConfig())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Generate(ctx, vocabRequest())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call before cancellation, got %d", mock.CallCount())
	}
}

func TestRetry_HonorsRateLimitDelay(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrRateLimit{RetryAfter: 1 * time.Millisecond, Err: errors.New("429")}},
		MockResponse{Content: validVocabJSON()},
	)
	p := WithRetry(mock, fastRetryConfig())

	if _, err := p.Generate(context.Background(), vocabRequest()); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if mock.CallCount() != 2 {
		t.Fatalf("expected 2 calls, got %d", mock.CallCount())
	}
}

func TestRetry_ModelIDComesFromBackend(t *testing.T) {
	p := WithRetry(NewMockProvider(), fastRetryConfig())
	if p.ModelID() != "mock" {
		t.Fatalf("expected 'mock', got %q", p.ModelID())
	}
}
