package generator

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ducthang1752k4-ctrl/lingua/internal/srs"
)

const (
	vocabMaxTokens = 2048
	quizMaxTokens  = 4096
	defaultTemp    = 0.7
)

// QuizContent is a generated reading passage with comprehension questions.
type QuizContent struct {
	Passage   string
	Questions []QuizQuestion
}

// QuizQuestion is a single generated multiple-choice question.
type QuizQuestion struct {
	Prompt       string
	Options      []string
	CorrectIndex int
	Explanation  string
}

// Service produces learning content through a Provider.
type Service struct {
	provider Provider
}

// NewService creates a content generation service.
func NewService(provider Provider) *Service {
	return &Service{provider: provider}
}

type vocabOutput struct {
	Cards []srs.CardEntry `json:"cards"`
}

// VocabularyPack generates count flashcard entries about a topic,
// pitched at the given learner level.
func (s *Service) VocabularyPack(ctx context.Context, topic, level string, count int) ([]srs.CardEntry, error) {
	ctx = WithPurpose(ctx, "vocabulary-pack")

	req := Request{
		System: vocabSystemPrompt,
		Messages: []Message{
			{Role: RoleUser, Content: buildVocabUserMessage(topic, level, count)},
		},
		Schema:      VocabularyPackSchema,
		MaxTokens:   vocabMaxTokens,
		Temperature: defaultTemp,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("vocabulary generation: %w", err)
	}

	var out vocabOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse vocabulary response: %w", err)
	}

	if len(out.Cards) == 0 {
		return nil, &ErrInvalidResponse{
			Content: resp.Content,
			Err:     fmt.Errorf("no cards in vocabulary response"),
		}
	}

	return out.Cards, nil
}

type quizOutput struct {
	Passage   string `json:"passage"`
	Questions []struct {
		Prompt       string   `json:"prompt"`
		Options      []string `json:"options"`
		CorrectIndex int      `json:"correct_index"`
		Explanation  string   `json:"explanation"`
	} `json:"questions"`
}

// ReadingQuiz generates a reading passage plus comprehension questions
// about a topic at the given learner level.
func (s *Service) ReadingQuiz(ctx context.Context, topic, level string) (*QuizContent, error) {
	ctx = WithPurpose(ctx, "reading-quiz")

	req := Request{
		System: quizSystemPrompt,
		Messages: []Message{
			{Role: RoleUser, Content: buildQuizUserMessage(topic, level)},
		},
		Schema:      ReadingQuizSchema,
		MaxTokens:   quizMaxTokens,
		Temperature: defaultTemp,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("quiz generation: %w", err)
	}

	var out quizOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse quiz response: %w", err)
	}

	content := &QuizContent{Passage: out.Passage}
	for _, q := range out.Questions {
		if len(q.Options) == 0 || q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
			return nil, &ErrInvalidResponse{
				Content: resp.Content,
				Err:     fmt.Errorf("question %q has invalid options", q.Prompt),
			}
		}
		content.Questions = append(content.Questions, QuizQuestion(q))
	}

	if len(content.Questions) == 0 {
		return nil, &ErrInvalidResponse{
			Content: resp.Content,
			Err:     fmt.Errorf("no questions in quiz response"),
		}
	}

	return content, nil
}

// PracticePart selects which TOEIC reading exercise to generate.
type PracticePart string

const (
	// PartIncompleteSentences is TOEIC Part 5: standalone sentences with a blank.
	PartIncompleteSentences PracticePart = "part5"
	// PartReadingComprehension is TOEIC Part 7: a short business text with questions.
	PartReadingComprehension PracticePart = "part7"
)

// ReadingPractice generates a TOEIC-style reading exercise. Part 5 sets
// have no passage; part 7 sets anchor their questions to one.
func (s *Service) ReadingPractice(ctx context.Context, part PracticePart) (*QuizContent, error) {
	ctx = WithPurpose(ctx, "reading-practice")

	req := Request{
		System: practiceSystemPrompt,
		Messages: []Message{
			{Role: RoleUser, Content: buildPracticeUserMessage(part)},
		},
		Schema:      ReadingPracticeSchema,
		MaxTokens:   quizMaxTokens,
		Temperature: defaultTemp,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("practice generation: %w", err)
	}

	var out quizOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse practice response: %w", err)
	}

	content := &QuizContent{Passage: out.Passage}
	for _, q := range out.Questions {
		if len(q.Options) == 0 || q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
			return nil, &ErrInvalidResponse{
				Content: resp.Content,
				Err:     fmt.Errorf("question %q has invalid options", q.Prompt),
			}
		}
		content.Questions = append(content.Questions, QuizQuestion(q))
	}

	if len(content.Questions) == 0 {
		return nil, &ErrInvalidResponse{
			Content: resp.Content,
			Err:     fmt.Errorf("no questions in practice response"),
		}
	}
	if part == PartReadingComprehension && content.Passage == "" {
		return nil, &ErrInvalidResponse{
			Content: resp.Content,
			Err:     fmt.Errorf("comprehension set missing its passage"),
		}
	}

	return content, nil
}
