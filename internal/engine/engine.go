package engine

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ducthang1752k4-ctrl/lingua/internal/generator"
	"github.com/ducthang1752k4-ctrl/lingua/internal/profile"
	"github.com/ducthang1752k4-ctrl/lingua/internal/quiz"
	"github.com/ducthang1752k4-ctrl/lingua/internal/srs"
	"github.com/ducthang1752k4-ctrl/lingua/internal/store"
)

// Engine ties the scheduler, skill tracker, and quiz session together
// over a single open store. One Engine serves one learner.
type Engine struct {
	store     *store.Store
	scheduler *srs.Scheduler
	tracker   *profile.Tracker
	gen       *generator.Service
	log       *zap.Logger

	session *quiz.Session
}

// Option configures an Engine.
type Option func(*Engine)

// WithGenerator attaches a content generation service. Without one,
// StartQuiz and GenerateCards return an error.
func WithGenerator(svc *generator.Service) Option {
	return func(e *Engine) { e.gen = svc }
}

// WithLogger sets the engine logger. Defaults to a no-op logger.
func WithLogger(log *zap.Logger) Option {
	return func(e *Engine) { e.log = log }
}

// New opens the learner state from st and builds an Engine around it.
func New(ctx context.Context, st *store.Store, now time.Time, opts ...Option) *Engine {
	e := &Engine{
		store: st,
		log:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}

	repo := st.Records()
	e.scheduler = srs.NewScheduler(ctx, repo, e.log, now)
	e.tracker = profile.NewTracker(ctx, repo, e.log)

	return e
}

// Scheduler exposes the flashcard scheduler.
func (e *Engine) Scheduler() *srs.Scheduler {
	return e.scheduler
}

// Tracker exposes the skill profile tracker.
func (e *Engine) Tracker() *profile.Tracker {
	return e.tracker
}

// GenerateCards requests count new flashcards about topic from the
// content generator and adds them to the deck. The learner's overall
// level pitches the vocabulary difficulty.
func (e *Engine) GenerateCards(ctx context.Context, topic string, count int, now time.Time) ([]srs.Flashcard, error) {
	if e.gen == nil {
		return nil, fmt.Errorf("no content generator configured")
	}

	level := e.tracker.OverallLevel()
	entries, err := e.gen.VocabularyPack(ctx, topic, level, count)
	if err != nil {
		return nil, err
	}

	before := len(e.scheduler.Cards())
	if err := e.scheduler.AddCards(ctx, entries, now); err != nil {
		return nil, err
	}

	cards := e.scheduler.Cards()
	return cards[before:], nil
}

// StartQuiz generates a reading quiz about topic and makes it the
// current session, replacing any previous one.
func (e *Engine) StartQuiz(ctx context.Context, topic string) (*quiz.Session, error) {
	if e.gen == nil {
		return nil, fmt.Errorf("no content generator configured")
	}

	content, err := e.gen.ReadingQuiz(ctx, topic, e.tracker.OverallLevel())
	if err != nil {
		return nil, err
	}

	e.session = e.startSession(content)
	e.log.Info("quiz session started",
		zap.String("topic", topic),
		zap.Int("questions", len(content.Questions)))

	return e.session, nil
}

// StartPractice generates a TOEIC-style reading exercise and makes it
// the current session, replacing any previous one.
func (e *Engine) StartPractice(ctx context.Context, part generator.PracticePart) (*quiz.Session, error) {
	if e.gen == nil {
		return nil, fmt.Errorf("no content generator configured")
	}

	content, err := e.gen.ReadingPractice(ctx, part)
	if err != nil {
		return nil, err
	}

	e.session = e.startSession(content)
	e.log.Info("practice session started",
		zap.String("part", string(part)),
		zap.Int("questions", len(content.Questions)))

	return e.session, nil
}

func (e *Engine) startSession(content *generator.QuizContent) *quiz.Session {
	questions := make([]quiz.Question, len(content.Questions))
	for i, q := range content.Questions {
		questions[i] = quiz.Question{
			Prompt:       q.Prompt,
			Options:      q.Options,
			CorrectIndex: q.CorrectIndex,
			Explanation:  q.Explanation,
		}
	}
	return quiz.NewSession(content.Passage, questions)
}

// Session returns the current quiz session, or nil if none is active.
func (e *Engine) Session() *quiz.Session {
	return e.session
}

// FinishQuiz submits the current session and feeds its score into the
// given skill axis. The session stays readable until the next StartQuiz.
func (e *Engine) FinishQuiz(ctx context.Context, axis string, now time.Time) (int, error) {
	if e.session == nil {
		return 0, fmt.Errorf("no active quiz session")
	}

	if err := e.session.Submit(); err != nil {
		return 0, err
	}

	score := e.session.Score()
	if err := e.tracker.IngestScore(ctx, axis, score, now); err != nil {
		return score, err
	}

	e.log.Info("quiz session scored",
		zap.Int("score", score),
		zap.String("axis", axis))

	return score, nil
}
