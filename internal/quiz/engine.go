// Package quiz runs one topic quiz at a time: it fetches questions,
// collects answers, scores the attempt and records it in progress.
package quiz

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/studyplan/internal/content"
	"github.com/abhisek/studyplan/internal/progress"
	"github.com/abhisek/studyplan/internal/syllabus"
)

var (
	// ErrBusy is returned by Start while another quiz is loading.
	ErrBusy = errors.New("a quiz is already loading")

	// ErrInvalidAnswer is returned for an out-of-range question or choice.
	ErrInvalidAnswer = errors.New("invalid answer")

	// ErrWrongPhase is returned when an operation does not apply to the
	// current phase.
	ErrWrongPhase = errors.New("operation not valid in current quiz phase")

	// ErrAbandoned is returned by Start when the session was left before
	// its questions arrived.
	ErrAbandoned = errors.New("quiz abandoned while loading")
)

// QuestionSource produces questions for a topic. A nil result means no
// quiz could be produced.
type QuestionSource interface {
	GenerateMCQs(ctx context.Context, topic syllabus.Key) []content.MCQ
}

// ProgressWriter records a quiz score.
type ProgressWriter interface {
	MarkComplete(ctx context.Context, key progress.TopicKey, entry progress.ScoreEntry) error
}

// Engine owns the current quiz session. It is safe for concurrent use.
type Engine struct {
	mu       sync.Mutex
	source   QuestionSource
	progress ProgressWriter
	logger   *zap.Logger
	now      func() time.Time

	session *Session
	// gen identifies the session a pending Start belongs to.
	gen uint64
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger. The default discards.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithClock overrides the time source used for score dates.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// NewEngine creates an idle engine.
func NewEngine(source QuestionSource, pw ProgressWriter, opts ...Option) *Engine {
	e := &Engine{
		source:   source,
		progress: pw,
		logger:   zap.NewNop(),
		now:      time.Now,
	}
	for _, o := range opts {
		o(e)
	}
	e.logger = e.logger.Named("quiz")
	return e
}

// Start begins a quiz on topic, replacing any finished session. It blocks
// until the question source answers. When no quiz can be produced the
// session lands in PhaseResult with no questions and Degraded set.
func (e *Engine) Start(ctx context.Context, topic syllabus.Key) (Session, error) {
	if !progress.ValidKey(topic) {
		return Session{}, fmt.Errorf("start quiz on %v: %w", topic, progress.ErrInvalidKey)
	}

	e.mu.Lock()
	if e.session != nil && e.session.Phase == PhaseLoading {
		e.mu.Unlock()
		return Session{}, ErrBusy
	}
	e.gen++
	gen := e.gen
	s := &Session{
		ID:        uuid.NewString(),
		Topic:     topic,
		Phase:     PhaseLoading,
		StartedAt: e.now(),
	}
	e.session = s
	e.mu.Unlock()

	log := e.logger.With(zap.String("session_id", s.ID), zap.Stringer("topic", topic))
	log.Debug("quiz loading")

	qs := content.Sanitize(e.source.GenerateMCQs(ctx, topic))

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.gen != gen {
		log.Debug("discarding questions for abandoned quiz")
		return Session{}, ErrAbandoned
	}

	if qs == nil {
		s.Phase = PhaseResult
		s.Degraded = true
		log.Warn("no quiz could be produced")
		return s.clone(), nil
	}

	s.Phase = PhaseQuestions
	s.Questions = qs
	s.Answers = make([]int, len(qs))
	for i := range s.Answers {
		s.Answers[i] = Unanswered
	}
	log.Info("quiz started", zap.Int("questions", len(qs)))
	return s.clone(), nil
}

// Answer records choice for question index.
func (e *Engine) Answer(index, choice int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := e.session
	if s == nil || s.Phase != PhaseQuestions {
		return ErrWrongPhase
	}
	if index < 0 || index >= len(s.Questions) || choice < 0 || choice >= content.OptionCount {
		return fmt.Errorf("question %d choice %d: %w", index, choice, ErrInvalidAnswer)
	}
	s.Answers[index] = choice
	return nil
}

// SubmitAnswers scores the recorded answers and submits them. Unanswered
// questions count as wrong.
func (e *Engine) SubmitAnswers(ctx context.Context) (Session, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := e.session
	if s == nil || s.Phase != PhaseQuestions {
		return Session{}, ErrWrongPhase
	}
	return e.submitLocked(ctx, s.Correct(), len(s.Questions))
}

// Submit records score out of total for the current session, classifies
// it and moves to PhaseResult. If the score cannot be persisted the
// session still moves to PhaseResult and the save error is returned.
func (e *Engine) Submit(ctx context.Context, score, total int) (Session, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.submitLocked(ctx, score, total)
}

func (e *Engine) submitLocked(ctx context.Context, score, total int) (Session, error) {
	tier, err := Classify(score, total)
	if err != nil {
		return Session{}, err
	}
	s := e.session
	if s == nil || s.Phase != PhaseQuestions {
		return Session{}, ErrWrongPhase
	}

	s.Score = score
	s.Total = total
	s.Percent = Percent(score, total)
	s.Tier = tier
	s.Recommendation = tier.Message()
	s.Phase = PhaseResult

	log := e.logger.With(zap.String("session_id", s.ID), zap.Stringer("topic", s.Topic))
	log.Info("quiz submitted",
		zap.Int("score", score),
		zap.Int("total", total),
		zap.Stringer("tier", tier))

	entry := progress.ScoreEntry{Date: e.now(), Score: score, Total: total}
	if err := e.progress.MarkComplete(ctx, s.Topic, entry); err != nil {
		log.Warn("failed to record quiz score", zap.Error(err))
		return s.clone(), fmt.Errorf("record score: %w", err)
	}
	return s.clone(), nil
}

// Leave discards the current session. Leaving a loading session makes the
// pending Start discard its questions.
func (e *Engine) Leave() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.session == nil {
		return
	}
	if e.session.Phase == PhaseLoading {
		e.gen++
	}
	e.session = nil
}

// Current returns a snapshot of the session, if any.
func (e *Engine) Current() (Session, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.session == nil {
		return Session{}, false
	}
	return e.session.clone(), true
}

// Phase returns the current phase; PhaseIdle when there is no session.
func (e *Engine) Phase() Phase {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.session == nil {
		return PhaseIdle
	}
	return e.session.Phase
}
