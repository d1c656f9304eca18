package content

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/abhisek/studyplan/internal/llm"
	"github.com/abhisek/studyplan/internal/syllabus"
)

// Adapter turns provider output into tips and quizzes. A nil provider is
// allowed and behaves like one that always fails.
type Adapter struct {
	provider llm.Provider
	cache    Cache
	config   Config
	logger   *zap.Logger
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithCache caches tips in c.
func WithCache(c Cache) Option {
	return func(a *Adapter) { a.cache = c }
}

// WithConfig overrides DefaultConfig.
func WithConfig(cfg Config) Option {
	return func(a *Adapter) { a.config = cfg }
}

// WithLogger sets the logger. The default discards.
func WithLogger(l *zap.Logger) Option {
	return func(a *Adapter) {
		if l != nil {
			a.logger = l
		}
	}
}

// New creates an Adapter over provider.
func New(provider llm.Provider, opts ...Option) *Adapter {
	a := &Adapter{
		provider: provider,
		config:   DefaultConfig(),
		logger:   zap.NewNop(),
	}
	for _, o := range opts {
		o(a)
	}
	a.logger = a.logger.Named("content")
	return a
}

// StudyTips returns three study tips for topic. It never fails: any
// problem yields FallbackTip.
func (a *Adapter) StudyTips(ctx context.Context, topic syllabus.Key) string {
	log := a.logger.With(zap.Stringer("topic", topic))
	key := tipKey(topic)

	if a.cache != nil {
		if v, ok, err := a.cache.Get(ctx, key); err != nil {
			log.Warn("tip cache read failed", zap.Error(err))
		} else if ok {
			log.Debug("tip cache hit")
			return v
		}
	}

	if a.provider == nil {
		return FallbackTip
	}

	resp, err := a.provider.Generate(llm.WithPurpose(ctx, llm.PurposeStudyTips), llm.Request{
		System:      tipsSystemPrompt,
		Messages:    llm.UserPrompt(tipsPrompt(topic)),
		MaxTokens:   a.config.TipMaxTokens,
		Temperature: a.config.Temperature,
	})
	if err != nil {
		log.Warn("study tips unavailable", zap.String("kind", llm.ErrorKind(err)), zap.Error(err))
		return FallbackTip
	}
	tips := resp.Text()
	if tips == "" {
		log.Warn("study tips empty")
		return FallbackTip
	}

	if a.cache != nil {
		if err := a.cache.Set(ctx, key, tips, a.config.TipTTL); err != nil {
			log.Warn("tip cache write failed", zap.Error(err))
		}
	}
	return tips
}

// GenerateMCQs asks for a fresh quiz on topic. It returns nil when no
// usable question could be produced; it never returns an empty non-nil
// slice.
func (a *Adapter) GenerateMCQs(ctx context.Context, topic syllabus.Key) []MCQ {
	if a.provider == nil {
		return nil
	}
	log := a.logger.With(zap.Stringer("topic", topic))

	resp, err := a.provider.Generate(llm.WithPurpose(ctx, llm.PurposeQuizGen), llm.Request{
		System:      quizSystemPrompt,
		Messages:    llm.UserPrompt(quizPrompt(topic, a.config.Questions)),
		Schema:      QuizSchema,
		MaxTokens:   a.config.QuizMaxTokens,
		Temperature: a.config.Temperature,
	})
	if err != nil {
		log.Warn("quiz generation failed", zap.String("kind", llm.ErrorKind(err)), zap.Error(err))
		return nil
	}

	var out quizOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		log.Warn("quiz response unparseable", zap.Error(err))
		return nil
	}

	qs := Sanitize(out.Questions)
	if dropped := len(out.Questions) - len(qs); dropped > 0 {
		log.Info("dropped invalid questions", zap.Int("dropped", dropped), zap.Int("kept", len(qs)))
	}
	return qs
}
