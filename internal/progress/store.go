package progress

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Store owns the learner's progress and writes it through to a Slot after
// every mutation. It is safe for concurrent use.
type Store struct {
	mu       sync.Mutex
	slot     Slot
	logger   *zap.Logger
	now      func() time.Time
	progress Progress
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for load and save diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock overrides the time source used for new completion dates.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// Open creates a store backed by slot and loads its current value.
func Open(ctx context.Context, slot Slot, opts ...Option) *Store {
	s := &Store{
		slot:     slot,
		logger:   zap.NewNop(),
		now:      time.Now,
		progress: Empty(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Load(ctx)
	return s
}

// Load replaces the in-memory state with the slot's value. A missing,
// unreadable or malformed value yields an empty store.
func (s *Store) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.progress = Empty()
	data, err := s.slot.Read(ctx)
	if err != nil {
		if !errors.Is(err, ErrSlotEmpty) {
			s.logger.Warn("progress slot unreadable, starting empty", zap.Error(err))
		}
		return
	}
	p, err := decode(data)
	if err != nil {
		s.logger.Warn("progress slot malformed, starting empty",
			zap.Error(err), zap.Int("bytes", len(data)))
		return
	}
	s.progress = p
	s.logger.Debug("progress loaded", zap.Int("topics", len(p.CompletedTopics)))
}

// Save writes the whole store to the slot.
func (s *Store) Save(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked(ctx)
}

func (s *Store) saveLocked(ctx context.Context) error {
	data, err := encode(s.progress)
	if err != nil {
		return fmt.Errorf("encode progress: %w", err)
	}
	if err := s.slot.Write(ctx, data); err != nil {
		s.logger.Error("progress save failed", zap.Error(err))
		return fmt.Errorf("write progress: %w", err)
	}
	return nil
}

// MarkComplete records a quiz result. The first result for a topic creates
// its record with the current time as completion date.
func (s *Store) MarkComplete(ctx context.Context, key TopicKey, entry ScoreEntry) error {
	if !ValidKey(key) {
		return fmt.Errorf("%w: %+v", ErrInvalidKey, key)
	}
	if !entry.Valid() {
		return fmt.Errorf("%w: %d/%d", ErrInvalidEntry, entry.Score, entry.Total)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if r, ok := s.progress.CompletedTopics[key]; ok {
		r.Scores = append(r.Scores, entry)
	} else {
		s.progress.CompletedTopics[key] = &Record{
			CompletionDate: s.now(),
			Scores:         []ScoreEntry{entry},
		}
	}
	s.logger.Info("topic marked complete",
		zap.Stringer("topic", key),
		zap.Int("score", entry.Score),
		zap.Int("total", entry.Total))
	return s.saveLocked(ctx)
}

// Unmark deletes a topic's record and all of its history. Unknown topics
// are a no-op and do not write.
func (s *Store) Unmark(ctx context.Context, key TopicKey) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.progress.CompletedTopics[key]; !ok {
		return nil
	}
	delete(s.progress.CompletedTopics, key)
	s.logger.Info("topic unmarked", zap.Stringer("topic", key))
	return s.saveLocked(ctx)
}

// MarkRevised appends a revision event to a tracked topic's history.
func (s *Store) MarkRevised(ctx context.Context, key TopicKey, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.progress.CompletedTopics[key]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotTracked, key)
	}
	r.History = append(r.History, at)
	s.logger.Info("topic revised", zap.Stringer("topic", key), zap.Int("revisions", len(r.History)))
	return s.saveLocked(ctx)
}

// Reset drops every record and saves the empty store.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.progress = Empty()
	return s.saveLocked(ctx)
}

// Get returns a copy of a topic's record.
func (s *Store) Get(key TopicKey) (Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.progress.CompletedTopics[key]
	if !ok {
		return Record{}, false
	}
	return *r.clone(), true
}

// Snapshot returns a deep copy of the current progress.
func (s *Store) Snapshot() Progress {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.progress.clone()
}

// Len returns the number of tracked topics.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.progress.CompletedTopics)
}
