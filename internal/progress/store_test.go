package progress

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/studyplan/internal/syllabus"
)

var (
	motion = TopicKey{Grade: syllabus.Grade9, Subject: "Science", Month: 4, Topic: "Motion"}
	tissue = TopicKey{Grade: syllabus.Grade9, Subject: "Science", Month: 3, Topic: "Tissues"}
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

type failingSlot struct {
	readErr  error
	writeErr error
}

func (f failingSlot) Read(context.Context) ([]byte, error) { return nil, f.readErr }
func (f failingSlot) Write(context.Context, []byte) error  { return f.writeErr }

func TestOpen_EmptySlot(t *testing.T) {
	s := Open(context.Background(), NewMemorySlot())
	assert.Equal(t, 0, s.Len())
	assert.NotNil(t, s.Snapshot().CompletedTopics)
}

func TestOpen_FailOpen(t *testing.T) {
	tests := []struct {
		name string
		slot Slot
	}{
		{"read error", failingSlot{readErr: errors.New("disk gone")}},
		{"not json", NewMemorySlot([]byte("{not json")...)},
		{"wrong version", NewMemorySlot([]byte(`{"version":2,"completedTopics":[]}`)...)},
		{"legacy map form", NewMemorySlot([]byte(`{"completedTopics":{"9-Science-4-Motion":{}}}`)...)},
		{"bad grade", NewMemorySlot([]byte(`{"version":1,"completedTopics":[{"topic":{"grade":"7","subject":"S","month":1,"topic":"T"},"completionDate":"2025-01-01T00:00:00Z","history":[],"scores":[]}]}`)...)},
		{"bad date", NewMemorySlot([]byte(`{"version":1,"completedTopics":[{"topic":{"grade":"9","subject":"S","month":1,"topic":"T"},"completionDate":"yesterday","history":[],"scores":[]}]}`)...)},
		{"score above total", NewMemorySlot([]byte(`{"version":1,"completedTopics":[{"topic":{"grade":"9","subject":"S","month":1,"topic":"T"},"completionDate":"2025-01-01T00:00:00Z","history":[],"scores":[{"date":"2025-01-01T00:00:00Z","score":6,"total":5}]}]}`)...)},
		{"duplicate topic", NewMemorySlot([]byte(`{"version":1,"completedTopics":[{"topic":{"grade":"9","subject":"Science","month":4,"topic":"Motion"},"completionDate":"2025-01-01T00:00:00Z","history":[],"scores":[{"date":"2025-01-01T00:00:00Z","score":2,"total":5},{"date":"2025-01-01T00:00:00Z","score":2,"total":5}]},{"topic":{"grade":"9","subject":"Science","month":4,"topic":"Motion"},"completionDate":"2025-01-01T00:00:00Z","history":[],"scores":[{"date":"2025-01-01T00:00:00Z","score":2,"total":5}]}]}`)...)},
		{"zero total", NewMemorySlot([]byte(`{"version":1,"completedTopics":[{"topic":{"grade":"9","subject":"S","month":1,"topic":"T"},"completionDate":"2025-01-01T00:00:00Z","history":[],"scores":[{"date":"2025-01-01T00:00:00Z","score":0,"total":0}]}]}`)...)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Open(context.Background(), tt.slot)
			assert.Equal(t, 0, s.Len())
		})
	}
}

func TestMarkComplete_CreatesRecord(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)
	slot := NewMemorySlot()
	s := Open(ctx, slot, WithClock(fixedClock(now)))

	entry := ScoreEntry{Date: now, Score: 4, Total: 5}
	require.NoError(t, s.MarkComplete(ctx, motion, entry))

	r, ok := s.Get(motion)
	require.True(t, ok)
	assert.Equal(t, now, r.CompletionDate)
	assert.Empty(t, r.History)
	assert.Equal(t, []ScoreEntry{entry}, r.Scores)
	assert.Equal(t, 1, slot.WriteCount())
}

func TestMarkComplete_AppendsScore(t *testing.T) {
	ctx := context.Background()
	first := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	s := Open(ctx, NewMemorySlot(), WithClock(fixedClock(first)))

	require.NoError(t, s.MarkComplete(ctx, motion, ScoreEntry{Date: first, Score: 2, Total: 5}))
	later := first.AddDate(0, 0, 3)
	require.NoError(t, s.MarkComplete(ctx, motion, ScoreEntry{Date: later, Score: 5, Total: 5}))

	r, _ := s.Get(motion)
	assert.Equal(t, first, r.CompletionDate, "completion date is set once")
	require.Len(t, r.Scores, 2)
	latest, ok := r.LatestScore()
	require.True(t, ok)
	assert.Equal(t, 5, latest.Score)
}

func TestMarkComplete_Rejects(t *testing.T) {
	ctx := context.Background()
	slot := NewMemorySlot()
	s := Open(ctx, slot)

	err := s.MarkComplete(ctx, motion, ScoreEntry{Score: 1, Total: 0})
	assert.ErrorIs(t, err, ErrInvalidEntry)
	err = s.MarkComplete(ctx, motion, ScoreEntry{Score: 6, Total: 5})
	assert.ErrorIs(t, err, ErrInvalidEntry)
	err = s.MarkComplete(ctx, TopicKey{Grade: "8", Subject: "S", Month: 1, Topic: "T"}, ScoreEntry{Score: 1, Total: 5})
	assert.ErrorIs(t, err, ErrInvalidKey)

	assert.Equal(t, 0, s.Len())
	assert.Equal(t, 0, slot.WriteCount())
}

func TestUnmark(t *testing.T) {
	ctx := context.Background()
	slot := NewMemorySlot()
	s := Open(ctx, slot)
	require.NoError(t, s.MarkComplete(ctx, motion, ScoreEntry{Score: 3, Total: 5}))
	require.NoError(t, s.MarkRevised(ctx, motion, time.Now()))

	require.NoError(t, s.Unmark(ctx, motion))
	_, ok := s.Get(motion)
	assert.False(t, ok)
	writes := slot.WriteCount()

	// Unmarking again is a no-op and does not write.
	require.NoError(t, s.Unmark(ctx, motion))
	assert.Equal(t, writes, slot.WriteCount())

	// History is discarded: a new completion starts fresh.
	require.NoError(t, s.MarkComplete(ctx, motion, ScoreEntry{Score: 5, Total: 5}))
	r, _ := s.Get(motion)
	assert.Empty(t, r.History)
	assert.Len(t, r.Scores, 1)
}

func TestMarkRevised(t *testing.T) {
	ctx := context.Background()
	s := Open(ctx, NewMemorySlot())

	err := s.MarkRevised(ctx, tissue, time.Now())
	assert.ErrorIs(t, err, ErrNotTracked)

	require.NoError(t, s.MarkComplete(ctx, tissue, ScoreEntry{Score: 1, Total: 5}))
	at := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, s.MarkRevised(ctx, tissue, at))
	require.NoError(t, s.MarkRevised(ctx, tissue, at.AddDate(0, 0, 1)))

	r, _ := s.Get(tissue)
	require.Len(t, r.History, 2)
	last, ok := r.LastRevised()
	require.True(t, ok)
	assert.Equal(t, at.AddDate(0, 0, 1), last)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	ctx := context.Background()
	slot := NewMemorySlot()
	now := time.Date(2025, 5, 2, 14, 0, 0, 0, time.UTC)
	s := Open(ctx, slot, WithClock(fixedClock(now)))

	require.NoError(t, s.MarkComplete(ctx, motion, ScoreEntry{Date: now, Score: 2, Total: 5}))
	require.NoError(t, s.MarkComplete(ctx, tissue, ScoreEntry{Date: now, Score: 5, Total: 5}))
	require.NoError(t, s.MarkRevised(ctx, motion, now.AddDate(0, 0, 1)))
	want := s.Snapshot()

	reopened := Open(ctx, slot)
	assert.Equal(t, want, reopened.Snapshot())
}

func TestSave_ObservedByLoad(t *testing.T) {
	ctx := context.Background()
	slot := NewMemorySlot()
	s := Open(ctx, slot)
	require.NoError(t, s.MarkComplete(ctx, motion, ScoreEntry{Score: 4, Total: 5}))

	s.Load(ctx)
	assert.Equal(t, 1, s.Len())
}

func TestSave_DeterministicOrder(t *testing.T) {
	ctx := context.Background()
	a, b := NewMemorySlot(), NewMemorySlot()
	at := fixedClock(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))

	s1 := Open(ctx, a, WithClock(at))
	require.NoError(t, s1.MarkComplete(ctx, motion, ScoreEntry{Score: 1, Total: 5}))
	require.NoError(t, s1.MarkComplete(ctx, tissue, ScoreEntry{Score: 1, Total: 5}))

	s2 := Open(ctx, b, WithClock(at))
	require.NoError(t, s2.MarkComplete(ctx, tissue, ScoreEntry{Score: 1, Total: 5}))
	require.NoError(t, s2.MarkComplete(ctx, motion, ScoreEntry{Score: 1, Total: 5}))

	va, _ := a.Read(ctx)
	vb, _ := b.Read(ctx)
	assert.JSONEq(t, string(va), string(vb))
	assert.Equal(t, string(va), string(vb))
}

func TestSave_WriteFailure(t *testing.T) {
	ctx := context.Background()
	s := Open(ctx, failingSlot{readErr: ErrSlotEmpty, writeErr: errors.New("read-only")})

	err := s.MarkComplete(ctx, motion, ScoreEntry{Score: 4, Total: 5})
	require.Error(t, err)
	assert.Equal(t, 1, s.Len(), "in-memory state stays authoritative")
}

func TestReset(t *testing.T) {
	ctx := context.Background()
	slot := NewMemorySlot()
	s := Open(ctx, slot)
	require.NoError(t, s.MarkComplete(ctx, motion, ScoreEntry{Score: 4, Total: 5}))

	require.NoError(t, s.Reset(ctx))
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, 0, Open(ctx, slot).Len())
}

func TestSnapshot_IsDeepCopy(t *testing.T) {
	ctx := context.Background()
	s := Open(ctx, NewMemorySlot())
	require.NoError(t, s.MarkComplete(ctx, motion, ScoreEntry{Score: 4, Total: 5}))

	snap := s.Snapshot()
	snap.CompletedTopics[motion].Scores[0].Score = 0
	delete(snap.CompletedTopics, motion)

	r, ok := s.Get(motion)
	require.True(t, ok)
	assert.Equal(t, 4, r.Scores[0].Score)
}

func TestScoreEntry_Ratio(t *testing.T) {
	tests := []struct {
		entry ScoreEntry
		want  float64
	}{
		{ScoreEntry{Score: 4, Total: 5}, 0.8},
		{ScoreEntry{Score: 0, Total: 5}, 0},
		{ScoreEntry{Score: 5, Total: 5}, 1},
		{ScoreEntry{Score: 3, Total: 0}, 0},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, tt.entry.Ratio(), 1e-9, "%+v", tt.entry)
	}
}

func TestProgress_Keys(t *testing.T) {
	p := Empty()
	p.CompletedTopics[motion] = &Record{}
	p.CompletedTopics[tissue] = &Record{}
	p.CompletedTopics[TopicKey{Grade: syllabus.Grade9, Subject: "Mathematics", Month: 1, Topic: "Polynomials"}] = &Record{}

	keys := p.Keys()
	require.Len(t, keys, 3)
	assert.Equal(t, "Mathematics", keys[0].Subject)
	assert.Equal(t, tissue, keys[1])
	assert.Equal(t, motion, keys[2])
}
