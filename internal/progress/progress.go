// Package progress holds the learner's per-topic completion state and
// persists it as a single whole-value slot.
package progress

import (
	"errors"
	"slices"
	"sort"
	"time"

	"github.com/abhisek/studyplan/internal/syllabus"
)

// TopicKey identifies a tracked topic.
type TopicKey = syllabus.Key

var (
	// ErrNotTracked is returned when an operation needs an existing record.
	ErrNotTracked = errors.New("topic has no progress record")

	// ErrInvalidEntry is returned for score entries with total <= 0,
	// a negative score, or score > total.
	ErrInvalidEntry = errors.New("invalid score entry")

	// ErrInvalidKey is returned for keys that cannot be persisted.
	ErrInvalidKey = errors.New("invalid topic key")
)

// ValidKey reports whether k can be persisted.
func ValidKey(k TopicKey) bool {
	return k.Grade.Valid() && k.Subject != "" && k.Topic != "" && k.Month >= 1 && k.Month <= 12
}

// ScoreEntry is one quiz result for a topic.
type ScoreEntry struct {
	Date  time.Time `json:"date"`
	Score int       `json:"score"`
	Total int       `json:"total"`
}

// Valid reports whether the entry has a usable ratio.
func (e ScoreEntry) Valid() bool {
	return e.Total > 0 && e.Score >= 0 && e.Score <= e.Total
}

// Ratio returns score/total in [0, 1]. Invalid entries return 0.
func (e ScoreEntry) Ratio() float64 {
	if !e.Valid() {
		return 0
	}
	return float64(e.Score) / float64(e.Total)
}

// Record is the completion state of one topic.
type Record struct {
	CompletionDate time.Time
	History        []time.Time
	Scores         []ScoreEntry
}

// LatestScore returns the most recent score entry.
func (r *Record) LatestScore() (ScoreEntry, bool) {
	if r == nil || len(r.Scores) == 0 {
		return ScoreEntry{}, false
	}
	return r.Scores[len(r.Scores)-1], true
}

// LastRevised returns the most recent revision event, if any.
func (r *Record) LastRevised() (time.Time, bool) {
	if r == nil || len(r.History) == 0 {
		return time.Time{}, false
	}
	return r.History[len(r.History)-1], true
}

func (r *Record) clone() *Record {
	return &Record{
		CompletionDate: r.CompletionDate,
		History:        slices.Clone(r.History),
		Scores:         slices.Clone(r.Scores),
	}
}

// Progress maps topics to their completion records.
type Progress struct {
	CompletedTopics map[TopicKey]*Record
}

// Empty returns a progress value with no records.
func Empty() Progress {
	return Progress{CompletedTopics: make(map[TopicKey]*Record)}
}

// Keys returns the tracked topic keys in grade, subject, month, topic order.
func (p Progress) Keys() []TopicKey {
	keys := make([]TopicKey, 0, len(p.CompletedTopics))
	for k := range p.CompletedTopics {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })
	return keys
}

// IsComplete reports whether a topic has a record.
func (p Progress) IsComplete(k TopicKey) bool {
	_, ok := p.CompletedTopics[k]
	return ok
}

func (p Progress) clone() Progress {
	out := Progress{CompletedTopics: make(map[TopicKey]*Record, len(p.CompletedTopics))}
	for k, r := range p.CompletedTopics {
		out.CompletedTopics[k] = r.clone()
	}
	return out
}
