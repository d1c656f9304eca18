package progress

import (
	"context"
	"errors"
	"slices"
	"sync"
)

// SlotName is the storage slot the progress store persists into.
const SlotName = "study_progress"

// ErrSlotEmpty is returned by Slot.Read when nothing has been written yet.
var ErrSlotEmpty = errors.New("slot is empty")

// Slot is a named, whole-value persistence cell.
type Slot interface {
	// Read returns the last written value, or ErrSlotEmpty.
	Read(ctx context.Context) ([]byte, error)

	// Write overwrites the value.
	Write(ctx context.Context, value []byte) error
}

// MemorySlot is an in-process Slot.
type MemorySlot struct {
	mu     sync.Mutex
	value  []byte
	set    bool
	writes int
}

// NewMemorySlot returns an empty slot, or one seeded with value when given.
func NewMemorySlot(value ...byte) *MemorySlot {
	s := &MemorySlot{}
	if value != nil {
		s.value = slices.Clone(value)
		s.set = true
	}
	return s
}

func (s *MemorySlot) Read(_ context.Context) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.set {
		return nil, ErrSlotEmpty
	}
	return slices.Clone(s.value), nil
}

func (s *MemorySlot) Write(_ context.Context, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value = slices.Clone(value)
	s.set = true
	s.writes++
	return nil
}

// WriteCount returns the number of writes so far.
func (s *MemorySlot) WriteCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}
