package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/studyplan/internal/progress"
)

// Slot is a named whole-value cell in the slots table. It satisfies
// progress.Slot.
type Slot struct {
	db   *sql.DB
	name string
}

var _ progress.Slot = (*Slot)(nil)

// Name returns the slot name.
func (s *Slot) Name() string {
	return s.name
}

// Read returns the stored value or progress.ErrSlotEmpty.
func (s *Slot) Read(ctx context.Context) ([]byte, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select("value").
		From(entsql.Table(slotsTable)).
		Where(entsql.EQ("name", s.name)).
		Query()

	var value string
	err := s.db.QueryRowContext(ctx, query, args...).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, progress.ErrSlotEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("read slot %q: %w", s.name, err)
	}
	return []byte(value), nil
}

// Write upserts the slot value.
func (s *Slot) Write(ctx context.Context, value []byte) error {
	query, args := entsql.Dialect(dialect.SQLite).
		Insert(slotsTable).
		Columns("name", "value", "updated_at").
		Values(s.name, string(value), time.Now().UTC()).
		OnConflict(
			entsql.ConflictColumns("name"),
			entsql.ResolveWithNewValues(),
		).
		Query()

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("write slot %q: %w", s.name, err)
	}
	return nil
}

// Delete removes the slot. Deleting a missing slot is not an error.
func (s *Slot) Delete(ctx context.Context) error {
	query, args := entsql.Dialect(dialect.SQLite).
		Delete(slotsTable).
		Where(entsql.EQ("name", s.name)).
		Query()

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete slot %q: %w", s.name, err)
	}
	return nil
}
