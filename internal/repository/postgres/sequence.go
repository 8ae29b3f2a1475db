package postgres

import (
	"context"
	"fmt"
)

// SequenceRepository implements repository.SequenceRepository using a
// single-row-per-counter table. The upsert is atomic, so concurrent callers
// never observe the same value twice.
type SequenceRepository struct {
	db DB
}

// NewSequenceRepository creates a new PostgreSQL-backed sequence repository.
func NewSequenceRepository(db DB) *SequenceRepository {
	return &SequenceRepository{db: db}
}

// Next atomically increments the named counter and returns the new value.
// A counter that does not exist yet is created with value 1.
func (r *SequenceRepository) Next(ctx context.Context, name string) (int64, error) {
	query := `
		INSERT INTO sequence_counters (name, last_value)
		VALUES ($1, 1)
		ON CONFLICT (name) DO UPDATE SET last_value = sequence_counters.last_value + 1
		RETURNING last_value`

	var next int64
	if err := r.db.QueryRow(ctx, query, name).Scan(&next); err != nil {
		return 0, fmt.Errorf("next sequence value for %q: %w", name, err)
	}

	return next, nil
}
