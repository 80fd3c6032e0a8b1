package repository

import (
	"context"
	"fmt"

	"playtracker/internal/database"
)

// Counter names stored in the counters table
const (
	CounterChild   = "child"
	CounterGame    = "game"
	CounterSession = "session"
)

// CounterRepository handles the monotonic id counters
type CounterRepository struct {
	db database.DBTX
}

// NewCounterRepository creates a new counter repository
func NewCounterRepository(db database.DBTX) *CounterRepository {
	return &CounterRepository{db: db}
}

// GetCounters returns every stored counter keyed by name
func (r *CounterRepository) GetCounters(ctx context.Context) (map[string]int64, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT name, next_id FROM counters")
	if err != nil {
		return nil, fmt.Errorf("failed to query counters: %w", err)
	}
	defer rows.Close()

	counters := make(map[string]int64)
	for rows.Next() {
		var name string
		var next int64
		if err := rows.Scan(&name, &next); err != nil {
			return nil, fmt.Errorf("failed to scan counter: %w", err)
		}
		counters[name] = next
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate counters: %w", err)
	}

	return counters, nil
}

// SetCounter stores the next id for a counter
func (r *CounterRepository) SetCounter(ctx context.Context, name string, next int64) error {
	if _, err := r.db.ExecContext(ctx, r.db.GetDialect().UpsertCounter(), name, next); err != nil {
		return fmt.Errorf("failed to set counter %s: %w", name, err)
	}
	return nil
}
