package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
)

// sequenceCounter hands out one increasing sequence shared by every event
// table, so LLM calls and session events order against each other.
//
// Postgres uses a native SEQUENCE. SQLite has none, so a one-row table is
// bumped with UPDATE ... RETURNING under a process-wide mutex.
type sequenceCounter struct {
	next func(ctx context.Context) (int64, error)
}

func newSequenceCounter(ctx context.Context, db *sql.DB, driver Driver) (*sequenceCounter, error) {
	if driver == DriverPostgres {
		if _, err := db.ExecContext(ctx, `CREATE SEQUENCE IF NOT EXISTS event_sequence`); err != nil {
			return nil, fmt.Errorf("create event sequence: %w", err)
		}
		return &sequenceCounter{next: func(ctx context.Context) (int64, error) {
			var n int64
			err := db.QueryRowContext(ctx, `SELECT nextval('event_sequence')`).Scan(&n)
			return n, err
		}}, nil
	}

	stmts := []string{
		`CREATE TABLE IF NOT EXISTS global_sequence (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			next_val INTEGER NOT NULL
		)`,
		`INSERT INTO global_sequence (id, next_val) VALUES (1, 1) ON CONFLICT (id) DO NOTHING`,
	}
	for _, q := range stmts {
		if _, err := db.ExecContext(ctx, q); err != nil {
			return nil, fmt.Errorf("init sequence table: %w", err)
		}
	}

	var mu sync.Mutex
	return &sequenceCounter{next: func(ctx context.Context) (int64, error) {
		mu.Lock()
		defer mu.Unlock()
		var n int64
		err := db.QueryRowContext(ctx,
			`UPDATE global_sequence SET next_val = next_val + 1 WHERE id = 1 RETURNING next_val - 1`,
		).Scan(&n)
		return n, err
	}}, nil
}

// Next returns the next sequence number.
func (sc *sequenceCounter) Next(ctx context.Context) (int64, error) {
	n, err := sc.next(ctx)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return n, nil
}
