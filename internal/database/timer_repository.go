package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/1dinos/desafio-cronometro/internal/domain"
)

// TimerRepo persists whole timer sets. It implements domain.SnapshotStore.
type TimerRepo struct {
	db *DB
}

func NewTimerRepo(db *DB) *TimerRepo {
	return &TimerRepo{db: db}
}

// ReadAll returns the stored set ordered by display position. An empty table
// yields an empty set and no error.
func (r *TimerRepo) ReadAll(ctx context.Context) (domain.TimerSet, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, name, time_remaining, total_time, state
		FROM timers
		ORDER BY display_order ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to read timers: %w", err)
	}
	defer rows.Close()

	var timers domain.TimerSet
	for rows.Next() {
		var t domain.Timer
		var state string
		if err := rows.Scan(&t.ID, &t.Name, &t.TimeRemaining, &t.TotalTime, &state); err != nil {
			return nil, fmt.Errorf("failed to scan timer row: %w", err)
		}
		t.State = domain.State(state)
		timers = append(timers, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate timer rows: %w", err)
	}

	return timers, nil
}

// ReplaceAll overwrites the stored set, deriving display_order from sequence
// position. The delete and the inserts run as separate statements on purpose:
// a crash in between leaves the table transiently empty, an accepted risk of
// the snapshot-replacement design. updated_at is server-assigned.
func (r *TimerRepo) ReplaceAll(ctx context.Context, timers domain.TimerSet) error {
	if _, err := r.db.Pool.Exec(ctx, `DELETE FROM timers`); err != nil {
		return fmt.Errorf("failed to clear timers: %w", err)
	}

	if len(timers) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for i, t := range timers {
		batch.Queue(`
			INSERT INTO timers (id, name, time_remaining, total_time, state, display_order, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, NOW())
		`, t.ID, t.Name, t.TimeRemaining, t.TotalTime, string(t.State), i)
	}

	results := r.db.Pool.SendBatch(ctx, batch)
	defer func() {
		_ = results.Close()
	}()

	for range timers {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to insert timer: %w", err)
		}
	}

	return nil
}
