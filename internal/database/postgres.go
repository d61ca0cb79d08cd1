package database

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DB wraps the connection pool.
type DB struct {
	Pool *pgxpool.Pool
}

// Connect opens a connection pool. An unreachable database is not an error:
// the store being down degrades bootstrap to the fallback cache, and the
// pool reconnects per-operation once the database returns.
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		slog.Warn("Durable store unreachable, continuing degraded", "error", err)
	}

	return &DB{Pool: pool}, nil
}

// HealthCheck verifies database connectivity.
func (db *DB) HealthCheck(ctx context.Context) error {
	return db.Pool.Ping(ctx)
}

// Close releases the pool.
func (db *DB) Close() {
	db.Pool.Close()
}

// RunMigrations creates the timers table if it does not exist.
func RunMigrations(ctx context.Context, db *DB) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS timers (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			time_remaining INTEGER NOT NULL,
			total_time INTEGER NOT NULL,
			state TEXT NOT NULL CHECK (state IN ('stopped', 'running', 'paused')),
			display_order INTEGER NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_timers_display_order ON timers(display_order)`,
	}

	for _, migration := range migrations {
		if _, err := db.Pool.Exec(ctx, migration); err != nil {
			return fmt.Errorf("failed to run migration: %w", err)
		}
	}

	slog.Info("Database migrations completed")
	return nil
}
