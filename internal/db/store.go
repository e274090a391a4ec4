// Package db persists run history in PostgreSQL: one row per run, per
// posting outcome, and per synthesized answer. The store is optional;
// the bot runs fine without a database.
package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jonathan/auto-applier/internal/types"
)

// schema bootstraps the tables on connect. Idempotent.
const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	mode TEXT NOT NULL,
	status TEXT NOT NULL DEFAULT 'running',
	started_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	completed_at TIMESTAMPTZ
);
CREATE TABLE IF NOT EXISTS applications (
	id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	run_id UUID NOT NULL REFERENCES runs(id),
	title TEXT NOT NULL,
	company TEXT NOT NULL,
	location TEXT NOT NULL,
	link TEXT NOT NULL,
	status TEXT NOT NULL,
	reason TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE TABLE IF NOT EXISTS answers (
	id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	run_id UUID NOT NULL REFERENCES runs(id),
	question_hash TEXT NOT NULL,
	question TEXT NOT NULL,
	kind TEXT NOT NULL,
	answer TEXT NOT NULL,
	source TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`

// Store wraps a PostgreSQL connection pool.
type Store struct {
	pool *pgxpool.Pool
}

// Connect establishes the pool, verifies the connection and bootstraps
// the schema.
func Connect(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to bootstrap schema: %w", err)
	}
	return &Store{pool: pool}, nil
}

// Close closes the connection pool.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// CreateRun records the start of a run and returns its ID.
func (s *Store) CreateRun(ctx context.Context, mode string) (uuid.UUID, error) {
	var id uuid.UUID
	err := s.pool.QueryRow(ctx,
		`INSERT INTO runs (mode) VALUES ($1) RETURNING id`,
		mode,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create run: %w", err)
	}
	return id, nil
}

// CompleteRun marks a run finished with its final status.
func (s *Store) CompleteRun(ctx context.Context, runID uuid.UUID, status string) error {
	_, err := s.pool.Exec(ctx,
		`UPDATE runs SET status = $1, completed_at = NOW() WHERE id = $2`,
		status, runID,
	)
	if err != nil {
		return fmt.Errorf("failed to complete run: %w", err)
	}
	return nil
}

// Bind scopes a recorder to one run. The recorder satisfies both the
// application and answer recorder interfaces of the drive loop.
func (s *Store) Bind(runID uuid.UUID) *RunRecorder {
	return &RunRecorder{store: s, runID: runID}
}

// RunRecorder writes posting outcomes and answers for a single run.
type RunRecorder struct {
	store *Store
	runID uuid.UUID
}

// RecordApplication stores one terminal posting outcome.
func (r *RunRecorder) RecordApplication(ctx context.Context, job *types.Job, status, reason string) error {
	_, err := r.store.pool.Exec(ctx,
		`INSERT INTO applications (run_id, title, company, location, link, status, reason)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		r.runID, job.Title, job.Company, job.Location, job.Link, status, reason,
	)
	if err != nil {
		return fmt.Errorf("failed to record application: %w", err)
	}
	return nil
}

// RecordAnswer stores one filled field.
func (r *RunRecorder) RecordAnswer(ctx context.Context, job *types.Job, field types.Field, answer types.Answer) error {
	_, err := r.store.pool.Exec(ctx,
		`INSERT INTO answers (run_id, question_hash, question, kind, answer, source)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		r.runID, answer.QuestionHash, field.Label, string(field.Kind), answer.Value(), string(answer.Source),
	)
	if err != nil {
		return fmt.Errorf("failed to record answer: %w", err)
	}
	return nil
}
