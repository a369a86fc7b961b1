package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"numcmp/domain/core"
	"numcmp/domain/stats"
	"numcmp/ports"
)

// RunRepository implements ports.RunLedgerPort on PostgreSQL.
type RunRepository struct {
	db *sqlx.DB
}

// NewRunRepository creates a PostgreSQL run ledger.
func NewRunRepository(db *sqlx.DB) ports.RunLedgerPort {
	return &RunRepository{db: db}
}

// Connect opens and pings a PostgreSQL connection for the ledger.
func Connect(databaseURL string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	return db, nil
}

// Migrate creates the ledger tables when they do not exist yet.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS comparison_runs (
			id UUID PRIMARY KEY,
			baseline_ref TEXT NOT NULL,
			target_ref TEXT NOT NULL,
			baseline_count INT NOT NULL,
			target_count INT NOT NULL,
			iterations INT NOT NULL,
			seed BIGINT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		);
		CREATE TABLE IF NOT EXISTS estimator_results (
			run_id UUID NOT NULL REFERENCES comparison_runs(id) ON DELETE CASCADE,
			position INT NOT NULL,
			name TEXT NOT NULL,
			baseline_stat DOUBLE PRECISION NOT NULL,
			target_stat DOUBLE PRECISION NOT NULL,
			sim_count INT NOT NULL,
			target_gt_count INT NOT NULL,
			target_lt_count INT NOT NULL,
			PRIMARY KEY (run_id, position)
		);
	`)
	return err
}

// SaveRun stores a run and its per-estimator results in one transaction.
func (r *RunRepository) SaveRun(ctx context.Context, run ports.ComparisonRun) error {
	touch(&run)

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO comparison_runs (id, baseline_ref, target_ref, baseline_count, target_count, iterations, seed, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, run.ID, run.BaselineRef, run.TargetRef, run.BaselineCount, run.TargetCount, run.Iterations, run.Seed, run.CreatedAt)
	if err != nil {
		return err
	}

	for i, res := range run.Results {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO estimator_results (run_id, position, name, baseline_stat, target_stat, sim_count, target_gt_count, target_lt_count)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`, run.ID, i, res.Name, res.BaselineStat, res.TargetStat, res.SimCount, res.TargetGtCount, res.TargetLtCount)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// GetRun loads one run with its results, in registry order.
func (r *RunRepository) GetRun(ctx context.Context, id uuid.UUID) (*ports.ComparisonRun, error) {
	var run ports.ComparisonRun
	err := r.db.GetContext(ctx, &run, `
		SELECT id, baseline_ref, target_ref, baseline_count, target_count, iterations, seed, created_at
		FROM comparison_runs
		WHERE id = $1
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, core.ErrRunNotFound
	}
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryxContext(ctx, `
		SELECT name, baseline_stat, target_stat, sim_count, target_gt_count, target_lt_count
		FROM estimator_results
		WHERE run_id = $1
		ORDER BY position
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var res stats.EstimatorResult
		if err := rows.Scan(&res.Name, &res.BaselineStat, &res.TargetStat, &res.SimCount, &res.TargetGtCount, &res.TargetLtCount); err != nil {
			return nil, err
		}
		run.Results = append(run.Results, res)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &run, nil
}

// ListRuns returns the most recent runs without their result rows.
func (r *RunRepository) ListRuns(ctx context.Context, limit int) ([]ports.ComparisonRun, error) {
	if limit <= 0 {
		limit = 50
	}

	runs := []ports.ComparisonRun{}
	err := r.db.SelectContext(ctx, &runs, `
		SELECT id, baseline_ref, target_ref, baseline_count, target_count, iterations, seed, created_at
		FROM comparison_runs
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	return runs, nil
}

// touch keeps created_at normalization in one place for callers that build
// runs without a timestamp.
func touch(run *ports.ComparisonRun) {
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}
}
