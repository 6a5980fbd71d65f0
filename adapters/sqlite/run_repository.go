package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"confmat/domain/core"
	"confmat/ports"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id                 TEXT PRIMARY KEY,
	input_path         TEXT NOT NULL,
	output_path        TEXT NOT NULL,
	label_count        INTEGER NOT NULL,
	total_tp           INTEGER NOT NULL,
	total_fp           INTEGER NOT NULL,
	total_tn           INTEGER NOT NULL,
	total_fn           INTEGER NOT NULL,
	mean_sensitivity   REAL NOT NULL,
	median_sensitivity REAL NOT NULL,
	mean_specificity   REAL NOT NULL,
	median_specificity REAL NOT NULL,
	created_at         TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);
`

// RunRepositoryImpl implements RunLedgerPort for SQLite
type RunRepositoryImpl struct {
	db *sqlx.DB
}

// Open connects to the SQLite database at dsn, applies pragmas and
// creates the schema.
func Open(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("%s: %w", p, err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return db, nil
}

// NewRunRepository creates a new SQLite run repository
func NewRunRepository(db *sqlx.DB) ports.RunLedgerPort {
	return &RunRepositoryImpl{db: db}
}

// SaveRun appends a completed run to the ledger
func (r *RunRepositoryImpl) SaveRun(ctx context.Context, record ports.RunRecord) error {
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO runs (
			id, input_path, output_path, label_count,
			total_tp, total_fp, total_tn, total_fn,
			mean_sensitivity, median_sensitivity, mean_specificity, median_specificity,
			created_at
		) VALUES (
			:id, :input_path, :output_path, :label_count,
			:total_tp, :total_fp, :total_tn, :total_fn,
			:mean_sensitivity, :median_sensitivity, :mean_specificity, :median_specificity,
			:created_at
		)
	`, record)

	return err
}

// ListRuns returns the most recent runs, newest first
func (r *RunRepositoryImpl) ListRuns(ctx context.Context, limit int) ([]ports.RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	var records []ports.RunRecord
	err := r.db.SelectContext(ctx, &records, `
		SELECT id, input_path, output_path, label_count,
		       total_tp, total_fp, total_tn, total_fn,
		       mean_sensitivity, median_sensitivity, mean_specificity, median_specificity,
		       created_at
		FROM runs
		ORDER BY created_at DESC, id
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}

	return records, nil
}

// GetRun retrieves a run by its ID
func (r *RunRepositoryImpl) GetRun(ctx context.Context, id uuid.UUID) (*ports.RunRecord, error) {
	var record ports.RunRecord
	err := r.db.GetContext(ctx, &record, `
		SELECT id, input_path, output_path, label_count,
		       total_tp, total_fp, total_tn, total_fn,
		       mean_sensitivity, median_sensitivity, mean_specificity, median_specificity,
		       created_at
		FROM runs
		WHERE id = ?
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, core.ErrRunNotFound
	}
	if err != nil {
		return nil, err
	}

	return &record, nil
}
