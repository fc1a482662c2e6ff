package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/kyswtn/linkprobe/internal/model"
)

// dbFileName is the SQLite file name inside the data directory.
const dbFileName = "linkprobe.db"

// CheckDB stores check runs and their outcomes in SQLite.
type CheckDB struct {
	db     *sql.DB
	dbPath string
}

// Run is a stored check run.
type Run struct {
	// ID is the run's UUID.
	ID string

	// Document is the path of the checked document.
	Document string

	// Started is when probing began.
	Started time.Time

	// Duration is the wall-clock time of the run.
	Duration time.Duration

	// Tally holds the final bucket counts.
	Tally model.Tally
}

// Open opens or creates the database in dbDir, creating the directory
// and schema as needed.
func Open(dbDir string) (*CheckDB, error) {
	if err := os.MkdirAll(dbDir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	dbPath := filepath.Join(dbDir, dbFileName)
	db, err := sql.Open("sqlite", dbPath+"?mode=rwc")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite supports a single writer; keeping one connection avoids
	// SQLITE_BUSY under concurrent use.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	cdb := &CheckDB{db: db, dbPath: dbPath}

	if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	if err := cdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return cdb, nil
}

// Close closes the database connection.
func (cdb *CheckDB) Close() error {
	return cdb.db.Close()
}

// createTables creates the schema if it doesn't exist.
func (cdb *CheckDB) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		document TEXT NOT NULL,
		started_at DATETIME NOT NULL,
		duration_ms INTEGER NOT NULL,
		good INTEGER NOT NULL,
		bad INTEGER NOT NULL,
		error INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at);
	CREATE INDEX IF NOT EXISTS idx_runs_document ON runs(document);

	CREATE TABLE IF NOT EXISTS outcomes (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		address TEXT NOT NULL,
		status INTEGER NOT NULL,
		code INTEGER NOT NULL,
		reason TEXT NOT NULL,
		duration_ms INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_outcomes_run ON outcomes(run_id);
	CREATE INDEX IF NOT EXISTS idx_outcomes_address ON outcomes(address);
	`

	_, err := cdb.db.ExecContext(context.Background(), schema)
	return err
}

// SaveRun stores a completed run with all its outcomes in one
// transaction and returns the generated run ID.
func (cdb *CheckDB) SaveRun(ctx context.Context, run Run, outcomes []model.Outcome) (string, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}

	tx, err := cdb.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // No-op after commit

	_, err = tx.ExecContext(ctx, `
	INSERT INTO runs (id, document, started_at, duration_ms, good, bad, error)
	VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.Document,
		run.Started.UTC().Format(time.RFC3339Nano),
		run.Duration.Milliseconds(),
		run.Tally.Good,
		run.Tally.Bad,
		run.Tally.Error,
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert run: %w", err)
	}

	for _, o := range outcomes {
		_, err = tx.ExecContext(ctx, `
		INSERT INTO outcomes (run_id, address, status, code, reason, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?)`,
			run.ID,
			o.Address,
			int(o.Status),
			o.Code,
			o.Reason,
			o.Duration.Milliseconds(),
		)
		if err != nil {
			return "", fmt.Errorf("failed to insert outcome: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit run: %w", err)
	}
	return run.ID, nil
}

// RecentRuns returns the most recent runs, newest first.
func (cdb *CheckDB) RecentRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := cdb.db.QueryContext(ctx, `
	SELECT id, document, started_at, duration_ms, good, bad, error
	FROM runs
	ORDER BY started_at DESC
	LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			run        Run
			started    string
			durationMS int64
		)
		if err := rows.Scan(&run.ID, &run.Document, &started, &durationMS,
			&run.Tally.Good, &run.Tally.Bad, &run.Tally.Error); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		run.Started, err = time.Parse(time.RFC3339Nano, started)
		if err != nil {
			return nil, fmt.Errorf("failed to parse run timestamp: %w", err)
		}
		run.Duration = time.Duration(durationMS) * time.Millisecond
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// RunOutcomes returns the stored outcomes for a run, in insertion order.
func (cdb *CheckDB) RunOutcomes(ctx context.Context, runID string) ([]model.Outcome, error) {
	rows, err := cdb.db.QueryContext(ctx, `
	SELECT address, status, code, reason, duration_ms
	FROM outcomes
	WHERE run_id = ?
	ORDER BY id`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query outcomes: %w", err)
	}
	defer rows.Close()

	var outcomes []model.Outcome
	for rows.Next() {
		var (
			o          model.Outcome
			status     int
			durationMS int64
		)
		if err := rows.Scan(&o.Address, &status, &o.Code, &o.Reason, &durationMS); err != nil {
			return nil, fmt.Errorf("failed to scan outcome: %w", err)
		}
		o.Status = model.Status(status)
		o.Duration = time.Duration(durationMS) * time.Millisecond
		outcomes = append(outcomes, o)
	}
	return outcomes, rows.Err()
}
