package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists batch run history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS batch_runs (
			id               TEXT PRIMARY KEY,
			started_at       INTEGER NOT NULL,
			duration_ms      INTEGER,
			folder           TEXT,
			max_files        INTEGER,
			algorithm        TEXT,
			prediction_count INTEGER,
			files            INTEGER,
			status           TEXT NOT NULL,
			error_kind       TEXT,
			error            TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_batch_runs_started ON batch_runs(started_at)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordBatch(run *BatchRun) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO batch_runs
		(id, started_at, duration_ms, folder, max_files, algorithm, prediction_count,
		 files, status, error_kind, error)
		VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
		run.ID, run.StartedAt.UnixMilli(), run.Duration.Milliseconds(), run.Folder,
		run.MaxFiles, run.Algorithm, run.PredictionCount,
		run.Files, run.Status, run.ErrorKind, run.Error,
	)
	return err
}

// RecentBatches returns up to limit runs, newest first.
func (r *SQLiteRecorder) RecentBatches(limit int) ([]BatchRun, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows, err := r.db.Query(`SELECT id, started_at, duration_ms, folder, max_files, algorithm,
		prediction_count, files, status, error_kind, error
		FROM batch_runs ORDER BY started_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query batch runs: %w", err)
	}
	defer rows.Close()

	var runs []BatchRun
	for rows.Next() {
		var (
			run              BatchRun
			startedMs, durMs int64
		)
		if err := rows.Scan(&run.ID, &startedMs, &durMs, &run.Folder, &run.MaxFiles, &run.Algorithm,
			&run.PredictionCount, &run.Files, &run.Status, &run.ErrorKind, &run.Error); err != nil {
			return nil, fmt.Errorf("scan batch run: %w", err)
		}
		run.StartedAt = time.UnixMilli(startedMs).UTC()
		run.Duration = time.Duration(durMs) * time.Millisecond
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
