package recorder

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"MarketScope/internal/logger"
)

// SQLiteRecorder persists run snapshots to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so external tools can read while a run writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	logger.L().Info().Str("path", dbPath).Msg("sqlite recorder opened")
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS run_snapshots (
			id              INTEGER PRIMARY KEY AUTOINCREMENT,
			run_started_at  INTEGER NOT NULL,
			recorded_at     INTEGER NOT NULL,
			ticker          TEXT NOT NULL,
			row_count       INTEGER,
			missing_cells   INTEGER,
			outliers        INTEGER,
			unusual_returns INTEGER,
			mean_return     REAL,
			min_return      REAL,
			max_return      REAL,
			last_close      REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_run_started ON run_snapshots(run_started_at)`,
		`CREATE INDEX IF NOT EXISTS idx_run_ticker ON run_snapshots(ticker)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// RecordRun inserts one row per ticker for the run.
func (r *SQLiteRecorder) RecordRun(startedAt time.Time, snapshots []RunSnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().Unix()
	for _, snap := range snapshots {
		_, err := tx.Exec(`INSERT INTO run_snapshots
			(run_started_at, recorded_at, ticker, row_count, missing_cells, outliers,
			 unusual_returns, mean_return, min_return, max_return, last_close)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			startedAt.Unix(), now, snap.Ticker, snap.Rows, snap.MissingCells,
			snap.Outliers, snap.UnusualReturns, snap.MeanReturn, snap.MinReturn,
			snap.MaxReturn, snap.LastClose)
		if err != nil {
			return fmt.Errorf("insert snapshot for %s: %w", snap.Ticker, err)
		}
	}
	return tx.Commit()
}

// Close closes the underlying database.
func (r *SQLiteRecorder) Close() error {
	return r.db.Close()
}
