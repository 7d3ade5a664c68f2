// Package sqlite implements the run-history ledger on a local SQLite file.
//
// SQLite has no native timestamp type; ran_at is stored as an RFC3339Nano
// string for reliable round trips and easy debugging.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"studycompiler/internal/history"
)

const createSQL = `CREATE TABLE IF NOT EXISTS compile_runs (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	ran_at        TEXT NOT NULL,
	project       TEXT NOT NULL,
	calendar_file TEXT NOT NULL,
	screener_file TEXT NOT NULL,
	calendar_rows INTEGER NOT NULL,
	screener_rows INTEGER NOT NULL,
	merged_rows   INTEGER NOT NULL
)`

type ledger struct {
	db *sql.DB
}

func init() {
	history.Register("sqlite", New)
}

// New opens (or creates) the SQLite ledger at cfg.DSN and ensures the
// compile_runs table exists.
func New(ctx context.Context, cfg history.Config) (history.Ledger, error) {
	db, err := sql.Open("sqlite", cfg.DSN)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	if _, err := db.ExecContext(ctx, createSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create compile_runs: %w", err)
	}
	return &ledger{db: db}, nil
}

func (l *ledger) Append(ctx context.Context, rec history.Record) error {
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO compile_runs
			(ran_at, project, calendar_file, screener_file, calendar_rows, screener_rows, merged_rows)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.RanAt.UTC().Format(time.RFC3339Nano),
		rec.Project,
		rec.CalendarFile,
		rec.ScreenerFile,
		rec.CalendarRows,
		rec.ScreenerRows,
		rec.MergedRows,
	)
	if err != nil {
		return fmt.Errorf("insert compile run: %w", err)
	}
	return nil
}

func (l *ledger) Close() { _ = l.db.Close() }
