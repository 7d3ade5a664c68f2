// Package postgres implements the run-history ledger on Postgres, for teams
// sharing one ledger across machines.
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"studycompiler/internal/history"
)

const createSQL = `CREATE TABLE IF NOT EXISTS compile_runs (
	id            BIGSERIAL PRIMARY KEY,
	ran_at        TIMESTAMPTZ NOT NULL,
	project       TEXT NOT NULL,
	calendar_file TEXT NOT NULL,
	screener_file TEXT NOT NULL,
	calendar_rows INT NOT NULL,
	screener_rows INT NOT NULL,
	merged_rows   INT NOT NULL
)`

type ledger struct {
	pool *pgxpool.Pool
}

func init() {
	history.Register("postgres", New)
}

// New connects to cfg.DSN and ensures the compile_runs table exists.
func New(ctx context.Context, cfg history.Config) (history.Ledger, error) {
	pool, err := pgxpool.New(ctx, cfg.DSN)
	if err != nil {
		return nil, err
	}
	if _, err := pool.Exec(ctx, createSQL); err != nil {
		pool.Close()
		return nil, fmt.Errorf("create compile_runs: %w", err)
	}
	return &ledger{pool: pool}, nil
}

func (l *ledger) Append(ctx context.Context, rec history.Record) error {
	_, err := l.pool.Exec(ctx,
		`INSERT INTO compile_runs
			(ran_at, project, calendar_file, screener_file, calendar_rows, screener_rows, merged_rows)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		rec.RanAt.UTC(),
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

func (l *ledger) Close() { l.pool.Close() }
