package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"studycompiler/internal/history"
)

// TestLedger_AppendRoundTrip verifies the sqlite backend creates its table
// on first use, appends one row per run, and stores ran_at as RFC3339Nano.
func TestLedger_AppendRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "history.db")

	led, err := history.New(ctx, history.Config{Kind: "sqlite", DSN: dsn})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ranAt := time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)
	rec := history.Record{
		RanAt:        ranAt,
		Project:      "Acme",
		CalendarFile: "Acme Calendar.xlsx",
		ScreenerFile: "Acme Screener.csv",
		CalendarRows: 10,
		ScreenerRows: 12,
		MergedRows:   9,
	}
	if err := led.Append(ctx, rec); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := led.Append(ctx, rec); err != nil {
		t.Fatalf("Append again: %v", err)
	}
	led.Close()

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()

	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM compile_runs`).Scan(&n); err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 2 {
		t.Fatalf("rows = %d, want 2", n)
	}

	var gotRanAt, project string
	var merged int
	err = db.QueryRow(`SELECT ran_at, project, merged_rows FROM compile_runs ORDER BY id LIMIT 1`).
		Scan(&gotRanAt, &project, &merged)
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if gotRanAt != ranAt.Format(time.RFC3339Nano) {
		t.Fatalf("ran_at = %q, want RFC3339Nano %q", gotRanAt, ranAt.Format(time.RFC3339Nano))
	}
	if project != "Acme" || merged != 9 {
		t.Fatalf("row = %q/%d", project, merged)
	}
}

// TestNew_UnknownKind verifies the factory rejects unregistered kinds.
func TestNew_UnknownKind(t *testing.T) {
	t.Parallel()

	if _, err := history.New(context.Background(), history.Config{Kind: "bogus"}); err == nil {
		t.Fatalf("expected error for unknown backend kind")
	}
}
