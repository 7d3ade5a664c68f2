// Command compile merges a calendar export with a screener export into a
// single reviewed spreadsheet.
//
// Usage:
//
//	compile -calendar cal.xlsx -screener scr.csv [-out DIR]
//	compile "Acme Calendar.xlsx" "Acme Screener.csv"
//
// With two positional files the roles are guessed from the filenames
// ("calendar"/"calender" vs "screener"); the flags override the guess.
package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"studycompiler/internal/compile"
	"studycompiler/internal/history"
	"studycompiler/internal/metrics"
	"studycompiler/internal/metrics/datadog"
	csvparser "studycompiler/internal/parser/csv"
	"studycompiler/internal/parser/htmltable"
	xlsxparser "studycompiler/internal/parser/xlsx"
	"studycompiler/internal/schema"
	"studycompiler/internal/sniff"
	"studycompiler/internal/table"
	"studycompiler/internal/xlsxout"

	// register all ledger backends with the history factory.
	_ "studycompiler/internal/history/all"
)

type options struct {
	calendarPath string
	screenerPath string
	outDir       string

	historyBackend string
	historyDSN     string

	verbose bool
}

func main() {
	var (
		opt               options
		metricsBackendFlg string
	)

	flag.StringVar(&opt.calendarPath, "calendar", "", "calendar export (xlsx/csv/html)")
	flag.StringVar(&opt.screenerPath, "screener", "", "screener export (xlsx/csv/html)")
	flag.StringVar(&opt.outDir, "out", ".", "output directory for the compiled workbook")
	flag.StringVar(&opt.historyBackend, "history-backend", "", "run-history ledger backend (sqlite, postgres; empty disables)")
	flag.StringVar(&opt.historyDSN, "history-dsn", "", "run-history DSN (file path for sqlite, conn string for postgres)")
	flag.StringVar(&metricsBackendFlg, "metrics-backend", "none", "metrics backend to use (datadog, none)")
	flag.BoolVar(&opt.verbose, "v", false, "enable verbose logs")

	flag.Parse()

	var err error
	opt.calendarPath, opt.screenerPath, err = resolveRoles(opt.calendarPath, opt.screenerPath, flag.Args())
	if err != nil {
		fatalf("%v", err)
	}

	// Decide metrics backend: flag → env → default.
	backendName := metricsBackendFlg
	if backendName == "" {
		backendName = os.Getenv("METRICS_BACKEND")
	}
	switch backendName {
	case "datadog":
		b, err := datadog.NewBackend(context.Background(), datadog.Options{
			JobName: "compile",
			Tags:    datadog.ParseTagsCSV(os.Getenv("METRICS_TAGS")),
		})
		if err != nil {
			log.Printf("metrics: failed to init datadog backend: %v; using nop", err)
		} else {
			metrics.SetBackend(b)
			defer func() {
				if err := b.Close(); err != nil {
					log.Printf("metrics: datadog close/flush error: %v", err)
				}
			}()
		}

	case "", "none":
		// metrics disabled; nop backend remains

	default:
		log.Printf("metrics: unknown backend %q; metrics disabled", backendName)
	}

	if err := run(context.Background(), opt); err != nil {
		log.Fatalf("%v", err)
	}
}

// resolveRoles decides which path is the calendar and which the screener.
// Flags win; for two positional files the filename heuristic fills the gaps,
// and a single unassigned file takes the remaining role.
func resolveRoles(calFlag, scrFlag string, args []string) (cal, scr string, err error) {
	cal, scr = calFlag, scrFlag
	if cal != "" && scr != "" {
		return cal, scr, nil
	}

	if len(args) != 2 {
		return "", "", fmt.Errorf("need -calendar and -screener flags, or exactly two input files (got %d)", len(args))
	}

	calGuess, scrGuess := schema.DetectRoles(args)
	if cal == "" {
		cal = calGuess
	}
	if scr == "" {
		scr = scrGuess
	}
	if cal == "" && scr == "" {
		return "", "", fmt.Errorf("cannot tell calendar from screener in %v; use -calendar and -screener", args)
	}

	// One role still open: the file not taken by the other role fills it.
	for _, a := range args {
		if a == cal || a == scr {
			continue
		}
		if cal == "" {
			cal = a
		} else if scr == "" {
			scr = a
		}
	}
	if cal == "" || scr == "" || cal == scr {
		return "", "", fmt.Errorf("cannot tell calendar from screener in %v; use -calendar and -screener", args)
	}
	return cal, scr, nil
}

func run(ctx context.Context, opt options) error {
	start := time.Now()

	cal, err := loadTable(opt.calendarPath)
	if err != nil {
		return fmt.Errorf("calendar: %w", err)
	}
	scr, err := loadTable(opt.screenerPath)
	if err != nil {
		return fmt.Errorf("screener: %w", err)
	}

	if opt.verbose {
		log.Printf("calendar: %s (%d rows, %d columns)", opt.calendarPath, cal.NumRows(), len(cal.Headers))
		log.Printf("screener: %s (%d rows, %d columns)", opt.screenerPath, scr.NumRows(), len(scr.Headers))
	}

	metrics.IncCounter(metrics.RowsTotal, float64(cal.NumRows()), metrics.Labels{"kind": "calendar"})
	metrics.IncCounter(metrics.RowsTotal, float64(scr.NumRows()), metrics.Labels{"kind": "screener"})

	var copt compile.Options
	if opt.verbose {
		copt.OnMissing = func(role, target string) {
			log.Printf("%s: no column matched %q; filled with nulls", role, target)
		}
	}
	merged := compile.Compile(cal, scr, copt)

	project := schema.ProjectLabel(opt.calendarPath)
	outPath := filepath.Join(opt.outDir, xlsxout.FileName(project))
	if err := xlsxout.Write(outPath, merged); err != nil {
		return fmt.Errorf("write deliverable: %w", err)
	}

	metrics.IncCounter(metrics.RowsTotal, float64(merged.NumRows()), metrics.Labels{"kind": "merged"})
	metrics.IncCounter(metrics.RunsTotal, 1, nil)

	recordRun(ctx, opt, project, cal.NumRows(), scr.NumRows(), merged.NumRows())

	fmt.Printf("wrote %s (%d rows)\n", outPath, merged.NumRows())
	if opt.verbose {
		log.Printf("completed in %s", time.Since(start).Truncate(time.Millisecond))
	}
	return nil
}

// recordRun appends the run to the history ledger when one is configured.
// Ledger failures log a warning and never fail the compile.
func recordRun(ctx context.Context, opt options, project string, calRows, scrRows, mergedRows int) {
	if opt.historyBackend == "" {
		return
	}
	led, err := history.New(ctx, history.Config{Kind: opt.historyBackend, DSN: opt.historyDSN})
	if err != nil {
		log.Printf("history: init %q: %v", opt.historyBackend, err)
		return
	}
	defer led.Close()

	rec := history.Record{
		RanAt:        time.Now(),
		Project:      project,
		CalendarFile: filepath.Base(opt.calendarPath),
		ScreenerFile: filepath.Base(opt.screenerPath),
		CalendarRows: calRows,
		ScreenerRows: scrRows,
		MergedRows:   mergedRows,
	}
	if err := led.Append(ctx, rec); err != nil {
		log.Printf("history: append: %v", err)
	}
}

// loadTable reads one input file fully into memory (row counts are bounded
// by manual data entry), sniffs its format, and parses it into a table.
func loadTable(path string) (*table.Table, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	format, err := sniff.Detect(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	var t *table.Table
	switch format {
	case sniff.FormatXLSX:
		t, err = xlsxparser.Read(bytes.NewReader(b))
	case sniff.FormatHTML:
		t, err = htmltable.Read(bytes.NewReader(b))
	default:
		t, err = csvparser.Read(bytes.NewReader(b), sniff.Delimiter(b))
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}
