// Package history records one row per compile run in an append-only ledger.
//
// The ledger is strictly optional and strictly best-effort: a broken or
// unreachable backend must never fail a compile. Backends register themselves
// from init() (see history/sqlite and history/postgres); importing
// history/all pulls in every built-in backend.
package history

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Record is one compile run.
type Record struct {
	RanAt        time.Time
	Project      string
	CalendarFile string
	ScreenerFile string
	CalendarRows int
	ScreenerRows int
	MergedRows   int
}

// Config selects and configures a ledger backend.
//
// Edge cases:
//   - Kind must match a registered backend kind.
//   - DSN is passed through to the backend factory; validation is
//     backend-specific.
type Config struct {
	Kind string
	DSN  string
}

// Ledger is the backend-agnostic append interface.
type Ledger interface {
	// Append records one run. Implementations create their table on first
	// use, so Append is safe against a fresh DSN.
	Append(ctx context.Context, rec Record) error

	// Close releases backend resources. Call once at process shutdown.
	Close()
}

type factory func(ctx context.Context, cfg Config) (Ledger, error)

var (
	regMu     sync.RWMutex
	factories = map[string]factory{}
)

// Register registers a ledger backend under a kind (e.g. "sqlite"). Call it
// from an init() function in the backend package.
func Register(kind string, f factory) {
	if kind == "" {
		panic("history: Register called with empty kind")
	}
	if f == nil {
		panic("history: Register called with nil factory")
	}
	regMu.Lock()
	defer regMu.Unlock()
	if _, dup := factories[kind]; dup {
		panic("history: Register called twice for kind " + kind)
	}
	factories[kind] = f
}

// New constructs a ledger for the configured kind.
func New(ctx context.Context, cfg Config) (Ledger, error) {
	regMu.RLock()
	f, ok := factories[cfg.Kind]
	regMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("history: unknown backend kind %q", cfg.Kind)
	}
	return f(ctx, cfg)
}
