// Package metrics is a minimal counter seam. Core code depends only on this
// package; concrete backends (Datadog) are selected at startup and plugged in
// via SetBackend. The default backend is a nop, so instrumentation is free
// when metrics are disabled.
package metrics

import "sync"

// Labels are metric dimension tags.
type Labels map[string]string

// Backend receives counter increments and flushes them somewhere.
type Backend interface {
	IncCounter(name string, delta float64, labels Labels)
	Flush() error
}

// Counter names used by the compiler.
const (
	RunsTotal = "compile_runs_total"
	RowsTotal = "compile_rows_total" // labeled kind: calendar|screener|merged
)

type nopBackend struct{}

func (nopBackend) IncCounter(string, float64, Labels) {}
func (nopBackend) Flush() error                       { return nil }

var (
	mu      sync.RWMutex
	backend Backend = nopBackend{}
)

// SetBackend installs the process-wide backend.
func SetBackend(b Backend) {
	mu.Lock()
	defer mu.Unlock()
	if b == nil {
		backend = nopBackend{}
		return
	}
	backend = b
}

// IncCounter increments a named counter on the installed backend.
func IncCounter(name string, delta float64, labels Labels) {
	mu.RLock()
	b := backend
	mu.RUnlock()
	b.IncCounter(name, delta, labels)
}

// Flush flushes the installed backend.
func Flush() error {
	mu.RLock()
	b := backend
	mu.RUnlock()
	return b.Flush()
}
