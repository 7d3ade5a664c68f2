// Package compile implements the merge compiler: it standardizes a calendar
// table and a screener table against their role schemas, joins them on a
// normalized email key, and produces the single reviewed deliverable table.
package compile

import (
	"fmt"
	"strings"

	"studycompiler/internal/normalize"
	"studycompiler/internal/schema"
	"studycompiler/internal/table"
)

// emailField is the linking field: it drives the join and is excluded from
// the deliverable.
const emailField = "EMAIL"

// headOrder is the fixed head sequence of the output; screener answer
// columns follow in their existing relative order.
var headOrder = []string{
	"User name",
	"Start Time",
	"End Time",
	"Task Link",
	"Moderator Link",
	"Observers Public Link",
}

// Options control compiler diagnostics; the zero value is silent.
type Options struct {
	// OnMissing receives (role, target) for every canonical column that had
	// to be synthesized as all-null during normalization.
	OnMissing func(role, target string)
}

// Compile merges a calendar table with a screener table.
//
// The calendar side is restricted to its canonical columns; from the screener
// side only the join key and the free-form answer columns carry forward
// (TESTER/DATE/STATUS/ratings are dropped). The join is a plain inner join on
// trim+lowercase of EMAIL, preserving calendar row order. Fan-out is
// intentional: a tester screened twice yields two output rows per calendar
// row. Rows are then deduplicated on (User name, Start Time) keeping the
// first occurrence, and EMAIL never reaches the output.
//
// Missing canonical columns and an empty join are not errors; they degrade
// to null columns and a zero-row table respectively.
func Compile(cal, scr *table.Table, opt Options) *table.Table {
	calSchema := schema.Calendar()
	scrSchema := schema.Screener()

	calStd := normalize.Coalesce(cal, calSchema, missingOpt(opt, "calendar"))
	calStd = calStd.Select(calSchema.Targets())

	scrStd := normalize.Coalesce(scr, scrSchema, missingOpt(opt, "screener"))
	answers, answerIx := answerColumns(scrStd.Headers, scrSchema.Targets())

	calKeys := joinKeys(calStd.Column(emailField))
	scrKeys := joinKeys(scrStd.Column(emailField))

	// Screener rows indexed by key, preserving screener row order per key.
	byKey := make(map[string][]int)
	for i, k := range scrKeys {
		if k == "" {
			continue
		}
		byKey[k] = append(byKey[k], i)
	}

	headIx := make([]int, len(headOrder))
	for i, name := range headOrder {
		headIx[i] = indexOf(calStd.Headers, name)
	}

	out := table.New(append(append([]string{}, headOrder...), answers...))

	// Output positions 0 and 1 are User name and Start Time, the dedup key.
	seen := make(map[string]bool)
	for i, row := range calStd.Rows {
		k := calKeys[i]
		if k == "" {
			continue
		}
		for _, j := range byKey[k] {
			cells := make([]any, 0, len(out.Headers))
			for hi, ix := range headIx {
				v := row[ix]
				if hi == 0 {
					v = trimCell(v)
				}
				cells = append(cells, v)
			}
			for _, ix := range answerIx {
				cells = append(cells, scrStd.Rows[j][ix])
			}
			dk := cellKey(cells[0]) + "\x1f" + cellKey(cells[1])
			if seen[dk] {
				continue
			}
			seen[dk] = true
			out.Rows = append(out.Rows, cells)
		}
	}
	return out
}

func missingOpt(opt Options, role string) normalize.Options {
	if opt.OnMissing == nil {
		return normalize.Options{}
	}
	return normalize.Options{OnMissing: func(target string) { opt.OnMissing(role, target) }}
}

// answerColumns returns the screener headers outside the canonical exclusion
// set, in their existing relative order, paired with their column indexes.
// Indexes are resolved positionally so duplicate answer headers keep their
// own cells instead of all reading from the first occurrence.
func answerColumns(headers, exclude []string) (names []string, ix []int) {
	drop := make(map[string]bool, len(exclude))
	for _, e := range exclude {
		drop[e] = true
	}
	for i, h := range headers {
		if !drop[h] {
			names = append(names, h)
			ix = append(ix, i)
		}
	}
	return names, ix
}

// joinKeys derives the normalized email key per row: trimmed and lowercased.
// Nil or empty values yield "" and never match anything.
func joinKeys(emails []any) []string {
	out := make([]string, len(emails))
	for i, v := range emails {
		out[i] = JoinKey(v)
	}
	return out
}

// JoinKey normalizes one email cell into its join-key form. It is idempotent
// and insensitive to case and surrounding whitespace.
func JoinKey(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.ToLower(strings.TrimSpace(t))
	default:
		return strings.ToLower(strings.TrimSpace(fmt.Sprint(t)))
	}
}

// trimCell trims string cells; nil and non-strings pass through unchanged.
func trimCell(v any) any {
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s)
	}
	return v
}

// cellKey is the canonical string form of a cell for dedup comparison.
func cellKey(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}

func indexOf(ss []string, s string) int {
	for i, v := range ss {
		if v == s {
			return i
		}
	}
	return -1
}
