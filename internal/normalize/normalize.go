// Package normalize implements the column normalizer: it rewrites an
// arbitrary input table so that every canonical target of a role schema is
// present exactly once, renaming matched source columns in place and
// synthesizing all-null columns for targets with no plausible source.
package normalize

import (
	"strings"

	"studycompiler/internal/schema"
	"studycompiler/internal/table"
)

// Options control normalizer diagnostics. The zero value keeps the default
// lenient behavior: a missing target silently degrades to an all-null column.
type Options struct {
	// OnMissing is called once per target that had no exact or substring
	// match and was synthesized as all-null. Nil disables the callback.
	OnMissing func(target string)
}

// Coalesce maps the table's headers onto the schema's canonical targets.
//
// Matching runs in two phases over the whole schema:
//  1. Exact pass, targets in schema order: a case-insensitive alias match
//     (aliases in list order; for a given alias, the earliest matching header
//     wins) claims its header.
//  2. Substring pass, for targets still unmatched: the first unclaimed
//     header, in original order, whose lowercased text contains any alias's
//     lowercased text.
//
// The exact pass completes for every target before any substring claim, so
// an earlier target cannot substring-steal a header that exactly matches a
// later target's alias. A claimed header is never renamed away again.
// Targets unmatched by both passes get an appended all-null column. Headers
// never claimed by any target keep their original names and values; this is
// how screener "answer" columns survive.
//
// The input table is not mutated.
func Coalesce(t *table.Table, s schema.Schema, opt Options) *table.Table {
	out := t.Clone()
	claimed := make(map[int]bool, len(s))

	found := make([]int, len(s))
	for fi, f := range s {
		found[fi] = matchExact(out.Headers, claimed, f.Aliases)
		if found[fi] >= 0 {
			claimed[found[fi]] = true
		}
	}
	for fi, f := range s {
		if found[fi] >= 0 {
			continue
		}
		found[fi] = matchSubstring(out.Headers, claimed, f.Aliases)
		if found[fi] >= 0 {
			claimed[found[fi]] = true
		}
	}

	for fi, f := range s {
		ix := found[fi]
		if ix < 0 {
			out.AppendNullColumn(f.Target)
			if opt.OnMissing != nil {
				opt.OnMissing(f.Target)
			}
			continue
		}
		if out.Headers[ix] != f.Target {
			out.RenameAt(ix, f.Target)
		}
	}
	return out
}

func matchExact(headers []string, claimed map[int]bool, aliases []string) int {
	for _, a := range aliases {
		for i, h := range headers {
			if claimed[i] {
				continue
			}
			if strings.EqualFold(h, a) {
				return i
			}
		}
	}
	return -1
}

func matchSubstring(headers []string, claimed map[int]bool, aliases []string) int {
	for i, h := range headers {
		if claimed[i] {
			continue
		}
		lh := strings.ToLower(h)
		for _, a := range aliases {
			if strings.Contains(lh, strings.ToLower(a)) {
				return i
			}
		}
	}
	return -1
}
