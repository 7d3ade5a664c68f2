// Package schema defines the canonical column schemas for the two input
// roles (calendar and screener), plus the filename heuristics that surround
// them: role detection and project-label derivation.
//
// Schemas are explicit ordered data, not hidden constants, so tests and
// callers can swap them per role.
package schema

import (
	"path/filepath"
	"regexp"
	"strings"
)

// Field maps one canonical target name to its accepted alias spellings.
// Alias order matters: earlier aliases win exact matching.
type Field struct {
	Target  string
	Aliases []string
}

// Schema is an ordered list of canonical fields for one input role.
// Field order matters: earlier targets claim source columns first.
type Schema []Field

// Targets returns the canonical field names in schema order.
func (s Schema) Targets() []string {
	out := make([]string, len(s))
	for i, f := range s {
		out[i] = f.Target
	}
	return out
}

// Calendar returns the canonical schema for calendar exports.
func Calendar() Schema {
	return Schema{
		{Target: "User name", Aliases: []string{"User name", "User Name", "Tester Name", "Tester"}},
		{Target: "EMAIL", Aliases: []string{"EMAIL", "Email", "Tester Email", "Participant Email"}},
		{Target: "Start Time", Aliases: []string{"Start Time", "Start Time (", "StartTime"}},
		{Target: "End Time", Aliases: []string{"End Time", "End Time (", "EndTime"}},
		{Target: "Task Link", Aliases: []string{"Task Link", "Task URL", "TaskLink"}},
		{Target: "Moderator Link", Aliases: []string{"Moderator Link", "Moderator URL", "ModeratorLink"}},
		{Target: "Observers Public Link", Aliases: []string{"Observers Public Link", "Observers Link", "Observer Link", "Public Observer Link"}},
	}
}

// Screener returns the canonical schema for screener exports. Columns outside
// this list are the free-form "answer" columns and pass through untouched.
func Screener() Schema {
	return Schema{
		{Target: "TESTER", Aliases: []string{"TESTER", "Tester", "User name", "User Name", "Tester Name"}},
		{Target: "EMAIL", Aliases: []string{"EMAIL", "Email"}},
		{Target: "DATE", Aliases: []string{"DATE", "Date", "Submission Date", "Created At"}},
		{Target: "STATUS", Aliases: []string{"STATUS", "Status"}},
		{Target: "ADMIN RATING", Aliases: []string{"ADMIN RATING", "Admin Rating"}},
		{Target: "CLIENT RATING", Aliases: []string{"CLIENT RATING", "Client Rating"}},
	}
}

// DetectRoles guesses which filename is the calendar export and which is the
// screener export. "calender" is an accepted misspelling seen in the wild.
// An empty return value means no filename matched that role.
func DetectRoles(names []string) (calendar, screener string) {
	for _, n := range names {
		ln := strings.ToLower(n)
		if calendar == "" && (strings.Contains(ln, "calendar") || strings.Contains(ln, "calender")) {
			calendar = n
		}
		if screener == "" && strings.Contains(ln, "screener") {
			screener = n
		}
	}
	return calendar, screener
}

var (
	roleToken  = regexp.MustCompile(`(?i)calendar|calender|screener|copy`)
	spaceRun   = regexp.MustCompile(`\s+`)
	labelTrim  = " -_"
	labelEmpty = "Project"
)

// ProjectLabel derives a human-readable project name from the calendar source
// filename: strip the extension, remove the whole-word tokens "calendar",
// "calender", "screener" and "copy" (case-insensitive; hyphens and
// underscores count as word separators), collapse internal whitespace, and
// trim surrounding whitespace/hyphens/underscores. An empty remainder yields
// "Project".
func ProjectLabel(name string) string {
	stem := filepath.Base(name)
	stem = strings.TrimSuffix(stem, filepath.Ext(stem))
	stem = stripRoleTokens(stem)
	stem = spaceRun.ReplaceAllString(stem, " ")
	stem = strings.Trim(stem, labelTrim)
	if stem == "" {
		return labelEmpty
	}
	return stem
}

// stripRoleTokens removes role-token occurrences bounded by non-alphanumeric
// characters. Go's \b treats '_' as a word character, which would keep the
// token in stems like "Screener_Copy", so boundaries are checked by hand.
func stripRoleTokens(s string) string {
	matches := roleToken.FindAllStringIndex(s, -1)
	if len(matches) == 0 {
		return s
	}
	var b strings.Builder
	last := 0
	for _, m := range matches {
		start, end := m[0], m[1]
		if start > 0 && isWordByte(s[start-1]) {
			continue
		}
		if end < len(s) && isWordByte(s[end]) {
			continue
		}
		b.WriteString(s[last:start])
		last = end
	}
	b.WriteString(s[last:])
	return b.String()
}

func isWordByte(c byte) bool {
	return c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}
