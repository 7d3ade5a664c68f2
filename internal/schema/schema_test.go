package schema

import "testing"

// TestProjectLabel covers the derivation rules: extension stripped, role
// tokens removed as whole words (with -_/space separators), whitespace
// collapsed, edges trimmed, and the "Project" default for empty remainders.
func TestProjectLabel(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		want string
	}{
		{"screener copy prefix", "Screener_Copy - Acme Project.xlsx", "Acme Project"},
		{"bare calendar", "calendar.xlsx", "Project"},
		{"misspelled calender", "Acme calender.csv", "Acme"},
		{"case insensitive", "ACME CALENDAR COPY.xlsx", "ACME"},
		{"token inside word kept", "Copycat Study.xlsx", "Copycat Study"},
		{"path stripped", "/tmp/exports/Beta Calendar.xlsx", "Beta"},
		{"hyphen edges", "- Acme -.csv", "Acme"},
		{"empty after trim", "copy_copy.csv", "Project"},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()
			if got := ProjectLabel(c.in); got != c.want {
				t.Fatalf("ProjectLabel(%q) = %q, want %q", c.in, got, c.want)
			}
		})
	}
}

// TestDetectRoles verifies filename role guessing, including the "calender"
// misspelling and the no-match case.
func TestDetectRoles(t *testing.T) {
	t.Parallel()

	cal, scr := DetectRoles([]string{"Acme Screener.csv", "Acme Calender.xlsx"})
	if cal != "Acme Calender.xlsx" {
		t.Fatalf("calendar = %q", cal)
	}
	if scr != "Acme Screener.csv" {
		t.Fatalf("screener = %q", scr)
	}

	cal, scr = DetectRoles([]string{"a.csv", "b.csv"})
	if cal != "" || scr != "" {
		t.Fatalf("expected no guesses, got %q / %q", cal, scr)
	}
}

// TestSchemas_TargetOrder pins the canonical field orders the compiler
// depends on (calendar keep-order and screener exclusion set).
func TestSchemas_TargetOrder(t *testing.T) {
	t.Parallel()

	wantCal := []string{"User name", "EMAIL", "Start Time", "End Time", "Task Link", "Moderator Link", "Observers Public Link"}
	for i, target := range Calendar().Targets() {
		if target != wantCal[i] {
			t.Fatalf("calendar target %d = %q, want %q", i, target, wantCal[i])
		}
	}

	wantScr := []string{"TESTER", "EMAIL", "DATE", "STATUS", "ADMIN RATING", "CLIENT RATING"}
	for i, target := range Screener().Targets() {
		if target != wantScr[i] {
			t.Fatalf("screener target %d = %q, want %q", i, target, wantScr[i])
		}
	}
}
