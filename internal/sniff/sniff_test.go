package sniff

import (
	"errors"
	"testing"
)

// TestDetect covers the format heuristics: zip magic, OLE rejection, HTML,
// delimited fallback, and the empty-input error.
func TestDetect(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		in      []byte
		want    Format
		wantErr bool
	}{
		{"xlsx zip magic", []byte{0x50, 0x4B, 0x03, 0x04, 0x00}, FormatXLSX, false},
		{"legacy xls", []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}, FormatUnknown, true},
		{"html", []byte("  <html><table>"), FormatHTML, false},
		{"csv", []byte("Email,Status\na@x.com,ok\n"), FormatDelimited, false},
		{"bom csv", append([]byte{0xEF, 0xBB, 0xBF}, []byte("Email,Status")...), FormatDelimited, false},
		{"empty", []byte("   \n"), FormatUnknown, true},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()
			got, err := Detect(c.in)
			if c.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				if !errors.Is(err, ErrUnreadable) {
					t.Fatalf("error %v is not ErrUnreadable", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Detect: %v", err)
			}
			if got != c.want {
				t.Fatalf("format = %v, want %v", got, c.want)
			}
		})
	}
}

// TestDelimiter verifies the first-line counting heuristic, comma winning
// ties.
func TestDelimiter(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want rune
	}{
		{"a,b,c\n1,2,3", ','},
		{"a;b;c\n1;2;3", ';'},
		{"a\tb\tc", '\t'},
		{"a|b|c", '|'},
		{"justone", ','},
		{"a,b;c", ','}, // tie goes to comma
	}
	for _, c := range cases {
		if got := Delimiter([]byte(c.in)); got != c.want {
			t.Fatalf("Delimiter(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
