package csv

import (
	"reflect"
	"strings"
	"testing"

	"golang.org/x/text/encoding/unicode"
)

// TestRead_BasicCSV verifies header trimming, empty-cell nils, and short-row
// padding.
func TestRead_BasicCSV(t *testing.T) {
	t.Parallel()

	in := " Email , Status ,Q1\na@x.com,,5\nb@x.com\n"
	tab, err := Read(strings.NewReader(in), ',')
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	if !reflect.DeepEqual(tab.Headers, []string{"Email", "Status", "Q1"}) {
		t.Fatalf("headers = %v", tab.Headers)
	}
	if !reflect.DeepEqual(tab.Rows[0], []any{"a@x.com", nil, "5"}) {
		t.Fatalf("row 0 = %v", tab.Rows[0])
	}
	if !reflect.DeepEqual(tab.Rows[1], []any{"b@x.com", nil, nil}) {
		t.Fatalf("row 1 = %v (short row should pad with nil)", tab.Rows[1])
	}
}

// TestRead_UTF8BOMHeader verifies a BOM-prefixed export still matches its
// first header by name.
func TestRead_UTF8BOMHeader(t *testing.T) {
	t.Parallel()

	in := "\uFEFFEmail,Status\na@x.com,ok\n"
	tab, err := Read(strings.NewReader(in), ',')
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if tab.Headers[0] != "Email" {
		t.Fatalf("first header = %q, want Email (BOM stripped)", tab.Headers[0])
	}
}

// TestRead_UTF16 verifies the BOM-override decoder handles UTF-16LE exports,
// which some spreadsheet tools emit for "unicode text".
func TestRead_UTF16(t *testing.T) {
	t.Parallel()

	enc := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder()
	raw, err := enc.String("Email\tStatus\na@x.com\tok\n")
	if err != nil {
		t.Fatalf("encode fixture: %v", err)
	}

	tab, err := Read(strings.NewReader(raw), '\t')
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !reflect.DeepEqual(tab.Headers, []string{"Email", "Status"}) {
		t.Fatalf("headers = %v", tab.Headers)
	}
	if tab.Rows[0][0] != "a@x.com" {
		t.Fatalf("row = %v", tab.Rows[0])
	}
}

// TestRead_SemicolonDelimiter verifies the delimiter parameter is honored.
func TestRead_SemicolonDelimiter(t *testing.T) {
	t.Parallel()

	tab, err := Read(strings.NewReader("a;b\n1;2\n"), ';')
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(tab.Headers) != 2 || tab.Headers[1] != "b" {
		t.Fatalf("headers = %v", tab.Headers)
	}
}

// TestRead_EmptyInput verifies a header-less stream errors out rather than
// producing a phantom table.
func TestRead_EmptyInput(t *testing.T) {
	t.Parallel()

	if _, err := Read(strings.NewReader(""), ','); err == nil {
		t.Fatalf("expected error for empty input")
	}
}
