package htmltable

import (
	"reflect"
	"strings"
	"testing"
)

// TestRead_FirstTable verifies the first <table> is parsed with th headers,
// trimmed text, and nil empty cells; later tables are ignored.
func TestRead_FirstTable(t *testing.T) {
	t.Parallel()

	doc := `<html><body>
	<table>
	  <tr><th> Email </th><th>Status</th></tr>
	  <tr><td>a@x.com</td><td></td></tr>
	  <tr><td> b@x.com </td><td>ok</td></tr>
	</table>
	<table><tr><th>Ignored</th></tr></table>
	</body></html>`

	tab, err := Read(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !reflect.DeepEqual(tab.Headers, []string{"Email", "Status"}) {
		t.Fatalf("headers = %v", tab.Headers)
	}
	if !reflect.DeepEqual(tab.Rows[0], []any{"a@x.com", nil}) {
		t.Fatalf("row 0 = %v", tab.Rows[0])
	}
	if !reflect.DeepEqual(tab.Rows[1], []any{"b@x.com", "ok"}) {
		t.Fatalf("row 1 = %v", tab.Rows[1])
	}
}

// TestRead_NoTable verifies a document without a table is an error.
func TestRead_NoTable(t *testing.T) {
	t.Parallel()

	if _, err := Read(strings.NewReader("<html><p>nothing</p></html>")); err == nil {
		t.Fatalf("expected error for table-less document")
	}
}
