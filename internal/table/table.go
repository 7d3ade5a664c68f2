// Package table holds the in-memory tabular representation shared by the
// parsers, the column normalizer, and the merge compiler.
//
// A Table is an ordered sequence of named columns plus positional rows.
// Cells are `any`; parsers produce string or nil (nil = missing/empty).
// Header naming carries no invariants at all: inputs are arbitrary exports
// and duplicate or empty header names must survive untouched.
package table

// Table is a small, fully in-memory table. Row counts are bounded by manual
// data-entry volumes, so there is no streaming or pooling here.
type Table struct {
	Headers []string
	Rows    [][]any
}

// New returns an empty table with the given headers. The header slice is
// copied so callers can reuse theirs.
func New(headers []string) *Table {
	h := make([]string, len(headers))
	copy(h, headers)
	return &Table{Headers: h}
}

// NumRows returns the number of data rows.
func (t *Table) NumRows() int { return len(t.Rows) }

// ColumnIndex returns the index of the first column with the exact name, or
// -1 when absent.
func (t *Table) ColumnIndex(name string) int {
	for i, h := range t.Headers {
		if h == name {
			return i
		}
	}
	return -1
}

// Column returns the cell values of the first column with the given name,
// aligned with Rows. For an absent column it returns all-nil values, matching
// the lenient degrade-to-null policy used throughout.
func (t *Table) Column(name string) []any {
	out := make([]any, len(t.Rows))
	ix := t.ColumnIndex(name)
	if ix < 0 {
		return out
	}
	for i, r := range t.Rows {
		out[i] = r[ix]
	}
	return out
}

// AppendRow adds a row, padding or truncating cells to the current width.
func (t *Table) AppendRow(cells []any) {
	row := make([]any, len(t.Headers))
	copy(row, cells)
	t.Rows = append(t.Rows, row)
}

// AppendNullColumn adds a column with the given name whose cells are all nil.
func (t *Table) AppendNullColumn(name string) {
	t.Headers = append(t.Headers, name)
	for i := range t.Rows {
		t.Rows[i] = append(t.Rows[i], nil)
	}
}

// RenameAt renames the column at index i.
func (t *Table) RenameAt(i int, name string) {
	t.Headers[i] = name
}

// Select returns a new table restricted to the given column names, in the
// given order. A name with no matching column becomes an all-nil column
// rather than an error. Cell values are shared with the receiver.
func (t *Table) Select(names []string) *Table {
	out := New(names)
	ixs := make([]int, len(names))
	for i, n := range names {
		ixs[i] = t.ColumnIndex(n)
	}
	for _, r := range t.Rows {
		row := make([]any, len(names))
		for i, ix := range ixs {
			if ix >= 0 {
				row[i] = r[ix]
			}
		}
		out.Rows = append(out.Rows, row)
	}
	return out
}

// Clone returns a deep copy of the table's structure (headers and row
// slices). Cell values themselves are shared; the normalizer and compiler
// never mutate cells in place, only rows and headers.
func (t *Table) Clone() *Table {
	out := New(t.Headers)
	out.Rows = make([][]any, len(t.Rows))
	for i, r := range t.Rows {
		row := make([]any, len(r))
		copy(row, r)
		out.Rows[i] = row
	}
	return out
}
