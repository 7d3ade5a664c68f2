// Package csv reads delimited text exports into a table.Table.
//
// Manual exports arrive with UTF-8 or UTF-16 byte order marks depending on
// which spreadsheet tool produced them, so the reader is wrapped in a
// BOM-override decoder before parsing.
package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"studycompiler/internal/table"
)

// Read parses delimited text into a table. The first record is the header
// row; header cells are trimmed of edge whitespace. Data cells are trimmed
// and empty cells become nil. Short records are padded with nil, long ones
// are truncated to the header width.
func Read(r io.Reader, comma rune) (*table.Table, error) {
	dec := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	cr := csv.NewReader(transform.NewReader(r, dec))
	cr.Comma = comma
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	hdr, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	headers := make([]string, len(hdr))
	for i, h := range hdr {
		if i == 0 {
			// Defensive: BOMOverride already consumed a leading BOM, but a
			// double-encoded export can still carry one in the text.
			h = strings.TrimPrefix(h, "\uFEFF")
		}
		headers[i] = strings.TrimSpace(h)
	}

	t := table.New(headers)
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			return t, nil
		}
		if err != nil {
			return nil, fmt.Errorf("csv read: %w", err)
		}
		row := make([]any, len(headers))
		for i := range headers {
			if i >= len(rec) {
				continue
			}
			v := strings.TrimSpace(rec[i])
			if v != "" {
				row[i] = v
			}
		}
		t.Rows = append(t.Rows, row)
	}
}
