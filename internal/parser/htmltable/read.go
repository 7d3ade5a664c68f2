// Package htmltable reads an HTML table export into a table.Table.
//
// Some screener tools only offer "save page" style exports: a full HTML
// document whose first <table> carries the data. Only that first table is
// read; anything after it is ignored.
package htmltable

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"studycompiler/internal/table"
)

// Read parses the first <table> of an HTML document. The first <tr> is the
// header row (th or td cells, trimmed); data cells are trimmed and empty
// cells become nil.
func Read(r io.Reader) (*table.Table, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	tbl := doc.Find("table").First()
	if tbl.Length() == 0 {
		return nil, fmt.Errorf("html document has no <table>")
	}

	var t *table.Table
	tbl.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		cells := tr.Find("th, td").Map(func(_ int, c *goquery.Selection) string {
			return strings.TrimSpace(c.Text())
		})
		if len(cells) == 0 {
			return
		}
		if t == nil {
			t = table.New(cells)
			return
		}
		row := make([]any, len(t.Headers))
		for i := range t.Headers {
			if i < len(cells) && cells[i] != "" {
				row[i] = cells[i]
			}
		}
		t.Rows = append(t.Rows, row)
	})
	if t == nil {
		return nil, fmt.Errorf("html table has no rows")
	}
	return t, nil
}
