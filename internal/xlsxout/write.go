// Package xlsxout writes the compiled deliverable as a single-sheet xlsx
// workbook.
package xlsxout

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"studycompiler/internal/table"
)

// SheetName is the single sheet of the deliverable workbook.
const SheetName = "Compiled"

// FileName returns the suggested deliverable filename for a project label.
func FileName(project string) string {
	return "Compiled Study Data - " + project + ".xlsx"
}

// Write renders the table to path as an xlsx workbook with one sheet named
// "Compiled". Row one is the header row; nil cells are left empty.
func Write(path string, t *table.Table) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	hdr := make([]any, len(t.Headers))
	for i, h := range t.Headers {
		hdr[i] = h
	}
	if err := f.SetSheetRow(SheetName, "A1", &hdr); err != nil {
		return fmt.Errorf("write header row: %w", err)
	}

	for i := range t.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("cell name: %w", err)
		}
		if err := f.SetSheetRow(SheetName, cell, &t.Rows[i]); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}
