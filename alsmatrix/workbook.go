// Package alsmatrix extracts a RAVE ALS visit-form matrix workbook into a
// normalized folder→forms structure and optionally diffs it against an
// externally supplied reference mapping. The engine is pure and stateless:
// each call decodes its own workbook bytes and shares nothing across calls.
package alsmatrix

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Workbook is a decoded multi-sheet workbook. It is read-only and valid until
// Close is called.
type Workbook struct {
	file   *excelize.File
	sheets []string
}

// OpenWorkbook decodes workbook bytes. Empty or undecodable input yields a
// *MalformedInputError.
func OpenWorkbook(data []byte) (*Workbook, error) {
	if len(data) == 0 {
		return nil, &MalformedInputError{Reason: "empty upload"}
	}
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, &MalformedInputError{Reason: "unreadable workbook bytes", Err: err}
	}
	return &Workbook{file: f, sheets: f.GetSheetList()}, nil
}

// SheetNames returns the workbook's sheet names in workbook order.
func (w *Workbook) SheetNames() []string {
	return w.sheets
}

// Rows returns the raw cell grid of a sheet. Rows may be ragged; trailing
// empty cells are not padded.
func (w *Workbook) Rows(sheet string) ([][]string, error) {
	rows, err := w.file.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read rows from sheet %q: %w", sheet, err)
	}
	return rows, nil
}

// Close releases the underlying file resources.
func (w *Workbook) Close() error {
	return w.file.Close()
}
