package alsmatrix

import "strings"

// Column synonym tables, consulted in priority order with case-insensitive
// matching. DraftFormName deliberately outranks FormName: when both exist the
// draft name is the canonical display name.
var (
	folderOIDCols  = []string{"FolderOID", "Folder OID", "OID"}
	folderNameCols = []string{"FolderName", "Folder Name", "Name"}
	formOIDCols    = []string{"FormOID", "Form OID", "OID"}
	formNameCols   = []string{"DraftFormName", "Draft Form Name", "FormName", "Form Name", "Name"}

	// Matrix sheets never label identity columns with a bare "OID" but do use
	// bare "Folder"/"Form"; bare "OID" stays out to keep the two identities
	// from colliding on one column.
	matrixFolderOIDCols = []string{"FolderOID", "Folder OID", "Folder"}
	matrixFormOIDCols   = []string{"FormOID", "Form OID", "Form"}
	matrixFormNameCols  = []string{"FormName", "Form Name", "DraftFormName", "Name"}
)

// table is a header-indexed view of a worksheet region: trimmed header labels
// plus the data rows beneath them, pre-cleaned of blank rows and columns.
type table struct {
	headers []string
	rows    [][]string
}

// newTable slices a raw grid at the header row and pre-cleans it: fully blank
// data rows are dropped, and columns whose every data cell is blank are
// dropped (merged/decorative spreadsheet regions otherwise surface as
// spurious folder columns).
func newTable(grid [][]string, headerRow int) table {
	if headerRow >= len(grid) {
		return table{}
	}
	headers := grid[headerRow]
	width := len(headers)

	var rows [][]string
	for _, row := range grid[headerRow+1:] {
		if blankRow(row) {
			continue
		}
		if len(row) > width {
			width = len(row)
		}
		rows = append(rows, row)
	}

	// Pad headers and rows to a rectangular grid before column filtering.
	headers = padRow(headers, width)
	for i, row := range rows {
		rows[i] = padRow(row, width)
	}

	keep := make([]bool, width)
	for col := 0; col < width; col++ {
		for _, row := range rows {
			if strings.TrimSpace(row[col]) != "" {
				keep[col] = true
				break
			}
		}
	}

	t := table{}
	for col := 0; col < width; col++ {
		if !keep[col] {
			continue
		}
		t.headers = append(t.headers, strings.TrimSpace(headers[col]))
	}
	for _, row := range rows {
		var cells []string
		for col := 0; col < width; col++ {
			if keep[col] {
				cells = append(cells, row[col])
			}
		}
		t.rows = append(t.rows, cells)
	}
	return t
}

func padRow(row []string, width int) []string {
	if len(row) >= width {
		return row
	}
	padded := make([]string, width)
	copy(padded, row)
	return padded
}

// column resolves a logical field to a column index by trying the candidate
// labels in order, first match wins. Matching is case-insensitive against
// trimmed headers.
func (t table) column(candidates []string) (int, bool) {
	lowmap := make(map[string]int, len(t.headers))
	for i, h := range t.headers {
		key := strings.ToLower(h)
		if _, exists := lowmap[key]; !exists {
			lowmap[key] = i
		}
	}
	for _, c := range candidates {
		if idx, ok := lowmap[strings.ToLower(c)]; ok {
			return idx, true
		}
	}
	return 0, false
}

// cell returns the trimmed value at a column of a row.
func (t table) cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}
