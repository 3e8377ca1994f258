package alsmatrix

import (
	"regexp"
	"strings"
)

// LayoutKind classifies how a matrix sheet encodes folder/form relationships.
type LayoutKind int

const (
	// LayoutLong is a relational table: one row per (folder, form) pair.
	LayoutLong LayoutKind = iota
	// LayoutCrosstab has forms as rows, folders as columns, and marker cells
	// denoting membership.
	LayoutCrosstab
)

// matrixPair is one asserted folder/form relationship.
type matrixPair struct {
	folderOID string
	formOID   string
}

// markerValues are the cell values (trimmed, lower-cased) that denote
// membership in a cross-tabulated matrix.
var markerValues = map[string]struct{}{
	"x": {}, "1": {}, "yes": {}, "y": {}, "true": {},
}

var (
	nonOIDChars = regexp.MustCompile(`[^A-Za-z0-9_]+`)
	whitespace  = regexp.MustCompile(`\s+`)
)

// classifyLayout decides the layout once per extraction: a table exposing
// both a folder-OID and a form-OID column is long-format, everything else is
// treated as a cross-tabulation.
func classifyLayout(t table) LayoutKind {
	_, hasFolder := t.column(matrixFolderOIDCols)
	_, hasForm := t.column(matrixFormOIDCols)
	if hasFolder && hasForm {
		return LayoutLong
	}
	return LayoutCrosstab
}

// extractPairs pulls every asserted (folderOID, formOID) relationship out of
// a pre-cleaned matrix table. Duplicates are preserved here; the aggregator
// collapses them.
func extractPairs(t table) []matrixPair {
	if classifyLayout(t) == LayoutLong {
		return extractLongPairs(t)
	}
	return extractCrosstabPairs(t)
}

func extractLongPairs(t table) []matrixPair {
	folderIdx, _ := t.column(matrixFolderOIDCols)
	formIdx, _ := t.column(matrixFormOIDCols)
	var pairs []matrixPair
	for _, row := range t.rows {
		folderOID := t.cell(row, folderIdx)
		formOID := t.cell(row, formIdx)
		if folderOID == "" || formOID == "" {
			continue
		}
		pairs = append(pairs, matrixPair{folderOID: folderOID, formOID: formOID})
	}
	return pairs
}

func extractCrosstabPairs(t table) []matrixPair {
	formOIDIdx, hasFormOID := t.column(matrixFormOIDCols)
	formNameIdx, hasFormName := t.column(matrixFormNameCols)

	// Identity columns carry the row's form; everything else is a folder
	// column whose whitespace-compacted header is the FolderOID.
	identity := make(map[int]struct{})
	if hasFormOID {
		identity[formOIDIdx] = struct{}{}
	}
	if hasFormName {
		identity[formNameIdx] = struct{}{}
	}
	if len(identity) == 0 && len(t.headers) > 0 {
		identity[0] = struct{}{}
	}

	var pairs []matrixPair
	for _, row := range t.rows {
		var formOID string
		if hasFormOID {
			formOID = t.cell(row, formOIDIdx)
		} else if hasFormName {
			formOID = synthesizeFormOID(t.cell(row, formNameIdx))
		} else {
			formOID = synthesizeFormOID(t.cell(row, 0))
		}
		for col, header := range t.headers {
			if _, isIdentity := identity[col]; isIdentity {
				continue
			}
			if !marked(t.cell(row, col)) {
				continue
			}
			folderOID := whitespace.ReplaceAllString(strings.TrimSpace(header), "")
			pairs = append(pairs, matrixPair{folderOID: folderOID, formOID: formOID})
		}
	}
	return pairs
}

func marked(value string) bool {
	_, ok := markerValues[strings.ToLower(value)]
	return ok
}

// synthesizeFormOID derives an OID-safe token from a display value when the
// sheet carries no explicit FormOID. Distinct forms can collide here (all
// blank names reduce to FORM_UNKNOWN); the dedup downstream merges them and
// callers must tolerate that.
func synthesizeFormOID(base string) string {
	token := strings.Trim(nonOIDChars.ReplaceAllString(base, "_"), "_")
	token = strings.ToUpper(token)
	if token == "" {
		return "FORM_UNKNOWN"
	}
	return token
}
