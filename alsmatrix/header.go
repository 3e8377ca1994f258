package alsmatrix

import "strings"

// defaultProbeLimit bounds the header scan. Header rows sit near the top of
// real ALS matrices; the bound keeps large sheets cheap to probe.
const defaultProbeLimit = 40

// headerTokens are the column labels that mark a matrix header row, compared
// lower-cased and trimmed.
var headerTokens = map[string]struct{}{
	"formoid":         {},
	"form oid":        {},
	"formname":        {},
	"form name":       {},
	"draftformname":   {},
	"draft form name": {},
	"folderoid":       {},
	"folder oid":      {},
	"foldername":      {},
	"folder name":     {},
}

// locateHeader returns the index of the first row within the probe window
// that carries a known header token. Falls back to the first non-blank row,
// then to row 0 for an all-blank grid.
func locateHeader(rows [][]string, probeLimit int) int {
	if probeLimit <= 0 {
		probeLimit = defaultProbeLimit
	}
	firstNonBlank := -1
	for i := 0; i < len(rows) && i < probeLimit; i++ {
		if blankRow(rows[i]) {
			continue
		}
		if firstNonBlank < 0 {
			firstNonBlank = i
		}
		for _, cell := range rows[i] {
			key := strings.ToLower(strings.TrimSpace(cell))
			if _, ok := headerTokens[key]; ok {
				return i
			}
		}
	}
	if firstNonBlank >= 0 {
		return firstNonBlank
	}
	return 0
}

func blankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
