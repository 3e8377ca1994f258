package alsmatrix

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// MatrixDescriptor identifies one candidate matrix worksheet.
type MatrixDescriptor struct {
	MatrixOID string `json:"matrixOID"`
	Sheet     string `json:"sheet"`
}

// PreferredMatrixOID is the matrix selected by default when the caller does
// not request one.
const PreferredMatrixOID = "MASTERDASHBOARD"

// numberedMatrixPattern matches sheet names like "Matrix2#SCREENING" or
// "Matrix 10 # VISIT MATRIX". The integer sorts numbered matrices; the suffix
// becomes the matrixOID.
var numberedMatrixPattern = regexp.MustCompile(`(?i)^matrix\s*(\d+)\s*#\s*(.+)$`)

// discoverMatrices classifies every sheet name and returns the matrix
// candidates in canonical order: MASTERDASHBOARD first, then the plain Matrix
// sheet, then numbered matrices ascending by their integer tag. Duplicate
// matrixOIDs keep the first occurrence.
func discoverMatrices(sheets []string) []MatrixDescriptor {
	type candidate struct {
		desc  MatrixDescriptor
		rank  int // 0 = MASTERDASHBOARD, 1 = Matrix, 2 = numbered
		order int // numeric tag for numbered matrices
	}
	var found []candidate

	for _, sheet := range sheets {
		name := strings.TrimSpace(sheet)
		switch strings.ToLower(name) {
		case "masterdashboard":
			found = append(found, candidate{desc: MatrixDescriptor{MatrixOID: PreferredMatrixOID, Sheet: sheet}, rank: 0})
			continue
		case "matrix":
			found = append(found, candidate{desc: MatrixDescriptor{MatrixOID: "Matrix", Sheet: sheet}, rank: 1})
			continue
		}
		if m := numberedMatrixPattern.FindStringSubmatch(name); m != nil {
			oid := strings.TrimSpace(m[2])
			order, _ := strconv.Atoi(m[1])
			found = append(found, candidate{desc: MatrixDescriptor{MatrixOID: oid, Sheet: sheet}, rank: 2, order: order})
		}
	}

	sort.SliceStable(found, func(i, j int) bool {
		if found[i].rank != found[j].rank {
			return found[i].rank < found[j].rank
		}
		return found[i].order < found[j].order
	})

	var out []MatrixDescriptor
	seen := make(map[string]struct{})
	for _, c := range found {
		key := strings.ToUpper(c.desc.MatrixOID)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, c.desc)
	}
	return out
}

// resolveMatrix picks the matrix to extract. A requested OID is matched
// case-insensitively; on no match the preference order is MASTERDASHBOARD,
// then the plain Matrix sheet. With no usable candidate at all the error
// enumerates the discovered matrixOIDs.
func resolveMatrix(descs []MatrixDescriptor, requested string) (MatrixDescriptor, error) {
	if requested != "" {
		for _, d := range descs {
			if strings.EqualFold(d.MatrixOID, requested) {
				return d, nil
			}
		}
	}
	for _, preferred := range []string{PreferredMatrixOID, "Matrix"} {
		for _, d := range descs {
			if strings.EqualFold(d.MatrixOID, preferred) {
				return d, nil
			}
		}
	}
	available := make([]string, len(descs))
	for i, d := range descs {
		available[i] = d.MatrixOID
	}
	return MatrixDescriptor{}, &NotFoundError{Kind: "matrix", Requested: requested, Available: available}
}

// findSheet locates an auxiliary sheet by name: exact case-insensitive match
// first, then the first sheet containing the name as a substring.
func findSheet(sheets []string, name string) (string, error) {
	for _, s := range sheets {
		if strings.EqualFold(s, name) {
			return s, nil
		}
	}
	lower := strings.ToLower(name)
	for _, s := range sheets {
		if strings.Contains(strings.ToLower(s), lower) {
			return s, nil
		}
	}
	return "", &NotFoundError{Kind: "sheet", Requested: name, Available: sheets}
}
