package alsmatrix

// FormEntry is one form inside a folder group. FormName is nil when no
// metadata resolved a display name.
type FormEntry struct {
	FormOID  string  `json:"formOID"`
	FormName *string `json:"formName"`
}

// FolderGroup is a folder with its assigned forms, sorted by FormOID.
type FolderGroup struct {
	FolderOID  string      `json:"folderOID"`
	FolderName *string     `json:"folderName"`
	Forms      []FormEntry `json:"forms"`
}

// Meta describes which matrix was extracted and what else was available.
type Meta struct {
	MatrixOID         string             `json:"matrixOID"`
	Sheet             string             `json:"sheet"`
	AvailableMatrices []MatrixDescriptor `json:"availableMatrices"`
}

// DiffResult is the two-sided symmetric difference against a reference
// mapping: missing_in_db holds pairs the reference specifies but the matrix
// lacks, extra_in_db the reverse. Folders with no difference are absent.
type DiffResult struct {
	MissingInDB map[string][]string `json:"missing_in_db"`
	ExtraInDB   map[string][]string `json:"extra_in_db"`
}

// Result is the complete outcome of one extraction call.
type Result struct {
	Meta    Meta          `json:"meta"`
	Folders []FolderGroup `json:"folders"`
	Diff    *DiffResult   `json:"diff,omitempty"`
}
