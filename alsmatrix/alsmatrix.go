package alsmatrix

import "fmt"

// Discover enumerates the candidate matrix worksheets of a workbook without
// extracting anything.
func Discover(data []byte) ([]MatrixDescriptor, error) {
	wb, err := OpenWorkbook(data)
	if err != nil {
		return nil, err
	}
	defer wb.Close()
	return discoverMatrices(wb.SheetNames()), nil
}

// Extract runs the full pipeline over workbook bytes: resolve the matrix
// sheet, locate its header row, read the Folder/Form metadata sheets, extract
// the folder/form pairs for the detected layout, aggregate, then optionally
// filter and diff. Either a complete Result is produced or an error; there is
// no partial output.
func Extract(data []byte, opts ...Option) (*Result, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	wb, err := OpenWorkbook(data)
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	descs := discoverMatrices(wb.SheetNames())
	desc, err := resolveMatrix(descs, o.matrixOID)
	if err != nil {
		return nil, err
	}

	folderMeta, err := readMetaSheet(wb, o.folderSheet, o.probeLimit, readFolderMeta)
	if err != nil {
		return nil, err
	}
	formMeta, err := readMetaSheet(wb, o.formSheet, o.probeLimit, readFormMeta)
	if err != nil {
		return nil, err
	}

	grid, err := wb.Rows(desc.Sheet)
	if err != nil {
		return nil, fmt.Errorf("read matrix sheet %q: %w", desc.Sheet, err)
	}
	t := newTable(grid, locateHeader(grid, o.probeLimit))
	groups := aggregate(extractPairs(t), folderMeta, formMeta)

	if o.folderFilter != "" {
		if groups, err = filterGroups(groups, o.folderFilter); err != nil {
			return nil, err
		}
		if groups == nil {
			groups = []FolderGroup{}
		}
	}

	result := &Result{
		Meta:    Meta{MatrixOID: desc.MatrixOID, Sheet: desc.Sheet, AvailableMatrices: descs},
		Folders: groups,
	}
	if o.reference != nil {
		diff := diffGroups(groups, o.reference)
		result.Diff = &diff
	}
	return result, nil
}

// readMetaSheet locates an auxiliary metadata sheet and reads its OID→name
// mapping. The sheet itself is required; a missing OID column inside it is
// not an error and yields an empty mapping.
func readMetaSheet(wb *Workbook, name string, probeLimit int, read func(table) map[string]string) (map[string]string, error) {
	sheet, err := findSheet(wb.SheetNames(), name)
	if err != nil {
		return nil, err
	}
	grid, err := wb.Rows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	return read(newTable(grid, locateHeader(grid, probeLimit))), nil
}
