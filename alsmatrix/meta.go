package alsmatrix

// readFolderMeta builds the FolderOID→name lookup from the Folder sheet.
func readFolderMeta(t table) map[string]string {
	return readMeta(t, folderOIDCols, folderNameCols)
}

// readFormMeta builds the FormOID→name lookup from the Form sheet.
// DraftFormName outranks FormName per the candidate order in formNameCols.
func readFormMeta(t table) map[string]string {
	return readMeta(t, formOIDCols, formNameCols)
}

// readMeta extracts an OID→name mapping. A missing OID column yields an empty
// mapping, not an error: names then resolve to absent downstream. Rows with a
// blank OID are skipped; an empty string name means no usable name.
func readMeta(t table, oidCols, nameCols []string) map[string]string {
	meta := make(map[string]string)
	oidIdx, ok := t.column(oidCols)
	if !ok {
		return meta
	}
	nameIdx, hasName := t.column(nameCols)
	for _, row := range t.rows {
		oid := t.cell(row, oidIdx)
		if oid == "" {
			continue
		}
		if hasName {
			meta[oid] = t.cell(row, nameIdx)
		} else {
			meta[oid] = ""
		}
	}
	return meta
}

// metaName resolves an OID against a metadata mapping, returning nil when the
// OID is unknown or carries no name.
func metaName(meta map[string]string, oid string) *string {
	name, ok := meta[oid]
	if !ok || name == "" {
		return nil
	}
	return &name
}
