package alsmatrix

// Options holds configuration for one extraction call.
type Options struct {
	matrixOID    string
	folderSheet  string
	formSheet    string
	probeLimit   int
	reference    map[string][]string
	folderFilter string
}

func defaultOptions() *Options {
	return &Options{
		folderSheet: "Folder",
		formSheet:   "Form",
		probeLimit:  defaultProbeLimit,
	}
}

// Option configures Extract.
type Option func(*Options)

// WithMatrixOID requests a specific matrix by its logical identifier, matched
// case-insensitively. Unmatched requests fall back to the default preference
// order rather than failing.
func WithMatrixOID(oid string) Option {
	return func(o *Options) { o.matrixOID = oid }
}

// WithFolderSheet overrides the auxiliary folder-metadata sheet name (default: "Folder").
func WithFolderSheet(name string) Option {
	return func(o *Options) { o.folderSheet = name }
}

// WithFormSheet overrides the auxiliary form-metadata sheet name (default: "Form").
func WithFormSheet(name string) Option {
	return func(o *Options) { o.formSheet = name }
}

// WithProbeLimit overrides how many leading rows are scanned for the matrix
// header row. Non-positive values keep the default.
func WithProbeLimit(limit int) Option {
	return func(o *Options) {
		if limit > 0 {
			o.probeLimit = limit
		}
	}
}

// WithReferenceMapping supplies the folderOID→formOIDs reference (SSD) to
// diff against; the result then carries a Diff block.
func WithReferenceMapping(reference map[string][]string) Option {
	return func(o *Options) { o.reference = reference }
}

// WithFolderFilter keeps only folder groups for which the expression is true.
// The expression sees folderOID, folderName, formCount and forms (the list of
// form OIDs). Applied after aggregation and before diffing.
func WithFolderFilter(expression string) Option {
	return func(o *Options) { o.folderFilter = expression }
}
