package alsmatrix

import (
	"sort"
	"strings"
)

// diffGroups computes the per-folder symmetric difference between the
// extracted groups and a reference mapping. Both sides are normalized to
// uppercase first: OIDs compare case-insensitively even though they are
// stored in original case. Folders with no difference on either side are
// omitted from both maps.
func diffGroups(groups []FolderGroup, reference map[string][]string) DiffResult {
	extracted := make(map[string]map[string]struct{})
	for _, g := range groups {
		folder := strings.ToUpper(g.FolderOID)
		forms, ok := extracted[folder]
		if !ok {
			forms = make(map[string]struct{})
			extracted[folder] = forms
		}
		for _, f := range g.Forms {
			forms[strings.ToUpper(f.FormOID)] = struct{}{}
		}
	}

	ref := make(map[string]map[string]struct{})
	for folder, forms := range reference {
		key := strings.ToUpper(strings.TrimSpace(folder))
		set, ok := ref[key]
		if !ok {
			set = make(map[string]struct{})
			ref[key] = set
		}
		for _, f := range forms {
			if f = strings.ToUpper(strings.TrimSpace(f)); f != "" {
				set[f] = struct{}{}
			}
		}
	}

	diff := DiffResult{
		MissingInDB: make(map[string][]string),
		ExtraInDB:   make(map[string][]string),
	}
	for folder, refForms := range ref {
		if missing := subtract(refForms, extracted[folder]); len(missing) > 0 {
			diff.MissingInDB[folder] = missing
		}
	}
	for folder, extForms := range extracted {
		if extra := subtract(extForms, ref[folder]); len(extra) > 0 {
			diff.ExtraInDB[folder] = extra
		}
	}
	return diff
}

// subtract returns a−b sorted ascending.
func subtract(a, b map[string]struct{}) []string {
	var out []string
	for v := range a {
		if _, ok := b[v]; !ok {
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}
