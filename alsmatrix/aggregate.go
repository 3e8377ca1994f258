package alsmatrix

import "sort"

// aggregate groups pairs by folder, deduplicates forms per folder (first seen
// wins, later duplicates are absorbed), attaches names from the metadata
// lookups, and sorts both levels lexicographically by OID for deterministic
// output.
func aggregate(pairs []matrixPair, folderMeta, formMeta map[string]string) []FolderGroup {
	byFolder := make(map[string]*FolderGroup)
	seen := make(map[string]map[string]struct{})

	for _, p := range pairs {
		if p.folderOID == "" || p.formOID == "" {
			continue
		}
		group, ok := byFolder[p.folderOID]
		if !ok {
			group = &FolderGroup{
				FolderOID:  p.folderOID,
				FolderName: metaName(folderMeta, p.folderOID),
			}
			byFolder[p.folderOID] = group
			seen[p.folderOID] = make(map[string]struct{})
		}
		if _, dup := seen[p.folderOID][p.formOID]; dup {
			continue
		}
		seen[p.folderOID][p.formOID] = struct{}{}
		group.Forms = append(group.Forms, FormEntry{
			FormOID:  p.formOID,
			FormName: metaName(formMeta, p.formOID),
		})
	}

	groups := make([]FolderGroup, 0, len(byFolder))
	for _, g := range byFolder {
		sort.Slice(g.Forms, func(i, j int) bool { return g.Forms[i].FormOID < g.Forms[j].FormOID })
		groups = append(groups, *g)
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].FolderOID < groups[j].FolderOID })
	return groups
}
