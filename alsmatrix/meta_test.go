package alsmatrix

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadFormMeta_DraftNamePrecedence(t *testing.T) {
	tab := newTable([][]string{
		{"FormOID", "FormName", "DraftFormName"},
		{"DM", "Visit 1", "Visit 1 Draft"},
	}, 0)
	meta := readFormMeta(tab)
	require.Contains(t, meta, "DM")
	assert.Equal(t, "Visit 1 Draft", meta["DM"])
}

func TestReadFormMeta_FallbackNameColumns(t *testing.T) {
	tab := newTable([][]string{
		{"OID", "Name"},
		{"VS", "Vital Signs"},
	}, 0)
	meta := readFormMeta(tab)
	assert.Equal(t, "Vital Signs", meta["VS"])
}

func TestReadFolderMeta_SkipsBlankOIDs(t *testing.T) {
	tab := newTable([][]string{
		{"FolderOID", "FolderName"},
		{"SCRN", "Screening"},
		{"  ", "Orphan name"},
		{"TRT", "Treatment"},
	}, 0)
	meta := readFolderMeta(tab)
	assert.Len(t, meta, 2)
	assert.Equal(t, "Screening", meta["SCRN"])
	assert.Equal(t, "Treatment", meta["TRT"])
}

func TestReadMeta_NoOIDColumnYieldsEmpty(t *testing.T) {
	tab := newTable([][]string{
		{"Label", "Description"},
		{"SCRN", "Screening"},
	}, 0)
	assert.Empty(t, readFolderMeta(tab))
}

func TestReadMeta_NoNameColumn(t *testing.T) {
	tab := newTable([][]string{
		{"FolderOID"},
		{"SCRN"},
	}, 0)
	meta := readFolderMeta(tab)
	require.Contains(t, meta, "SCRN")
	assert.Nil(t, metaName(meta, "SCRN"))
	assert.Nil(t, metaName(meta, "UNKNOWN"))
}
