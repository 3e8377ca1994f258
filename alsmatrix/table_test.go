package alsmatrix

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTable_DropsBlankRowsAndColumns(t *testing.T) {
	grid := [][]string{
		{"FormOID", "", "FOLDERA"},
		{"DM", "", "X"},
		{"", "  ", ""},
		{"VS", "", ""},
	}
	tab := newTable(grid, 0)

	// The middle column has no data anywhere and is dropped; the fully blank
	// row disappears too.
	assert.Equal(t, []string{"FormOID", "FOLDERA"}, tab.headers)
	require.Len(t, tab.rows, 2)
	assert.Equal(t, "DM", tab.cell(tab.rows[0], 0))
	assert.Equal(t, "X", tab.cell(tab.rows[0], 1))
	assert.Equal(t, "VS", tab.cell(tab.rows[1], 0))
}

func TestNewTable_RaggedRowsArePadded(t *testing.T) {
	grid := [][]string{
		{"FormOID", "FOLDERA", "FOLDERB"},
		{"DM"},
		{"VS", "X", "X"},
	}
	tab := newTable(grid, 0)
	require.Len(t, tab.rows, 2)
	assert.Equal(t, "", tab.cell(tab.rows[0], 2))
	assert.Equal(t, "X", tab.cell(tab.rows[1], 2))
}

func TestNewTable_HeaderBeyondGrid(t *testing.T) {
	tab := newTable([][]string{{"a"}}, 5)
	assert.Empty(t, tab.headers)
	assert.Empty(t, tab.rows)
}

func TestTableColumn_CandidatePriority(t *testing.T) {
	tab := table{
		headers: []string{"Name", "DraftFormName", "FormName"},
		rows:    [][]string{{"x", "y", "z"}},
	}
	idx, ok := tab.column(formNameCols)
	require.True(t, ok)
	assert.Equal(t, 1, idx, "DraftFormName outranks FormName and Name")
}

func TestTableColumn_CaseInsensitive(t *testing.T) {
	tab := table{headers: []string{"folderoid", "FOLDERNAME"}, rows: [][]string{{"F1", "Screening"}}}

	idx, ok := tab.column(folderOIDCols)
	require.True(t, ok)
	assert.Equal(t, 0, idx)

	idx, ok = tab.column(folderNameCols)
	require.True(t, ok)
	assert.Equal(t, 1, idx)
}

func TestTableColumn_Missing(t *testing.T) {
	tab := table{headers: []string{"Something", "Else"}}
	_, ok := tab.column(folderOIDCols)
	assert.False(t, ok)
}
