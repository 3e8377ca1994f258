package alsmatrix

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// buildWorkbook renders sheets into real xlsx bytes so tests exercise the
// same decode path as production uploads.
func buildWorkbook(t *testing.T, order []string, sheets map[string][][]string) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for i, name := range order {
		if i == 0 {
			require.NoError(t, f.SetSheetName("Sheet1", name))
		} else {
			_, err := f.NewSheet(name)
			require.NoError(t, err)
		}
		for r, row := range sheets[name] {
			for c, value := range row {
				if value == "" {
					continue
				}
				cell, err := excelize.CoordinatesToCellName(c+1, r+1)
				require.NoError(t, err)
				require.NoError(t, f.SetCellValue(name, cell, value))
			}
		}
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func scenarioWorkbook(t *testing.T) []byte {
	return buildWorkbook(t,
		[]string{"MASTERDASHBOARD", "Folder", "Form"},
		map[string][][]string{
			"MASTERDASHBOARD": {
				{"FormOID", "FOLDERA", "FOLDERB"},
				{"Form1", "X", ""},
				{"Form2", "", ""},
			},
			"Folder": {
				{"FolderOID", "FolderName"},
				{"FOLDERA", "Screening"},
			},
			"Form": {
				{"FormOID", "DraftFormName", "FormName"},
				{"Form1", "Demographics", "Demo"},
			},
		})
}

func TestExtract_CrosstabScenario(t *testing.T) {
	result, err := Extract(scenarioWorkbook(t))
	require.NoError(t, err)

	assert.Equal(t, "MASTERDASHBOARD", result.Meta.MatrixOID)
	assert.Equal(t, "MASTERDASHBOARD", result.Meta.Sheet)
	require.Len(t, result.Meta.AvailableMatrices, 1)

	require.Len(t, result.Folders, 1, "FOLDERB carries no marks and must be absent")
	folder := result.Folders[0]
	assert.Equal(t, "FOLDERA", folder.FolderOID)
	require.NotNil(t, folder.FolderName)
	assert.Equal(t, "Screening", *folder.FolderName)

	require.Len(t, folder.Forms, 1)
	assert.Equal(t, "Form1", folder.Forms[0].FormOID)
	require.NotNil(t, folder.Forms[0].FormName)
	assert.Equal(t, "Demographics", *folder.Forms[0].FormName, "draft name wins over FormName")
	assert.Nil(t, result.Diff)
}

func TestExtract_LayoutEquivalence(t *testing.T) {
	meta := map[string][][]string{
		"Folder": {
			{"FolderOID", "FolderName"},
			{"SCRN", "Screening"},
			{"TRT", "Treatment"},
		},
		"Form": {
			{"FormOID", "FormName"},
			{"DM", "Demographics"},
			{"VS", "Vital Signs"},
		},
	}

	crosstab := map[string][][]string{
		"Matrix": {
			{"FormOID", "SCRN", "TRT"},
			{"DM", "X", ""},
			{"VS", "X", "X"},
		},
		"Folder": meta["Folder"],
		"Form":   meta["Form"],
	}
	long := map[string][][]string{
		"Matrix": {
			{"FolderOID", "FormOID"},
			{"SCRN", "DM"},
			{"SCRN", "VS"},
			{"TRT", "VS"},
		},
		"Folder": meta["Folder"],
		"Form":   meta["Form"],
	}
	order := []string{"Matrix", "Folder", "Form"}

	fromCrosstab, err := Extract(buildWorkbook(t, order, crosstab))
	require.NoError(t, err)
	fromLong, err := Extract(buildWorkbook(t, order, long))
	require.NoError(t, err)

	assert.Equal(t, fromLong.Folders, fromCrosstab.Folders)
}

func TestExtract_Deterministic(t *testing.T) {
	data := scenarioWorkbook(t)

	first, err := Extract(data)
	require.NoError(t, err)
	second, err := Extract(data)
	require.NoError(t, err)

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestExtract_SelectsRequestedMatrix(t *testing.T) {
	data := buildWorkbook(t,
		[]string{"MASTERDASHBOARD", "Matrix2#SCREENING", "Folder", "Form"},
		map[string][][]string{
			"MASTERDASHBOARD": {
				{"FormOID", "FOLDERA"},
				{"Form1", "X"},
			},
			"Matrix2#SCREENING": {
				{"FormOID", "SCRN"},
				{"Form9", "X"},
			},
			"Folder": {{"FolderOID", "FolderName"}},
			"Form":   {{"FormOID", "FormName"}},
		})

	result, err := Extract(data, WithMatrixOID("screening"))
	require.NoError(t, err)
	assert.Equal(t, "SCREENING", result.Meta.MatrixOID)
	assert.Equal(t, "Matrix2#SCREENING", result.Meta.Sheet)
	require.Len(t, result.Meta.AvailableMatrices, 2)
	require.Len(t, result.Folders, 1)
	assert.Equal(t, "SCRN", result.Folders[0].FolderOID)
}

func TestExtract_HeaderAfterPreamble(t *testing.T) {
	data := buildWorkbook(t,
		[]string{"Matrix", "Folder", "Form"},
		map[string][][]string{
			"Matrix": {
				{"Study ABC-123 Visit Matrix"},
				{},
				{"FormOID", "SCRN"},
				{"DM", "X"},
			},
			"Folder": {{"FolderOID", "FolderName"}},
			"Form":   {{"FormOID", "FormName"}},
		})

	result, err := Extract(data)
	require.NoError(t, err)
	require.Len(t, result.Folders, 1)
	assert.Equal(t, "SCRN", result.Folders[0].FolderOID)
}

func TestExtract_WithReferenceMapping(t *testing.T) {
	result, err := Extract(scenarioWorkbook(t), WithReferenceMapping(map[string][]string{
		"foldera": {"form1", "LB"},
		"FU":      {"VS"},
	}))
	require.NoError(t, err)
	require.NotNil(t, result.Diff)

	assert.Equal(t, map[string][]string{
		"FOLDERA": {"LB"},
		"FU":      {"VS"},
	}, result.Diff.MissingInDB)
	assert.Empty(t, result.Diff.ExtraInDB, "form1 matches case-insensitively")
}

func TestExtract_WithFolderFilter(t *testing.T) {
	result, err := Extract(scenarioWorkbook(t), WithFolderFilter(`folderName == "Screening"`))
	require.NoError(t, err)
	require.Len(t, result.Folders, 1)

	result, err = Extract(scenarioWorkbook(t), WithFolderFilter("formCount > 5"))
	require.NoError(t, err)
	assert.NotNil(t, result.Folders)
	assert.Empty(t, result.Folders)
}

func TestExtract_NoMatrixSheet(t *testing.T) {
	data := buildWorkbook(t,
		[]string{"Folder", "Form"},
		map[string][][]string{
			"Folder": {{"FolderOID"}},
			"Form":   {{"FormOID"}},
		})
	_, err := Extract(data)
	var nf *NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "matrix", nf.Kind)
}

func TestExtract_MissingMetadataSheet(t *testing.T) {
	data := buildWorkbook(t,
		[]string{"Matrix"},
		map[string][][]string{
			"Matrix": {
				{"FormOID", "SCRN"},
				{"DM", "X"},
			},
		})
	_, err := Extract(data)
	var nf *NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "sheet", nf.Kind)
}

func TestExtract_MalformedInput(t *testing.T) {
	var malformed *MalformedInputError

	_, err := Extract(nil)
	require.True(t, errors.As(err, &malformed))

	_, err = Extract([]byte("not a workbook"))
	require.True(t, errors.As(err, &malformed))
}

func TestDiscover_FromWorkbookBytes(t *testing.T) {
	descs, err := Discover(scenarioWorkbook(t))
	require.NoError(t, err)
	require.Len(t, descs, 1)
	assert.Equal(t, MatrixDescriptor{MatrixOID: "MASTERDASHBOARD", Sheet: "MASTERDASHBOARD"}, descs[0])
}
