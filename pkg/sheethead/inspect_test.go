package sheethead

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type testSheet struct {
	name string
	rows [][]interface{}
}

// writeWorkbook saves the sheets in order, each row starting at column A.
func writeWorkbook(t *testing.T, sheets ...testSheet) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, sheet := range sheets {
		if i == 0 {
			require.NoError(t, f.SetSheetName("Sheet1", sheet.name))
		} else {
			_, err := f.NewSheet(sheet.name)
			require.NoError(t, err)
		}
		for r, row := range sheet.rows {
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetSheetRow(sheet.name, cell, &row))
		}
	}

	path := filepath.Join(t.TempDir(), "book.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestListSheets_StoredOrder(t *testing.T) {
	path := writeWorkbook(t,
		testSheet{name: "B"},
		testSheet{name: "A"},
		testSheet{name: "C"},
	)

	names, err := ListSheets(path, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, []string{"B", "A", "C"}, names)
}

func TestListSheets_VisibleOnly(t *testing.T) {
	path := writeWorkbook(t, testSheet{name: "Shown"}, testSheet{name: "Secret"})

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	require.NoError(t, f.SetSheetVisible("Secret", false))
	require.NoError(t, f.Save())
	require.NoError(t, f.Close())

	opts := DefaultOptions()
	names, err := ListSheets(path, opts)
	require.NoError(t, err)
	assert.Equal(t, []string{"Shown", "Secret"}, names)

	opts.VisibleOnly = true
	names, err = ListSheets(path, opts)
	require.NoError(t, err)
	assert.Equal(t, []string{"Shown"}, names)
}

func TestReadHeader_IgnoresDataRows(t *testing.T) {
	path := writeWorkbook(t, testSheet{
		name: "Scores",
		rows: [][]interface{}{
			{"id", "name", "score"},
			{1, "Kim", 90},
			{2, "Lee", 85.5},
			{3, "Park", 77},
		},
	})

	cols, err := ReadHeader(path, "Scores", DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, []any{"id", "name", "score"}, cols)
}

func TestReadHeader_EmptySheet(t *testing.T) {
	path := writeWorkbook(t, testSheet{name: "Empty"})

	cols, err := ReadHeader(path, "Empty", DefaultOptions())
	require.NoError(t, err)
	assert.NotNil(t, cols)
	assert.Empty(t, cols)
}

func TestReadHeader_DuplicatesPreserved(t *testing.T) {
	path := writeWorkbook(t, testSheet{
		name: "Dup",
		rows: [][]interface{}{{"id", "id"}, {1, 2}},
	})

	cols, err := ReadHeader(path, "Dup", DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, []any{"id", "id"}, cols)
}

func TestReadHeader_MixedTypes(t *testing.T) {
	path := writeWorkbook(t, testSheet{
		name: "Mixed",
		rows: [][]interface{}{{"label", 2024, 0.5}},
	})

	cols, err := ReadHeader(path, "Mixed", DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, []any{"label", int64(2024), 0.5}, cols)
}

func TestReadHeader_HeaderRowSelection(t *testing.T) {
	path := writeWorkbook(t, testSheet{
		name: "Report",
		rows: [][]interface{}{
			{},
			{"Quarterly report"},
			{"region", "q1", "q2"},
		},
	})

	opts := DefaultOptions()
	opts.HeaderRow = 3
	cols, err := ReadHeader(path, "Report", opts)
	require.NoError(t, err)
	assert.Equal(t, []any{"region", "q1", "q2"}, cols)

	opts = DefaultOptions()
	opts.SkipBlankRows = true
	cols, err = ReadHeader(path, "Report", opts)
	require.NoError(t, err)
	assert.Equal(t, []any{"Quarterly report"}, cols)
}

func TestReadHeader_MissingSheet(t *testing.T) {
	path := writeWorkbook(t, testSheet{name: "Only"})

	_, err := ReadHeader(path, "Other", DefaultOptions())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSheetNotFound)

	var sheetErr *SheetError
	require.True(t, errors.As(err, &sheetErr))
	assert.Equal(t, "Other", sheetErr.SheetName)
	assert.Equal(t, "header", sheetErr.Op)
}

func TestInspect(t *testing.T) {
	path := writeWorkbook(t,
		testSheet{name: "A", rows: [][]interface{}{{"id", "name"}, {1, "x"}}},
		testSheet{name: "B"},
	)

	opts := DefaultOptions()
	opts.Dimensions = true
	wb, err := Inspect(path, opts)
	require.NoError(t, err)

	assert.Equal(t, "book.xlsx", wb.BookName)
	assert.Equal(t, []string{"A", "B"}, wb.SheetNames)
	require.Len(t, wb.Sheets, 2)
	assert.Equal(t, "A", wb.Sheets[0].Name)
	assert.Equal(t, 1, wb.Sheets[0].Row)
	assert.Equal(t, []any{"id", "name"}, wb.Sheets[0].Columns)
	assert.Equal(t, "B", wb.Sheets[1].Name)
	assert.Empty(t, wb.Sheets[1].Columns)
}

func TestInspect_Errors(t *testing.T) {
	_, err := Inspect(filepath.Join(t.TempDir(), "missing.xlsx"), DefaultOptions())
	assert.ErrorIs(t, err, ErrFileNotFound)

	opts := DefaultOptions()
	opts.HeaderRow = -2
	_, err = Inspect("whatever.xlsx", opts)
	assert.Error(t, err)
}

func TestParseFormatAndEngine(t *testing.T) {
	f, err := ParseFormat("md")
	require.NoError(t, err)
	assert.Equal(t, FormatMarkdown, f)

	_, err = ParseFormat("yaml")
	assert.Error(t, err)

	e, err := ParseEngine("auto")
	require.NoError(t, err)
	assert.Equal(t, EngineAuto, e)

	e, err = ParseEngine("xls")
	require.NoError(t, err)
	assert.Equal(t, EngineXLS, e)

	_, err = ParseEngine("pandas")
	assert.Error(t, err)
}
