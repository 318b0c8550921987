package sheethead

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukaji3/sheethead/pkg/sheethead/models"
)

func TestReport_Text(t *testing.T) {
	path := writeWorkbook(t,
		testSheet{name: "A", rows: [][]interface{}{{"id", "name", "score"}, {1, "Kim", 90}}},
		testSheet{name: "B", rows: [][]interface{}{{"code", 7, 2.5}}},
		testSheet{name: "Empty"},
	)

	var buf bytes.Buffer
	Report(&buf, path, DefaultOptions())

	expected := "Sheet Names: ['A', 'B', 'Empty']\n" +
		"\n[A] Columns:\n['id', 'name', 'score']\n" +
		"\n[B] Columns:\n['code', 7, 2.5]\n" +
		"\n[Empty] Columns:\n[]\n"
	assert.Equal(t, expected, buf.String())
}

func TestReport_SheetOrderBeforeColumns(t *testing.T) {
	path := writeWorkbook(t,
		testSheet{name: "A", rows: [][]interface{}{{"x"}}},
		testSheet{name: "B", rows: [][]interface{}{{"y"}}},
	)

	var buf bytes.Buffer
	Report(&buf, path, DefaultOptions())
	out := buf.String()

	namesAt := strings.Index(out, "['A', 'B']")
	secondAt := strings.Index(out, "[B] Columns:")
	require.GreaterOrEqual(t, namesAt, 0)
	require.GreaterOrEqual(t, secondAt, 0)
	assert.Less(t, namesAt, secondAt)
}

func TestReport_MissingFile(t *testing.T) {
	var buf bytes.Buffer
	Report(&buf, filepath.Join(t.TempDir(), "missing.xlsx"), DefaultOptions())

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "Error:"), out)
	assert.Equal(t, 1, strings.Count(out, "\n"))
	assert.NotContains(t, out, "Sheet Names")
}

func TestReport_Idempotent(t *testing.T) {
	path := writeWorkbook(t,
		testSheet{name: "국어", rows: [][]interface{}{{"번호", "이름", "점수"}}},
		testSheet{name: "Dup", rows: [][]interface{}{{"id", "id"}}},
	)

	for _, format := range []Format{FormatText, FormatJSON, FormatTOON, FormatMarkdown} {
		opts := DefaultOptions()
		opts.Format = format

		var first, second bytes.Buffer
		Report(&first, path, opts)
		Report(&second, path, opts)
		assert.NotEmpty(t, first.Bytes(), format)
		assert.Equal(t, first.Bytes(), second.Bytes(), format)
	}
}

func TestReport_JSON(t *testing.T) {
	path := writeWorkbook(t, testSheet{name: "A", rows: [][]interface{}{{"id", "id", 3}}})

	opts := DefaultOptions()
	opts.Format = FormatJSON
	opts.Pretty = true

	var buf bytes.Buffer
	Report(&buf, path, opts)

	var wb models.WorkbookHeaders
	require.NoError(t, json.Unmarshal(buf.Bytes(), &wb))
	assert.Equal(t, []string{"A"}, wb.SheetNames)
	require.Len(t, wb.Sheets, 1)
	// JSON numbers decode as float64
	assert.Equal(t, []any{"id", "id", float64(3)}, wb.Sheets[0].Columns)
}

func TestReport_ErrorInStructuredFormat(t *testing.T) {
	opts := DefaultOptions()
	opts.Format = FormatJSON

	var buf bytes.Buffer
	Report(&buf, filepath.Join(t.TempDir(), "missing.xlsx"), opts)
	assert.True(t, strings.HasPrefix(buf.String(), "Error: file not found"), buf.String())
}

// writeTruncatedMiddleSheet saves sheets A, B and C and cuts sheet B's XML
// off inside its first row.
func writeTruncatedMiddleSheet(t *testing.T) string {
	t.Helper()

	path := writeWorkbook(t,
		testSheet{name: "A", rows: [][]interface{}{{"id", "name"}}},
		testSheet{name: "B", rows: [][]interface{}{{"code"}}},
		testSheet{name: "C", rows: [][]interface{}{{"memo"}}},
	)

	src, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer src.Close()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, file := range src.File {
		w, err := zw.Create(file.Name)
		require.NoError(t, err)
		if file.Name == "xl/worksheets/sheet2.xml" {
			_, err = io.WriteString(w, `<worksheet xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main"><sheetData><row`)
			require.NoError(t, err)
			continue
		}
		rc, err := file.Open()
		require.NoError(t, err)
		_, err = io.Copy(w, rc)
		rc.Close()
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))
	return path
}

func TestReport_TextStopsAtCorruptSheet(t *testing.T) {
	path := writeTruncatedMiddleSheet(t)

	for _, engine := range []Engine{EngineExcelize, EngineStream} {
		t.Run(string(engine), func(t *testing.T) {
			opts := DefaultOptions()
			opts.Engine = engine

			var buf bytes.Buffer
			Report(&buf, path, opts)
			out := buf.String()

			written := "Sheet Names: ['A', 'B', 'C']\n" +
				"\n[A] Columns:\n['id', 'name']\n"
			require.True(t, strings.HasPrefix(out, written), out)

			rest := strings.TrimPrefix(out, written)
			assert.True(t, strings.HasPrefix(rest, `Error: sheet "B" (header): invalid workbook format`), rest)
			assert.Equal(t, 1, strings.Count(rest, "\n"), rest)
			assert.NotContains(t, out, "[B] Columns:")
			assert.NotContains(t, out, "[C] Columns:")
		})
	}
}

func TestReport_StructuredFormatStopsAtCorruptSheet(t *testing.T) {
	path := writeTruncatedMiddleSheet(t)

	opts := DefaultOptions()
	opts.Format = FormatJSON

	var buf bytes.Buffer
	Report(&buf, path, opts)
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, `Error: sheet "B" (header): invalid workbook format`), out)
	assert.Equal(t, 1, strings.Count(out, "\n"), out)
	assert.NotContains(t, out, "book_name")
}

func TestReport_Preview(t *testing.T) {
	path := writeWorkbook(t,
		testSheet{name: "A", rows: [][]interface{}{{"id", "name"}, {1, "Kim"}, {2, "Lee"}, {3, "Park"}}},
		testSheet{name: "Empty"},
	)

	opts := DefaultOptions()
	opts.Preview = 2

	var buf bytes.Buffer
	Report(&buf, path, opts)

	expected := "Sheet Names: ['A', 'Empty']\n" +
		"\n[A] Columns:\n['id', 'name']\n" +
		"[A] Preview:\n[1, 'Kim']\n[2, 'Lee']\n" +
		"\n[Empty] Columns:\n[]\n"
	assert.Equal(t, expected, buf.String())

	opts.Format = FormatJSON
	buf.Reset()
	Report(&buf, path, opts)

	var wb models.WorkbookHeaders
	require.NoError(t, json.Unmarshal(buf.Bytes(), &wb))
	require.Len(t, wb.Sheets, 2)
	assert.Equal(t, [][]any{{float64(1), "Kim"}, {float64(2), "Lee"}}, wb.Sheets[0].Preview)
	assert.Nil(t, wb.Sheets[1].Preview)
}
