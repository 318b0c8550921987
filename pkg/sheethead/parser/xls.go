package parser

import (
	"fmt"
	"os"

	"github.com/extrame/xls"
	"github.com/ukaji3/sheethead/pkg/sheethead/models"
)

// xlsWorkbook reads legacy BIFF workbooks. The library decodes a sheet in
// full on first access, so grids are cached per sheet.
type xlsWorkbook struct {
	file   *os.File
	book   *xls.WorkBook
	sheets []string
	grids  map[string][][]string
}

// maxXLSColumns is the column limit of a BIFF8 sheet.
const maxXLSColumns = 256

func openXLS(path, charset string) (Workbook, error) {
	if charset == "" {
		charset = "utf-8"
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	w := &xlsWorkbook{file: f, grids: make(map[string][][]string)}
	err = recoverBIFF(func() error {
		book, err := xls.OpenReader(f, charset)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidFormat, err)
		}
		if book == nil {
			return fmt.Errorf("%w: no workbook stream", ErrInvalidFormat)
		}
		w.book = book
		for i := 0; i < book.NumSheets(); i++ {
			if sheet := book.GetSheet(i); sheet != nil {
				w.sheets = append(w.sheets, sheet.Name)
			}
		}
		return nil
	})
	if err != nil {
		f.Close()
		return nil, err
	}
	return w, nil
}

func (w *xlsWorkbook) SheetNames() []string {
	return w.sheets
}

func (w *xlsWorkbook) Hidden(string) bool {
	return false
}

func (w *xlsWorkbook) Dimension(sheet string) (*models.CellRange, error) {
	grid, err := w.grid(sheet)
	if err != nil {
		return nil, err
	}
	return dataBounds(grid), nil
}

func (w *xlsWorkbook) HeaderRow(sheet string, row int) (int, []any, error) {
	grid, err := w.grid(sheet)
	if err != nil {
		return 0, nil, err
	}
	rowNum, values := pickRow(grid, row)
	return rowNum, typedCells(values), nil
}

func (w *xlsWorkbook) DataRows(sheet string, after, n int) ([][]any, error) {
	grid, err := w.grid(sheet)
	if err != nil {
		return nil, err
	}
	return gridRows(grid, after, n, typedCells), nil
}

func (w *xlsWorkbook) Close() error {
	return w.file.Close()
}

func (w *xlsWorkbook) grid(sheet string) ([][]string, error) {
	if grid, ok := w.grids[sheet]; ok {
		return grid, nil
	}
	idx := sheetIndex(w.sheets, sheet)
	if idx < 0 {
		return nil, sheetNotFound(sheet)
	}

	var grid [][]string
	err := recoverBIFF(func() error {
		ws := w.book.GetSheet(idx)
		if ws == nil {
			return sheetNotFound(sheet)
		}
		for r := 0; r <= int(ws.MaxRow); r++ {
			grid = append(grid, rowValues(ws, r))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	w.grids[sheet] = grid
	return grid, nil
}

// rowValues reads one row of a parsed sheet. Rows without cells come back nil.
func rowValues(ws *xls.WorkSheet, r int) []string {
	row := sheetRow(ws, r)
	if row == nil {
		return nil
	}

	// LastCol is one past the last cell. Rows built from cells alone, without
	// a ROW record, report 0 and are scanned to the BIFF8 column limit.
	last := row.LastCol()
	if last == 0 {
		last = maxXLSColumns
	}
	values := make([]string, last)
	for c := row.FirstCol(); c >= 0 && c < last; c++ {
		values[c] = row.Col(c)
	}

	end := len(values)
	for end > 0 && values[end-1] == "" {
		end--
	}
	return values[:end]
}

// sheetRow returns row r, or nil when the sheet has no such row.
// WorkSheet.Row dereferences the missing row instead of returning nil.
func sheetRow(ws *xls.WorkSheet, r int) (row *xls.Row) {
	defer func() {
		if recover() != nil {
			row = nil
		}
	}()
	return ws.Row(r)
}

// recoverBIFF runs fn and turns a decoder panic on malformed input into an error.
func recoverBIFF(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrInvalidFormat, r)
		}
	}()
	return fn()
}
