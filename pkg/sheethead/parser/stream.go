package parser

import (
	"fmt"
	"strconv"

	"github.com/thedatashed/xlsxreader"
	"github.com/ukaji3/sheethead/pkg/sheethead/models"
	"github.com/xuri/excelize/v2"
)

// streamWorkbook reads OOXML workbooks row by row with xlsxreader.
// Rows are abandoned as soon as the header row is found, which leaves the
// reader's producer goroutine parked until the process exits.
type streamWorkbook struct {
	path string
	x    *xlsxreader.XlsxFileCloser
}

func openStream(path string) (Workbook, error) {
	x, err := xlsxreader.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	return &streamWorkbook{path: path, x: x}, nil
}

func (w *streamWorkbook) SheetNames() []string {
	return w.x.Sheets
}

func (w *streamWorkbook) Hidden(string) bool {
	return false
}

func (w *streamWorkbook) Dimension(sheet string) (*models.CellRange, error) {
	if sheetIndex(w.x.Sheets, sheet) < 0 {
		return nil, sheetNotFound(sheet)
	}
	return nil, nil
}

func (w *streamWorkbook) HeaderRow(sheet string, row int) (int, []any, error) {
	if sheetIndex(w.x.Sheets, sheet) < 0 {
		return 0, nil, sheetNotFound(sheet)
	}

	// Rows arrive sparse: missing rows are skipped and cells carry their column letter.
	for r := range w.x.ReadRows(sheet) {
		if r.Error != nil {
			return 0, nil, fmt.Errorf("%w: %v", ErrInvalidFormat, r.Error)
		}
		if row > 0 && r.Index < row {
			continue
		}
		if row > 0 && r.Index > row {
			return row, []any{}, nil
		}

		cells, err := placeCells(r.Cells)
		if err != nil {
			return 0, nil, err
		}
		if row == 0 && len(trimRow(cells)) == 0 {
			continue
		}
		return r.Index, cells, nil
	}

	// The reader closes the row channel without an error on malformed XML.
	if err := w.checkSheet(sheet); err != nil {
		return 0, nil, err
	}
	return 0, []any{}, nil
}

func (w *streamWorkbook) DataRows(sheet string, after, n int) ([][]any, error) {
	if sheetIndex(w.x.Sheets, sheet) < 0 {
		return nil, sheetNotFound(sheet)
	}

	out := [][]any{}
	if n <= 0 {
		return out, nil
	}
	for r := range w.x.ReadRows(sheet) {
		if r.Error != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, r.Error)
		}
		if r.Index <= after {
			continue
		}
		for len(out) < n && after+len(out)+1 < r.Index {
			out = append(out, []any{})
		}
		if len(out) == n {
			break
		}

		cells, err := placeCells(r.Cells)
		if err != nil {
			return nil, err
		}
		out = append(out, trimRow(cells))
		if len(out) == n {
			break
		}
	}
	return out, nil
}

func (w *streamWorkbook) Close() error {
	return w.x.Close()
}

// checkSheet parses the sheet in full with excelize to tell an empty sheet
// from a truncated one.
func (w *streamWorkbook) checkSheet(sheet string) error {
	f, err := excelize.OpenFile(w.path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	defer f.Close()
	return checkSheetXML(f, sheet)
}

// placeCells lays sparse cells out by column, leaving "" in the gaps.
func placeCells(cells []xlsxreader.Cell) ([]any, error) {
	var values []any
	for _, cell := range cells {
		col, err := excelize.ColumnNameToNumber(cell.Column)
		if err != nil {
			return nil, err
		}
		for len(values) < col {
			values = append(values, "")
		}
		values[col-1] = streamValue(cell)
	}
	return values, nil
}

// streamValue types a cell by the reader's cell type. The reader has
// already rendered dates as ISO 8601 text.
func streamValue(cell xlsxreader.Cell) any {
	switch cell.Type {
	case xlsxreader.TypeBoolean:
		if b, err := strconv.ParseBool(cell.Value); err == nil {
			return b
		}
	case xlsxreader.TypeDateTime:
		date, _ := isoDateText(cell.Value)
		return date
	case xlsxreader.TypeNumerical:
		return parseValue(cell.Value)
	}
	return cell.Value
}
