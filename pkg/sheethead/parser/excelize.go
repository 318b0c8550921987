package parser

import (
	"archive/zip"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/ukaji3/sheethead/pkg/sheethead/models"
	"github.com/xuri/excelize/v2"
)

// excelizeWorkbook reads OOXML workbooks through excelize.
type excelizeWorkbook struct {
	f      *excelize.File
	sheets []string
}

func openExcelize(path string) (Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		if errors.Is(err, excelize.ErrWorkbookFileFormat) || errors.Is(err, zip.ErrFormat) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
		}
		return nil, err
	}

	return &excelizeWorkbook{
		f:      f,
		sheets: f.GetSheetList(),
	}, nil
}

func (w *excelizeWorkbook) SheetNames() []string {
	return w.sheets
}

func (w *excelizeWorkbook) Hidden(sheet string) bool {
	visible, err := w.f.GetSheetVisible(sheet)
	return err == nil && !visible
}

func (w *excelizeWorkbook) Dimension(sheet string) (*models.CellRange, error) {
	if sheetIndex(w.sheets, sheet) < 0 {
		return nil, sheetNotFound(sheet)
	}
	ref, err := w.f.GetSheetDimension(sheet)
	if err != nil {
		return nil, err
	}
	return ParseRange(ref), nil
}

// HeaderRow walks the row iterator only as far as the header row.
func (w *excelizeWorkbook) HeaderRow(sheet string, row int) (int, []any, error) {
	if sheetIndex(w.sheets, sheet) < 0 {
		return 0, nil, sheetNotFound(sheet)
	}

	rows, err := w.f.Rows(sheet)
	if err != nil {
		return 0, nil, err
	}
	defer rows.Close()

	rowNum := 0
	for rows.Next() {
		rowNum++
		if row > 0 && rowNum < row {
			continue
		}

		// Raw values keep numbers unformatted so they parse as numbers.
		cols, err := rows.Columns(excelize.Options{RawCellValue: true})
		if err != nil {
			return 0, nil, err
		}
		if isBlankRow(cols) {
			if row == 0 {
				continue
			}
			break
		}
		cells, err := w.typedRow(sheet, rowNum, cols)
		if err != nil {
			return 0, nil, err
		}
		return rowNum, cells, nil
	}
	if err := rows.Error(); err != nil {
		return 0, nil, err
	}

	// The iterator ends quietly on malformed XML, so an empty result is
	// confirmed against a full parse of the sheet.
	if err := checkSheetXML(w.f, sheet); err != nil {
		return 0, nil, err
	}
	if row > 0 && rowNum >= row {
		return row, []any{}, nil
	}
	return 0, []any{}, nil
}

func (w *excelizeWorkbook) DataRows(sheet string, after, n int) ([][]any, error) {
	if sheetIndex(w.sheets, sheet) < 0 {
		return nil, sheetNotFound(sheet)
	}

	rows, err := w.f.Rows(sheet)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := [][]any{}
	rowNum := 0
	for len(out) < n && rows.Next() {
		rowNum++
		if rowNum <= after {
			continue
		}
		cols, err := rows.Columns(excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, err
		}
		cells, err := w.typedRow(sheet, rowNum, cols)
		if err != nil {
			return nil, err
		}
		out = append(out, trimRow(cells))
	}
	return out, rows.Error()
}

func (w *excelizeWorkbook) Close() error {
	return w.f.Close()
}

// typedRow converts one row of raw values. Cells that read as numbers or
// dates are looked up by type and style, which loads the sheet; plain text
// is kept without a lookup.
func (w *excelizeWorkbook) typedRow(sheet string, rowNum int, raw []string) ([]any, error) {
	cells := make([]any, len(raw))
	for idx, value := range raw {
		cells[idx] = value

		number := parseValue(value)
		_, text := number.(string)
		date, isDate := isoDateText(value)
		if value == "" || (text && !isDate) {
			continue
		}

		ref, err := excelize.CoordinatesToCellName(idx+1, rowNum)
		if err != nil {
			return nil, err
		}
		cellType, err := w.f.GetCellType(sheet, ref)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
		}

		switch cellType {
		case excelize.CellTypeBool:
			cells[idx] = value != "0" && !strings.EqualFold(value, "false")
		case excelize.CellTypeDate:
			cells[idx] = date
		case excelize.CellTypeUnset, excelize.CellTypeNumber:
			if text {
				continue
			}
			cells[idx] = number
			styled, ok, err := w.styledDate(sheet, ref, value)
			if err != nil {
				return nil, err
			}
			if ok {
				cells[idx] = styled
			}
		}
	}
	return cells, nil
}

// styledDate renders a serial number as a date when the cell's number format
// is a date format.
func (w *excelizeWorkbook) styledDate(sheet, ref, value string) (string, bool, error) {
	styleID, err := w.f.GetCellStyle(sheet, ref)
	if err != nil || styleID == 0 {
		return "", false, err
	}
	style, err := w.f.GetStyle(styleID)
	if err != nil {
		return "", false, err
	}
	if !isDateFormat(style.NumFmt, style.CustomNumFmt) {
		return "", false, nil
	}

	serial, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return "", false, nil
	}
	t, err := excelize.ExcelDateToTime(serial, w.date1904())
	if err != nil {
		return "", false, nil
	}
	return isoDate(t), true, nil
}

func (w *excelizeWorkbook) date1904() bool {
	props, err := w.f.GetWorkbookProps()
	return err == nil && props.Date1904 != nil && *props.Date1904
}

// checkSheetXML parses the whole worksheet and reports malformed XML.
func checkSheetXML(f *excelize.File, sheet string) error {
	if _, err := f.GetCellValue(sheet, "A1"); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	return nil
}
