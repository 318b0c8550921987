package sheethead

import (
	"path/filepath"

	"github.com/ukaji3/sheethead/internal/logger"
	"github.com/ukaji3/sheethead/pkg/sheethead/models"
	"github.com/ukaji3/sheethead/pkg/sheethead/parser"
)

// ListSheets returns the sheet names of a workbook in stored order.
func ListSheets(path string, opts Options) ([]string, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	wb, err := parser.Open(path, opts.parserConfig())
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	return sheetNames(wb, opts), nil
}

// ReadHeader returns the column labels of one sheet's header row.
// Only the rows up to the header row are read. The result is empty, not nil,
// for a sheet without columns.
func ReadHeader(path, sheetName string, opts Options) ([]any, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	wb, err := parser.Open(path, opts.parserConfig())
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	_, raw, err := wb.HeaderRow(sheetName, opts.headerRow())
	if err != nil {
		return nil, NewSheetError(sheetName, "header", err)
	}
	return parser.NormalizeHeader(raw), nil
}

// Inspect opens a workbook once and reads the header row of every sheet.
// The first failure aborts the walk.
func Inspect(path string, opts Options) (*models.WorkbookHeaders, error) {
	result := &models.WorkbookHeaders{
		BookName:   filepath.Base(path),
		SheetNames: []string{},
		Sheets:     []models.SheetHeader{},
	}

	err := walk(path, opts,
		func(names []string) {
			result.SheetNames = append(result.SheetNames, names...)
		},
		func(sheet models.SheetHeader) {
			result.Sheets = append(result.Sheets, sheet)
		},
	)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// walk reports the sheet names, then each sheet's header as soon as it is read.
func walk(path string, opts Options, onNames func([]string), onSheet func(models.SheetHeader)) error {
	if err := opts.Validate(); err != nil {
		return err
	}

	wb, err := parser.Open(path, opts.parserConfig())
	if err != nil {
		return err
	}
	defer wb.Close()

	names := sheetNames(wb, opts)
	logger.Debug("%s: %d sheets", path, len(names))
	onNames(names)

	for _, name := range names {
		sheet, err := readSheet(wb, name, opts)
		if err != nil {
			return err
		}
		logger.Debug("[%s] header row %d, %d columns", name, sheet.Row, len(sheet.Columns))
		onSheet(sheet)
	}
	return nil
}

func readSheet(wb parser.Workbook, name string, opts Options) (models.SheetHeader, error) {
	rowNum, raw, err := wb.HeaderRow(name, opts.headerRow())
	if err != nil {
		return models.SheetHeader{}, NewSheetError(name, "header", err)
	}

	sheet := models.SheetHeader{
		Name:    name,
		Row:     rowNum,
		Columns: parser.NormalizeHeader(raw),
		Hidden:  wb.Hidden(name),
	}

	if opts.Preview > 0 && rowNum > 0 {
		rows, err := wb.DataRows(name, rowNum, opts.Preview)
		if err != nil {
			return models.SheetHeader{}, NewSheetError(name, "preview", err)
		}
		sheet.Preview = rows
	}

	if opts.Dimensions {
		dim, err := wb.Dimension(name)
		if err != nil {
			return models.SheetHeader{}, NewSheetError(name, "dimension", err)
		}
		sheet.Dimension = dim
	}

	return sheet, nil
}

func sheetNames(wb parser.Workbook, opts Options) []string {
	all := wb.SheetNames()
	names := make([]string, 0, len(all))
	for _, name := range all {
		if opts.VisibleOnly && wb.Hidden(name) {
			logger.Debug("skipping hidden sheet %q", name)
			continue
		}
		names = append(names, name)
	}
	return names
}
