// Package parser provides the workbook backends used for header inspection.
package parser

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ukaji3/sheethead/pkg/sheethead/models"
	"golang.org/x/text/unicode/norm"
)

// Engine names a workbook backend.
type Engine string

const (
	// EngineAuto picks the backend from the file extension.
	EngineAuto Engine = ""
	// EngineExcelize reads OOXML workbooks with excelize.
	EngineExcelize Engine = "excelize"
	// EngineStream reads OOXML workbooks with the streaming xlsxreader.
	EngineStream Engine = "stream"
	// EngineXLS reads legacy BIFF (.xls) workbooks.
	EngineXLS Engine = "xls"
	// EngineCSV reads delimited text as a single-sheet workbook.
	EngineCSV Engine = "csv"
)

// Workbook is an open, read-only spreadsheet.
type Workbook interface {
	// SheetNames returns the sheet names in stored order.
	SheetNames() []string
	// Hidden reports whether a sheet is hidden. Backends that cannot tell return false.
	Hidden(sheet string) bool
	// Dimension returns the sheet's used range, or nil if unknown.
	Dimension(sheet string) (*models.CellRange, error)
	// HeaderRow reads a single row of sheet. row is 1-based; 0 selects the
	// first non-empty row. It returns the row number actually read (0 when
	// the sheet has no such row) and the cell values: int64, float64, bool
	// or string, with dates as ISO 8601 text and "" for empty cells.
	HeaderRow(sheet string, row int) (int, []any, error)
	// DataRows returns up to n rows following row after (1-based), blank
	// rows included as empty slices. Trailing empty cells are dropped.
	DataRows(sheet string, after, n int) ([][]any, error)
	Close() error
}

// Config configures how a workbook is opened.
type Config struct {
	// Engine forces a backend; EngineAuto detects it from the extension.
	Engine Engine
	// Encoding is the character set of CSV input and legacy XLS strings.
	Encoding string
}

// Open resolves path and opens it with the configured backend.
func Open(path string, cfg Config) (Workbook, error) {
	resolved, err := ResolvePath(path)
	if err != nil {
		return nil, err
	}

	engine := cfg.Engine
	if engine == EngineAuto {
		engine, err = DetectEngine(resolved)
		if err != nil {
			return nil, err
		}
	}

	switch engine {
	case EngineExcelize:
		return openExcelize(resolved)
	case EngineStream:
		return openStream(resolved)
	case EngineXLS:
		return openXLS(resolved, cfg.Encoding)
	case EngineCSV:
		return openCSV(resolved, cfg.Encoding)
	default:
		return nil, fmt.Errorf("%w: engine %q", ErrUnsupportedFormat, engine)
	}
}

// DetectEngine maps a file extension to its default backend.
func DetectEngine(path string) (Engine, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		return EngineExcelize, nil
	case ".xls":
		return EngineXLS, nil
	case ".csv", ".tsv":
		return EngineCSV, nil
	default:
		return EngineAuto, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// ResolvePath returns a path that exists on disk for the given name.
// If the name is missing as given, its NFC and NFD forms are tried, since
// file names written on macOS are stored decomposed.
func ResolvePath(path string) (string, error) {
	for _, candidate := range []string{path, norm.NFC.String(path), norm.NFD.String(path)} {
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}

	_, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}
	return "", err
}

// sheetIndex returns the position of sheet in names, or -1.
func sheetIndex(names []string, sheet string) int {
	for i, name := range names {
		if name == sheet {
			return i
		}
	}
	return -1
}

func sheetNotFound(sheet string) error {
	return fmt.Errorf("%w: %q", ErrSheetNotFound, sheet)
}
