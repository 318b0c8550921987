package parser

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ukaji3/sheethead/pkg/sheethead/models"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// csvWorkbook presents a delimited text file as a workbook with one sheet
// named after the file. Records are read on demand and kept, so a header
// read stops at the header row.
type csvWorkbook struct {
	sheet string
	file  *os.File
	r     *csv.Reader
	rows  [][]string
	eof   bool
}

func openCSV(path, encoding string) (Workbook, error) {
	if encoding == "" {
		encoding = "utf-8"
	}
	enc, err := htmlindex.Get(encoding)
	if err != nil {
		return nil, fmt.Errorf("unknown encoding %q: %w", encoding, err)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	r := csv.NewReader(transform.NewReader(f, unicode.BOMOverride(enc.NewDecoder())))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	if strings.EqualFold(filepath.Ext(path), ".tsv") {
		r.Comma = '\t'
	}

	base := filepath.Base(path)
	return &csvWorkbook{
		sheet: strings.TrimSuffix(base, filepath.Ext(base)),
		file:  f,
		r:     r,
	}, nil
}

func (w *csvWorkbook) SheetNames() []string {
	return []string{w.sheet}
}

func (w *csvWorkbook) Hidden(string) bool {
	return false
}

// Dimension reads the rest of the file.
func (w *csvWorkbook) Dimension(sheet string) (*models.CellRange, error) {
	if sheet != w.sheet {
		return nil, sheetNotFound(sheet)
	}
	if err := w.readTo(-1); err != nil {
		return nil, err
	}
	return dataBounds(w.rows), nil
}

// HeaderRow keeps CSV cells as text; the format carries no cell types.
func (w *csvWorkbook) HeaderRow(sheet string, row int) (int, []any, error) {
	if sheet != w.sheet {
		return 0, nil, sheetNotFound(sheet)
	}

	if row > 0 {
		if err := w.readTo(row); err != nil {
			return 0, nil, err
		}
	} else {
		for idx := 0; ; idx++ {
			if err := w.readTo(idx + 1); err != nil {
				return 0, nil, err
			}
			if idx >= len(w.rows) || !isBlankRow(w.rows[idx]) {
				break
			}
		}
	}

	rowNum, values := pickRow(w.rows, row)
	return rowNum, textCells(values), nil
}

func (w *csvWorkbook) DataRows(sheet string, after, n int) ([][]any, error) {
	if sheet != w.sheet {
		return nil, sheetNotFound(sheet)
	}
	if err := w.readTo(after + n); err != nil {
		return nil, err
	}
	return gridRows(w.rows, after, n, textCells), nil
}

func (w *csvWorkbook) Close() error {
	return w.file.Close()
}

// readTo reads records until n are buffered or the file ends. n < 0 reads
// the whole file.
func (w *csvWorkbook) readTo(n int) error {
	for !w.eof && (n < 0 || len(w.rows) < n) {
		record, err := w.r.Read()
		if errors.Is(err, io.EOF) {
			w.eof = true
			break
		}
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidFormat, err)
		}
		w.rows = append(w.rows, record)
	}
	return nil
}
