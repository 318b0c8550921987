// Package sheethead lists the sheets of a workbook and the column labels of
// each sheet's header row.
package sheethead

import (
	"fmt"

	"github.com/ukaji3/sheethead/pkg/sheethead/parser"
)

// Format represents the report output format.
type Format string

const (
	// FormatText prints sheet names and Python-style column lists.
	FormatText Format = "text"
	// FormatJSON prints the workbook headers as JSON.
	FormatJSON Format = "json"
	// FormatTOON prints the workbook headers as TOON.
	FormatTOON Format = "toon"
	// FormatMarkdown prints the workbook headers as Markdown tables.
	FormatMarkdown Format = "markdown"
)

// Engine represents the workbook backend.
type Engine string

const (
	// EngineAuto picks the backend from the file extension.
	EngineAuto Engine = ""
	// EngineExcelize reads .xlsx/.xlsm workbooks with excelize.
	EngineExcelize Engine = "excelize"
	// EngineStream reads .xlsx/.xlsm workbooks with a streaming reader.
	EngineStream Engine = "stream"
	// EngineXLS reads legacy .xls workbooks.
	EngineXLS Engine = "xls"
	// EngineCSV reads .csv/.tsv files as a single sheet.
	EngineCSV Engine = "csv"
)

// DefaultPath is the workbook inspected when no path is given.
const DefaultPath = "TOV 국어 .xlsx"

// Options configures inspection and reporting.
type Options struct {
	// Format selects the report format. Empty means text.
	Format Format
	// Pretty indents JSON output.
	Pretty bool
	// HeaderRow is the 1-based row holding column labels. 0 means row 1.
	HeaderRow int
	// SkipBlankRows reads the first non-empty row instead of a fixed row.
	// It overrides HeaderRow.
	SkipBlankRows bool
	// Engine forces a backend. Empty detects it from the file extension.
	Engine Engine
	// Encoding is the charset of CSV input and legacy XLS strings.
	Encoding string
	// VisibleOnly skips hidden sheets.
	VisibleOnly bool
	// Dimensions includes each sheet's used range. Some backends have to
	// load the whole sheet to compute it.
	Dimensions bool
	// Preview is the number of rows after the header row to include.
	// 0 disables the preview.
	Preview int
}

// DefaultOptions returns default inspection options.
func DefaultOptions() Options {
	return Options{
		Format:    FormatText,
		HeaderRow: 1,
		Encoding:  "utf-8",
	}
}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatText, FormatJSON, FormatTOON, FormatMarkdown:
		return f, nil
	case "md":
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("invalid format: %s (must be text, json, toon, or markdown)", s)
	}
}

// ParseEngine validates an engine name. "auto" and "" select EngineAuto.
func ParseEngine(s string) (Engine, error) {
	switch e := Engine(s); e {
	case EngineAuto, "auto":
		return EngineAuto, nil
	case EngineExcelize, EngineStream, EngineXLS, EngineCSV:
		return e, nil
	default:
		return "", fmt.Errorf("invalid engine: %s (must be auto, excelize, stream, xls, or csv)", s)
	}
}

// Validate reports option values that can never succeed.
func (o Options) Validate() error {
	if o.HeaderRow < 0 {
		return fmt.Errorf("invalid header row: %d", o.HeaderRow)
	}
	if o.Preview < 0 {
		return fmt.Errorf("invalid preview row count: %d", o.Preview)
	}
	if o.Format != "" {
		if _, err := ParseFormat(string(o.Format)); err != nil {
			return err
		}
	}
	if _, err := ParseEngine(string(o.Engine)); err != nil {
		return err
	}
	return nil
}

// headerRow returns the row argument for parser.Workbook.HeaderRow.
func (o Options) headerRow() int {
	if o.SkipBlankRows {
		return 0
	}
	if o.HeaderRow == 0 {
		return 1
	}
	return o.HeaderRow
}

func (o Options) parserConfig() parser.Config {
	engine := o.Engine
	if engine == "auto" {
		engine = EngineAuto
	}
	return parser.Config{
		Engine:   parser.Engine(engine),
		Encoding: o.Encoding,
	}
}
