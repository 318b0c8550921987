package sheethead

import (
	"fmt"
	"io"

	"github.com/ukaji3/sheethead/internal/logger"
	"github.com/ukaji3/sheethead/pkg/sheethead/output"
)

// Report writes a human-readable header report for the workbook at path.
// Any failure, including one midway through the sheets, ends the report
// with a single "Error: <message>" line; Report itself never fails.
func Report(w io.Writer, path string, opts Options) {
	if err := report(w, path, opts); err != nil {
		logger.Warn("report %s: %v", path, err)
		fmt.Fprintln(w, "Error:", err)
	}
}

func report(w io.Writer, path string, opts Options) error {
	format := opts.Format
	if format == "" {
		format = FormatText
	}

	if format == FormatText {
		tw := output.NewTextWriter(w)
		if err := walk(path, opts, tw.WriteSheetNames, tw.WriteSheet); err != nil {
			return err
		}
		return tw.Err()
	}

	wb, err := Inspect(path, opts)
	if err != nil {
		return err
	}

	var data []byte
	switch format {
	case FormatJSON:
		data, err = output.ToJSON(wb, opts.Pretty)
	case FormatTOON:
		data, err = output.ToTOON(wb)
	case FormatMarkdown:
		data = output.ToMarkdown(wb)
	default:
		err = fmt.Errorf("invalid format: %s", format)
	}
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}

	_, err = w.Write(data)
	return err
}
