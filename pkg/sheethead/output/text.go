// Package output renders workbook header reports.
package output

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/ukaji3/sheethead/pkg/sheethead/models"
)

// TextWriter streams the plain-text report:
//
//	Sheet Names: ['A', 'B']
//
//	[A] Columns:
//	['id', 'name']
//
// The first write error is kept and later writes are skipped.
type TextWriter struct {
	w   io.Writer
	err error
}

// NewTextWriter creates a TextWriter writing to w.
func NewTextWriter(w io.Writer) *TextWriter {
	return &TextWriter{w: w}
}

// WriteSheetNames writes the sheet name line.
func (t *TextWriter) WriteSheetNames(names []string) {
	labels := make([]any, len(names))
	for i, name := range names {
		labels[i] = name
	}
	t.printf("Sheet Names: %s\n", FormatList(labels))
}

// WriteSheet writes one sheet's heading and column list, followed by the
// preview rows when there are any.
func (t *TextWriter) WriteSheet(sheet models.SheetHeader) {
	t.printf("\n[%s] Columns:\n%s\n", sheet.Name, FormatList(sheet.Columns))
	if len(sheet.Preview) == 0 {
		return
	}
	t.printf("[%s] Preview:\n", sheet.Name)
	for _, row := range sheet.Preview {
		t.printf("%s\n", FormatList(row))
	}
}

// Err returns the first write error.
func (t *TextWriter) Err() error {
	return t.err
}

func (t *TextWriter) printf(format string, args ...any) {
	if t.err != nil {
		return
	}
	_, t.err = fmt.Fprintf(t.w, format, args...)
}

// ToText renders a complete workbook report as text.
func ToText(wb *models.WorkbookHeaders) string {
	var b strings.Builder
	tw := NewTextWriter(&b)
	tw.WriteSheetNames(wb.SheetNames)
	for _, sheet := range wb.Sheets {
		tw.WriteSheet(sheet)
	}
	return b.String()
}

// FormatList renders values as a Python list literal, e.g. ['id', 3, 1.5].
func FormatList(values []any) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, v := range values {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(formatValue(v))
	}
	b.WriteByte(']')
	return b.String()
}

// formatLabel renders a value like formatValue but leaves strings unquoted,
// for table cells.
func formatLabel(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return formatValue(v)
}

func formatValue(v any) string {
	switch x := v.(type) {
	case string:
		return quote(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case int:
		return strconv.Itoa(x)
	case float64:
		return formatFloat(x)
	case bool:
		if x {
			return "True"
		}
		return "False"
	case nil:
		return "None"
	default:
		return quote(fmt.Sprint(x))
	}
}

// formatFloat prints floats the way Python's repr does: integral values
// keep ".0", very large or small magnitudes switch to exponent form.
func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}

	abs := math.Abs(f)
	if abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// quote uses single quotes unless the string contains one and no double quote.
func quote(s string) string {
	q := byte('\'')
	if strings.ContainsRune(s, '\'') && !strings.ContainsRune(s, '"') {
		q = '"'
	}

	var b strings.Builder
	b.WriteByte(q)
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case rune(q):
			b.WriteByte('\\')
			b.WriteRune(r)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte(q)
	return b.String()
}
