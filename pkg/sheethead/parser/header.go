package parser

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// NormalizeHeader turns a raw header row into column labels.
// Trailing empty cells are dropped and empty cells inside the row become
// "Unnamed: <index>" with a 0-based index. Duplicates are kept as they are.
// The result is never nil.
func NormalizeHeader(cells []any) []any {
	end := len(cells)
	for end > 0 && isEmptyCell(cells[end-1]) {
		end--
	}

	labels := make([]any, 0, end)
	for idx, cell := range cells[:end] {
		if isEmptyCell(cell) {
			labels = append(labels, fmt.Sprintf("Unnamed: %d", idx))
			continue
		}
		labels = append(labels, cell)
	}
	return labels
}

// typedCells converts raw cell strings into header values.
func typedCells(row []string) []any {
	cells := make([]any, len(row))
	for idx, value := range row {
		if value == "" {
			cells[idx] = ""
			continue
		}
		cells[idx] = parseValue(value)
	}
	return cells
}

// textCells keeps raw cell strings as they are.
func textCells(row []string) []any {
	cells := make([]any, len(row))
	for idx, value := range row {
		cells[idx] = value
	}
	return cells
}

// trimRow drops trailing empty cells. The result is never nil.
func trimRow(cells []any) []any {
	end := len(cells)
	for end > 0 && isEmptyCell(cells[end-1]) {
		end--
	}
	row := make([]any, end)
	copy(row, cells[:end])
	return row
}

func isEmptyCell(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && s == ""
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if cell != "" {
			return false
		}
	}
	return true
}

// parseValue attempts to parse a string value as a number.
// Returns int64 for integers, float64 for decimals, or the original string.
func parseValue(s string) any {
	// Try integer first
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	// Try float; "NaN" and "Inf" stay text
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return f
	}
	return s
}

// isoDate renders a date as YYYY-MM-DD, adding the time of day only when it
// is not midnight.
func isoDate(t time.Time) string {
	t = t.Round(time.Second)
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 {
		return t.Format("2006-01-02")
	}
	return t.Format("2006-01-02T15:04:05")
}

// isoDateText normalizes a date or datetime string to the isoDate layout.
// Text that is not a date is returned unchanged along with false.
func isoDateText(s string) (string, bool) {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return isoDate(t), true
		}
	}
	return s, false
}

// formatGroup matches the parts of a number format that never select a date
// field: bracketed colors and locales, escaped characters and quoted text.
var formatGroup = regexp.MustCompile(`\[.+?\]|\\.|".*?"`)

// isDateFormat reports whether a number format displays dates or times.
// Built-in formats 14 through 22 are dates; a custom format code is a date
// when it has a day, month, year, hour or second field.
func isDateFormat(id int, code *string) bool {
	if code != nil {
		return strings.ContainsAny(formatGroup.ReplaceAllString(*code, ""), "dmhysDMHYS")
	}
	return 14 <= id && id <= 22
}
