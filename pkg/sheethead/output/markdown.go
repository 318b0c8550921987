package output

import (
	"fmt"
	"strings"

	"github.com/ukaji3/sheethead/pkg/sheethead/models"
	"github.com/xuri/excelize/v2"
)

// ToMarkdown renders a sheets overview followed by one column table per sheet.
func ToMarkdown(wb *models.WorkbookHeaders) []byte {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("# %s\n\n", escapeMarkdownCell(wb.BookName)))
	b.WriteString("## Sheets\n\n")
	b.WriteString("| Name | Header row | Columns |\n")
	b.WriteString("| --- | ---: | ---: |\n")
	for _, s := range wb.Sheets {
		b.WriteString(fmt.Sprintf("| %s | %d | %d |\n", escapeMarkdownCell(s.Name), s.Row, len(s.Columns)))
	}

	for _, s := range wb.Sheets {
		b.WriteString(fmt.Sprintf("\n## %s\n\n", escapeMarkdownCell(s.Name)))
		if s.Dimension != nil {
			b.WriteString(fmt.Sprintf("- Used range: %d rows x %d columns\n\n", s.Dimension.Rows(), s.Dimension.Cols()))
		}
		if len(s.Columns) == 0 {
			b.WriteString("_No columns found._\n")
			continue
		}

		b.WriteString("| # | Column | Label |\n")
		b.WriteString("| ---: | --- | --- |\n")
		for idx, col := range s.Columns {
			name, _ := excelize.ColumnNumberToName(idx + 1)
			b.WriteString(fmt.Sprintf("| %d | %s | %s |\n", idx+1, name, escapeMarkdownCell(formatLabel(col))))
		}

		if len(s.Preview) > 0 {
			writePreviewTable(&b, s.Columns, s.Preview)
		}
	}

	return []byte(b.String())
}

// writePreviewTable renders preview rows under the column labels. Rows
// wider than the header get lettered columns.
func writePreviewTable(b *strings.Builder, columns []any, rows [][]any) {
	width := len(columns)
	for _, row := range rows {
		width = max(width, len(row))
	}
	if width == 0 {
		return
	}

	b.WriteString("\n")
	for idx := 0; idx < width; idx++ {
		label := ""
		if idx < len(columns) {
			label = escapeMarkdownCell(formatLabel(columns[idx]))
		} else {
			label, _ = excelize.ColumnNumberToName(idx + 1)
		}
		b.WriteString("| " + label + " ")
	}
	b.WriteString("|\n")
	b.WriteString(strings.Repeat("| --- ", width) + "|\n")

	for _, row := range rows {
		for idx := 0; idx < width; idx++ {
			cell := ""
			if idx < len(row) {
				cell = escapeMarkdownCell(formatLabel(row[idx]))
			}
			b.WriteString("| " + cell + " ")
		}
		b.WriteString("|\n")
	}
}

func escapeMarkdownCell(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return ""
	}
	v = strings.ReplaceAll(v, "\\", "\\\\")
	v = strings.ReplaceAll(v, "|", "\\|")
	v = strings.ReplaceAll(v, "\n", " ")
	return v
}
