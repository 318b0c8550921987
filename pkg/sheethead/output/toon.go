package output

import (
	toon "github.com/mateuszkardas/toon-go"
	"github.com/ukaji3/sheethead/pkg/sheethead/models"
)

// toonSheet and toonColumn are flat rows so both lists encode as TOON tables.
type toonSheet struct {
	Name        string `json:"name"`
	HeaderRow   int    `json:"header_row"`
	ColumnCount int    `json:"column_count"`
	Hidden      bool   `json:"hidden"`
}

type toonColumn struct {
	Sheet     string `json:"sheet"`
	ColumnIdx int    `json:"column_idx"`
	Label     any    `json:"label"`
}

// toonRow is one preview row; Row is its 1-based sheet row.
type toonRow struct {
	Sheet  string `json:"sheet"`
	Row    int    `json:"row"`
	Values []any  `json:"values"`
}

type toonReport struct {
	BookName string       `json:"book_name"`
	Sheets   []toonSheet  `json:"sheets"`
	Columns  []toonColumn `json:"columns"`
	Rows     []toonRow    `json:"rows,omitempty"`
}

// ToTOON serializes the workbook headers as TOON.
func ToTOON(wb *models.WorkbookHeaders) ([]byte, error) {
	s, err := toon.Marshal(toonPayload(wb), nil)
	if err != nil {
		return nil, err
	}
	return []byte(s + "\n"), nil
}

func toonPayload(wb *models.WorkbookHeaders) toonReport {
	report := toonReport{
		BookName: wb.BookName,
		Sheets:   make([]toonSheet, 0, len(wb.Sheets)),
		Columns:  []toonColumn{},
	}

	for _, sheet := range wb.Sheets {
		report.Sheets = append(report.Sheets, toonSheet{
			Name:        sheet.Name,
			HeaderRow:   sheet.Row,
			ColumnCount: len(sheet.Columns),
			Hidden:      sheet.Hidden,
		})
		for idx, col := range sheet.Columns {
			report.Columns = append(report.Columns, toonColumn{
				Sheet:     sheet.Name,
				ColumnIdx: idx + 1,
				Label:     col,
			})
		}
		for idx, values := range sheet.Preview {
			report.Rows = append(report.Rows, toonRow{
				Sheet:  sheet.Name,
				Row:    sheet.Row + idx + 1,
				Values: values,
			})
		}
	}

	return report
}
