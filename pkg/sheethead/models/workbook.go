// Package models defines data structures for workbook header inspection.
package models

// WorkbookHeaders represents the header report for a whole workbook.
type WorkbookHeaders struct {
	// BookName is the workbook file name (no path).
	BookName string `json:"book_name"`
	// SheetNames lists the inspected sheets in stored order.
	SheetNames []string `json:"sheet_names"`
	// Sheets holds one entry per sheet, in the same order as SheetNames.
	Sheets []SheetHeader `json:"sheets"`
}
