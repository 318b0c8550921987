package models

// SheetHeader represents the header row of a single sheet.
type SheetHeader struct {
	// Name is the sheet name.
	Name string `json:"name"`
	// Row is the 1-based row the header was read from (0 if the sheet is empty).
	Row int `json:"row"`
	// Columns contains the column labels in column order.
	// Values are int64, float64, bool or string; dates are ISO 8601 text.
	Columns []any `json:"columns"`
	// Preview holds the rows following the header row when a preview was
	// requested. Blank rows are empty lists.
	Preview [][]any `json:"preview,omitempty"`
	// Dimension is the used range of the sheet, when the backend knows it.
	Dimension *CellRange `json:"dimension,omitempty"`
	// Hidden reports whether the sheet is hidden in the workbook.
	Hidden bool `json:"hidden,omitempty"`
}
