package parser

import "github.com/ukaji3/sheethead/pkg/sheethead/models"

// dataBounds returns the bounding box of non-empty cells in a fully loaded
// grid, or nil if every cell is empty.
func dataBounds(rows [][]string) *models.CellRange {
	minRow, maxRow, minCol, maxCol := findDataBounds(rows)
	if minRow < 0 {
		return nil
	}
	return &models.CellRange{
		R1: minRow + 1,
		C1: minCol + 1,
		R2: maxRow + 1,
		C2: maxCol + 1,
	}
}

// findDataBounds finds the bounding box of non-empty cells.
func findDataBounds(rows [][]string) (minRow, maxRow, minCol, maxCol int) {
	minRow, maxRow = -1, -1
	minCol, maxCol = -1, -1

	for rowIdx, row := range rows {
		for colIdx, cell := range row {
			if cell != "" {
				if minRow < 0 || rowIdx < minRow {
					minRow = rowIdx
				}
				if maxRow < 0 || rowIdx > maxRow {
					maxRow = rowIdx
				}
				if minCol < 0 || colIdx < minCol {
					minCol = colIdx
				}
				if maxCol < 0 || colIdx > maxCol {
					maxCol = colIdx
				}
			}
		}
	}

	return
}

// pickRow selects the header row from a fully loaded grid.
// row is 1-based; 0 selects the first non-empty row.
func pickRow(rows [][]string, row int) (int, []string) {
	if row > 0 {
		if row > len(rows) {
			return 0, nil
		}
		return row, rows[row-1]
	}
	for idx, r := range rows {
		if !isBlankRow(r) {
			return idx + 1, r
		}
	}
	return 0, nil
}

// gridRows returns up to n converted rows following row after (1-based) of a
// fully loaded grid.
func gridRows(rows [][]string, after, n int, convert func([]string) []any) [][]any {
	out := [][]any{}
	for idx := after; idx >= 0 && idx < len(rows) && len(out) < n; idx++ {
		out = append(out, trimRow(convert(rows[idx])))
	}
	return out
}
