package parser

import (
	"strings"

	"github.com/ukaji3/sheethead/pkg/sheethead/models"
	"github.com/xuri/excelize/v2"
)

// ParseRange parses a range reference such as "A1:D10", "$A$1:$D$10",
// "Sheet1!A1:D10" or a single cell "B2" into a CellRange.
// It returns nil for references it cannot parse.
func ParseRange(ref string) *models.CellRange {
	if idx := strings.LastIndex(ref, "!"); idx >= 0 {
		ref = ref[idx+1:]
	}
	// Remove $ signs
	ref = strings.ReplaceAll(strings.TrimSpace(ref), "$", "")
	if ref == "" {
		return nil
	}

	parts := strings.Split(ref, ":")
	if len(parts) == 1 {
		parts = append(parts, parts[0])
	}
	if len(parts) != 2 {
		return nil
	}

	startCol, startRow, err := excelize.CellNameToCoordinates(parts[0])
	if err != nil {
		return nil
	}

	endCol, endRow, err := excelize.CellNameToCoordinates(parts[1])
	if err != nil {
		return nil
	}

	return &models.CellRange{
		R1: startRow,
		C1: startCol,
		R2: endRow,
		C2: endCol,
	}
}
