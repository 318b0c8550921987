package output

import (
	"encoding/json"

	"github.com/ukaji3/sheethead/pkg/sheethead/models"
)

// ToJSON serializes the workbook headers, newline-terminated.
func ToJSON(wb *models.WorkbookHeaders, pretty bool) ([]byte, error) {
	var data []byte
	var err error
	if pretty {
		data, err = json.MarshalIndent(wb, "", "  ")
	} else {
		data, err = json.Marshal(wb)
	}
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
