package sheethead

import (
	"fmt"

	"github.com/ukaji3/sheethead/pkg/sheethead/parser"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = parser.ErrFileNotFound

// ErrInvalidFormat indicates the input file could not be decoded.
var ErrInvalidFormat = parser.ErrInvalidFormat

// ErrUnsupportedFormat indicates no backend handles the input file.
var ErrUnsupportedFormat = parser.ErrUnsupportedFormat

// ErrSheetNotFound indicates the requested sheet does not exist.
var ErrSheetNotFound = parser.ErrSheetNotFound

// SheetError represents a failure tied to one sheet.
type SheetError struct {
	SheetName string
	Op        string // "header", "preview", "dimension"
	Err       error
}

func (e *SheetError) Error() string {
	return fmt.Sprintf("sheet %q (%s): %v", e.SheetName, e.Op, e.Err)
}

func (e *SheetError) Unwrap() error {
	return e.Err
}

// NewSheetError creates a new SheetError.
func NewSheetError(sheetName, op string, err error) *SheetError {
	return &SheetError{
		SheetName: sheetName,
		Op:        op,
		Err:       err,
	}
}
