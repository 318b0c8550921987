package parser

import "errors"

// ErrFileNotFound indicates the workbook file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrInvalidFormat indicates the file could not be decoded by its backend.
var ErrInvalidFormat = errors.New("invalid workbook format")

// ErrUnsupportedFormat indicates no backend handles the file's extension.
var ErrUnsupportedFormat = errors.New("unsupported workbook format")

// ErrSheetNotFound indicates the requested sheet is not in the workbook.
var ErrSheetNotFound = errors.New("sheet not found")
