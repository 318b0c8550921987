// Package config loads sheethead settings from a TOML file.
package config

import (
	"bytes"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/ukaji3/sheethead/pkg/sheethead"
)

// File mirrors the TOML config file. Unset keys stay nil so they do not
// override defaults.
//
//	path = "reports/book.xlsx"
//	format = "json"
//	header_row = 2
type File struct {
	Path          *string `toml:"path"`
	Format        *string `toml:"format"`
	Pretty        *bool   `toml:"pretty"`
	HeaderRow     *int    `toml:"header_row"`
	SkipBlankRows *bool   `toml:"skip_blank_rows"`
	Engine        *string `toml:"engine"`
	Encoding      *string `toml:"encoding"`
	VisibleOnly   *bool   `toml:"visible_only"`
	Dimensions    *bool   `toml:"dimensions"`
	Preview       *int    `toml:"preview"`
}

// Load reads and decodes a config file. Unknown keys are rejected.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var f File
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &f, nil
}

// Apply copies the keys present in the file onto path and opts.
func (f *File) Apply(path *string, opts *sheethead.Options) error {
	if f.Path != nil {
		*path = *f.Path
	}
	if f.Format != nil {
		format, err := sheethead.ParseFormat(*f.Format)
		if err != nil {
			return err
		}
		opts.Format = format
	}
	if f.Pretty != nil {
		opts.Pretty = *f.Pretty
	}
	if f.HeaderRow != nil {
		opts.HeaderRow = *f.HeaderRow
	}
	if f.SkipBlankRows != nil {
		opts.SkipBlankRows = *f.SkipBlankRows
	}
	if f.Engine != nil {
		engine, err := sheethead.ParseEngine(*f.Engine)
		if err != nil {
			return err
		}
		opts.Engine = engine
	}
	if f.Encoding != nil {
		opts.Encoding = *f.Encoding
	}
	if f.VisibleOnly != nil {
		opts.VisibleOnly = *f.VisibleOnly
	}
	if f.Dimensions != nil {
		opts.Dimensions = *f.Dimensions
	}
	if f.Preview != nil {
		opts.Preview = *f.Preview
	}
	return opts.Validate()
}
