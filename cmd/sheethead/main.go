// Package main provides the CLI entry point for sheethead.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/ukaji3/sheethead/internal/config"
	"github.com/ukaji3/sheethead/internal/logger"
	"github.com/ukaji3/sheethead/pkg/sheethead"
)

var (
	configPath    string
	format        string
	pretty        bool
	headerRow     int
	skipBlankRows bool
	engine        string
	encoding      string
	visibleOnly   bool
	dimensions    bool
	preview       int
	verbose       bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sheethead [workbook]",
		Short: "List the sheets of a workbook and their column headers",
		Long: `sheethead opens a spreadsheet workbook (.xlsx, .xlsm, .xls, .csv), lists its
sheet names, and prints the column labels of each sheet's header row.

Without an argument it inspects "` + sheethead.DefaultPath + `" in the current directory.`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE:         run,
	}

	defaults := sheethead.DefaultOptions()
	flags := rootCmd.Flags()
	flags.StringVar(&configPath, "config", "", "TOML config file")
	flags.StringVar(&format, "format", string(defaults.Format), "Output format: text, json, toon, markdown")
	flags.BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	flags.IntVar(&headerRow, "header-row", defaults.HeaderRow, "1-based row holding the column labels")
	flags.BoolVar(&skipBlankRows, "skip-blank-rows", false, "Use the first non-empty row as the header")
	flags.StringVar(&engine, "engine", "auto", "Workbook backend: auto, excelize, stream, xls, csv")
	flags.StringVar(&encoding, "encoding", defaults.Encoding, "Charset of CSV input and legacy XLS strings")
	flags.BoolVar(&visibleOnly, "visible-only", false, "Skip hidden sheets")
	flags.BoolVar(&dimensions, "dimensions", false, "Include each sheet's used range (structured formats)")
	flags.IntVar(&preview, "preview", 0, "Also print this many rows after each header row")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Log progress to stderr")

	return rootCmd
}

func run(cmd *cobra.Command, args []string) error {
	logger.SetVerbose(verbose)

	path, opts, err := resolveOptions(cmd, args)
	if err != nil {
		return err
	}

	logger.Info("inspecting %s (format=%s)", path, opts.Format)
	sheethead.Report(cmd.OutOrStdout(), path, opts)
	return nil
}

// resolveOptions layers defaults, the config file and explicitly set flags.
func resolveOptions(cmd *cobra.Command, args []string) (string, sheethead.Options, error) {
	path := sheethead.DefaultPath
	opts := sheethead.DefaultOptions()

	if configPath != "" {
		f, err := config.Load(configPath)
		if err != nil {
			return "", opts, fmt.Errorf("failed to load config: %w", err)
		}
		if err := f.Apply(&path, &opts); err != nil {
			return "", opts, fmt.Errorf("invalid config %s: %w", configPath, err)
		}
		logger.Debug("loaded config %s", configPath)
	}

	flags := cmd.Flags()
	if flags.Changed("format") {
		f, err := sheethead.ParseFormat(format)
		if err != nil {
			return "", opts, err
		}
		opts.Format = f
	}
	if flags.Changed("engine") {
		e, err := sheethead.ParseEngine(engine)
		if err != nil {
			return "", opts, err
		}
		opts.Engine = e
	}
	if flags.Changed("pretty") {
		opts.Pretty = pretty
	}
	if flags.Changed("header-row") {
		opts.HeaderRow = headerRow
	}
	if flags.Changed("skip-blank-rows") {
		opts.SkipBlankRows = skipBlankRows
	}
	if flags.Changed("encoding") {
		opts.Encoding = encoding
	}
	if flags.Changed("visible-only") {
		opts.VisibleOnly = visibleOnly
	}
	if flags.Changed("dimensions") {
		opts.Dimensions = dimensions
	}
	if flags.Changed("preview") {
		opts.Preview = preview
	}

	if len(args) == 1 {
		path = args[0]
	}

	if err := opts.Validate(); err != nil {
		return "", opts, err
	}
	return path, opts, nil
}
