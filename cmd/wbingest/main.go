// Package main provides the CLI entry point for wbingest.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/ukaji3/wbingest-go/pkg/wbingest"
	"github.com/ukaji3/wbingest-go/pkg/wbingest/models"
	"github.com/ukaji3/wbingest-go/pkg/wbingest/output"
	"github.com/ukaji3/wbingest-go/pkg/wbingest/parser"
)

var (
	configPath string
	outputPath string
	format     string
	pretty     bool
	verbose    bool
	summary    bool
	tablesDir  string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "wbingest",
		Short: "Parse planning workbooks into typed tables",
		Long: `wbingest reads demand input, load curve and capacity planning workbooks
(.xlsx or .xls) and outputs their tables as JSON or YAML.`,
		SilenceUsage: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "Config file (default: $"+wbingest.ConfigEnv+")")
	pf.StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	pf.StringVar(&format, "format", "json", "Output format: json, yaml")
	pf.BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	pf.BoolVarP(&verbose, "verbose", "v", false, "Log debug details to stderr")
	pf.BoolVar(&summary, "summary", false, "Output a summary instead of the full result")

	rootCmd.AddCommand(demandCmd(), loadCurveCmd(), capacityCmd(), sheetsCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func demandCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demand [input.xlsx]",
		Short: "Parse a demand input workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := newIngestor()
			if err != nil {
				return err
			}
			res, err := in.ParseDemand(args[0])
			if err != nil {
				return err
			}
			return emit(res, res.Summary())
		},
	}
}

func loadCurveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "loadcurve [input.xlsx]",
		Aliases: []string{"load-curve"},
		Short:   "Parse a load curve template workbook",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := newIngestor()
			if err != nil {
				return err
			}
			res, err := in.ParseLoadCurve(args[0])
			if err != nil {
				return err
			}
			return emit(res, res.Summary())
		},
	}
}

func capacityCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "capacity [input.xlsx]",
		Short: "Parse a capacity planning template workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := newIngestor()
			if err != nil {
				return err
			}
			res, err := in.ParseCapacityTemplate(args[0])
			if err != nil {
				return err
			}
			if tablesDir != "" {
				if err := writeSheetFiles(res, tablesDir); err != nil {
					return fmt.Errorf("failed to write sheet files: %w", err)
				}
				if outputPath == "" {
					return nil
				}
			}
			return emit(res, res.Summary())
		},
	}
	cmd.Flags().StringVar(&tablesDir, "tables-dir", "", "Directory for per-sheet output files")
	return cmd
}

// sheetReport describes one sheet for the sheets command.
type sheetReport struct {
	Name string `json:"name"`
	parser.SheetStats
	Markers     []parser.Marker     `json:"markers,omitempty"`
	BlankBreaks []parser.BlankBreak `json:"blank_breaks,omitempty"`
}

func sheetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sheets [input.xlsx]",
		Short: "List sheets with their used range, markers and blank breaks",
		Long: `sheets lists every sheet of a workbook with its used range and marker
tables. A blank break is a blank first-column cell inside a marker table
with more rows after it: those rows are not read.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			wb, err := parser.OpenWorkbook(args[0])
			if err != nil {
				return fmt.Errorf("failed to open workbook: %w", err)
			}
			defer wb.Close()

			var reports []sheetReport
			for _, name := range wb.SheetNames() {
				g, err := wb.ReadGrid(name)
				if err != nil {
					return fmt.Errorf("failed to read sheet %q: %w", name, err)
				}
				reports = append(reports, sheetReport{
					Name:        name,
					SheetStats:  parser.DescribeGrid(g),
					Markers:     parser.FindMarkers(g),
					BlankBreaks: parser.BlankBreaks(g),
				})
			}
			return emit(reports, reports)
		},
	}
}

func newIngestor() (*wbingest.Ingestor, error) {
	cfg, err := wbingest.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	return wbingest.New(wbingest.Options{Config: cfg, Logger: logger}), nil
}

// emit writes the result, or its summary with --summary, to the output.
func emit(result, brief any) error {
	f, err := output.ParseFormat(format)
	if err != nil {
		return err
	}
	v := result
	if summary {
		v = brief
	}

	if outputPath != "" {
		if err := output.WriteFile(outputPath, v, f, pretty); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}
	if err := output.Write(os.Stdout, v, f, pretty); err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}
	return nil
}

func writeSheetFiles(res *models.CapacityTemplateResult, dir string) error {
	f, err := output.ParseFormat(format)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	write := func(name string, v any) error {
		return output.WriteFile(filepath.Join(dir, name+"."+f.Extension()), v, f, pretty)
	}

	if res.Settings != nil {
		if err := write(res.SettingsSheet, res.Settings); err != nil {
			return err
		}
	}
	for _, name := range res.Sheets.Names() {
		t, _ := res.Sheets.Get(name)
		if err := write(name, t); err != nil {
			return err
		}
	}
	return nil
}
