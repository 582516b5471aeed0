// Package main provides the CLI entry point for xlreport.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/javajack/xlreport"
	"github.com/javajack/xlreport/internal/config"
	"github.com/javajack/xlreport/internal/logger"
	"github.com/javajack/xlreport/layout"
)

var (
	layoutPath string
	dataPath   string
	outputPath string
	envFile    string
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "xlreport",
		Short: "Render styled multi-sheet xlsx reports from YAML layouts",
		Long: `xlreport renders a YAML layout (sheets, column widths, titles,
column headers, section banners and data rows) into a styled xlsx workbook.`,
		SilenceUsage: true,
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.PersistentFlags().StringVarP(&layoutPath, "layout", "l", "", "Layout file (YAML)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env", ".env", "Optional .env file with XLREPORT_* settings")
	_ = rootCmd.MarkPersistentFlagRequired("layout")

	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "Render the layout to an xlsx file",
		Args:  cobra.NoArgs,
		RunE:  runRender,
	}
	renderCmd.Flags().StringVarP(&dataPath, "data", "d", "", "YAML data file for ${...} placeholders")
	renderCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: config output dir and name)")

	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Check the layout without rendering",
		Args:  cobra.NoArgs,
		RunE:  runValidate,
	}

	describeCmd := &cobra.Command{
		Use:   "describe",
		Short: "Render the layout in memory and print the resulting document",
		Args:  cobra.NoArgs,
		RunE:  runDescribe,
	}
	describeCmd.Flags().StringVarP(&dataPath, "data", "d", "", "YAML data file for ${...} placeholders")

	rootCmd.AddCommand(renderCmd, validateCmd, describeCmd)
	return rootCmd
}

// setup loads config, builds the logger and returns a context carrying it.
func setup(cmd *cobra.Command) (context.Context, *config.Config, func() error, error) {
	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load config: %w", err)
	}
	l, closeLog, err := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		File:   cfg.LogFile,
	}, cmd.ErrOrStderr())
	if err != nil {
		return nil, nil, nil, err
	}
	ctx := logger.WithContext(cmd.Context(), l, map[string]any{"layout": layoutPath})
	return ctx, cfg, closeLog, nil
}

// loadLayout reads and validates the layout, logging warnings and failing on errors.
func loadLayout(ctx context.Context) (*layout.Report, error) {
	rep, err := layout.LoadFile(layoutPath)
	if err != nil {
		return nil, err
	}
	issues := layout.Validate(rep)
	log := logger.FromContext(ctx)
	for _, issue := range issues {
		if issue.Severity == layout.SeverityWarning {
			log.Warn().Msg(issue.String())
		} else {
			log.Error().Msg(issue.String())
		}
	}
	if layout.HasErrors(issues) {
		return nil, fmt.Errorf("layout %s has errors", layoutPath)
	}
	return rep, nil
}

// build renders the layout into a new in-memory document.
func build(ctx context.Context, cfg *config.Config) (*layout.Report, *xlreport.Document, error) {
	rep, err := loadLayout(ctx)
	if err != nil {
		return nil, nil, err
	}
	var data map[string]any
	if dataPath != "" {
		if data, err = layout.LoadData(dataPath); err != nil {
			return nil, nil, err
		}
	}
	doc := layout.NewDocument(rep,
		xlreport.WithMinColumnWidth(cfg.MinColumnWidth),
		xlreport.WithLogger(*logger.FromContext(ctx)),
	)
	if err := layout.Render(ctx, doc, rep, layout.WithData(data)); err != nil {
		return nil, nil, err
	}
	return rep, doc, nil
}

func runRender(cmd *cobra.Command, args []string) error {
	ctx, cfg, closeLog, err := setup(cmd)
	if err != nil {
		return err
	}
	defer closeLog()

	rep, doc, err := build(ctx, cfg)
	if err != nil {
		return err
	}

	dir, name := cfg.OutputDir, cfg.OutputName
	if rep.Output != "" {
		name = rep.Output
	}
	if outputPath != "" {
		dir, name = filepath.Dir(outputPath), filepath.Base(outputPath)
	}
	if err := xlreport.PublishDocument(ctx, doc, xlreport.DirPublisher{Dir: dir}, name); err != nil {
		return fmt.Errorf("publish: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", filepath.Join(dir, name))
	return nil
}

func runValidate(cmd *cobra.Command, args []string) error {
	rep, err := layout.LoadFile(layoutPath)
	if err != nil {
		return err
	}
	issues := layout.Validate(rep)
	for _, issue := range issues {
		fmt.Fprintln(cmd.OutOrStdout(), issue.String())
	}
	if layout.HasErrors(issues) {
		return fmt.Errorf("layout %s has errors", layoutPath)
	}
	if len(issues) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "OK")
	}
	return nil
}

func runDescribe(cmd *cobra.Command, args []string) error {
	ctx, cfg, closeLog, err := setup(cmd)
	if err != nil {
		return err
	}
	defer closeLog()

	_, doc, err := build(ctx, cfg)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), xlreport.Describe(doc))
	return nil
}
