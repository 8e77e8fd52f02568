// Package common contains shared functionality for command handlers
package common

import (
	"fmt"
	"io"
	"strings"

	"fjacquet/finance-manager/internal/fileutils"
	"fjacquet/finance-manager/internal/logging"
	"fjacquet/finance-manager/internal/report"
	"fjacquet/finance-manager/internal/validation"

	"github.com/spf13/cobra"
)

// OutputFlags represents the flags shared by every command that prints a report
type OutputFlags struct {
	Format string
	Output string
	Plain  bool
}

// AddOutputFlags registers --format, --output and --plain on cmd.
func AddOutputFlags(cmd *cobra.Command, flags *OutputFlags) {
	cmd.Flags().StringVarP(&flags.Format, "format", "f", report.FormatMarkdown,
		"Output format ("+strings.Join(report.Formats, ", ")+")")
	cmd.Flags().StringVarP(&flags.Output, "output", "o", "", "Write the report to this file instead of stdout")
	cmd.Flags().BoolVar(&flags.Plain, "plain", false, "Print raw Markdown without terminal styling")
}

// Emit writes a generated report to out. Markdown is styled through renderer
// unless plain is set; CSV and JSON are written unchanged.
func Emit(out io.Writer, doc []byte, format string, renderer report.TerminalRenderer, plain bool) error {
	if format == report.FormatMarkdown && !plain {
		rendered, err := renderer.Render(string(doc))
		if err != nil {
			return err
		}
		_, err = io.WriteString(out, rendered)
		return err
	}
	_, err := out.Write(doc)
	return err
}

// WriteReport writes doc to path, creating parent directories as needed.
func WriteReport(path string, doc []byte, logger logging.Logger) error {
	if err := validation.IsValidOutputPath(path); err != nil {
		return err
	}
	if err := fileutils.WriteFile(path, doc); err != nil {
		logger.WithError(err).Error("Failed to write report",
			logging.Field{Key: logging.FieldFile, Value: path})
		return fmt.Errorf("failed to write report %s: %w", path, err)
	}
	logger.Info("Wrote report", logging.Field{Key: logging.FieldFile, Value: path})
	return nil
}

// Deliver sends doc to flags.Output when set, otherwise to out. Files always
// receive the unstyled document.
func Deliver(out io.Writer, doc []byte, format string, flags OutputFlags, renderer report.TerminalRenderer, logger logging.Logger) error {
	if flags.Output != "" {
		return WriteReport(flags.Output, doc, logger)
	}
	return Emit(out, doc, format, renderer, flags.Plain)
}
