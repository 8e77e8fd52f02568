// Package report contains the monthly report command
package report

import (
	"fmt"
	"io"

	"fjacquet/finance-manager/cmd/common"
	"fjacquet/finance-manager/cmd/root"
	"fjacquet/finance-manager/internal/container"
	"fjacquet/finance-manager/internal/ledger"
	"fjacquet/finance-manager/internal/logging"
	reports "fjacquet/finance-manager/internal/report"

	"github.com/spf13/cobra"
)

// Flags holds the report output flags
var Flags = common.OutputFlags{}

// Cmd represents the report command
var Cmd = &cobra.Command{
	Use:   "report",
	Short: "Show income and expenses month by month",
	Long: `Show income, expenses and net result for every calendar month that has
at least one transaction, oldest month first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return Run(cmd.OutOrStdout(), root.App, root.Ledger, Flags)
	},
}

func init() {
	common.AddOutputFlags(Cmd, &Flags)
}

// Run writes the monthly summary to out.
func Run(out io.Writer, app *container.Container, engine *ledger.Engine, flags common.OutputFlags) error {
	format, err := reports.NormalizeFormat(flags.Format)
	if err != nil {
		return err
	}

	months := engine.MonthlySummaries()
	app.GetLogger().Debug("Generating monthly report",
		logging.Field{Key: logging.FieldCount, Value: len(months)},
		logging.Field{Key: logging.FieldFormat, Value: format})

	doc, err := app.GetReportGenerator().GenerateMonthly(months, format)
	if err != nil {
		return fmt.Errorf("failed to generate monthly report: %w", err)
	}
	return common.Deliver(out, doc, format, flags, app.GetRenderer(), app.GetLogger())
}
