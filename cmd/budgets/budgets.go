// Package budgets contains the budgets command
package budgets

import (
	"fmt"
	"io"

	"fjacquet/finance-manager/cmd/common"
	"fjacquet/finance-manager/cmd/root"
	"fjacquet/finance-manager/internal/container"
	"fjacquet/finance-manager/internal/ledger"
	"fjacquet/finance-manager/internal/report"

	"github.com/spf13/cobra"
)

// Options holds the budgets command flags
type Options struct {
	common.OutputFlags
	Chart bool
}

// Flags holds the parsed budgets flags
var Flags = Options{}

// Cmd represents the budgets command
var Cmd = &cobra.Command{
	Use:   "budgets",
	Short: "Show budget progress per expense category",
	Long: `Show budget progress per expense category: amount spent, budget,
remaining amount and percentage used. With --chart, print the budget versus
spending series instead.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return Run(cmd.OutOrStdout(), root.App, root.Ledger, Flags)
	},
}

func init() {
	common.AddOutputFlags(Cmd, &Flags.OutputFlags)
	Cmd.Flags().BoolVar(&Flags.Chart, "chart", false, "Show budget versus spending chart data")
}

// Run writes the budget rows, or the chart series, to out.
func Run(out io.Writer, app *container.Container, engine *ledger.Engine, opts Options) error {
	format, err := report.NormalizeFormat(opts.Format)
	if err != nil {
		return err
	}

	generator := app.GetReportGenerator()
	var doc []byte
	if opts.Chart {
		doc, err = generator.GenerateChart(engine.ChartData(), format)
	} else {
		doc, err = generator.GenerateBudgets(engine.BudgetRows(), format)
	}
	if err != nil {
		return fmt.Errorf("failed to generate budgets: %w", err)
	}
	return common.Deliver(out, doc, format, opts.OutputFlags, app.GetRenderer(), app.GetLogger())
}
