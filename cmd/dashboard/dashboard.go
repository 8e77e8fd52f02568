// Package dashboard contains the dashboard command
package dashboard

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

// Flags holds the dashboard output flags
var Flags = common.OutputFlags{}

// Cmd represents the dashboard command
var Cmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show the finance overview",
	Long: `Show the finance overview: total income, total expenses, current savings,
savings goal progress, notifications, recent transactions, budget progress
and investments.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return Run(cmd.OutOrStdout(), root.App, root.Ledger, Flags)
	},
}

func init() {
	common.AddOutputFlags(Cmd, &Flags)
}

// Run renders the engine's dashboard to out.
func Run(out io.Writer, app *container.Container, engine *ledger.Engine, flags common.OutputFlags) error {
	format, err := report.NormalizeFormat(flags.Format)
	if err != nil {
		return err
	}
	doc, err := app.GetReportGenerator().GenerateDashboard(engine.Dashboard(), format)
	if err != nil {
		return fmt.Errorf("failed to generate dashboard: %w", err)
	}
	return common.Deliver(out, doc, format, flags, app.GetRenderer(), app.GetLogger())
}
