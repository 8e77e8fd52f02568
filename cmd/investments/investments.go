// Package investments contains the investments command
package investments

import (
	"fmt"
	"io"
	"strings"

	"fjacquet/finance-manager/cmd/common"
	"fjacquet/finance-manager/cmd/root"
	"fjacquet/finance-manager/internal/container"
	"fjacquet/finance-manager/internal/currencyutils"
	"fjacquet/finance-manager/internal/ledger"
	"fjacquet/finance-manager/internal/logging"
	"fjacquet/finance-manager/internal/report"

	"github.com/spf13/cobra"
)

// Options holds the investments command flags
type Options struct {
	common.OutputFlags
	Add []string
}

// Flags holds the parsed investments flags
var Flags = Options{}

// Cmd represents the investments command
var Cmd = &cobra.Command{
	Use:   "investments",
	Short: "List investment holdings and their total value",
	Long: `List investment holdings with their type, value and performance, followed
by the total value. Holdings given with --add are recorded first; new holdings
start with a performance of zero.`,
	Example: `  finance-manager investments --add "Bond Fund,2500,Bonds"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return Run(cmd.OutOrStdout(), root.App, root.Ledger, Flags)
	},
}

func init() {
	common.AddOutputFlags(Cmd, &Flags.OutputFlags)
	Cmd.Flags().StringArrayVarP(&Flags.Add, "add", "a", nil, "Add a holding as name,value,type (repeatable)")
}

// ParseHolding splits a name,value,type triple. The name ends at the first
// comma and the type starts after the last one, so the value may carry
// thousands separators such as 1,000.
func ParseHolding(holding string) (name, value, investmentType string, err error) {
	first, last := strings.Index(holding, ","), strings.LastIndex(holding, ",")
	if first < 0 || first == last {
		return "", "", "", fmt.Errorf("invalid holding %q: expected name,value,type", holding)
	}
	name = strings.TrimSpace(holding[:first])
	value = strings.TrimSpace(holding[first+1 : last])
	investmentType = strings.TrimSpace(holding[last+1:])
	return name, value, investmentType, nil
}

// Run records the --add holdings and writes the holdings report to out.
func Run(out io.Writer, app *container.Container, engine *ledger.Engine, opts Options) error {
	format, err := report.NormalizeFormat(opts.Format)
	if err != nil {
		return err
	}

	for _, holding := range opts.Add {
		name, value, investmentType, err := ParseHolding(holding)
		if err != nil {
			return err
		}
		inv, err := engine.AddInvestment(name, value, investmentType)
		if err != nil {
			return fmt.Errorf("cannot add investment %q: %w", name, err)
		}
		app.GetLogger().Info("Investment added",
			logging.Field{Key: logging.FieldInvestmentID, Value: inv.ID},
			logging.Field{Key: logging.FieldAmount, Value: inv.Value.String()})
	}

	doc, err := app.GetReportGenerator().GenerateInvestments(engine.Investments(), format)
	if err != nil {
		return fmt.Errorf("failed to generate investments: %w", err)
	}
	if format == report.FormatMarkdown {
		total := currencyutils.FormatAmount(engine.TotalInvestmentValue(), engine.Currency())
		doc = append(doc, fmt.Sprintf("\nTotal value: **%s**\n", total)...)
	}
	return common.Deliver(out, doc, format, opts.OutputFlags, app.GetRenderer(), app.GetLogger())
}
