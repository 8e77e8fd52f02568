// Package transactions contains the transactions command
package transactions

import (
	"fmt"
	"io"

	"fjacquet/finance-manager/cmd/common"
	"fjacquet/finance-manager/cmd/root"
	"fjacquet/finance-manager/internal/container"
	"fjacquet/finance-manager/internal/ledger"
	"fjacquet/finance-manager/internal/models"
	"fjacquet/finance-manager/internal/report"
	"fjacquet/finance-manager/internal/store"
	"fjacquet/finance-manager/internal/validation"

	"github.com/spf13/cobra"
)

// Options holds the transactions command flags
type Options struct {
	common.OutputFlags
	Kind     string
	Category string
	Export   string
}

// Flags holds the parsed transactions flags
var Flags = Options{}

// Cmd represents the transactions command
var Cmd = &cobra.Command{
	Use:   "transactions",
	Short: "List transactions, optionally filtered by kind and category",
	Long: `List transactions in entry order, optionally filtered by kind (income or
expense) and category name. With --export, the matching transactions are
written as a CSV file that can be imported again with --transactions;
--export - writes that CSV to standard output.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return Run(cmd.OutOrStdout(), root.App, root.Ledger, Flags)
	},
}

func init() {
	common.AddOutputFlags(Cmd, &Flags.OutputFlags)
	Cmd.Flags().StringVarP(&Flags.Kind, "kind", "k", "", "Only show income or expense transactions")
	Cmd.Flags().StringVar(&Flags.Category, "category", "", "Only show transactions in this category")
	Cmd.Flags().StringVarP(&Flags.Export, "export", "e", "", "Export matching transactions to this CSV file (- for stdout)")
}

// Filter turns the kind and category flags into a filter.
func Filter(kind, category string) (models.TransactionFilter, error) {
	filter := models.TransactionFilter{Category: category}
	if kind == "" {
		return filter, nil
	}
	k, ok := models.ParseKind(kind)
	if !ok {
		return filter, fmt.Errorf("invalid kind %q: must be income or expense", kind)
	}
	filter.Kind = k
	return filter, nil
}

// Run writes the matching transactions to out, or exports them as CSV.
func Run(out io.Writer, app *container.Container, engine *ledger.Engine, opts Options) error {
	filter, err := Filter(opts.Kind, opts.Category)
	if err != nil {
		return err
	}
	txs := engine.FilterTransactions(filter)

	if opts.Export == "-" {
		return store.WriteTransactionsCSV(out, txs, app.GetConfig().DelimiterRune())
	}
	if opts.Export != "" {
		if err := validation.IsValidOutputPath(opts.Export); err != nil {
			return err
		}
		return store.ExportTransactionsCSV(opts.Export, txs, app.GetConfig().DelimiterRune(), app.GetLogger())
	}

	format, err := report.NormalizeFormat(opts.Format)
	if err != nil {
		return err
	}
	doc, err := app.GetReportGenerator().GenerateTransactions(txs, format)
	if err != nil {
		return fmt.Errorf("failed to generate transactions: %w", err)
	}
	return common.Deliver(out, doc, format, opts.OutputFlags, app.GetRenderer(), app.GetLogger())
}
