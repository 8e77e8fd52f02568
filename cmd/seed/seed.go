// Package seed contains the seed command
package seed

import (
	"io"

	"fjacquet/finance-manager/cmd/root"
	"fjacquet/finance-manager/internal/container"
	"fjacquet/finance-manager/internal/ledger"
	"fjacquet/finance-manager/internal/models"
	"fjacquet/finance-manager/internal/store"
	"fjacquet/finance-manager/internal/validation"

	"github.com/spf13/cobra"
)

// Output is the file the seed is written to; empty prints to stdout
var Output string

// Cmd represents the seed command
var Cmd = &cobra.Command{
	Use:   "seed",
	Short: "Print the effective seed as YAML",
	Long: `Print the categories, investments and savings goal the session started
with as YAML. The result can be edited and passed back with --seed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return Run(cmd.OutOrStdout(), root.App, root.Ledger, Output)
	},
}

func init() {
	Cmd.Flags().StringVarP(&Output, "output", "o", "", "Write the seed to this file instead of stdout")
}

// Current captures the engine's categories, investments and goal.
func Current(engine *ledger.Engine) models.Seed {
	return models.Seed{
		Categories:  engine.Categories(),
		Investments: engine.Investments(),
		SavingsGoal: engine.SavingsGoal(),
	}
}

// Run writes the engine's seed to output, or to out when output is empty.
func Run(out io.Writer, app *container.Container, engine *ledger.Engine, output string) error {
	current := Current(engine)
	if output != "" {
		if err := validation.IsValidOutputPath(output); err != nil {
			return err
		}
		return app.GetStore().SaveSeed(current, output)
	}

	data, err := store.MarshalSeed(current)
	if err != nil {
		return err
	}
	_, err = out.Write(data)
	return err
}
