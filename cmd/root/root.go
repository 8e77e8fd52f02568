// Package root contains the root command for the application
package root

import (
	"fmt"
	"time"

	"fjacquet/finance-manager/internal/config"
	"fjacquet/finance-manager/internal/container"
	"fjacquet/finance-manager/internal/dateutils"
	"fjacquet/finance-manager/internal/ledger"
	"fjacquet/finance-manager/internal/logging"
	"fjacquet/finance-manager/internal/validation"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// GlobalFlags represents the flags that are common to all commands
type GlobalFlags struct {
	ConfigFile       string
	SeedFile         string
	TransactionsFile string
	LogLevel         string
	LogFormat        string
	Now              string
}

var (
	// Log is the shared logger instance for commands
	Log = logrus.New()

	// Flags holds the persistent flag values
	Flags = GlobalFlags{}

	// App is the dependency container built before every command runs
	App *container.Container

	// Ledger is the session's engine, seeded and started
	Ledger *ledger.Engine

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:           "finance-manager",
		Short:         "A CLI tool to track income, expenses, budgets, savings goals and investments.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Long: `finance-manager is a CLI tool that keeps a personal ledger for one session.
It derives totals, budget progress and savings progress from recorded
transactions and raises notifications for low balance, upcoming bills and
reached savings goals.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to finance-manager!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return Setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if App != nil {
				if err := App.Close(); err != nil {
					Log.Warnf("Failed to close container: %v", err)
				}
			}
		},
	}
)

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVarP(&Flags.ConfigFile, "config", "c", "", "Config file (default searches $HOME/.finance-manager, .finance-manager and .)")
	Cmd.PersistentFlags().StringVarP(&Flags.SeedFile, "seed", "s", "", "Seed file with categories, investments and savings goal")
	Cmd.PersistentFlags().StringVarP(&Flags.TransactionsFile, "transactions", "t", "", "Transaction CSV file to import at session start")
	Cmd.PersistentFlags().StringVar(&Flags.LogLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
	Cmd.PersistentFlags().StringVar(&Flags.LogFormat, "log-format", "", "Log format (text, json)")
	Cmd.PersistentFlags().StringVar(&Flags.Now, "now", "", "Evaluate as if today were this date (YYYY-MM-DD)")
}

// Setup loads configuration, applies flag overrides and builds App and
// Ledger for the command about to run.
func Setup() error {
	config.LoadEnv()

	for _, path := range []string{Flags.ConfigFile, Flags.TransactionsFile} {
		if path == "" {
			continue
		}
		if err := validation.IsValidInputFile(path); err != nil {
			return err
		}
	}

	cfg, err := config.InitializeConfigFromFile(Flags.ConfigFile)
	if err != nil {
		return err
	}
	ApplyFlags(cfg, Flags)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	Log = config.ConfigureLoggingFromConfig(cfg)

	clock, err := Clock(Flags.Now)
	if err != nil {
		return err
	}

	app, engine, err := Bootstrap(cfg, logging.NewLogrusAdapterFromLogger(Log), clock, Flags.TransactionsFile)
	if err != nil {
		return err
	}
	App, Ledger = app, engine
	return nil
}

// ApplyFlags copies the non-empty flag values over cfg.
func ApplyFlags(cfg *config.Config, flags GlobalFlags) {
	if flags.SeedFile != "" {
		cfg.Seed.File = flags.SeedFile
	}
	if flags.LogLevel != "" {
		cfg.Log.Level = flags.LogLevel
	}
	if flags.LogFormat != "" {
		cfg.Log.Format = flags.LogFormat
	}
}

// Clock returns a clock frozen at value, or nil for the wall clock when value
// is empty.
func Clock(value string) (func() time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := dateutils.ParseDate(value)
	if err != nil {
		return nil, fmt.Errorf("invalid --now value: %w", err)
	}
	return func() time.Time { return t }, nil
}

// Bootstrap wires a container and a session ledger. When transactionsFile is
// set its rows become the initial state and the import's evaluation stands in
// for the session-start one; otherwise the engine is started empty.
func Bootstrap(cfg *config.Config, logger logging.Logger, now func() time.Time, transactionsFile string) (*container.Container, *ledger.Engine, error) {
	app, err := container.NewContainerWithLogger(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	engine, err := app.NewLedger(now)
	if err != nil {
		return nil, nil, err
	}

	if transactionsFile == "" {
		engine.Start()
		return app, engine, nil
	}

	added, err := app.ImportTransactionsFile(engine, transactionsFile)
	if err != nil {
		return nil, nil, err
	}
	if len(added) == 0 {
		engine.Start()
	}
	return app, engine, nil
}
