package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fjacquet/finance-manager/cmd/budgets"
	"fjacquet/finance-manager/cmd/dashboard"
	"fjacquet/finance-manager/cmd/investments"
	"fjacquet/finance-manager/cmd/report"
	"fjacquet/finance-manager/cmd/root"
	"fjacquet/finance-manager/cmd/seed"
	"fjacquet/finance-manager/cmd/shell"
	"fjacquet/finance-manager/cmd/transactions"
	"fjacquet/finance-manager/internal/config"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func init() {
	// 1. Load environment variables silently first (no logging yet)
	loadEnvSilently()

	// 2. Configure the global log level before any logger is used
	logLevel := configureLogLevelDirectly()
	root.Log.SetLevel(logLevel)
	config.Logger.SetLevel(logLevel)

	// 3. Initialize root command
	root.Init()

	// 4. Add all subcommands
	root.Cmd.AddCommand(dashboard.Cmd)
	root.Cmd.AddCommand(budgets.Cmd)
	root.Cmd.AddCommand(investments.Cmd)
	root.Cmd.AddCommand(transactions.Cmd)
	root.Cmd.AddCommand(report.Cmd)
	root.Cmd.AddCommand(seed.Cmd)
	root.Cmd.AddCommand(shell.Cmd)
}

// loadEnvSilently loads environment variables without logging anything
func loadEnvSilently() {
	envFile := ".env"
	if _, err := os.Stat(envFile); os.IsNotExist(err) {
		envFile = filepath.Join("..", ".env")
		if _, err := os.Stat(envFile); os.IsNotExist(err) {
			return
		}
	}
	_ = godotenv.Load(envFile)
}

// configureLogLevelDirectly sets the global logrus level from
// FINMGR_LOG_LEVEL and returns it
func configureLogLevelDirectly() logrus.Level {
	logLevelStr := os.Getenv(config.EnvPrefix + "_LOG_LEVEL")
	if logLevelStr == "" {
		logLevelStr = "info"
	}

	logLevel, err := logrus.ParseLevel(strings.ToLower(logLevelStr))
	if err != nil {
		logLevel = logrus.InfoLevel
	}

	logrus.SetLevel(logLevel)
	return logLevel
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
