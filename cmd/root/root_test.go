package root_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"fjacquet/finance-manager/cmd/root"
	"fjacquet/finance-manager/internal/config"
	"fjacquet/finance-manager/internal/ledgererror"
	"fjacquet/finance-manager/internal/logging"
	"fjacquet/finance-manager/internal/models"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	root.Init()
	os.Exit(m.Run())
}

var fixedNow = func() time.Time { return time.Date(2024, time.January, 4, 0, 0, 0, 0, time.UTC) }

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "transactions.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Seed.File = filepath.Join(t.TempDir(), "seed.yaml")
	return cfg
}

func kinds(ns []models.Notification) []models.NotificationKind {
	out := []models.NotificationKind{}
	for _, n := range ns {
		out = append(out, n.Kind)
	}
	return out
}

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "finance-manager", root.Cmd.Use)
	assert.Contains(t, root.Cmd.Short, "track income, expenses, budgets")
	assert.Contains(t, root.Cmd.Long, "keeps a personal ledger for one session")
	assert.NotNil(t, root.Cmd.Run)
	assert.NotNil(t, root.Cmd.PersistentPreRunE)
	assert.NotNil(t, root.Cmd.PersistentPostRun)
}

func TestRootCommand_Flags(t *testing.T) {
	tests := []struct {
		name      string
		shorthand string
	}{
		{"config", "c"},
		{"seed", "s"},
		{"transactions", "t"},
		{"log-level", ""},
		{"log-format", ""},
		{"now", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag := root.Cmd.PersistentFlags().Lookup(tt.name)
			require.NotNil(t, flag)
			assert.Equal(t, tt.shorthand, flag.Shorthand)
			assert.Equal(t, "", flag.DefValue)
			assert.NotEmpty(t, flag.Usage)
		})
	}
}

func TestRootCommand_Run(t *testing.T) {
	assert.NotPanics(t, func() {
		root.Cmd.Run(&cobra.Command{}, []string{})
	})
}

func TestApplyFlags(t *testing.T) {
	cfg := config.DefaultConfig()
	root.ApplyFlags(cfg, root.GlobalFlags{SeedFile: "my-seed.yaml", LogLevel: "debug"})

	assert.Equal(t, "my-seed.yaml", cfg.Seed.File)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestClock(t *testing.T) {
	clock, err := root.Clock("")
	require.NoError(t, err)
	assert.Nil(t, clock)

	clock, err = root.Clock("2024-01-04")
	require.NoError(t, err)
	require.NotNil(t, clock)
	assert.Equal(t, time.Date(2024, time.January, 4, 0, 0, 0, 0, time.UTC), clock())

	_, err = root.Clock("someday")
	assert.Error(t, err)
}

func TestBootstrap_EmptySession(t *testing.T) {
	_, engine, err := root.Bootstrap(testConfig(t), logging.NewMockLogger(), fixedNow, "")
	require.NoError(t, err)

	assert.Empty(t, engine.Transactions())
	assert.Equal(t, []models.NotificationKind{models.NotificationLowBalance}, kinds(engine.Notifications()))
}

func TestBootstrap_ImportsTransactionsOnce(t *testing.T) {
	path := writeCSV(t, "date,kind,amount,description,category\n"+
		"2024-01-01,income,2000,Paycheck,Salary\n"+
		"2024-01-05,expense,2500,Rent,Rent\n")

	app, engine, err := root.Bootstrap(testConfig(t), logging.NewMockLogger(), fixedNow, path)
	require.NoError(t, err)
	require.NotNil(t, app)

	assert.Len(t, engine.Transactions(), 2)
	assert.Equal(t,
		[]models.NotificationKind{models.NotificationLowBalance, models.NotificationUpcomingBill},
		kinds(engine.Notifications()))
}

func TestBootstrap_RejectedImport(t *testing.T) {
	path := writeCSV(t, "date,kind,amount,description,category\n"+
		"2024-01-01,income,-5,Paycheck,Salary\n")

	_, _, err := root.Bootstrap(testConfig(t), logging.NewMockLogger(), fixedNow, path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ledgererror.ErrInvalidAmount)
}

func TestSetup(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	for _, key := range []string{
		"FINMGR_LOG_LEVEL", "FINMGR_LEDGER_SAVINGS_GOAL", "FINMGR_LEDGER_LOW_BALANCE_THRESHOLD",
		"FINMGR_NOTIFICATIONS_POLICY", "FINMGR_SEED_FILE", "FINMGR_CSV_DELIMITER",
	} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	saved := root.Flags
	t.Cleanup(func() { root.Flags = saved })

	root.Flags = root.GlobalFlags{
		SeedFile:         filepath.Join(dir, "missing-seed.yaml"),
		TransactionsFile: writeCSV(t, "date,kind,amount,description,category\n2024-01-01,income,2000,Paycheck,Salary\n"),
		LogLevel:         "error",
		Now:              "2024-01-04",
	}

	require.NoError(t, root.Setup())
	require.NotNil(t, root.App)
	require.NotNil(t, root.Ledger)
	assert.Equal(t, "2000", root.Ledger.Totals().CurrentSavings.String())
	assert.Equal(t, []models.NotificationKind{models.NotificationGoalReached}, kinds(root.Ledger.Notifications()))
	assert.Equal(t, "error", root.Log.GetLevel().String())
}

func TestSetup_BadNow(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	saved := root.Flags
	t.Cleanup(func() { root.Flags = saved })

	root.Flags = root.GlobalFlags{SeedFile: filepath.Join(t.TempDir(), "none.yaml"), Now: "not a date"}
	err := root.Setup()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid --now value")
}

func TestSetup_MissingTransactionsFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	saved := root.Flags
	t.Cleanup(func() { root.Flags = saved })

	root.Flags = root.GlobalFlags{TransactionsFile: filepath.Join(t.TempDir(), "missing.csv")}
	err := root.Setup()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file does not exist")
}
