package seed_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"fjacquet/finance-manager/cmd/root"
	"fjacquet/finance-manager/cmd/seed"
	"fjacquet/finance-manager/internal/config"
	"fjacquet/finance-manager/internal/container"
	"fjacquet/finance-manager/internal/ledger"
	"fjacquet/finance-manager/internal/logging"
	"fjacquet/finance-manager/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSession(t *testing.T) (*container.Container, *ledger.Engine) {
	t.Helper()
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "transactions.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("date,kind,amount,description,category\n"+
		"2023-12-15,income,300,Bonus,Salary\n"+
		"2024-01-01,income,2000,Paycheck,Salary\n"+
		"2024-01-05,expense,2500,Rent,Rent\n"), 0600))

	cfg := config.DefaultConfig()
	cfg.Seed.File = filepath.Join(dir, "seed.yaml")
	cfg.Render.Style = "notty"
	now := func() time.Time { return time.Date(2024, time.January, 4, 0, 0, 0, 0, time.UTC) }

	app, engine, err := root.Bootstrap(cfg, logging.NewMockLogger(), now, csvPath)
	require.NoError(t, err)
	return app, engine
}

func TestSeedCommand_Metadata(t *testing.T) {
	assert.Equal(t, "seed", seed.Cmd.Use)
	assert.Contains(t, seed.Cmd.Short, "YAML")
	assert.Contains(t, seed.Cmd.Long, "--seed")
	assert.NotNil(t, seed.Cmd.RunE)

	outputFlag := seed.Cmd.Flags().Lookup("output")
	require.NotNil(t, outputFlag)
	assert.Equal(t, "o", outputFlag.Shorthand)
}

func TestRun_Stdout(t *testing.T) {
	app, engine := newSession(t)
	var out bytes.Buffer

	require.NoError(t, seed.Run(&out, app, engine, ""))

	text := out.String()
	assert.Contains(t, text, "savings_goal: \"1000\"")
	assert.Contains(t, text, "name: Groceries")
	assert.Contains(t, text, "name: Real Estate")
}

func TestRun_FileRoundTrip(t *testing.T) {
	app, engine := newSession(t)
	_, err := engine.AddInvestment("Bond Fund", "2500", "Bonds")
	require.NoError(t, err)
	engine.IncreaseSavingsGoal()

	path := filepath.Join(t.TempDir(), "out", "seed.yaml")
	require.NoError(t, seed.Run(&bytes.Buffer{}, app, engine, path))

	loaded, err := store.NewSeedStore(path, logging.NewMockLogger()).LoadSeed()
	require.NoError(t, err)
	assert.Equal(t, "1500", loaded.SavingsGoal.String())
	require.Len(t, loaded.Investments, 4)
	assert.Equal(t, "Bond Fund", loaded.Investments[3].Name)
	require.Len(t, loaded.Categories, 4)
	assert.Equal(t, "Rent", loaded.Categories[2].Name)
	assert.Equal(t, "1500", loaded.Categories[2].Budget.String())
}

func TestCurrent(t *testing.T) {
	_, engine := newSession(t)
	current := seed.Current(engine)
	assert.Len(t, current.Categories, 4)
	assert.Len(t, current.Investments, 3)
	assert.Equal(t, "1000", current.SavingsGoal.String())
}
