package transactions_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"fjacquet/finance-manager/cmd/common"
	"fjacquet/finance-manager/cmd/root"
	"fjacquet/finance-manager/cmd/transactions"
	"fjacquet/finance-manager/internal/config"
	"fjacquet/finance-manager/internal/container"
	"fjacquet/finance-manager/internal/ledger"
	"fjacquet/finance-manager/internal/logging"
	"fjacquet/finance-manager/internal/models"
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

func TestTransactionsCommand_Metadata(t *testing.T) {
	assert.Equal(t, "transactions", transactions.Cmd.Use)
	assert.Contains(t, transactions.Cmd.Short, "filtered by kind and category")
	assert.Contains(t, transactions.Cmd.Long, "--export")
	assert.NotNil(t, transactions.Cmd.RunE)
}

func TestTransactionsCommand_Flags(t *testing.T) {
	kindFlag := transactions.Cmd.Flags().Lookup("kind")
	require.NotNil(t, kindFlag)
	assert.Equal(t, "k", kindFlag.Shorthand)

	categoryFlag := transactions.Cmd.Flags().Lookup("category")
	require.NotNil(t, categoryFlag)
	assert.Equal(t, "", categoryFlag.DefValue)

	exportFlag := transactions.Cmd.Flags().Lookup("export")
	require.NotNil(t, exportFlag)
	assert.Equal(t, "e", exportFlag.Shorthand)
	assert.Contains(t, exportFlag.Usage, "CSV")
}

func TestFilter(t *testing.T) {
	f, err := transactions.Filter("", "rent")
	require.NoError(t, err)
	assert.Equal(t, models.TransactionFilter{Category: "rent"}, f)

	f, err = transactions.Filter("Income", "")
	require.NoError(t, err)
	assert.Equal(t, models.KindIncome, f.Kind)

	_, err = transactions.Filter("transfer", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be income or expense")
}

func TestRun_FilterByKind(t *testing.T) {
	app, engine := newSession(t)
	var out bytes.Buffer

	opts := transactions.Options{OutputFlags: common.OutputFlags{Format: "csv"}, Kind: "income"}
	require.NoError(t, transactions.Run(&out, app, engine, opts))

	text := out.String()
	assert.Contains(t, text, "Bonus")
	assert.Contains(t, text, "Paycheck")
	assert.NotContains(t, text, "Rent")
}

func TestRun_FilterByCategory(t *testing.T) {
	app, engine := newSession(t)
	var out bytes.Buffer

	opts := transactions.Options{OutputFlags: common.OutputFlags{Plain: true}, Category: "RENT"}
	require.NoError(t, transactions.Run(&out, app, engine, opts))

	assert.Contains(t, out.String(), "-$2,500.00")
	assert.NotContains(t, out.String(), "Paycheck")
}

func TestRun_ExportRoundTrip(t *testing.T) {
	app, engine := newSession(t)
	path := filepath.Join(t.TempDir(), "export", "expenses.csv")
	var out bytes.Buffer

	opts := transactions.Options{Kind: "expense", Export: path}
	require.NoError(t, transactions.Run(&out, app, engine, opts))
	assert.Empty(t, out.String())

	inputs, err := store.ReadTransactionsCSV(path, ',', logging.NewMockLogger())
	require.NoError(t, err)
	require.Len(t, inputs, 1)
	assert.Equal(t, models.KindExpense, inputs[0].Kind)
	assert.Equal(t, "2500.00", inputs[0].Amount)
	assert.Equal(t, "Rent", inputs[0].Category)
}

func TestRun_ExportToStdout(t *testing.T) {
	app, engine := newSession(t)
	var out bytes.Buffer

	require.NoError(t, transactions.Run(&out, app, engine, transactions.Options{Kind: "expense", Export: "-"}))
	assert.Equal(t, "id,date,kind,amount,description,category\n3,2024-01-05,expense,2500.00,Rent,Rent\n", out.String())
}
