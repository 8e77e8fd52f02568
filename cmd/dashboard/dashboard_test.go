package dashboard_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"fjacquet/finance-manager/cmd/common"
	"fjacquet/finance-manager/cmd/dashboard"
	"fjacquet/finance-manager/cmd/root"
	"fjacquet/finance-manager/internal/config"
	"fjacquet/finance-manager/internal/container"
	"fjacquet/finance-manager/internal/ledger"
	"fjacquet/finance-manager/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSession(t *testing.T) (*container.Container, *ledger.Engine) {
	t.Helper()
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "transactions.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("date,kind,amount,description,category\n"+
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

func TestDashboardCommand_Metadata(t *testing.T) {
	assert.Equal(t, "dashboard", dashboard.Cmd.Use)
	assert.Contains(t, dashboard.Cmd.Short, "finance overview")
	assert.Contains(t, dashboard.Cmd.Long, "savings goal progress")
	assert.NotNil(t, dashboard.Cmd.RunE)
}

func TestDashboardCommand_Flags(t *testing.T) {
	formatFlag := dashboard.Cmd.Flags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "f", formatFlag.Shorthand)
	assert.Equal(t, "markdown", formatFlag.DefValue)
	assert.Contains(t, formatFlag.Usage, "json")

	outputFlag := dashboard.Cmd.Flags().Lookup("output")
	require.NotNil(t, outputFlag)
	assert.Equal(t, "o", outputFlag.Shorthand)

	plainFlag := dashboard.Cmd.Flags().Lookup("plain")
	require.NotNil(t, plainFlag)
	assert.Equal(t, "false", plainFlag.DefValue)
}

func TestRun_PlainMarkdown(t *testing.T) {
	app, engine := newSession(t)
	var out bytes.Buffer

	require.NoError(t, dashboard.Run(&out, app, engine, common.OutputFlags{Plain: true}))

	text := out.String()
	assert.Contains(t, text, "# Finance Overview")
	assert.Contains(t, text, "**-$500.00**")
	assert.Contains(t, text, "Upcoming bill: Rent payment of $2,500.00 due on 2024-01-05")
	assert.Contains(t, text, "Total value: **$18,000.00**")
}

func TestRun_Styled(t *testing.T) {
	app, engine := newSession(t)
	var out bytes.Buffer

	require.NoError(t, dashboard.Run(&out, app, engine, common.OutputFlags{Format: "md"}))
	assert.Contains(t, out.String(), "Finance Overview")
	assert.Contains(t, out.String(), "Recent Transactions")
}

func TestRun_JSON(t *testing.T) {
	app, engine := newSession(t)
	var out bytes.Buffer

	require.NoError(t, dashboard.Run(&out, app, engine, common.OutputFlags{Format: "json"}))
	assert.Contains(t, out.String(), `"current_savings": "-500.00"`)
}

func TestRun_CSVRejected(t *testing.T) {
	app, engine := newSession(t)
	err := dashboard.Run(&bytes.Buffer{}, app, engine, common.OutputFlags{Format: "csv"})
	assert.Error(t, err)
}

func TestRun_OutputFile(t *testing.T) {
	app, engine := newSession(t)
	path := filepath.Join(t.TempDir(), "reports", "dashboard.md")
	var out bytes.Buffer

	require.NoError(t, dashboard.Run(&out, app, engine, common.OutputFlags{Output: path}))

	assert.Empty(t, out.String())
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "# Finance Overview")
}
