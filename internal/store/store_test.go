package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"fjacquet/finance-manager/internal/ledgererror"
	"fjacquet/finance-manager/internal/logging"
	"fjacquet/finance-manager/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
}

func TestFindConfigFile(t *testing.T) {
	dir := t.TempDir()
	testFile := filepath.Join(dir, "seed.yaml")
	writeFile(t, testFile, "categories: []")

	store := NewSeedStore("", logging.NewMockLogger())

	file, err := store.FindConfigFile(testFile)
	require.NoError(t, err)
	assert.Equal(t, testFile, file)

	_, err = store.FindConfigFile(filepath.Join(dir, "nonexistent.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadSeed_MissingFileUsesBuiltIns(t *testing.T) {
	logger := logging.NewMockLogger()
	store := NewSeedStore(filepath.Join(t.TempDir(), "seed.yaml"), logger)

	seed, err := store.LoadSeed()
	require.NoError(t, err)

	defaults := models.DefaultSeed()
	assert.Equal(t, defaults.Categories, seed.Categories)
	assert.Equal(t, defaults.Investments, seed.Investments)
	assert.True(t, seed.SavingsGoal.IsZero(), "goal is left to the caller")
	assert.True(t, logger.HasEntry("WARN", "Seed file not found, using built-in categories and investments"))
}

func TestLoadSeed_ValidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	writeFile(t, path, `
savings_goal: "2500.50"
categories:
  - id: 10
    name: Salary
    kind: income
  - name: Groceries
    kind: Expense
    budget: "400"
  - name: Travel
    kind: expense
investments:
  - name: ETF
    value: "1200.75"
    type: Equity
    performance: "-3.2"
`)
	store := NewSeedStore(path, logging.NewMockLogger())

	seed, err := store.LoadSeed()
	require.NoError(t, err)

	assert.Equal(t, "2500.5", seed.SavingsGoal.String())
	require.Len(t, seed.Categories, 3)
	assert.Equal(t, 10, seed.Categories[0].ID)
	assert.Equal(t, 11, seed.Categories[1].ID)
	assert.Equal(t, 12, seed.Categories[2].ID)
	assert.Equal(t, models.KindExpense, seed.Categories[1].Kind)
	assert.Equal(t, "400", seed.Categories[1].Budget.String())
	assert.False(t, seed.Categories[2].HasBudget())

	require.Len(t, seed.Investments, 1)
	assert.Equal(t, 1, seed.Investments[0].ID)
	assert.Equal(t, "1200.75", seed.Investments[0].Value.String())
	assert.Equal(t, "-3.2", seed.Investments[0].Performance.String())
}

func TestLoadSeed_OmittedSectionsFallBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	writeFile(t, path, "investments: []\n")
	store := NewSeedStore(path, logging.NewMockLogger())

	seed, err := store.LoadSeed()
	require.NoError(t, err)

	assert.Equal(t, models.DefaultSeed().Categories, seed.Categories)
	assert.Empty(t, seed.Investments)
}

func TestLoadSeed_Malformed(t *testing.T) {
	tests := []struct {
		name    string
		content string
		section string
		cause   error
	}{
		{"bad yaml", "categories: [unclosed", "", nil},
		{"bad kind", "categories:\n  - name: X\n    kind: transfer\n", "categories", ledgererror.ErrInvalidKind},
		{"bad budget", "categories:\n  - name: X\n    kind: expense\n    budget: lots\n", "categories", ledgererror.ErrInvalidAmount},
		{"bad value", "investments:\n  - name: X\n    value: abc\n    type: T\n", "investments", ledgererror.ErrInvalidAmount},
		{"bad goal", "savings_goal: \"-5\"\n", "", ledgererror.ErrInvalidAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "seed.yaml")
			writeFile(t, path, tt.content)

			_, err := NewSeedStore(path, logging.NewMockLogger()).LoadSeed()
			require.Error(t, err)
			var se *ledgererror.SeedError
			require.True(t, errors.As(err, &se))
			assert.Equal(t, tt.section, se.Section)
			if tt.cause != nil {
				assert.ErrorIs(t, err, tt.cause)
			}
		})
	}
}

func TestSaveSeed_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "seed.yaml")
	store := NewSeedStore(path, logging.NewMockLogger())

	require.NoError(t, store.SaveSeed(models.DefaultSeed(), ""))

	seed, err := store.LoadSeed()
	require.NoError(t, err)

	want := models.DefaultSeed()
	assert.True(t, want.SavingsGoal.Equal(seed.SavingsGoal))
	require.Len(t, seed.Categories, len(want.Categories))
	for i := range want.Categories {
		assert.Equal(t, want.Categories[i].ID, seed.Categories[i].ID)
		assert.Equal(t, want.Categories[i].Name, seed.Categories[i].Name)
		assert.True(t, want.Categories[i].Budget.Equal(seed.Categories[i].Budget))
	}
	require.Len(t, seed.Investments, len(want.Investments))
	for i := range want.Investments {
		assert.Equal(t, want.Investments[i].Name, seed.Investments[i].Name)
		assert.True(t, want.Investments[i].Performance.Equal(seed.Investments[i].Performance))
	}
}

func TestMarshalSeed(t *testing.T) {
	data, err := MarshalSeed(models.DefaultSeed())
	require.NoError(t, err)

	out := string(data)
	assert.Contains(t, out, "savings_goal: \"1000\"")
	assert.Contains(t, out, "name: Groceries")
	assert.Contains(t, out, "type: Fixed Income")
}
