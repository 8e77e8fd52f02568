package currencyutils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name      string
		amountStr string
		expected  decimal.Decimal
		hasError  bool
	}{
		{"Empty string", "", decimal.Zero, false},
		{"Simple decimal", "123.45", decimal.RequireFromString("123.45"), false},
		{"Negative decimal", "-123.45", decimal.RequireFromString("-123.45"), false},
		{"Integer", "100", decimal.NewFromInt(100), false},
		{"With comma decimal separator", "123,45", decimal.RequireFromString("123.45"), false},
		{"With thousand separator (comma)", "1,234.56", decimal.RequireFromString("1234.56"), false},
		{"Comma thousands only", "1,234", decimal.NewFromInt(1234), false},
		{"With thousand separator (apostrophe)", "1'234.56", decimal.RequireFromString("1234.56"), false},
		{"European format", "1.234,56", decimal.RequireFromString("1234.56"), false},
		{"With currency symbol (EUR)", "€123.45", decimal.RequireFromString("123.45"), false},
		{"With currency symbol (USD)", "$123.45", decimal.RequireFromString("123.45"), false},
		{"With currency code", "CHF 123.45", decimal.RequireFromString("123.45"), false},
		{"With spaces", "  123.45  ", decimal.RequireFromString("123.45"), false},
		{"Malformed decimal", "123.45.67", decimal.Zero, true},
		{"Non-numeric", "abc", decimal.Zero, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result, err := ParseAmount(tc.amountStr)

			if tc.hasError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.True(t, tc.expected.Equal(result), "Expected %s but got %s", tc.expected.String(), result.String())
			}
		})
	}
}

func TestParsePositiveAmount(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		hasError bool
	}{
		{"positive", "2000", "2000", false},
		{"positive with cents", "12.34", "12.34", false},
		{"formatted", "$1,500.00", "1500", false},
		{"negative", "-5", "", true},
		{"zero", "0", "", true},
		{"empty", "", "", true},
		{"blank", "   ", "", true},
		{"not a number", "twelve", "", true},
		{"NaN", "NaN", "", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParsePositiveAmount(tc.input)
			if tc.hasError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, decimal.RequireFromString(tc.expected).Equal(got), "got %s", got)
		})
	}
}

func TestStandardizeAmount(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Simple decimal", "123.45", "123.45"},
		{"Negative decimal", "-123.45", "-123.45"},
		{"With comma decimal separator", "123,45", "123.45"},
		{"With thousand separator (comma)", "1,234.56", "1234.56"},
		{"With thousand separator (apostrophe)", "1'234.56", "1234.56"},
		{"European format", "1.234,56", "1234.56"},
		{"With currency code", "CHF 123.45", "123.45"},
		{"Multiple separators", "1,234,567.89", "1234567.89"},
		{"European multiple separators", "1.234.567,89", "1234567.89"},
		{"Euro symbol and European format", "€1.234,56", "1234.56"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, StandardizeAmount(tc.input))
		})
	}
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		name     string
		amount   decimal.Decimal
		currency string
		expected string
	}{
		{"USD thousands", decimal.NewFromInt(2000), "USD", "$2,000.00"},
		{"USD negative", decimal.NewFromInt(-500), "USD", "-$500.00"},
		{"USD lower case code", decimal.RequireFromString("12.5"), "usd", "$12.50"},
		{"USD rounds to cents", decimal.RequireFromString("0.125"), "USD", "$0.13"},
		{"USD zero", decimal.Zero, "USD", "$0.00"},
		{"no currency", decimal.RequireFromString("1234.5"), "", "1234.50"},
		{"USD beyond int64 cents", decimal.RequireFromString("100000000000000000"), "USD", "$100,000,000,000,000,000.00"},
		{"USD negative beyond int64 cents", decimal.RequireFromString("-123456789012345678.905"), "USD", "-$123,456,789,012,345,678.91"},
		{"USD largest int64 cents", decimal.RequireFromString("92233720368547758.07"), "USD", "$92,233,720,368,547,758.07"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, FormatAmount(tc.amount, tc.currency))
		})
	}
}

func TestPercentage(t *testing.T) {
	assert.True(t, Percentage(decimal.NewFromInt(500), decimal.NewFromInt(500)).Equal(decimal.NewFromInt(100)))
	assert.True(t, Percentage(decimal.NewFromInt(50), decimal.NewFromInt(200)).Equal(decimal.NewFromInt(25)))
	assert.True(t, Percentage(decimal.NewFromInt(-500), decimal.NewFromInt(1000)).Equal(decimal.NewFromInt(-50)))
	assert.True(t, Percentage(decimal.NewFromInt(10), decimal.Zero).IsZero())
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "100.0%", FormatPercent(decimal.NewFromInt(100)))
	assert.Equal(t, "33.3%", FormatPercent(decimal.NewFromInt(100).Div(decimal.NewFromInt(3))))
}
