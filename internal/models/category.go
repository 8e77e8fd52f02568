package models

import "github.com/shopspring/decimal"

// Category is a named income or expense bucket. A zero Budget means the
// category has no budget.
type Category struct {
	ID     int             `json:"id" yaml:"id"`
	Name   string          `json:"name" yaml:"name"`
	Kind   Kind            `json:"kind" yaml:"kind"`
	Budget decimal.Decimal `json:"budget" yaml:"budget"`
}

// HasBudget returns true if a positive budget is set
func (c Category) HasBudget() bool {
	return c.Budget.IsPositive()
}

// Investment is a named holding with its current value and a signed
// performance percentage.
type Investment struct {
	ID          int             `json:"id" yaml:"id"`
	Name        string          `json:"name" yaml:"name"`
	Value       decimal.Decimal `json:"value" yaml:"value"`
	Type        string          `json:"type" yaml:"type"`
	Performance decimal.Decimal `json:"performance" yaml:"performance"`
}

// Seed is the initial ledger content loaded at session start.
type Seed struct {
	Categories  []Category
	Investments []Investment
	SavingsGoal decimal.Decimal
}

// DefaultSeed returns the built-in categories, investments and savings goal.
func DefaultSeed() Seed {
	return Seed{
		Categories: []Category{
			{ID: 1, Name: CategorySalary, Kind: KindIncome},
			{ID: 2, Name: CategoryGroceries, Kind: KindExpense, Budget: decimal.NewFromInt(500)},
			{ID: 3, Name: CategoryRent, Kind: KindExpense, Budget: decimal.NewFromInt(1500)},
			{ID: 4, Name: CategoryEntertainment, Kind: KindExpense, Budget: decimal.NewFromInt(200)},
		},
		Investments: []Investment{
			{ID: 1, Name: "Stocks", Value: decimal.NewFromInt(5000), Type: "Equity", Performance: decimal.RequireFromString("7.5")},
			{ID: 2, Name: "Bonds", Value: decimal.NewFromInt(3000), Type: "Fixed Income", Performance: decimal.RequireFromString("2.5")},
			{ID: 3, Name: "Real Estate", Value: decimal.NewFromInt(10000), Type: "Property", Performance: decimal.RequireFromString("5.0")},
		},
		SavingsGoal: decimal.NewFromInt(1000),
	}
}
