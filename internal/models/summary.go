package models

import "github.com/shopspring/decimal"

// Totals is the summary of a transaction list. CurrentSavings may be negative.
type Totals struct {
	TotalIncome    decimal.Decimal `json:"total_income"`
	TotalExpenses  decimal.Decimal `json:"total_expenses"`
	CurrentSavings decimal.Decimal `json:"current_savings"`
}

// ChartPoint is one bar of the budget-versus-spending chart.
type ChartPoint struct {
	CategoryName string          `json:"category_name"`
	Budget       decimal.Decimal `json:"budget"`
	Spending     decimal.Decimal `json:"spending"`
}

// BudgetRow describes how much of one expense category's budget is used.
// Progress is a raw percentage and may exceed 100.
type BudgetRow struct {
	CategoryID int             `json:"category_id"`
	Name       string          `json:"name"`
	Budget     decimal.Decimal `json:"budget"`
	Spent      decimal.Decimal `json:"spent"`
	Remaining  decimal.Decimal `json:"remaining"`
	Progress   decimal.Decimal `json:"progress"`
}

// MonthSummary aggregates the transactions dated in one calendar month.
type MonthSummary struct {
	Month    string          `json:"month"`
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
	Net      decimal.Decimal `json:"net"`
}

// Dashboard is a read-only snapshot of everything the overview screen shows.
type Dashboard struct {
	Currency         string          `json:"currency"`
	Totals           Totals          `json:"totals"`
	SavingsGoal      decimal.Decimal `json:"savings_goal"`
	SavingsProgress  decimal.Decimal `json:"savings_progress"`
	Notifications    []Notification  `json:"notifications"`
	Recent           []Transaction   `json:"recent"`
	Budgets          []BudgetRow     `json:"budgets"`
	Investments      []Investment    `json:"investments"`
	TotalInvestments decimal.Decimal `json:"total_investments"`
}
