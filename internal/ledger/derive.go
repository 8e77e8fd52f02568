package ledger

import (
	"sort"
	"strings"

	"fjacquet/finance-manager/internal/currencyutils"
	"fjacquet/finance-manager/internal/dateutils"
	"fjacquet/finance-manager/internal/models"

	"github.com/shopspring/decimal"
)

// The functions in this file are pure: they read their arguments and never
// touch engine state, so they can be called on any snapshot.

// ComputeTotals sums income and expenses. CurrentSavings is income minus
// expenses and may be negative.
func ComputeTotals(txs []models.Transaction) models.Totals {
	income := decimal.Zero
	expenses := decimal.Zero
	for _, tx := range txs {
		switch tx.Kind {
		case models.KindIncome:
			income = income.Add(tx.Amount)
		case models.KindExpense:
			expenses = expenses.Add(tx.Amount)
		}
	}
	return models.Totals{
		TotalIncome:    income,
		TotalExpenses:  expenses,
		CurrentSavings: income.Sub(expenses),
	}
}

// CategorySpending sums the expense transactions recorded under categoryName.
// It returns zero when nothing matches.
func CategorySpending(categoryName string, txs []models.Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range txs {
		if tx.IsExpense() && tx.Category == categoryName {
			total = total.Add(tx.Amount)
		}
	}
	return total
}

// CategoryBudget returns the budget of the expense category named
// categoryName, or zero when it is missing or unbudgeted.
func CategoryBudget(categoryName string, categories []models.Category) decimal.Decimal {
	cat, ok := findCategory(categories, models.KindExpense, categoryName)
	if !ok || !cat.HasBudget() {
		return decimal.Zero
	}
	return cat.Budget
}

// BudgetProgress is 100*spending/budget, or zero when budget is zero.
func BudgetProgress(spending, budget decimal.Decimal) decimal.Decimal {
	return currencyutils.Percentage(spending, budget)
}

// SavingsProgress is 100*savings/goal, unclamped. A zero goal yields zero.
func SavingsProgress(currentSavings, goal decimal.Decimal) decimal.Decimal {
	return currencyutils.Percentage(currentSavings, goal)
}

// ChartData projects every expense category, in declaration order, onto its
// budget and spending.
func ChartData(categories []models.Category, txs []models.Transaction) []models.ChartPoint {
	points := make([]models.ChartPoint, 0, len(categories))
	for _, cat := range categories {
		if cat.Kind != models.KindExpense {
			continue
		}
		points = append(points, models.ChartPoint{
			CategoryName: cat.Name,
			Budget:       budgetOf(cat),
			Spending:     spendingFor(cat, txs),
		})
	}
	return points
}

// BudgetRows reports budget usage for every expense category in declaration order.
func BudgetRows(categories []models.Category, txs []models.Transaction) []models.BudgetRow {
	rows := make([]models.BudgetRow, 0, len(categories))
	for _, cat := range categories {
		if cat.Kind != models.KindExpense {
			continue
		}
		budget := budgetOf(cat)
		spent := spendingFor(cat, txs)
		rows = append(rows, models.BudgetRow{
			CategoryID: cat.ID,
			Name:       cat.Name,
			Budget:     budget,
			Spent:      spent,
			Remaining:  budget.Sub(spent),
			Progress:   BudgetProgress(spent, budget),
		})
	}
	return rows
}

// RecentTransactions returns the last n entered transactions, newest first.
func RecentTransactions(txs []models.Transaction, n int) []models.Transaction {
	if n <= 0 || len(txs) == 0 {
		return []models.Transaction{}
	}
	if n > len(txs) {
		n = len(txs)
	}
	out := make([]models.Transaction, 0, n)
	for i := len(txs) - 1; i >= len(txs)-n; i-- {
		out = append(out, txs[i])
	}
	return out
}

// FilterTransactions keeps the transactions matching filter, in entry order.
func FilterTransactions(txs []models.Transaction, filter models.TransactionFilter) []models.Transaction {
	out := make([]models.Transaction, 0, len(txs))
	for _, tx := range txs {
		if filter.Match(tx) {
			out = append(out, tx)
		}
	}
	return out
}

// TotalInvestmentValue sums the current value of every holding.
func TotalInvestmentValue(investments []models.Investment) decimal.Decimal {
	total := decimal.Zero
	for _, inv := range investments {
		total = total.Add(inv.Value)
	}
	return total
}

// MonthlySummaries groups transactions by the calendar month of their date,
// oldest month first.
func MonthlySummaries(txs []models.Transaction) []models.MonthSummary {
	byMonth := make(map[string]*models.MonthSummary)
	for _, tx := range txs {
		key := dateutils.MonthKey(tx.Date)
		m, ok := byMonth[key]
		if !ok {
			m = &models.MonthSummary{Month: key, Income: decimal.Zero, Expenses: decimal.Zero}
			byMonth[key] = m
		}
		if tx.IsIncome() {
			m.Income = m.Income.Add(tx.Amount)
		} else {
			m.Expenses = m.Expenses.Add(tx.Amount)
		}
	}

	out := make([]models.MonthSummary, 0, len(byMonth))
	for _, m := range byMonth {
		m.Net = m.Income.Sub(m.Expenses)
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}

// spendingFor joins on the stable category ID. Records without an ID fall
// back to the name within the same kind.
func spendingFor(cat models.Category, txs []models.Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range txs {
		if !tx.IsExpense() {
			continue
		}
		if belongsTo(tx, cat) {
			total = total.Add(tx.Amount)
		}
	}
	return total
}

func belongsTo(tx models.Transaction, cat models.Category) bool {
	if tx.CategoryID != 0 {
		return tx.CategoryID == cat.ID
	}
	return tx.Kind == cat.Kind && tx.Category == cat.Name
}

func budgetOf(cat models.Category) decimal.Decimal {
	if !cat.HasBudget() {
		return decimal.Zero
	}
	return cat.Budget
}

func findCategory(categories []models.Category, kind models.Kind, name string) (models.Category, bool) {
	name = strings.TrimSpace(name)
	for _, cat := range categories {
		if cat.Kind == kind && cat.Name == name {
			return cat, true
		}
	}
	return models.Category{}, false
}
