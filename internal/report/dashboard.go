package report

import (
	"bytes"
	"encoding/json"
	"fmt"

	"fjacquet/finance-manager/internal/currencyutils"
	"fjacquet/finance-manager/internal/dateutils"
	"fjacquet/finance-manager/internal/models"

	md "github.com/nao1215/markdown"
)

// DashboardMarkdown renders the overview: totals, savings goal,
// notifications, recent transactions, budgets and investments.
func (g *Generator) DashboardMarkdown(d models.Dashboard) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Finance Overview")
	doc.Table(md.TableSet{
		Header: []string{"Total Income", "Total Expenses", "Current Savings"},
		Rows: [][]string{{
			g.money(d.Totals.TotalIncome),
			g.money(d.Totals.TotalExpenses),
			md.Bold(g.money(d.Totals.CurrentSavings)),
		}},
	})

	doc.H2("Savings Goal")
	doc.PlainText(fmt.Sprintf("%s of %s saved (%s)",
		g.money(d.Totals.CurrentSavings),
		g.money(d.SavingsGoal),
		currencyutils.FormatPercent(d.SavingsProgress)))

	doc.H2("Notifications")
	if len(d.Notifications) == 0 {
		doc.PlainText("No notifications.")
	} else {
		messages := make([]string, 0, len(d.Notifications))
		for _, n := range d.Notifications {
			messages = append(messages, n.Message)
		}
		doc.BulletList(messages...)
	}

	doc.H2("Recent Transactions")
	if len(d.Recent) == 0 {
		doc.PlainText("No transactions yet.")
	} else {
		table := md.TableSet{Header: []string{"Date", "Description", "Category", "Amount"}}
		for _, tx := range d.Recent {
			table.Rows = append(table.Rows, []string{dateutils.ToISODate(tx.Date), tx.Description, tx.Category, g.signed(tx)})
		}
		doc.Table(table)
	}

	doc.H2("Budgets")
	if len(d.Budgets) == 0 {
		doc.PlainText("No expense categories.")
	} else {
		table := md.TableSet{Header: []string{"Category", "Spent", "Budget", "Progress"}}
		for _, b := range d.Budgets {
			table.Rows = append(table.Rows, []string{b.Name, g.money(b.Spent), g.money(b.Budget), currencyutils.FormatPercent(b.Progress)})
		}
		doc.Table(table)
	}

	doc.H2("Investments")
	if len(d.Investments) == 0 {
		doc.PlainText("No investments.")
	} else {
		table := md.TableSet{Header: []string{"Name", "Type", "Value", "Performance"}}
		for _, inv := range d.Investments {
			table.Rows = append(table.Rows, []string{inv.Name, inv.Type, g.money(inv.Value), signedPercent(inv.Performance)})
		}
		doc.Table(table)
		doc.PlainText(fmt.Sprintf("Total value: %s", md.Bold(g.money(d.TotalInvestments))))
	}

	return doc.String()
}

type dashboardRecord struct {
	Currency         string                `json:"currency"`
	TotalIncome      string                `json:"total_income"`
	TotalExpenses    string                `json:"total_expenses"`
	CurrentSavings   string                `json:"current_savings"`
	SavingsGoal      string                `json:"savings_goal"`
	SavingsProgress  string                `json:"savings_progress"`
	Notifications    []models.Notification `json:"notifications"`
	Recent           []transactionRecord   `json:"recent_transactions"`
	Budgets          []budgetRecord        `json:"budgets"`
	Investments      []investmentRecord    `json:"investments"`
	TotalInvestments string                `json:"total_investments"`
}

// GenerateDashboard renders the overview as markdown or JSON. CSV has no
// single-table form and is rejected.
func (g *Generator) GenerateDashboard(d models.Dashboard, format string) ([]byte, error) {
	format, err := NormalizeFormat(format)
	if err != nil {
		return nil, err
	}

	switch format {
	case FormatMarkdown:
		return []byte(g.DashboardMarkdown(d)), nil
	case FormatJSON:
		rec := dashboardRecord{
			Currency:         d.Currency,
			TotalIncome:      d.Totals.TotalIncome.StringFixed(2),
			TotalExpenses:    d.Totals.TotalExpenses.StringFixed(2),
			CurrentSavings:   d.Totals.CurrentSavings.StringFixed(2),
			SavingsGoal:      d.SavingsGoal.StringFixed(2),
			SavingsProgress:  d.SavingsProgress.StringFixed(1),
			Notifications:    append([]models.Notification{}, d.Notifications...),
			Recent:           g.transactionRecords(d.Recent),
			Budgets:          g.budgetRecords(d.Budgets),
			Investments:      g.investmentRecords(d.Investments),
			TotalInvestments: d.TotalInvestments.StringFixed(2),
		}
		out, err := json.MarshalIndent(rec, "", "  ")
		if err != nil {
			g.logger.WithError(err).Error("Failed to marshal JSON dashboard")
			return nil, fmt.Errorf("failed to marshal JSON dashboard: %w", err)
		}
		return append(out, '\n'), nil
	default:
		return nil, fmt.Errorf("unsupported report format: %s", format)
	}
}
