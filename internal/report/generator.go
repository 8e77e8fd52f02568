// Package report renders ledger snapshots as Markdown, CSV or JSON.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"fjacquet/finance-manager/internal/common"
	"fjacquet/finance-manager/internal/currencyutils"
	"fjacquet/finance-manager/internal/dateutils"
	"fjacquet/finance-manager/internal/logging"
	"fjacquet/finance-manager/internal/models"

	md "github.com/nao1215/markdown"
	"github.com/shopspring/decimal"
)

// Supported output formats.
const (
	FormatMarkdown = "markdown"
	FormatCSV      = "csv"
	FormatJSON     = "json"
)

// Formats lists the values accepted by the format flags.
var Formats = []string{FormatMarkdown, FormatCSV, FormatJSON}

// Generator turns ledger data into documents. Amounts are displayed in
// currency; CSV output uses delimiter.
type Generator struct {
	logger    logging.Logger
	currency  string
	delimiter rune
}

// NewGenerator creates a new instance of Generator.
func NewGenerator(logger logging.Logger, currency string, delimiter rune) *Generator {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	if currency == "" {
		currency = models.DefaultCurrency
	}
	return &Generator{
		logger:    logger.WithField(logging.FieldComponent, "report"),
		currency:  currency,
		delimiter: delimiter,
	}
}

// NormalizeFormat maps user input onto a supported format. "table" and "md"
// are accepted as aliases for markdown.
func NormalizeFormat(format string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatMarkdown, "md", "table":
		return FormatMarkdown, nil
	case FormatCSV:
		return FormatCSV, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported report format: %s", format)
	}
}

func (g *Generator) money(d decimal.Decimal) string {
	return currencyutils.FormatAmount(d, g.currency)
}

func (g *Generator) signed(tx models.Transaction) string {
	if tx.IsIncome() {
		return "+" + g.money(tx.Amount)
	}
	return "-" + g.money(tx.Amount)
}

// record is a flat row that can be emitted in every tabular format.
type record interface {
	cells() []string
}

func generate[T record](g *Generator, title string, header []string, rows []T, format string) ([]byte, error) {
	format, err := NormalizeFormat(format)
	if err != nil {
		return nil, err
	}

	switch format {
	case FormatCSV:
		var buf bytes.Buffer
		if err := common.WriteCSV(&buf, rows, g.delimiter); err != nil {
			g.logger.WithError(err).Error("Failed to write CSV report")
			return nil, fmt.Errorf("failed to write CSV report: %w", err)
		}
		return buf.Bytes(), nil
	case FormatJSON:
		if rows == nil {
			rows = []T{}
		}
		out, err := json.MarshalIndent(rows, "", "  ")
		if err != nil {
			g.logger.WithError(err).Error("Failed to marshal JSON report")
			return nil, fmt.Errorf("failed to marshal JSON report: %w", err)
		}
		return append(out, '\n'), nil
	default:
		var buf bytes.Buffer
		doc := md.NewMarkdown(&buf)
		doc.H2(title)
		if len(rows) == 0 {
			doc.PlainText("Nothing to show.")
			return []byte(doc.String()), nil
		}
		table := md.TableSet{Header: header}
		for _, r := range rows {
			table.Rows = append(table.Rows, r.cells())
		}
		doc.Table(table)
		return []byte(doc.String()), nil
	}
}

type budgetRecord struct {
	Category  string   `csv:"category" json:"category"`
	Spent     string   `csv:"spent" json:"spent"`
	Budget    string   `csv:"budget" json:"budget"`
	Remaining string   `csv:"remaining" json:"remaining"`
	Progress  string   `csv:"progress" json:"progress"`
	Display   []string `csv:"-" json:"-"`
}

func (r budgetRecord) cells() []string { return r.Display }

// GenerateBudgets reports spending against budget per expense category.
func (g *Generator) GenerateBudgets(rows []models.BudgetRow, format string) ([]byte, error) {
	return generate(g, "Budgets", []string{"Category", "Spent", "Budget", "Remaining", "Progress"}, g.budgetRecords(rows), format)
}

func (g *Generator) budgetRecords(rows []models.BudgetRow) []budgetRecord {
	records := make([]budgetRecord, 0, len(rows))
	for _, row := range rows {
		budget := "-"
		if row.Budget.IsPositive() {
			budget = g.money(row.Budget)
		}
		records = append(records, budgetRecord{
			Category:  row.Name,
			Spent:     row.Spent.StringFixed(2),
			Budget:    row.Budget.StringFixed(2),
			Remaining: row.Remaining.StringFixed(2),
			Progress:  row.Progress.StringFixed(1),
			Display:   []string{row.Name, g.money(row.Spent), budget, g.money(row.Remaining), currencyutils.FormatPercent(row.Progress)},
		})
	}
	return records
}

type chartRecord struct {
	Category string   `csv:"category" json:"category"`
	Budget   string   `csv:"budget" json:"budget"`
	Spending string   `csv:"spending" json:"spending"`
	Display  []string `csv:"-" json:"-"`
}

func (r chartRecord) cells() []string { return r.Display }

// GenerateChart exports the budget-versus-spending series.
func (g *Generator) GenerateChart(points []models.ChartPoint, format string) ([]byte, error) {
	records := make([]chartRecord, 0, len(points))
	for _, p := range points {
		records = append(records, chartRecord{
			Category: p.CategoryName,
			Budget:   p.Budget.StringFixed(2),
			Spending: p.Spending.StringFixed(2),
			Display:  []string{p.CategoryName, g.money(p.Budget), g.money(p.Spending)},
		})
	}
	return generate(g, "Budget vs Spending", []string{"Category", "Budget", "Spending"}, records, format)
}

type investmentRecord struct {
	Name        string   `csv:"name" json:"name"`
	Type        string   `csv:"type" json:"type"`
	Value       string   `csv:"value" json:"value"`
	Performance string   `csv:"performance" json:"performance"`
	Display     []string `csv:"-" json:"-"`
}

func (r investmentRecord) cells() []string { return r.Display }

// GenerateInvestments lists the holdings.
func (g *Generator) GenerateInvestments(investments []models.Investment, format string) ([]byte, error) {
	return generate(g, "Investments", []string{"Name", "Type", "Value", "Performance"}, g.investmentRecords(investments), format)
}

func (g *Generator) investmentRecords(investments []models.Investment) []investmentRecord {
	records := make([]investmentRecord, 0, len(investments))
	for _, inv := range investments {
		records = append(records, investmentRecord{
			Name:        inv.Name,
			Type:        inv.Type,
			Value:       inv.Value.StringFixed(2),
			Performance: inv.Performance.StringFixed(1),
			Display:     []string{inv.Name, inv.Type, g.money(inv.Value), signedPercent(inv.Performance)},
		})
	}
	return records
}

type transactionRecord struct {
	ID          int      `csv:"id" json:"id"`
	Date        string   `csv:"date" json:"date"`
	Kind        string   `csv:"kind" json:"kind"`
	Amount      string   `csv:"amount" json:"amount"`
	Description string   `csv:"description" json:"description"`
	Category    string   `csv:"category" json:"category"`
	Display     []string `csv:"-" json:"-"`
}

func (r transactionRecord) cells() []string { return r.Display }

// GenerateTransactions lists transactions in the order given.
func (g *Generator) GenerateTransactions(txs []models.Transaction, format string) ([]byte, error) {
	return generate(g, "Transactions", []string{"Date", "Description", "Category", "Amount"}, g.transactionRecords(txs), format)
}

func (g *Generator) transactionRecords(txs []models.Transaction) []transactionRecord {
	records := make([]transactionRecord, 0, len(txs))
	for _, tx := range txs {
		date := dateutils.ToISODate(tx.Date)
		records = append(records, transactionRecord{
			ID:          tx.ID,
			Date:        date,
			Kind:        tx.Kind.String(),
			Amount:      tx.Amount.StringFixed(2),
			Description: tx.Description,
			Category:    tx.Category,
			Display:     []string{date, tx.Description, tx.Category, g.signed(tx)},
		})
	}
	return records
}

type monthRecord struct {
	Month    string   `csv:"month" json:"month"`
	Income   string   `csv:"income" json:"income"`
	Expenses string   `csv:"expenses" json:"expenses"`
	Net      string   `csv:"net" json:"net"`
	Display  []string `csv:"-" json:"-"`
}

func (r monthRecord) cells() []string { return r.Display }

// GenerateMonthly reports income, expenses and net per calendar month.
func (g *Generator) GenerateMonthly(months []models.MonthSummary, format string) ([]byte, error) {
	records := make([]monthRecord, 0, len(months))
	for _, m := range months {
		records = append(records, monthRecord{
			Month:    m.Month,
			Income:   m.Income.StringFixed(2),
			Expenses: m.Expenses.StringFixed(2),
			Net:      m.Net.StringFixed(2),
			Display:  []string{m.Month, g.money(m.Income), g.money(m.Expenses), g.money(m.Net)},
		})
	}
	return generate(g, "Monthly Report", []string{"Month", "Income", "Expenses", "Net"}, records, format)
}

func signedPercent(p decimal.Decimal) string {
	if p.IsPositive() {
		return "+" + currencyutils.FormatPercent(p)
	}
	return currencyutils.FormatPercent(p)
}
