// Package shell contains the interactive session command
package shell

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"fjacquet/finance-manager/cmd/common"
	"fjacquet/finance-manager/cmd/root"
	"fjacquet/finance-manager/internal/container"
	"fjacquet/finance-manager/internal/currencyutils"
	"fjacquet/finance-manager/internal/dateutils"
	"fjacquet/finance-manager/internal/ledger"
	"fjacquet/finance-manager/internal/ledgererror"
	"fjacquet/finance-manager/internal/logging"
	"fjacquet/finance-manager/internal/models"
	"fjacquet/finance-manager/internal/report"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

const prompt = "finance> "

// Plain disables terminal styling of tables
var Plain bool

// Cmd represents the shell command
var Cmd = &cobra.Command{
	Use:   "shell",
	Short: "Start an interactive ledger session",
	Long: `Start an interactive ledger session reading one command per line from
standard input. Transactions, investments and goal changes live until the
session ends. Type help for the list of commands.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		session := NewSession(root.App, root.Ledger, cmd.OutOrStdout())
		clock, err := root.Clock(root.Flags.Now)
		if err != nil {
			return err
		}
		if clock != nil {
			session.Now = clock
		}
		session.Plain = Plain
		return session.Run(cmd.InOrStdin())
	},
}

func init() {
	Cmd.Flags().BoolVar(&Plain, "plain", false, "Print raw Markdown tables without terminal styling")
}

const usage = `Commands:
  add <income|expense> <amount> <category> <description> [date]
  invest <name> <value> <type>
  categories [income|expense]
  goal             raise the savings goal by the configured increment
  summary          totals and savings goal progress
  budgets          budget progress per expense category
  recent           most recent transactions
  dashboard        full overview
  notifications    all notifications
  clear            clear notifications
  help             this list
  quit             end the session
Quote arguments that contain spaces: add expense 49.90 Entertainment "Cinema night"
`

// Session is one interactive run against an engine.
type Session struct {
	Now   func() time.Time
	Plain bool

	app    *container.Container
	engine *ledger.Engine
	out    io.Writer
	logger logging.Logger
	shown  int
}

// NewSession creates a session writing to out.
func NewSession(app *container.Container, engine *ledger.Engine, out io.Writer) *Session {
	return &Session{
		Now:    time.Now,
		app:    app,
		engine: engine,
		out:    out,
		logger: app.GetLogger(),
	}
}

// Run reads commands from in until quit or end of input. Command errors are
// printed and the session continues.
func (s *Session) Run(in io.Reader) error {
	s.flushNotifications()
	s.printf("%s", prompt)

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		quit, err := s.Exec(scanner.Text())
		if err != nil {
			s.printf("error: %v\n", err)
		}
		if quit {
			return nil
		}
		s.printf("%s", prompt)
	}
	s.printf("\n")
	return scanner.Err()
}

// Exec runs a single command line. quit is true when the session should end.
func (s *Session) Exec(line string) (quit bool, err error) {
	args, err := Tokenize(line)
	if err != nil {
		return false, err
	}
	if len(args) == 0 {
		return false, nil
	}

	name, args := strings.ToLower(args[0]), args[1:]
	switch name {
	case "add":
		err = s.add(args)
	case "invest":
		err = s.invest(args)
	case "categories":
		err = s.categories(args)
	case "goal":
		goal := s.engine.IncreaseSavingsGoal()
		s.printf("Savings goal raised to %s\n", s.money(goal))
	case "summary":
		s.summary()
	case "budgets":
		err = s.emit(s.app.GetReportGenerator().GenerateBudgets(s.engine.BudgetRows(), report.FormatMarkdown))
	case "recent":
		recent := s.engine.RecentTransactions(s.app.GetConfig().Ledger.RecentCount)
		err = s.emit(s.app.GetReportGenerator().GenerateTransactions(recent, report.FormatMarkdown))
	case "dashboard":
		err = s.emit(s.app.GetReportGenerator().GenerateDashboard(s.engine.Dashboard(), report.FormatMarkdown))
	case "notifications":
		s.listNotifications()
	case "clear":
		s.engine.ClearNotifications()
		s.shown = 0
		s.printf("Notifications cleared.\n")
	case "help", "?":
		s.printf("%s", usage)
	case "quit", "exit":
		return true, nil
	default:
		return false, fmt.Errorf("unknown command %q, type help for the list of commands", name)
	}

	s.flushNotifications()
	return false, err
}

// Tokenize splits a command line on spaces. Double quotes group words.
func Tokenize(line string) ([]string, error) {
	r := csv.NewReader(strings.NewReader(line))
	r.Comma = ' '

	fields, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot parse %q: %w", line, err)
	}

	args := fields[:0]
	for _, f := range fields {
		if f != "" {
			args = append(args, f)
		}
	}
	return args, nil
}

func (s *Session) add(args []string) error {
	if len(args) < 4 || len(args) > 5 {
		return fmt.Errorf("usage: add <income|expense> <amount> <category> <description> [date]")
	}

	kind, ok := models.ParseKind(args[0])
	if !ok {
		kind = models.Kind(args[0])
	}
	date := dateutils.Today(s.Now())
	if len(args) == 5 {
		parsed, err := dateutils.ParseDate(args[4])
		if err != nil {
			return err
		}
		date = parsed
	}

	tx, err := s.engine.AddTransaction(models.TransactionInput{
		Kind:        kind,
		Amount:      args[1],
		Category:    args[2],
		Description: args[3],
		Date:        date,
	})
	if errors.Is(err, ledgererror.ErrUnknownCategory) && ok {
		return fmt.Errorf("transaction rejected: %w (valid %s categories: %s)",
			err, kind, strings.Join(s.categoryNames(kind), ", "))
	}
	if err != nil {
		return fmt.Errorf("transaction rejected: %w", err)
	}

	s.printf("Added %s #%d: %s %s (%s) on %s\n",
		tx.Kind, tx.ID, tx.Description, s.money(tx.Amount), tx.Category, dateutils.ToISODate(tx.Date))
	return nil
}

func (s *Session) invest(args []string) error {
	if len(args) != 3 {
		return fmt.Errorf("usage: invest <name> <value> <type>")
	}

	inv, err := s.engine.AddInvestment(args[0], args[1], args[2])
	if err != nil {
		return fmt.Errorf("investment rejected: %w", err)
	}

	s.printf("Added investment #%d: %s %s (%s)\n", inv.ID, inv.Name, s.money(inv.Value), inv.Type)
	return nil
}

func (s *Session) categories(args []string) error {
	kinds := []models.Kind{models.KindIncome, models.KindExpense}
	switch len(args) {
	case 0:
	case 1:
		kind, ok := models.ParseKind(args[0])
		if !ok {
			return fmt.Errorf("usage: categories [income|expense]")
		}
		kinds = []models.Kind{kind}
	default:
		return fmt.Errorf("usage: categories [income|expense]")
	}

	for _, kind := range kinds {
		s.printf("%s: %s\n", kind, strings.Join(s.categoryNames(kind), ", "))
	}
	return nil
}

func (s *Session) categoryNames(kind models.Kind) []string {
	names := []string{}
	for _, c := range s.engine.CategoriesFor(kind) {
		names = append(names, c.Name)
	}
	if len(names) == 0 {
		names = append(names, "none")
	}
	return names
}

func (s *Session) summary() {
	totals := s.engine.Totals()
	s.printf("Total income:    %s\n", s.money(totals.TotalIncome))
	s.printf("Total expenses:  %s\n", s.money(totals.TotalExpenses))
	s.printf("Current savings: %s\n", s.money(totals.CurrentSavings))
	s.printf("Savings goal:    %s (%s)\n",
		s.money(s.engine.SavingsGoal()), currencyutils.FormatPercent(s.engine.SavingsProgress()))
}

func (s *Session) listNotifications() {
	notifications := s.engine.Notifications()
	if len(notifications) == 0 {
		s.printf("No notifications.\n")
	}
	for _, n := range notifications {
		s.printf("- %s  %s\n", dateutils.ToISODate(n.CreatedAt), n.Message)
	}
	s.shown = len(notifications)
}

// flushNotifications prints the notifications raised since the last call.
func (s *Session) flushNotifications() {
	notifications := s.engine.Notifications()
	if s.shown > len(notifications) {
		s.shown = 0
	}
	for _, n := range notifications[s.shown:] {
		s.printf("! %s\n", n.Message)
	}
	s.shown = len(notifications)
}

func (s *Session) emit(doc []byte, err error) error {
	if err != nil {
		return err
	}
	return common.Emit(s.out, doc, report.FormatMarkdown, s.app.GetRenderer(), s.Plain)
}

func (s *Session) money(d decimal.Decimal) string {
	return currencyutils.FormatAmount(d, s.engine.Currency())
}

func (s *Session) printf(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(s.out, format, args...); err != nil {
		s.logger.WithError(err).Debug("Failed to write to session output")
	}
}
