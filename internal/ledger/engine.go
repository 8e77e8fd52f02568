// Package ledger holds the in-memory state of one finance session and the
// rules that derive totals, budgets, savings progress, chart data and
// notifications from it.
package ledger

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"fjacquet/finance-manager/internal/currencyutils"
	"fjacquet/finance-manager/internal/ledgererror"
	"fjacquet/finance-manager/internal/logging"
	"fjacquet/finance-manager/internal/models"

	"github.com/shopspring/decimal"
)

// Settings tunes an Engine. Start from DefaultSettings: zero fields are
// filled in from it, except LowBalanceThreshold where zero is meaningful.
type Settings struct {
	Currency            string
	GoalIncrement       decimal.Decimal
	LowBalanceThreshold decimal.Decimal
	BillCategory        string
	RecentCount         int
	Policy              Policy
	Now                 func() time.Time
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	rules := DefaultNotificationRules()
	return Settings{
		Currency:            rules.Currency,
		GoalIncrement:       decimal.NewFromInt(500),
		LowBalanceThreshold: rules.LowBalanceThreshold,
		BillCategory:        rules.BillCategory,
		RecentCount:         5,
		Policy:              appendPolicy{},
		Now:                 time.Now,
	}
}

func (s Settings) withDefaults() Settings {
	d := DefaultSettings()
	if s.Currency == "" {
		s.Currency = d.Currency
	}
	if !s.GoalIncrement.IsPositive() {
		s.GoalIncrement = d.GoalIncrement
	}
	if s.BillCategory == "" {
		s.BillCategory = d.BillCategory
	}
	if s.RecentCount <= 0 {
		s.RecentCount = d.RecentCount
	}
	if s.Policy == nil {
		s.Policy = d.Policy
	}
	if s.Now == nil {
		s.Now = d.Now
	}
	return s
}

// Engine owns the transactions, categories, investments, savings goal and
// notification log of a session. Every mutation is all-or-nothing and is
// followed by a notification evaluation over the updated state.
//
// An Engine is not safe for concurrent use.
type Engine struct {
	settings Settings
	logger   logging.Logger

	transactions  []models.Transaction
	categories    []models.Category
	investments   []models.Investment
	savingsGoal   decimal.Decimal
	notifications []models.Notification

	nextTransactionID int
	nextInvestmentID  int
	started           bool
}

// NewEngine creates an Engine holding seed. The seed is checked for the
// same invariants the engine maintains afterwards.
func NewEngine(seed models.Seed, settings Settings, logger logging.Logger) (*Engine, error) {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	if err := validateSeed(seed); err != nil {
		return nil, err
	}

	goal := seed.SavingsGoal
	if !goal.IsPositive() {
		goal = models.DefaultSeed().SavingsGoal
	}

	e := &Engine{
		settings:          settings.withDefaults(),
		logger:            logger.WithField(logging.FieldComponent, "ledger"),
		categories:        append([]models.Category(nil), seed.Categories...),
		investments:       append([]models.Investment(nil), seed.Investments...),
		savingsGoal:       goal,
		nextTransactionID: 1,
		nextInvestmentID:  1,
	}
	for _, inv := range e.investments {
		if inv.ID >= e.nextInvestmentID {
			e.nextInvestmentID = inv.ID + 1
		}
	}

	e.logger.Debug("Ledger created",
		logging.Field{Key: "categories", Value: len(e.categories)},
		logging.Field{Key: "investments", Value: len(e.investments)},
		logging.Field{Key: logging.FieldGoal, Value: goal.String()},
		logging.Field{Key: logging.FieldPolicy, Value: e.settings.Policy.Name()})
	return e, nil
}

func validateSeed(seed models.Seed) error {
	ids := make(map[int]bool, len(seed.Categories))
	names := make(map[string]bool, len(seed.Categories))
	for _, cat := range seed.Categories {
		if !cat.Kind.Valid() {
			return ledgererror.NewValidationError("category kind", string(cat.Kind), ledgererror.ErrInvalidKind)
		}
		if strings.TrimSpace(cat.Name) == "" {
			return ledgererror.NewValidationError("category name", "", ledgererror.ErrEmptyName)
		}
		if cat.ID <= 0 || ids[cat.ID] {
			return badID("category id", cat.ID)
		}
		key := string(cat.Kind) + "/" + cat.Name
		if names[key] {
			return ledgererror.NewValidationError("category name", cat.Name, ledgererror.ErrDuplicateName)
		}
		if cat.Budget.IsNegative() {
			return ledgererror.NewValidationError("category budget", cat.Budget.String(), ledgererror.ErrInvalidAmount)
		}
		ids[cat.ID] = true
		names[key] = true
	}

	invIDs := make(map[int]bool, len(seed.Investments))
	for _, inv := range seed.Investments {
		if strings.TrimSpace(inv.Name) == "" {
			return ledgererror.NewValidationError("investment name", "", ledgererror.ErrEmptyName)
		}
		if strings.TrimSpace(inv.Type) == "" {
			return ledgererror.NewValidationError("investment type", "", ledgererror.ErrEmptyType)
		}
		if !inv.Value.IsPositive() {
			return ledgererror.NewValidationError("investment value", inv.Value.String(), ledgererror.ErrInvalidAmount)
		}
		if inv.ID <= 0 || invIDs[inv.ID] {
			return badID("investment id", inv.ID)
		}
		invIDs[inv.ID] = true
	}
	return nil
}

func badID(field string, id int) error {
	return &ledgererror.ValidationError{
		Field:  field,
		Value:  strconv.Itoa(id),
		Reason: "ids must be positive and unique",
		Err:    ledgererror.ErrDuplicateID,
	}
}

// Start runs the first notification evaluation of the session. Later calls
// do nothing.
func (e *Engine) Start() {
	if e.started {
		return
	}
	e.started = true
	e.evaluate("start")
}

// AddTransaction validates in and appends it with a fresh ID.
func (e *Engine) AddTransaction(in models.TransactionInput) (models.Transaction, error) {
	tx, err := e.buildTransaction(in, e.nextTransactionID)
	if err != nil {
		e.logger.Warn("Transaction rejected",
			logging.Field{Key: logging.FieldOperation, Value: "add_transaction"},
			logging.Field{Key: logging.FieldReason, Value: err.Error()})
		return models.Transaction{}, err
	}

	e.transactions = append(e.transactions, tx)
	e.nextTransactionID++

	e.logger.Debug("Transaction added",
		logging.Field{Key: logging.FieldTransactionID, Value: tx.ID},
		logging.Field{Key: logging.FieldKind, Value: tx.Kind.String()},
		logging.Field{Key: logging.FieldAmount, Value: tx.Amount.String()},
		logging.Field{Key: logging.FieldCategory, Value: tx.Category})

	e.evaluate("add_transaction")
	return tx, nil
}

// ImportTransactions adds a batch of submissions. Either every input is
// accepted or none is; the returned error is an *ledgererror.ImportError
// naming the 1-based position of the first rejected input. Notifications
// are evaluated once for the whole batch.
func (e *Engine) ImportTransactions(source string, inputs []models.TransactionInput) ([]models.Transaction, error) {
	built := make([]models.Transaction, 0, len(inputs))
	for i, in := range inputs {
		tx, err := e.buildTransaction(in, e.nextTransactionID+i)
		if err != nil {
			e.logger.Warn("Import rejected",
				logging.Field{Key: logging.FieldFile, Value: source},
				logging.Field{Key: "row", Value: i + 1},
				logging.Field{Key: logging.FieldReason, Value: err.Error()})
			return nil, &ledgererror.ImportError{FilePath: source, Row: i + 1, Err: err}
		}
		built = append(built, tx)
	}
	if len(built) == 0 {
		return built, nil
	}

	e.transactions = append(e.transactions, built...)
	e.nextTransactionID += len(built)

	e.logger.Info("Transactions imported",
		logging.Field{Key: logging.FieldFile, Value: source},
		logging.Field{Key: logging.FieldCount, Value: len(built)})

	e.evaluate("import")
	return built, nil
}

func (e *Engine) buildTransaction(in models.TransactionInput, id int) (models.Transaction, error) {
	if !in.Kind.Valid() {
		return models.Transaction{}, ledgererror.NewValidationError("kind", string(in.Kind), ledgererror.ErrInvalidKind)
	}
	amount, err := currencyutils.ParsePositiveAmount(in.Amount)
	if err != nil {
		return models.Transaction{}, ledgererror.NewValidationError("amount", in.Amount, ledgererror.ErrInvalidAmount)
	}
	description := strings.TrimSpace(in.Description)
	if description == "" {
		return models.Transaction{}, ledgererror.NewValidationError("description", "", ledgererror.ErrEmptyDescription)
	}
	name := strings.TrimSpace(in.Category)
	if name == "" {
		return models.Transaction{}, ledgererror.NewValidationError("category", "", ledgererror.ErrEmptyCategory)
	}
	cat, ok := findCategory(e.categories, in.Kind, name)
	if !ok {
		return models.Transaction{}, &ledgererror.ValidationError{
			Field:  "category",
			Value:  name,
			Reason: fmt.Sprintf("no %s category with this name", in.Kind),
			Err:    ledgererror.ErrUnknownCategory,
		}
	}
	if in.Date.IsZero() {
		return models.Transaction{}, ledgererror.NewValidationError("date", "", ledgererror.ErrInvalidDate)
	}

	return models.Transaction{
		ID:          id,
		Kind:        in.Kind,
		Amount:      amount,
		Description: description,
		Category:    cat.Name,
		CategoryID:  cat.ID,
		Date:        in.Date,
	}, nil
}

// AddInvestment appends a holding. Performance is not collected on entry
// and starts at zero.
func (e *Engine) AddInvestment(name, value, investmentType string) (models.Investment, error) {
	name = strings.TrimSpace(name)
	investmentType = strings.TrimSpace(investmentType)

	var verr error
	amount, err := currencyutils.ParsePositiveAmount(value)
	switch {
	case name == "":
		verr = ledgererror.NewValidationError("name", "", ledgererror.ErrEmptyName)
	case err != nil:
		verr = ledgererror.NewValidationError("value", value, ledgererror.ErrInvalidAmount)
	case investmentType == "":
		verr = ledgererror.NewValidationError("type", "", ledgererror.ErrEmptyType)
	}
	if verr != nil {
		e.logger.Warn("Investment rejected",
			logging.Field{Key: logging.FieldOperation, Value: "add_investment"},
			logging.Field{Key: logging.FieldReason, Value: verr.Error()})
		return models.Investment{}, verr
	}

	inv := models.Investment{
		ID:          e.nextInvestmentID,
		Name:        name,
		Value:       amount,
		Type:        investmentType,
		Performance: decimal.Zero,
	}
	e.investments = append(e.investments, inv)
	e.nextInvestmentID++

	e.logger.Debug("Investment added",
		logging.Field{Key: logging.FieldInvestmentID, Value: inv.ID},
		logging.Field{Key: logging.FieldAmount, Value: inv.Value.String()})
	return inv, nil
}

// IncreaseSavingsGoal raises the goal by the configured increment and
// returns the new goal.
func (e *Engine) IncreaseSavingsGoal() decimal.Decimal {
	e.savingsGoal = e.savingsGoal.Add(e.settings.GoalIncrement)
	e.logger.Debug("Savings goal increased",
		logging.Field{Key: logging.FieldGoal, Value: e.savingsGoal.String()})
	e.evaluate("increase_goal")
	return e.savingsGoal
}

// ClearNotifications empties the notification log.
func (e *Engine) ClearNotifications() {
	count := len(e.notifications)
	e.notifications = nil
	e.settings.Policy.Acknowledge()
	e.logger.Debug("Notifications cleared", logging.Field{Key: logging.FieldCount, Value: count})
}

func (e *Engine) evaluate(trigger string) {
	totals := ComputeTotals(e.transactions)
	now := e.settings.Now()
	events := EvaluateNotifications(e.transactions, e.savingsGoal, totals.CurrentSavings, now, e.rules())
	admitted := e.settings.Policy.Admit(events)

	for _, ev := range admitted {
		e.notifications = append(e.notifications, models.Notification{
			Kind:      ev.Kind,
			Message:   ev.Message,
			CreatedAt: now,
		})
		e.logger.Info("Notification raised",
			logging.Field{Key: logging.FieldNotification, Value: string(ev.Kind)},
			logging.Field{Key: logging.FieldOperation, Value: trigger},
			logging.Field{Key: logging.FieldBalance, Value: totals.CurrentSavings.String()})
	}
}

func (e *Engine) rules() NotificationRules {
	return NotificationRules{
		LowBalanceThreshold: e.settings.LowBalanceThreshold,
		BillCategory:        e.settings.BillCategory,
		Currency:            e.settings.Currency,
	}
}

// Currency returns the display currency code.
func (e *Engine) Currency() string { return e.settings.Currency }

// Transactions returns a copy of the transactions in entry order.
func (e *Engine) Transactions() []models.Transaction {
	return append([]models.Transaction{}, e.transactions...)
}

// Categories returns a copy of the categories in declaration order.
func (e *Engine) Categories() []models.Category {
	return append([]models.Category{}, e.categories...)
}

// CategoriesFor lists the categories a transaction of the given kind may use.
func (e *Engine) CategoriesFor(kind models.Kind) []models.Category {
	out := []models.Category{}
	for _, cat := range e.categories {
		if cat.Kind == kind {
			out = append(out, cat)
		}
	}
	return out
}

// Investments returns a copy of the holdings.
func (e *Engine) Investments() []models.Investment {
	return append([]models.Investment{}, e.investments...)
}

// Notifications returns a copy of the notification log, oldest first.
func (e *Engine) Notifications() []models.Notification {
	return append([]models.Notification{}, e.notifications...)
}

// SavingsGoal returns the current goal.
func (e *Engine) SavingsGoal() decimal.Decimal { return e.savingsGoal }

// Totals summarizes the current transactions.
func (e *Engine) Totals() models.Totals { return ComputeTotals(e.transactions) }

// CategorySpending returns what was spent in the named expense category.
// Unknown names yield zero.
func (e *Engine) CategorySpending(name string) decimal.Decimal {
	cat, ok := findCategory(e.categories, models.KindExpense, name)
	if !ok {
		return decimal.Zero
	}
	return spendingFor(cat, e.transactions)
}

// CategoryBudget returns the budget of the named expense category, or zero.
func (e *Engine) CategoryBudget(name string) decimal.Decimal {
	return CategoryBudget(strings.TrimSpace(name), e.categories)
}

// BudgetProgress returns the percentage of the named budget already spent.
// Unknown or unbudgeted categories yield zero.
func (e *Engine) BudgetProgress(name string) decimal.Decimal {
	return BudgetProgress(e.CategorySpending(name), e.CategoryBudget(name))
}

// SavingsProgress returns current savings as a raw percentage of the goal.
func (e *Engine) SavingsProgress() decimal.Decimal {
	return SavingsProgress(e.Totals().CurrentSavings, e.savingsGoal)
}

// ChartData returns the budget-versus-spending projection.
func (e *Engine) ChartData() []models.ChartPoint {
	return ChartData(e.categories, e.transactions)
}

// BudgetRows returns budget usage per expense category.
func (e *Engine) BudgetRows() []models.BudgetRow {
	return BudgetRows(e.categories, e.transactions)
}

// RecentTransactions returns the last n transactions, newest first. A
// non-positive n uses the configured count.
func (e *Engine) RecentTransactions(n int) []models.Transaction {
	if n <= 0 {
		n = e.settings.RecentCount
	}
	return RecentTransactions(e.transactions, n)
}

// FilterTransactions returns the transactions matching filter.
func (e *Engine) FilterTransactions(filter models.TransactionFilter) []models.Transaction {
	return FilterTransactions(e.transactions, filter)
}

// TotalInvestmentValue sums the holdings.
func (e *Engine) TotalInvestmentValue() decimal.Decimal {
	return TotalInvestmentValue(e.investments)
}

// MonthlySummaries returns income and expenses per calendar month.
func (e *Engine) MonthlySummaries() []models.MonthSummary {
	return MonthlySummaries(e.transactions)
}

// Dashboard gathers everything the overview shows into one snapshot.
func (e *Engine) Dashboard() models.Dashboard {
	return models.Dashboard{
		Currency:         e.settings.Currency,
		Totals:           e.Totals(),
		SavingsGoal:      e.savingsGoal,
		SavingsProgress:  e.SavingsProgress(),
		Notifications:    e.Notifications(),
		Recent:           e.RecentTransactions(0),
		Budgets:          e.BudgetRows(),
		Investments:      e.Investments(),
		TotalInvestments: e.TotalInvestmentValue(),
	}
}
