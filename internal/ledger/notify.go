package ledger

import (
	"fmt"
	"strings"
	"time"

	"fjacquet/finance-manager/internal/currencyutils"
	"fjacquet/finance-manager/internal/dateutils"
	"fjacquet/finance-manager/internal/models"

	"github.com/shopspring/decimal"
)

// NotificationRules holds the thresholds used by EvaluateNotifications.
type NotificationRules struct {
	LowBalanceThreshold decimal.Decimal
	BillCategory        string
	Currency            string
}

// DefaultNotificationRules alerts below 500 and watches Rent payments.
func DefaultNotificationRules() NotificationRules {
	return NotificationRules{
		LowBalanceThreshold: decimal.NewFromInt(500),
		BillCategory:        models.CategoryRent,
		Currency:            models.DefaultCurrency,
	}
}

// EvaluateNotifications returns the conditions that hold right now, in a
// fixed order: low balance, upcoming bill, goal reached.
//
// The upcoming-bill check reports only the first expense, in entry order,
// filed under the bill category and dated on a later day than now.
func EvaluateNotifications(txs []models.Transaction, goal, currentSavings decimal.Decimal, now time.Time, rules NotificationRules) []models.NotificationEvent {
	var events []models.NotificationEvent

	if currentSavings.LessThan(rules.LowBalanceThreshold) {
		events = append(events, models.NotificationEvent{
			Kind: models.NotificationLowBalance,
			Key:  models.ConditionKey(models.NotificationLowBalance, 0),
			Message: fmt.Sprintf("Low balance alert: your current balance of %s is below %s",
				currencyutils.FormatAmount(currentSavings, rules.Currency),
				currencyutils.FormatAmount(rules.LowBalanceThreshold, rules.Currency)),
		})
	}

	if bill, ok := upcomingBill(txs, now, rules.BillCategory); ok {
		events = append(events, models.NotificationEvent{
			Kind:          models.NotificationUpcomingBill,
			Key:           models.ConditionKey(models.NotificationUpcomingBill, bill.ID),
			TransactionID: bill.ID,
			Message: fmt.Sprintf("Upcoming bill: %s payment of %s due on %s",
				bill.Category,
				currencyutils.FormatAmount(bill.Amount, rules.Currency),
				dateutils.ToISODate(bill.Date)),
		})
	}

	if currentSavings.GreaterThanOrEqual(goal) {
		events = append(events, models.NotificationEvent{
			Kind: models.NotificationGoalReached,
			Key:  models.ConditionKey(models.NotificationGoalReached, 0),
			Message: fmt.Sprintf("Congratulations! You've reached your savings goal of %s",
				currencyutils.FormatAmount(goal, rules.Currency)),
		})
	}

	return events
}

func upcomingBill(txs []models.Transaction, now time.Time, category string) (models.Transaction, bool) {
	if category == "" {
		return models.Transaction{}, false
	}
	for _, tx := range txs {
		if tx.Kind != models.KindExpense || !strings.EqualFold(tx.Category, category) {
			continue
		}
		if dateutils.IsAfterDay(tx.Date, now) {
			return tx, true
		}
	}
	return models.Transaction{}, false
}

// Policy names accepted by NewPolicy.
const (
	PolicyAppend = "append"
	PolicyDedupe = "dedupe"
)

// Policy decides which evaluated conditions reach the notification log.
type Policy interface {
	Name() string
	// Admit filters the events of one evaluation.
	Admit(events []models.NotificationEvent) []models.NotificationEvent
	// Acknowledge is called when the log is cleared.
	Acknowledge()
}

// NewPolicy returns the policy registered under name.
func NewPolicy(name string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", PolicyAppend:
		return appendPolicy{}, nil
	case PolicyDedupe:
		return NewDedupePolicy(), nil
	default:
		return nil, fmt.Errorf("unknown notification policy: %s (must be '%s' or '%s')", name, PolicyAppend, PolicyDedupe)
	}
}

// appendPolicy logs every qualifying condition on every evaluation, so a
// condition that stays true is reported again after each change.
type appendPolicy struct{}

func (appendPolicy) Name() string { return PolicyAppend }

func (appendPolicy) Admit(events []models.NotificationEvent) []models.NotificationEvent {
	return events
}

func (appendPolicy) Acknowledge() {}

// ConditionState is the lifecycle of one condition under the dedupe policy.
type ConditionState int

const (
	StateInactive ConditionState = iota
	StateActive
	StateAcknowledged
)

func (s ConditionState) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateAcknowledged:
		return "acknowledged"
	default:
		return "inactive"
	}
}

// DedupePolicy reports a condition once when it becomes true. Clearing the
// log acknowledges active conditions; a condition is reported again only
// after it has gone false and become true once more.
type DedupePolicy struct {
	states map[string]ConditionState
}

// NewDedupePolicy returns a DedupePolicy with every condition inactive.
func NewDedupePolicy() *DedupePolicy {
	return &DedupePolicy{states: make(map[string]ConditionState)}
}

func (p *DedupePolicy) Name() string { return PolicyDedupe }

func (p *DedupePolicy) Admit(events []models.NotificationEvent) []models.NotificationEvent {
	seen := make(map[string]bool, len(events))
	var admitted []models.NotificationEvent
	for _, ev := range events {
		seen[ev.Key] = true
		if p.states[ev.Key] == StateInactive {
			p.states[ev.Key] = StateActive
			admitted = append(admitted, ev)
		}
	}
	for key := range p.states {
		if !seen[key] {
			delete(p.states, key)
		}
	}
	return admitted
}

func (p *DedupePolicy) Acknowledge() {
	for key, state := range p.states {
		if state == StateActive {
			p.states[key] = StateAcknowledged
		}
	}
}

// state returns the current state of the condition identified by key.
func (p *DedupePolicy) state(key string) ConditionState {
	return p.states[key]
}
