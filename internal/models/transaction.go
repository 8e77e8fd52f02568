// Package models provides the data structures used throughout the application.
package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ParseKind normalizes user input into a Kind. The second value is false
// when the input names neither kind.
func ParseKind(s string) (Kind, bool) {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case KindIncome:
		return KindIncome, true
	case KindExpense:
		return KindExpense, true
	default:
		return "", false
	}
}

// Valid reports whether k is one of the two known kinds.
func (k Kind) Valid() bool {
	return k == KindIncome || k == KindExpense
}

func (k Kind) String() string {
	return string(k)
}

// Transaction is a single dated income or expense record. Amount is always
// positive; the direction is carried by Kind.
//
// Category keeps the display name the record was entered with, CategoryID is
// the stable key used to join against budgets.
type Transaction struct {
	ID          int             `json:"id" yaml:"id"`
	Kind        Kind            `json:"kind" yaml:"kind"`
	Amount      decimal.Decimal `json:"amount" yaml:"amount"`
	Description string          `json:"description" yaml:"description"`
	Category    string          `json:"category" yaml:"category"`
	CategoryID  int             `json:"category_id" yaml:"category_id"`
	Date        time.Time       `json:"date" yaml:"date"`
}

// IsIncome returns true if the transaction adds to the balance
func (t Transaction) IsIncome() bool {
	return t.Kind == KindIncome
}

// IsExpense returns true if the transaction subtracts from the balance
func (t Transaction) IsExpense() bool {
	return t.Kind == KindExpense
}

// TransactionInput is an unvalidated submission as it comes from a form,
// a shell line or a CSV row. Amount is kept as text so that parsing errors
// are reported by the ledger like any other validation failure.
type TransactionInput struct {
	Kind        Kind
	Amount      string
	Description string
	Category    string
	Date        time.Time
}

// TransactionFilter selects transactions by kind and/or category name.
// Zero values match everything.
type TransactionFilter struct {
	Kind     Kind
	Category string
}

// Match reports whether t passes the filter.
func (f TransactionFilter) Match(t Transaction) bool {
	if f.Kind != "" && t.Kind != f.Kind {
		return false
	}
	if f.Category != "" && !strings.EqualFold(t.Category, f.Category) {
		return false
	}
	return true
}
