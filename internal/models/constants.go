package models

// Kind tells whether a record adds to or subtracts from the balance.
type Kind string

const (
	KindIncome  Kind = "income"
	KindExpense Kind = "expense"
)

// Default category names seeded into every new ledger.
const (
	CategorySalary        = "Salary"
	CategoryGroceries     = "Groceries"
	CategoryRent          = "Rent"
	CategoryEntertainment = "Entertainment"
)

// Default currency code used for display.
const DefaultCurrency = "USD"

// File permissions
const (
	PermissionDirectory  = 0750
	PermissionReportFile = 0644
)
