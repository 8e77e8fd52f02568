package logging

// Standardized field names for structured logging.
const (
	FieldFile          = "file_path"
	FieldTransactionID = "transaction_id"
	FieldInvestmentID  = "investment_id"
	FieldCategory      = "category"
	FieldKind          = "kind"
	FieldAmount        = "amount"
	FieldBalance       = "balance"
	FieldGoal          = "savings_goal"
	FieldNotification  = "notification"
	FieldPolicy        = "policy"
	FieldReason        = "reason"
	FieldOperation     = "operation"
	FieldError         = "error"
	FieldCount         = "count"
	FieldDelimiter     = "delimiter"
	FieldFormat        = "format"
	FieldComponent     = "component"
)
