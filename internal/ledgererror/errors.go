// Package ledgererror defines the error types returned by the ledger engine
// and the infrastructure that feeds it.
package ledgererror

import (
	"errors"
	"fmt"
)

// Sentinel causes wrapped by ValidationError. Callers match them with errors.Is.
var (
	ErrInvalidAmount    = errors.New("amount must be a positive number")
	ErrEmptyDescription = errors.New("description is required")
	ErrEmptyCategory    = errors.New("category is required")
	ErrUnknownCategory  = errors.New("category does not exist for this kind")
	ErrInvalidKind      = errors.New("kind must be income or expense")
	ErrInvalidDate      = errors.New("date is required")
	ErrEmptyName        = errors.New("name is required")
	ErrEmptyType        = errors.New("type is required")
	ErrDuplicateID      = errors.New("id is already used")
	ErrDuplicateName    = errors.New("name is already used for this kind")
)

// ValidationError reports a rejected submission. The ledger is left untouched
// whenever one is returned.
type ValidationError struct {
	Field  string
	Value  string
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	reason := e.Reason
	if reason == "" && e.Err != nil {
		reason = e.Err.Error()
	}
	if e.Value == "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, reason)
	}
	return fmt.Sprintf("invalid %s '%s': %s", e.Field, e.Value, reason)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError builds a ValidationError whose reason is the sentinel's text.
func NewValidationError(field, value string, cause error) *ValidationError {
	return &ValidationError{Field: field, Value: value, Err: cause}
}

// SeedError represents a seed file that exists but cannot be used.
type SeedError struct {
	FilePath string
	Section  string
	Index    int
	Err      error
}

func (e *SeedError) Error() string {
	if e.Section == "" {
		return fmt.Sprintf("invalid seed file '%s': %v", e.FilePath, e.Err)
	}
	return fmt.Sprintf("invalid seed file '%s': %s[%d]: %v", e.FilePath, e.Section, e.Index, e.Err)
}

func (e *SeedError) Unwrap() error {
	return e.Err
}

// ImportError points at the CSV row that stopped a transaction import.
// Row is 1-based and excludes the header line.
type ImportError struct {
	FilePath string
	Row      int
	Err      error
}

func (e *ImportError) Error() string {
	if e.Row == 0 {
		return fmt.Sprintf("import of '%s' failed: %v", e.FilePath, e.Err)
	}
	return fmt.Sprintf("import of '%s' failed at row %d: %v", e.FilePath, e.Row, e.Err)
}

func (e *ImportError) Unwrap() error {
	return e.Err
}
