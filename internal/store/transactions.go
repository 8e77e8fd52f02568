package store

import (
	"fmt"
	"io"
	"strings"

	"fjacquet/finance-manager/internal/common"
	"fjacquet/finance-manager/internal/dateutils"
	"fjacquet/finance-manager/internal/fileutils"
	"fjacquet/finance-manager/internal/ledgererror"
	"fjacquet/finance-manager/internal/logging"
	"fjacquet/finance-manager/internal/models"
)

// TransactionRow is one line of a transaction CSV file. Blank lines are
// ignored by the CSV reader; every other line must describe a transaction.
type TransactionRow struct {
	Date        string `csv:"date"`
	Kind        string `csv:"kind"`
	Amount      string `csv:"amount"`
	Description string `csv:"description"`
	Category    string `csv:"category"`
}

// exportRow adds the ledger ID. Importers ignore the extra column.
type exportRow struct {
	ID          int    `csv:"id"`
	Date        string `csv:"date"`
	Kind        string `csv:"kind"`
	Amount      string `csv:"amount"`
	Description string `csv:"description"`
	Category    string `csv:"category"`
}

// ParseTransactionsCSV decodes r into submissions for the ledger. Dates and
// kinds are checked here; amounts, descriptions and categories are left to
// the ledger so that every rejection carries the same validation error.
// source names the input in errors.
func ParseTransactionsCSV(r io.Reader, source string, delim rune) ([]models.TransactionInput, error) {
	rows, err := common.ReadCSV[TransactionRow](r, delim)
	if err != nil {
		return nil, &ledgererror.ImportError{FilePath: source, Err: err}
	}

	inputs := make([]models.TransactionInput, 0, len(rows))
	for i, row := range rows {
		in, err := row.toInput()
		if err != nil {
			return nil, &ledgererror.ImportError{FilePath: source, Row: i + 1, Err: err}
		}
		inputs = append(inputs, in)
	}
	return inputs, nil
}

func (r TransactionRow) toInput() (models.TransactionInput, error) {
	kind, ok := models.ParseKind(r.Kind)
	if !ok {
		return models.TransactionInput{}, ledgererror.NewValidationError("kind", r.Kind, ledgererror.ErrInvalidKind)
	}
	date, err := dateutils.ParseDate(r.Date)
	if err != nil {
		return models.TransactionInput{}, &ledgererror.ValidationError{
			Field:  "date",
			Value:  strings.TrimSpace(r.Date),
			Reason: err.Error(),
			Err:    ledgererror.ErrInvalidDate,
		}
	}
	return models.TransactionInput{
		Kind:        kind,
		Amount:      strings.TrimSpace(r.Amount),
		Description: r.Description,
		Category:    r.Category,
		Date:        date,
	}, nil
}

// ReadTransactionsCSV reads a transaction CSV file.
func ReadTransactionsCSV(path string, delim rune, logger logging.Logger) ([]models.TransactionInput, error) {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}

	file, err := fileutils.OpenFile(path)
	if err != nil {
		return nil, &ledgererror.ImportError{FilePath: path, Err: fmt.Errorf("error opening CSV file: %w", err)}
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.WithError(err).Warn("Failed to close file")
		}
	}()

	inputs, err := ParseTransactionsCSV(file, path, delim)
	if err != nil {
		return nil, err
	}

	logger.Debug("Read transactions CSV",
		logging.Field{Key: logging.FieldFile, Value: path},
		logging.Field{Key: logging.FieldCount, Value: len(inputs)})
	return inputs, nil
}

// transactionsToRows converts ledger transactions to their CSV form.
func transactionsToRows(txs []models.Transaction) []exportRow {
	rows := make([]exportRow, 0, len(txs))
	for _, tx := range txs {
		rows = append(rows, exportRow{
			ID:          tx.ID,
			Date:        dateutils.ToISODate(tx.Date),
			Kind:        tx.Kind.String(),
			Amount:      tx.Amount.StringFixed(2),
			Description: tx.Description,
			Category:    tx.Category,
		})
	}
	return rows
}

// WriteTransactionsCSV writes txs to w in a layout ReadTransactionsCSV accepts.
func WriteTransactionsCSV(w io.Writer, txs []models.Transaction, delim rune) error {
	return common.WriteCSV(w, transactionsToRows(txs), delim)
}

// ExportTransactionsCSV writes txs to the file at path.
func ExportTransactionsCSV(path string, txs []models.Transaction, delim rune, logger logging.Logger) error {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return common.WriteCSVFile(path, transactionsToRows(txs), delim, logger)
}
