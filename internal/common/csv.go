// Package common provides the CSV plumbing shared by the store and report packages.
package common

import (
	"encoding/csv"
	"fmt"
	"io"

	"fjacquet/finance-manager/internal/fileutils"
	"fjacquet/finance-manager/internal/logging"

	"github.com/gocarina/gocsv"
)

// DefaultDelimiter is used when callers pass a zero rune.
const DefaultDelimiter = ','

func delimiterOrDefault(delim rune) rune {
	if delim == 0 {
		return DefaultDelimiter
	}
	return delim
}

// ReadCSV decodes rows from r into TCSVRow structs using their csv tags.
func ReadCSV[TCSVRow any](r io.Reader, delim rune) ([]TCSVRow, error) {
	reader := csv.NewReader(r)
	reader.Comma = delimiterOrDefault(delim)
	reader.TrimLeadingSpace = true

	var rows []TCSVRow
	if err := gocsv.UnmarshalCSV(reader, &rows); err != nil {
		return nil, fmt.Errorf("error parsing CSV data: %w", err)
	}
	return rows, nil
}

// WriteCSV encodes rows to w with a header line taken from the csv tags.
func WriteCSV[TCSVRow any](w io.Writer, rows []TCSVRow, delim rune) error {
	if rows == nil {
		rows = []TCSVRow{}
	}

	csvWriter := csv.NewWriter(w)
	csvWriter.Comma = delimiterOrDefault(delim)

	if err := gocsv.MarshalCSV(rows, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		return fmt.Errorf("error writing CSV data: %w", err)
	}
	csvWriter.Flush()
	return csvWriter.Error()
}

// WriteCSVFile writes rows to filePath, creating parent directories as needed.
func WriteCSVFile[TCSVRow any](filePath string, rows []TCSVRow, delim rune, logger logging.Logger) error {
	file, err := fileutils.CreateFile(filePath)
	if err != nil {
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.WithError(err).Warn("Failed to close file")
		}
	}()

	if err := WriteCSV(file, rows, delim); err != nil {
		return err
	}

	logger.Info("Wrote CSV file",
		logging.Field{Key: logging.FieldFile, Value: filePath},
		logging.Field{Key: logging.FieldCount, Value: len(rows)},
		logging.Field{Key: logging.FieldDelimiter, Value: string(delimiterOrDefault(delim))})
	return nil
}
