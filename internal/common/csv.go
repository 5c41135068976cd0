// Package common provides the output writers shared by the commands.
package common

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"fjacquet/statement-ocr/internal/logging"
	"fjacquet/statement-ocr/internal/models"
)

// DefaultDelimiter separates CSV fields unless configured otherwise.
const DefaultDelimiter = ','

// WriteTransactionsCSV writes transactions with a header row.
func WriteTransactionsCSV(w io.Writer, transactions []models.Transaction, delimiter rune) error {
	if transactions == nil {
		return fmt.Errorf("cannot write nil transactions to CSV")
	}
	if delimiter == 0 {
		delimiter = DefaultDelimiter
	}

	csvWriter := csv.NewWriter(w)
	csvWriter.Comma = delimiter
	if err := gocsv.MarshalCSV(transactions, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		return fmt.Errorf("error marshaling transactions to CSV: %w", err)
	}
	csvWriter.Flush()
	if err := csvWriter.Error(); err != nil {
		return fmt.Errorf("error flushing CSV writer: %w", err)
	}
	return nil
}

// WriteTransactionsToCSV writes transactions to a CSV file, creating parent
// directories as needed.
func WriteTransactionsToCSV(transactions []models.Transaction, csvFile string, delimiter rune, logger logging.Logger) error {
	if logger == nil {
		logger = logging.GetLogger()
	}
	logger.WithFields(
		logging.Field{Key: logging.FieldOutputFile, Value: csvFile},
		logging.Field{Key: logging.FieldCount, Value: len(transactions)},
		logging.Field{Key: logging.FieldDelimiter, Value: string(delimiter)},
	).Info("Writing transactions to CSV file")

	if err := os.MkdirAll(filepath.Dir(csvFile), models.PermissionDirectory); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}

	file, err := os.Create(csvFile) // #nosec G304 -- output path chosen by the user
	if err != nil {
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.WithError(err).Warn("Failed to close file")
		}
	}()

	return WriteTransactionsCSV(file, transactions, delimiter)
}
