// Package converter provides functionality to convert OCR'd statement text to
// transactions and CSV. Extract and ExtractFile use the built-in configuration;
// the CSV conversions load config.yaml and STMT_ settings like the CLI does.
package converter

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fjacquet/statement-ocr/internal/common"
	"fjacquet/statement-ocr/internal/config"
	"fjacquet/statement-ocr/internal/container"
	"fjacquet/statement-ocr/internal/extraction"
	"fjacquet/statement-ocr/internal/logging"
	"fjacquet/statement-ocr/internal/models"
	"fjacquet/statement-ocr/internal/scanner"
)

// Re-exported result types.
type (
	Transaction      = models.Transaction
	TransactionType  = models.TransactionType
	QualityReport    = models.QualityReport
	ExtractionResult = models.ExtractionResult
)

// Transaction types.
const (
	TransactionTypeIncome  = models.TransactionTypeIncome
	TransactionTypeExpense = models.TransactionTypeExpense
)

// Extract returns the transactions found in text together with a quality
// report. The result always holds at least one transaction; a text with no
// recognizable rows yields a single placeholder entry.
func Extract(text string) (*ExtractionResult, error) {
	return extraction.Extract(text)
}

// ExtractFile reads and decodes textFile, then extracts it.
func ExtractFile(textFile string) (*ExtractionResult, error) {
	doc, err := scanner.NewStatementScanner("", logging.GetLogger()).ScanFile(textFile)
	if err != nil {
		return nil, err
	}
	return Extract(doc.Content)
}

func loadContainer() (*container.Container, error) {
	cfg, err := config.Load("")
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return container.NewContainer(cfg)
}

// ConvertTextToCSV extracts textFile and writes the transactions to csvFile
// using the configured delimiter.
func ConvertTextToCSV(textFile string, csvFile string) error {
	c, err := loadContainer()
	if err != nil {
		return err
	}
	defer func() { _ = c.Close() }()

	doc, err := c.NewScanner("").ScanFile(textFile)
	if err != nil {
		return err
	}
	result, err := c.Extract(context.Background(), doc.Content)
	if err != nil {
		return err
	}
	return common.WriteTransactionsToCSV(result.Transactions, csvFile, c.Delimiter(), c.GetLogger())
}

// BatchConvert converts every statement text under inputDir to a CSV file of
// the same base name in outputDir and returns the number of files written.
func BatchConvert(inputDir, outputDir string) (int, error) {
	c, err := loadContainer()
	if err != nil {
		return 0, err
	}
	defer func() { _ = c.Close() }()

	if err := os.MkdirAll(outputDir, models.PermissionDirectory); err != nil {
		return 0, fmt.Errorf("failed to create output directory: %w", err)
	}

	docs, err := c.NewScanner("").ScanPaths([]string{inputDir})
	if err != nil {
		return 0, err
	}

	count := 0
	for _, doc := range docs {
		result, err := c.Extract(context.Background(), doc.Content)
		if err != nil {
			return count, fmt.Errorf("failed to extract %s: %w", doc.Path, err)
		}
		base := strings.TrimSuffix(filepath.Base(doc.Path), filepath.Ext(doc.Path))
		out := filepath.Join(outputDir, base+".csv")
		if err := common.WriteTransactionsToCSV(result.Transactions, out, c.Delimiter(), c.GetLogger()); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}
