// Package common contains shared functionality for command handlers
package common

import (
	"context"
	"fmt"
	"io"
	"os"

	"fjacquet/statement-ocr/internal/common"
	"fjacquet/statement-ocr/internal/logging"
	"fjacquet/statement-ocr/internal/models"
	"fjacquet/statement-ocr/internal/scanner"
)

// StdinPath selects standard input as the statement source.
const StdinPath = "-"

// Extractor produces an ExtractionResult from statement text.
type Extractor interface {
	Extract(ctx context.Context, text string) (*models.ExtractionResult, error)
}

// TextSource reads statement text from files or streams.
type TextSource interface {
	ScanFile(filePath string) (scanner.Document, error)
	ReadAll(r io.Reader) (string, error)
}

// ReadInput returns the decoded text of input, reading stdin when input is
// empty or "-".
func ReadInput(src TextSource, input string, stdin io.Reader) (string, error) {
	if input == "" || input == StdinPath {
		return src.ReadAll(stdin)
	}
	doc, err := src.ScanFile(input)
	if err != nil {
		return "", err
	}
	return doc.Content, nil
}

// WriteOutput calls write with a file created at output, or with stdout when
// output is empty or "-".
func WriteOutput(output string, stdout io.Writer, write func(io.Writer) error) error {
	if output == "" || output == StdinPath {
		return write(stdout)
	}

	file, err := os.OpenFile(output, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, models.PermissionReportFile) // #nosec G304 -- CLI tool requires user-provided output paths
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := write(file); err != nil {
		_ = file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close output file: %w", err)
	}
	return nil
}

// ProcessFile extracts one statement and writes the result in format.
func ProcessFile(ctx context.Context, ex Extractor, src TextSource, input, output, format string,
	delimiter rune, stdin io.Reader, stdout io.Writer, log logging.Logger) (*models.ExtractionResult, error) {
	format, err := common.ParseFormat(format)
	if err != nil {
		return nil, err
	}

	text, err := ReadInput(src, input, stdin)
	if err != nil {
		return nil, fmt.Errorf("error reading statement: %w", err)
	}

	result, err := ex.Extract(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("error extracting transactions: %w", err)
	}

	if err := WriteOutput(output, stdout, func(w io.Writer) error {
		return common.WriteResult(w, result, format, delimiter)
	}); err != nil {
		return nil, err
	}

	log.WithFields(
		logging.Field{Key: logging.FieldInputFile, Value: input},
		logging.Field{Key: logging.FieldOutputFile, Value: output},
		logging.Field{Key: logging.FieldCount, Value: len(result.Transactions)},
		logging.Field{Key: logging.FieldScore, Value: result.Quality.Score},
	).Debug("Statement processed")
	return result, nil
}
