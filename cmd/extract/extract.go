// Package extract handles the single-statement extraction command
package extract

import (
	"os"

	"github.com/spf13/cobra"

	"fjacquet/statement-ocr/cmd/common"
	"fjacquet/statement-ocr/cmd/root"
	"fjacquet/statement-ocr/internal/logging"
)

// Cmd represents the extract command
var Cmd = &cobra.Command{
	Use:   "extract [file]",
	Short: "Extract transactions from one statement text",
	Long: `Extract transactions from the OCR text of one statement.

The text is read from the file given as argument or with -i, or from stdin when
neither is set. The result is written as JSON (transactions and quality report)
or CSV (transactions only) to -o or stdout.

Example:
  statement-ocr extract statement.txt -f csv -o statement.csv
  pdftotext statement.pdf - | statement-ocr extract`,
	Args: cobra.MaximumNArgs(1),
	Run:  extractFunc,
}

func extractFunc(cmd *cobra.Command, args []string) {
	logger := root.GetLogger()
	c := root.GetContainer()
	if c == nil {
		logger.Fatal("Container not initialized")
	}

	input := root.SharedFlags.Input
	if len(args) == 1 {
		input = args[0]
	}

	result, err := common.ProcessFile(cmd.Context(), c, c.NewScanner(root.SharedFlags.Charset),
		input, root.SharedFlags.Output, root.SharedFlags.Format, c.Delimiter(),
		os.Stdin, cmd.OutOrStdout(), logger)
	if err != nil {
		logger.Fatalf("Error extracting statement: %v", err)
	}

	if result.IsFallback() {
		logger.WithField(logging.FieldScore, result.Quality.Score).
			Info("No transactions found, emitted placeholder entry")
		return
	}
	logger.WithFields(
		logging.Field{Key: logging.FieldCount, Value: len(result.Transactions)},
		logging.Field{Key: logging.FieldScore, Value: result.Quality.Score},
	).Info("Extraction completed")
}
