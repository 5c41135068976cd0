// Package batch handles batch processing of statement files
package batch

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"fjacquet/statement-ocr/cmd/root"
	"fjacquet/statement-ocr/internal/batch"
	"fjacquet/statement-ocr/internal/logging"
	"fjacquet/statement-ocr/internal/models"
	"fjacquet/statement-ocr/internal/scanner"
	"fjacquet/statement-ocr/internal/validation"
)

var workers int

// Cmd represents the batch command
var Cmd = &cobra.Command{
	Use:   "batch [paths...]",
	Short: "Batch process statement texts from a directory",
	Long: `Batch process statement texts from an input directory and write the results to another directory.

Every .txt, .text and .ocr file under the input directory (or each path given as
argument) is extracted concurrently. One JSON result per input is written to the
output directory together with summary.json, which lists per-file transaction
counts, quality scores and failures.

Example:
  statement-ocr batch -i statements/ -o results/ --workers 8`,
	Run: batchFunc,
}

func init() {
	Cmd.Flags().IntVarP(&workers, "workers", "w", 0, "Concurrent extractions (default: batch.workers from config)")
}

// Runner is the part of batch.Runner the command needs.
type Runner interface {
	Run(ctx context.Context, docs []scanner.Document) (*batch.Summary, error)
}

func batchFunc(cmd *cobra.Command, args []string) {
	logger := root.GetLogger()
	c := root.GetContainer()
	if c == nil {
		logger.Fatal("Container not initialized")
	}

	paths := args
	if len(paths) == 0 && root.SharedFlags.Input != "" {
		paths = []string{root.SharedFlags.Input}
	}
	outputDir := root.SharedFlags.Output
	if len(paths) == 0 || outputDir == "" {
		logger.Fatal("Input paths and output directory must be specified")
	}

	summary, err := Process(cmd.Context(), c.NewScanner(root.SharedFlags.Charset), c.NewBatchRunner(outputDir, workers),
		paths, outputDir, logger)
	if err != nil {
		logger.Fatalf("Error during batch extraction: %v", err)
	}
	if summary == nil {
		return
	}

	logger.Info(fmt.Sprintf("Batch processing completed. %d files, %d transactions, %d failed.",
		len(summary.Files), summary.TotalTransactions, summary.Failed))
}

// Process scans paths and runs every document through runner. It returns a
// nil summary when no statement files were found.
func Process(ctx context.Context, s *scanner.StatementScanner, runner Runner, paths []string,
	outputDir string, logger logging.Logger) (*batch.Summary, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := os.MkdirAll(outputDir, models.PermissionDirectory); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	for _, p := range paths {
		if err := validation.IsValidPath(p); err != nil {
			return nil, err
		}
	}

	docs, err := s.ScanPaths(paths)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		logger.Warn("No statement files found in input paths")
		return nil, nil
	}
	logger.Info("Found files for processing", logging.Field{Key: logging.FieldCount, Value: len(docs)})

	return runner.Run(ctx, docs)
}
