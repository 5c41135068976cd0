// Package batch extracts many statement documents concurrently and writes one
// result per document plus a run summary.
package batch

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"fjacquet/statement-ocr/internal/common"
	"fjacquet/statement-ocr/internal/logging"
	"fjacquet/statement-ocr/internal/models"
	"fjacquet/statement-ocr/internal/scanner"
)

// SummaryFile is the name of the run summary written to the output directory.
const SummaryFile = "summary.json"

// ExtractFunc extracts one document.
type ExtractFunc func(ctx context.Context, text string) (*models.ExtractionResult, error)

// FileSummary reports the outcome for one document.
type FileSummary struct {
	DocumentID   string    `json:"documentId"`
	Input        string    `json:"input"`
	Output       string    `json:"output,omitempty"`
	Transactions int       `json:"transactions"`
	QualityScore float64   `json:"qualityScore"`
	Issues       []string  `json:"issues,omitempty"`
	Fallback     bool      `json:"fallback"`
	DateRange    DateRange `json:"dateRange"`
	Error        string    `json:"error,omitempty"`
}

// Summary reports a whole run.
type Summary struct {
	RunID             string        `json:"runId"`
	StartedAt         time.Time     `json:"startedAt"`
	DurationMs        int64         `json:"durationMs"`
	Files             []FileSummary `json:"files"`
	TotalTransactions int           `json:"totalTransactions"`
	Failed            int           `json:"failed"`
	DateRange         DateRange     `json:"dateRange"`
}

// Runner processes documents with bounded concurrency.
type Runner struct {
	extract   ExtractFunc
	outputDir string
	workers   int
	logger    logging.Logger
	newID     func() string
	now       func() time.Time
}

// NewRunner creates a Runner writing into outputDir.
func NewRunner(extract ExtractFunc, outputDir string, workers int, logger logging.Logger) *Runner {
	if logger == nil {
		logger = logging.GetLogger()
	}
	if workers <= 0 {
		workers = 1
	}
	return &Runner{
		extract:   extract,
		outputDir: outputDir,
		workers:   workers,
		logger:    logger,
		newID:     uuid.NewString,
		now:       time.Now,
	}
}

// Run extracts every document. A failing document is recorded in the summary
// and does not stop the others; only context cancellation aborts the run.
func (r *Runner) Run(ctx context.Context, docs []scanner.Document) (*Summary, error) {
	started := r.now()
	summary := &Summary{
		RunID:     r.newID(),
		StartedAt: started,
		Files:     make([]FileSummary, len(docs)),
	}
	logger := r.logger.WithField(logging.FieldRunID, summary.RunID)
	logger.Info("Starting batch extraction", logging.Field{Key: logging.FieldCount, Value: len(docs)})

	outputs := outputNames(docs)

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for i := range docs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			fs := r.processOne(gctx, docs[i], filepath.Join(r.outputDir, outputs[i]), logger)
			mu.Lock()
			summary.Files[i] = fs
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("batch run %s aborted: %w", summary.RunID, err)
	}

	for _, fs := range summary.Files {
		summary.TotalTransactions += fs.Transactions
		summary.DateRange = summary.DateRange.Merge(fs.DateRange)
		if fs.Error != "" {
			summary.Failed++
		}
	}
	summary.DurationMs = r.now().Sub(started).Milliseconds()

	if err := common.WriteJSONFile(filepath.Join(r.outputDir, SummaryFile), summary); err != nil {
		return summary, fmt.Errorf("failed to write batch summary: %w", err)
	}

	logger.WithFields(
		logging.Field{Key: logging.FieldCount, Value: len(docs)},
		logging.Field{Key: "failed", Value: summary.Failed},
		logging.Field{Key: "transactions", Value: summary.TotalTransactions},
	).Info("Batch extraction completed")
	return summary, nil
}

func (r *Runner) processOne(ctx context.Context, doc scanner.Document, output string, logger logging.Logger) FileSummary {
	fs := FileSummary{DocumentID: doc.ID, Input: doc.Path}

	result, err := r.extract(ctx, doc.Content)
	if err != nil {
		logger.WithError(err).WithField(logging.FieldInputFile, doc.Path).Warn("Extraction failed")
		fs.Error = err.Error()
		return fs
	}

	if err := common.WriteJSONFile(output, result); err != nil {
		logger.WithError(err).WithField(logging.FieldOutputFile, output).Warn("Failed to write result")
		fs.Error = err.Error()
		return fs
	}

	fs.Output = output
	fs.Transactions = len(result.Transactions)
	fs.QualityScore = result.Quality.Score
	fs.Issues = result.Quality.Issues
	fs.Fallback = result.IsFallback()
	if fs.Fallback {
		fs.Transactions = 0
	}
	fs.DateRange = CalculateDateRange(result.Transactions)

	logger.WithFields(
		logging.Field{Key: logging.FieldInputFile, Value: doc.Path},
		logging.Field{Key: logging.FieldCount, Value: fs.Transactions},
		logging.Field{Key: logging.FieldScore, Value: fs.QualityScore},
	).Debug("Document extracted")
	return fs
}

// outputNames derives "<base>.json" per document, suffixing duplicates. The
// summary file name is reserved.
func outputNames(docs []scanner.Document) []string {
	names := make([]string, len(docs))
	issued := map[string]bool{SummaryFile: true}
	for i, d := range docs {
		base := strings.TrimSuffix(filepath.Base(d.Path), filepath.Ext(d.Path))
		if base == "" || base == "." {
			base = d.ID
		}
		name := base + ".json"
		for n := 2; issued[name]; n++ {
			name = fmt.Sprintf("%s-%d.json", base, n)
		}
		issued[name] = true
		names[i] = name
	}
	return names
}
