// Package extraction turns OCR statement text into an ExtractionResult.
//
// The pipeline is pure and synchronous: generate candidates, validate, resolve
// overlaps, deduplicate, normalize, and fall back to a placeholder when nothing
// survives. It never fails on low-quality text; the only error is a caller
// contract violation (input that is not UTF-8 text).
package extraction

import (
	"fmt"
	"io"
	"sync"
	"time"
	"unicode/utf8"

	"fjacquet/statement-ocr/internal/categorizer"
	"fjacquet/statement-ocr/internal/dateutils"
	"fjacquet/statement-ocr/internal/logging"
	"fjacquet/statement-ocr/internal/models"
	"fjacquet/statement-ocr/internal/normalizer"
	"fjacquet/statement-ocr/internal/parsererror"
	"fjacquet/statement-ocr/internal/quality"
	"fjacquet/statement-ocr/internal/textparser"
)

// Default fallback values.
const (
	DefaultFallbackDescription = "Document analysis completed"
	DefaultFallbackConfidence  = 0.3
)

// Config holds the tunables of one pipeline.
type Config struct {
	Patterns            []textparser.Pattern
	Validator           textparser.ValidatorConfig
	Quality             quality.Config
	FallbackDescription string
	FallbackConfidence  float64
}

// DefaultConfig returns the stock pipeline configuration.
func DefaultConfig() Config {
	return Config{
		Patterns:            textparser.DefaultPatterns(),
		Validator:           textparser.DefaultValidatorConfig(),
		Quality:             quality.DefaultConfig(),
		FallbackDescription: DefaultFallbackDescription,
		FallbackConfidence:  DefaultFallbackConfidence,
	}
}

// Option customizes a Pipeline.
type Option func(*Pipeline)

// WithClock sets the source of the processing date.
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) { p.now = now }
}

// Pipeline runs the extraction stages. It holds no mutable state and is safe
// for concurrent use.
type Pipeline struct {
	cfg        Config
	generator  *textparser.Generator
	validator  *textparser.Validator
	assessor   *quality.Assessor
	normalizer *normalizer.Normalizer
	now        func() time.Time
	logger     logging.Logger
}

// NewPipeline wires the stages. A nil categorizer selects the built-in taxonomy.
func NewPipeline(cfg Config, cat *categorizer.Categorizer, logger logging.Logger, opts ...Option) *Pipeline {
	if logger == nil {
		logger = logging.GetLogger()
	}
	if cfg.Validator.MaxDescriptionLength == 0 {
		cfg.Validator = textparser.DefaultValidatorConfig()
	}
	if cfg.Quality.MinLength == 0 && cfg.Quality.NoiseThreshold == 0 {
		keywords := cfg.Quality.Keywords
		cfg.Quality = quality.DefaultConfig()
		if len(keywords) > 0 {
			cfg.Quality.Keywords = keywords
		}
	}
	if cfg.FallbackDescription == "" {
		cfg.FallbackDescription = DefaultFallbackDescription
	}
	if cfg.FallbackConfidence <= 0 || cfg.FallbackConfidence > 1 {
		cfg.FallbackConfidence = DefaultFallbackConfidence
	}

	p := &Pipeline{cfg: cfg, now: time.Now, logger: logger}
	for _, opt := range opts {
		opt(p)
	}

	p.generator = textparser.NewGenerator(cfg.Patterns, logger)
	p.validator = textparser.NewValidator(cfg.Validator, logger)
	p.assessor = quality.NewAssessor(cfg.Quality, logger)
	p.normalizer = normalizer.NewNormalizer(cat, p.now, logger)
	return p
}

// Extract runs the full pipeline. The result always holds at least one
// transaction.
func (p *Pipeline) Extract(text string) (*models.ExtractionResult, error) {
	if !utf8.ValidString(text) {
		return nil, &parsererror.InvalidInputError{Reason: "text is not valid UTF-8"}
	}

	report := p.assessor.Assess(text)
	transactions := p.Transactions(text)
	if len(transactions) == 0 {
		transactions = []models.Transaction{p.Fallback()}
		p.logger.WithField(logging.FieldStage, "fallback").Debug("No transactions survived, emitting placeholder")
	}

	p.logger.WithFields(
		logging.Field{Key: logging.FieldCount, Value: len(transactions)},
		logging.Field{Key: logging.FieldScore, Value: report.Score},
	).Debug("Extraction completed")

	return &models.ExtractionResult{Transactions: transactions, Quality: report}, nil
}

// ExtractReader reads r fully and extracts from its contents.
func (p *Pipeline) ExtractReader(r io.Reader) (*models.ExtractionResult, error) {
	if r == nil {
		return nil, &parsererror.InvalidInputError{Reason: "nil reader"}
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading statement text: %w", err)
	}
	return p.Extract(string(data))
}

// Candidates returns the candidates that survive validation, overlap
// resolution and deduplication, in discovery order.
func (p *Pipeline) Candidates(text string) []textparser.Candidate {
	generated := p.generator.Generate(text)
	valid := p.validator.Filter(generated)
	resolved := textparser.ResolveOverlaps(valid)
	unique := textparser.Deduplicate(resolved)

	p.logger.WithFields(
		logging.Field{Key: "generated", Value: len(generated)},
		logging.Field{Key: "valid", Value: len(valid)},
		logging.Field{Key: "resolved", Value: len(resolved)},
		logging.Field{Key: "unique", Value: len(unique)},
	).Debug("Candidate stages completed")
	return unique
}

// Transactions returns the normalized transactions of text without the
// fallback entry. The slice is empty when nothing qualifies.
func (p *Pipeline) Transactions(text string) []models.Transaction {
	return p.normalizer.NormalizeAll(p.Candidates(text))
}

// Assess scores text without extracting.
func (p *Pipeline) Assess(text string) models.QualityReport {
	return p.assessor.Assess(text)
}

// Fallback builds the placeholder transaction dated at the processing date.
func (p *Pipeline) Fallback() models.Transaction {
	return models.NewFallbackTransaction(
		dateutils.ToISODate(p.now()),
		p.cfg.FallbackDescription,
		p.cfg.FallbackConfidence,
	)
}

var (
	defaultOnce     sync.Once
	defaultPipeline *Pipeline
)

// Extract runs a pipeline with the built-in configuration.
func Extract(text string) (*models.ExtractionResult, error) {
	defaultOnce.Do(func() {
		defaultPipeline = NewPipeline(DefaultConfig(), nil, nil)
	})
	return defaultPipeline.Extract(text)
}
