// Package container provides dependency injection for the statement-ocr application.
// It centralizes the creation and wiring of all application dependencies,
// making them explicit and testable.
package container

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"fjacquet/statement-ocr/internal/batch"
	"fjacquet/statement-ocr/internal/categorizer"
	"fjacquet/statement-ocr/internal/config"
	"fjacquet/statement-ocr/internal/enhancer"
	"fjacquet/statement-ocr/internal/extraction"
	"fjacquet/statement-ocr/internal/logging"
	"fjacquet/statement-ocr/internal/models"
	"fjacquet/statement-ocr/internal/quality"
	"fjacquet/statement-ocr/internal/scanner"
	"fjacquet/statement-ocr/internal/store"
	"fjacquet/statement-ocr/internal/textparser"
)

// Option customizes container construction.
type Option func(*options)

type options struct {
	logger   logging.Logger
	provider enhancer.Provider
	store    categorizer.TaxonomyStoreInterface
	clock    func() time.Time
}

// WithLogger replaces the logrus logger built from the configuration.
func WithLogger(logger logging.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithProvider supplies the enhancement provider instead of building one
// from the configuration. It has no effect when enhancement is disabled.
func WithProvider(p enhancer.Provider) Option {
	return func(o *options) { o.provider = p }
}

// WithTaxonomyStore replaces the YAML taxonomy store named by the configuration.
func WithTaxonomyStore(s categorizer.TaxonomyStoreInterface) Option {
	return func(o *options) { o.store = s }
}

// WithClock sets the processing-date source of the pipeline.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.clock = now }
}

// Container holds all application dependencies and provides methods to access them.
//
// Container is immutable after creation - all fields are private and can only
// be accessed through getter methods.
type Container struct {
	logger      logging.Logger
	config      *config.Config
	store       categorizer.TaxonomyStoreInterface
	taxonomy    models.TaxonomyConfig
	categorizer *categorizer.Categorizer
	pipeline    *extraction.Pipeline
	provider    enhancer.Provider
	enhancer    *enhancer.Enhancer
}

// NewContainer creates and wires all application dependencies.
// This is the main entry point for dependency injection in the application.
func NewContainer(cfg *config.Config, opts ...Option) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	logger := o.logger
	if logger == nil {
		logger = logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format)
	}

	taxonomyStore := o.store
	if taxonomyStore == nil {
		taxonomyStore = store.NewTaxonomyStore(cfg.Taxonomy.File, logger)
	}
	cat, err := categorizer.NewCategorizerFromStore(taxonomyStore, logger)
	if err != nil {
		return nil, err
	}
	taxonomy := cat.Taxonomy()

	var pipelineOpts []extraction.Option
	if o.clock != nil {
		pipelineOpts = append(pipelineOpts, extraction.WithClock(o.clock))
	}
	pipeline := extraction.NewPipeline(PipelineConfig(cfg, taxonomy), cat, logger, pipelineOpts...)

	c := &Container{
		logger:      logger,
		config:      cfg,
		store:       taxonomyStore,
		taxonomy:    taxonomy,
		categorizer: cat,
		pipeline:    pipeline,
	}

	if cfg.Enhancement.Enabled {
		enhCfg := EnhancerConfig(cfg)
		provider := o.provider
		if provider == nil {
			provider, err = enhancer.NewProvider(context.Background(), enhCfg)
			if err != nil {
				return nil, fmt.Errorf("failed to create enhancement provider: %w", err)
			}
		}
		c.provider = provider
		c.enhancer = enhancer.NewEnhancer(provider, pipeline, enhCfg, logger)
		logger.Debug("Enhancement enabled", logging.Field{Key: logging.FieldProvider, Value: provider.Name()})
	} else {
		logger.Debug("Enhancement disabled")
	}

	logger.Debug("Container initialized successfully",
		logging.Field{Key: "categories", Value: len(taxonomy.Categories)},
		logging.Field{Key: "enhancement_enabled", Value: cfg.Enhancement.Enabled})

	return c, nil
}

// PipelineConfig maps the configuration onto the extraction pipeline settings.
func PipelineConfig(cfg *config.Config, taxonomy models.TaxonomyConfig) extraction.Config {
	validator := textparser.DefaultValidatorConfig()
	validator.MinDescriptionLength = cfg.Extraction.MinDescriptionLength
	validator.MaxDescriptionLength = cfg.Extraction.MaxDescriptionLength
	validator.MinAmount = decimal.NewFromFloat(cfg.Extraction.MinAmount)
	validator.MaxAmount = decimal.NewFromFloat(cfg.Extraction.MaxAmount)

	q := quality.DefaultConfig()
	q.NoiseThreshold = cfg.Quality.NoiseThreshold
	q.MinLength = cfg.Quality.MinLength
	q.RepetitionThreshold = cfg.Quality.RepetitionThreshold
	if len(taxonomy.QualityKeywords) > 0 {
		q.Keywords = taxonomy.QualityKeywords
	}

	return extraction.Config{
		Patterns:            textparser.DefaultPatterns(),
		Validator:           validator,
		Quality:             q,
		FallbackDescription: cfg.Extraction.FallbackDescription,
		FallbackConfidence:  cfg.Extraction.FallbackConfidence,
	}
}

// EnhancerConfig maps the configuration onto the enhancer settings.
func EnhancerConfig(cfg *config.Config) enhancer.Config {
	e := cfg.Enhancement
	return enhancer.Config{
		Provider:          e.Provider,
		Model:             e.Model,
		APIKey:            e.APIKey,
		RequestsPerMinute: e.RequestsPerMinute,
		DailyLimit:        e.DailyLimit,
		RetryDelay:        time.Duration(e.RetryDelaySeconds) * time.Second,
		MaxAttempts:       e.MaxAttempts,
		Timeout:           time.Duration(e.TimeoutSeconds) * time.Second,
		CacheTTL:          time.Duration(e.CacheTTLMinutes) * time.Minute,
	}
}

// Extract runs the enhanced extraction when enhancement is enabled and the
// plain pipeline otherwise.
func (c *Container) Extract(ctx context.Context, text string) (*models.ExtractionResult, error) {
	if c.enhancer != nil {
		return c.enhancer.Enhance(ctx, text)
	}
	return c.pipeline.Extract(text)
}

// NewScanner returns a scanner decoding input with charsetLabel, or with
// detection when the label is empty.
func (c *Container) NewScanner(charsetLabel string) *scanner.StatementScanner {
	return scanner.NewStatementScanner(charsetLabel, c.logger)
}

// NewBatchRunner returns a runner writing into outputDir. workers <= 0 uses
// the configured worker count.
func (c *Container) NewBatchRunner(outputDir string, workers int) *batch.Runner {
	if workers <= 0 {
		workers = c.config.Batch.Workers
	}
	return batch.NewRunner(c.Extract, outputDir, workers, c.logger)
}

// Delimiter returns the configured CSV delimiter.
func (c *Container) Delimiter() rune {
	for _, r := range c.config.CSV.Delimiter {
		return r
	}
	return ','
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetCategorizer returns the container's categorizer instance.
func (c *Container) GetCategorizer() *categorizer.Categorizer {
	return c.categorizer
}

// GetStore returns the container's taxonomy store instance.
func (c *Container) GetStore() categorizer.TaxonomyStoreInterface {
	return c.store
}

// GetTaxonomy returns the effective taxonomy, built-in tables included.
func (c *Container) GetTaxonomy() models.TaxonomyConfig {
	return c.taxonomy
}

// GetPipeline returns the extraction pipeline.
func (c *Container) GetPipeline() *extraction.Pipeline {
	return c.pipeline
}

// GetEnhancer returns the enhancer, or nil when enhancement is disabled.
func (c *Container) GetEnhancer() *enhancer.Enhancer {
	return c.enhancer
}

// Close releases the provider client, if any.
func (c *Container) Close() error {
	if closer, ok := c.provider.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			return fmt.Errorf("failed to close enhancement provider: %w", err)
		}
	}
	c.logger.Debug("Container closed")
	return nil
}
