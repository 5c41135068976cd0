package enhancer

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"fjacquet/statement-ocr/internal/logging"
	"fjacquet/statement-ocr/internal/models"
	"fjacquet/statement-ocr/internal/parsererror"
	"fjacquet/statement-ocr/internal/textparser"
)

// Extractor is the extraction core as seen by the enhancer.
type Extractor interface {
	Extract(text string) (*models.ExtractionResult, error)
	Candidates(text string) []textparser.Candidate
	Transactions(text string) []models.Transaction
}

// Enhancer merges a provider's second opinion into the primary extraction.
// The primary result always wins: provider output can only add transactions.
type Enhancer struct {
	provider  Provider
	extractor Extractor
	limiter   *RequestLimiter
	cache     *gocache.Cache
	cfg       Config
	logger    logging.Logger
	sleep     func(ctx context.Context, d time.Duration) error
}

// NewEnhancer creates an Enhancer.
func NewEnhancer(provider Provider, extractor Extractor, cfg Config, logger logging.Logger) *Enhancer {
	if logger == nil {
		logger = logging.GetLogger()
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 1
	}
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = gocache.NoExpiration
	}
	return &Enhancer{
		provider:  provider,
		extractor: extractor,
		limiter:   NewRequestLimiter(cfg.RequestsPerMinute, cfg.DailyLimit),
		cache:     gocache.New(ttl, 10*time.Minute),
		cfg:       cfg,
		logger:    logger,
		sleep:     sleepContext,
	}
}

// Enhance extracts text and merges transactions found by the provider.
// Provider failures are logged and the primary result is returned unchanged.
func (e *Enhancer) Enhance(ctx context.Context, text string) (*models.ExtractionResult, error) {
	primary, err := e.extractor.Extract(text)
	if err != nil {
		return nil, err
	}

	prompt := BuildPrompt(text, e.extractor.Candidates(text))
	response, err := e.complete(ctx, cacheKey(e.provider.Name(), e.cfg.Model, text), prompt)
	if err != nil {
		e.logger.WithError(err).WithField(logging.FieldProvider, e.provider.Name()).
			Warn("Enhancement failed, keeping primary extraction")
		return primary, nil
	}

	extra := e.extractor.Transactions(response)
	merged := Merge(primary, extra)
	e.logger.WithFields(
		logging.Field{Key: logging.FieldProvider, Value: e.provider.Name()},
		logging.Field{Key: logging.FieldCount, Value: len(merged.Transactions) - len(primary.Transactions)},
	).Info("Enhancement merged")
	return merged, nil
}

// Merge appends transactions from extra whose key the primary result does not
// already hold. A fallback-only primary is replaced when extra has anything.
func Merge(primary *models.ExtractionResult, extra []models.Transaction) *models.ExtractionResult {
	out := &models.ExtractionResult{Quality: primary.Quality}

	seen := make(map[string]bool)
	if !primary.IsFallback() || len(extra) == 0 {
		out.Transactions = append(out.Transactions, primary.Transactions...)
		for _, tx := range primary.Transactions {
			seen[tx.Key()] = true
		}
	}
	for _, tx := range extra {
		if tx.IsFallback() || seen[tx.Key()] {
			continue
		}
		seen[tx.Key()] = true
		out.Transactions = append(out.Transactions, tx)
	}
	return out
}

func (e *Enhancer) complete(ctx context.Context, key, prompt string) (string, error) {
	if cached, ok := e.cache.Get(key); ok {
		e.logger.WithField(logging.FieldProvider, e.provider.Name()).Debug("Enhancement cache hit")
		return cached.(string), nil
	}

	var lastErr error
	attempts := 0
	for attempts < e.cfg.MaxAttempts {
		if attempts > 0 {
			if err := e.sleep(ctx, e.cfg.RetryDelay); err != nil {
				lastErr = err
				break
			}
		}
		attempts++

		if err := e.limiter.Wait(ctx); err != nil {
			lastErr = err
			break
		}

		response, err := e.call(ctx, prompt)
		if err == nil {
			e.cache.SetDefault(key, response)
			e.logger.WithFields(
				logging.Field{Key: logging.FieldProvider, Value: e.provider.Name()},
				logging.Field{Key: logging.FieldAttempt, Value: attempts},
				logging.Field{Key: "daily_requests", Value: e.limiter.Used()},
			).Debug("Enhancement response received")
			return response, nil
		}
		lastErr = err
		e.logger.WithError(err).WithFields(
			logging.Field{Key: logging.FieldProvider, Value: e.provider.Name()},
			logging.Field{Key: logging.FieldAttempt, Value: attempts},
		).Debug("Enhancement attempt failed")
	}

	return "", &parsererror.EnhancementError{
		Provider: e.provider.Name(),
		Attempts: attempts,
		Err:      lastErr,
	}
}

func (e *Enhancer) call(ctx context.Context, prompt string) (string, error) {
	if e.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.cfg.Timeout)
		defer cancel()
	}
	response, err := e.provider.Complete(ctx, prompt)
	if err != nil {
		return "", err
	}
	if response == "" {
		return "", errors.New("empty response")
	}
	return response, nil
}

// Limiter exposes the request limiter, mainly for reporting usage.
func (e *Enhancer) Limiter() *RequestLimiter {
	return e.limiter
}

func cacheKey(provider, model, text string) string {
	sum := sha256.Sum256([]byte(provider + "\x00" + model + "\x00" + text))
	return hex.EncodeToString(sum[:])
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
