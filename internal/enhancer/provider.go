// Package enhancer runs an optional second-opinion pass over a statement: the
// raw text and the extractor's own candidates are sent to a language model,
// and the reply is re-parsed with the same extraction core.
package enhancer

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Supported provider names.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// Provider is a text-completion backend.
type Provider interface {
	Name() string
	Complete(ctx context.Context, prompt string) (string, error)
}

// Config holds enhancement settings.
type Config struct {
	Provider          string
	Model             string
	APIKey            string
	RequestsPerMinute int
	DailyLimit        int
	RetryDelay        time.Duration
	MaxAttempts       int
	Timeout           time.Duration
	CacheTTL          time.Duration
}

// DefaultConfig returns conservative limits suited to free API tiers.
func DefaultConfig() Config {
	return Config{
		Provider:          ProviderGemini,
		RequestsPerMinute: 10,
		DailyLimit:        500,
		RetryDelay:        2 * time.Second,
		MaxAttempts:       3,
		Timeout:           30 * time.Second,
		CacheTTL:          time.Hour,
	}
}

// NewProvider builds the provider named by cfg.Provider.
func NewProvider(ctx context.Context, cfg Config) (Provider, error) {
	switch strings.ToLower(cfg.Provider) {
	case ProviderGemini, "":
		return NewGeminiProvider(ctx, cfg)
	case ProviderOpenAI:
		return NewOpenAIProvider(cfg)
	default:
		return nil, fmt.Errorf("unknown enhancement provider: %s", cfg.Provider)
	}
}
