// Package config provides Viper-based hierarchical configuration management
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Provider names accepted by enhancement.provider.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// EnvPrefix is prepended to every environment override, e.g. STMT_LOG_LEVEL.
const EnvPrefix = "STMT"

// LogConfig selects the logrus level and formatter.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// CSVConfig controls CSV output.
type CSVConfig struct {
	Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
}

// TaxonomyConfig points at an optional YAML taxonomy file.
type TaxonomyConfig struct {
	File string `mapstructure:"file" yaml:"file"`
}

// ExtractionConfig holds the validator bounds and fallback values.
type ExtractionConfig struct {
	MinDescriptionLength int     `mapstructure:"min_description_length" yaml:"min_description_length"`
	MaxDescriptionLength int     `mapstructure:"max_description_length" yaml:"max_description_length"`
	MinAmount            float64 `mapstructure:"min_amount" yaml:"min_amount"`
	MaxAmount            float64 `mapstructure:"max_amount" yaml:"max_amount"`
	FallbackDescription  string  `mapstructure:"fallback_description" yaml:"fallback_description"`
	FallbackConfidence   float64 `mapstructure:"fallback_confidence" yaml:"fallback_confidence"`
}

// QualityConfig holds the OCR quality thresholds.
type QualityConfig struct {
	NoiseThreshold      float64 `mapstructure:"noise_threshold" yaml:"noise_threshold"`
	MinLength           int     `mapstructure:"min_length" yaml:"min_length"`
	RepetitionThreshold float64 `mapstructure:"repetition_threshold" yaml:"repetition_threshold"`
}

// EnhancementConfig configures the optional LLM pass.
type EnhancementConfig struct {
	Enabled           bool   `mapstructure:"enabled" yaml:"enabled"`
	Provider          string `mapstructure:"provider" yaml:"provider"`
	Model             string `mapstructure:"model" yaml:"model"`
	APIKey            string `mapstructure:"api_key" yaml:"-"` // Never serialize API key
	RequestsPerMinute int    `mapstructure:"requests_per_minute" yaml:"requests_per_minute"`
	DailyLimit        int    `mapstructure:"daily_limit" yaml:"daily_limit"`
	RetryDelaySeconds int    `mapstructure:"retry_delay_seconds" yaml:"retry_delay_seconds"`
	MaxAttempts       int    `mapstructure:"max_attempts" yaml:"max_attempts"`
	TimeoutSeconds    int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
	CacheTTLMinutes   int    `mapstructure:"cache_ttl_minutes" yaml:"cache_ttl_minutes"`
}

// BatchConfig controls directory runs.
type BatchConfig struct {
	Workers int `mapstructure:"workers" yaml:"workers"`
}

// Config represents the complete application configuration
type Config struct {
	Log         LogConfig         `mapstructure:"log" yaml:"log"`
	CSV         CSVConfig         `mapstructure:"csv" yaml:"csv"`
	Taxonomy    TaxonomyConfig    `mapstructure:"taxonomy" yaml:"taxonomy"`
	Extraction  ExtractionConfig  `mapstructure:"extraction" yaml:"extraction"`
	Quality     QualityConfig     `mapstructure:"quality" yaml:"quality"`
	Enhancement EnhancementConfig `mapstructure:"enhancement" yaml:"enhancement"`
	Batch       BatchConfig       `mapstructure:"batch" yaml:"batch"`
}

// Load initializes Viper configuration with hierarchical loading. A non-empty
// configFile replaces the search path and must exist.
func Load(configFile string) (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.statement-ocr")
		v.AddConfigPath(".statement-ocr")
		v.AddConfigPath(".")
	}

	// 3. Environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 4. Read config file (optional unless named explicitly)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || configFile != "" {
			return nil, fmt.Errorf("error reading config file %s: %w", v.ConfigFileUsed(), err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 5. Provider keys come from the provider's own variable unless set explicitly
	if config.Enhancement.APIKey == "" {
		config.Enhancement.APIKey = providerAPIKey(config.Enhancement.Provider)
	}

	// 6. Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Default returns the built-in configuration without reading files or the
// environment.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		panic(fmt.Sprintf("config: built-in defaults do not decode: %v", err))
	}
	return &config
}

// APIKeyEnv names the environment variable holding the key for provider.
func APIKeyEnv(provider string) string {
	if strings.EqualFold(provider, ProviderOpenAI) {
		return "OPENAI_API_KEY"
	}
	return "GEMINI_API_KEY"
}

func providerAPIKey(provider string) string {
	return os.Getenv(APIKeyEnv(provider))
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("csv.delimiter", ",")

	v.SetDefault("taxonomy.file", "")

	v.SetDefault("extraction.min_description_length", 2)
	v.SetDefault("extraction.max_description_length", 200)
	v.SetDefault("extraction.min_amount", 0.01)
	v.SetDefault("extraction.max_amount", 1000000.0)
	v.SetDefault("extraction.fallback_description", "Document analysis completed")
	v.SetDefault("extraction.fallback_confidence", 0.3)

	v.SetDefault("quality.noise_threshold", 0.2)
	v.SetDefault("quality.min_length", 100)
	v.SetDefault("quality.repetition_threshold", 0.5)

	v.SetDefault("enhancement.enabled", false)
	v.SetDefault("enhancement.provider", ProviderGemini)
	v.SetDefault("enhancement.model", "")
	v.SetDefault("enhancement.api_key", "")
	v.SetDefault("enhancement.requests_per_minute", 10)
	v.SetDefault("enhancement.daily_limit", 500)
	v.SetDefault("enhancement.retry_delay_seconds", 2)
	v.SetDefault("enhancement.max_attempts", 3)
	v.SetDefault("enhancement.timeout_seconds", 30)
	v.SetDefault("enhancement.cache_ttl_minutes", 60)

	v.SetDefault("batch.workers", 4)
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if len([]rune(config.CSV.Delimiter)) != 1 {
		return fmt.Errorf("CSV delimiter must be a single character, got: %s", config.CSV.Delimiter)
	}

	ex := config.Extraction
	if ex.MinDescriptionLength < 0 || ex.MaxDescriptionLength <= ex.MinDescriptionLength {
		return fmt.Errorf("extraction description length bounds are inconsistent: min %d, max %d",
			ex.MinDescriptionLength, ex.MaxDescriptionLength)
	}
	if ex.MinAmount < 0 || ex.MaxAmount <= ex.MinAmount {
		return fmt.Errorf("extraction amount bounds are inconsistent: min %g, max %g", ex.MinAmount, ex.MaxAmount)
	}
	if ex.FallbackConfidence <= 0 || ex.FallbackConfidence > 1 {
		return fmt.Errorf("extraction.fallback_confidence must be in (0, 1], got: %g", ex.FallbackConfidence)
	}

	q := config.Quality
	if q.NoiseThreshold < 0 || q.NoiseThreshold > 1 {
		return fmt.Errorf("quality.noise_threshold must be between 0.0 and 1.0, got: %g", q.NoiseThreshold)
	}
	if q.RepetitionThreshold < 0 || q.RepetitionThreshold > 1 {
		return fmt.Errorf("quality.repetition_threshold must be between 0.0 and 1.0, got: %g", q.RepetitionThreshold)
	}
	if q.MinLength < 0 {
		return fmt.Errorf("quality.min_length must not be negative, got: %d", q.MinLength)
	}

	if config.Batch.Workers < 1 || config.Batch.Workers > 64 {
		return fmt.Errorf("batch.workers must be between 1 and 64, got: %d", config.Batch.Workers)
	}

	if config.Enhancement.Enabled {
		return validateEnhancement(config.Enhancement)
	}
	return nil
}

func validateEnhancement(e EnhancementConfig) error {
	provider := strings.ToLower(e.Provider)
	if provider != ProviderGemini && provider != ProviderOpenAI {
		return fmt.Errorf("unknown enhancement provider: %s (must be 'gemini' or 'openai')", e.Provider)
	}
	if e.APIKey == "" {
		return fmt.Errorf("%s required when enhancement is enabled", APIKeyEnv(provider))
	}
	if e.RequestsPerMinute < 1 || e.RequestsPerMinute > 1000 {
		return fmt.Errorf("enhancement.requests_per_minute must be between 1 and 1000, got: %d", e.RequestsPerMinute)
	}
	if e.DailyLimit < 0 {
		return fmt.Errorf("enhancement.daily_limit must not be negative, got: %d", e.DailyLimit)
	}
	if e.MaxAttempts < 1 || e.MaxAttempts > 10 {
		return fmt.Errorf("enhancement.max_attempts must be between 1 and 10, got: %d", e.MaxAttempts)
	}
	if e.RetryDelaySeconds < 0 {
		return fmt.Errorf("enhancement.retry_delay_seconds must not be negative, got: %d", e.RetryDelaySeconds)
	}
	if e.TimeoutSeconds < 1 || e.TimeoutSeconds > 300 {
		return fmt.Errorf("enhancement.timeout_seconds must be between 1 and 300, got: %d", e.TimeoutSeconds)
	}
	if e.CacheTTLMinutes < 0 {
		return fmt.Errorf("enhancement.cache_ttl_minutes must not be negative, got: %d", e.CacheTTLMinutes)
	}
	return nil
}
