// Package root contains the root command for the application
package root

import (
	"github.com/spf13/cobra"

	"fjacquet/statement-ocr/internal/config"
	"fjacquet/statement-ocr/internal/container"
	"fjacquet/statement-ocr/internal/logging"
)

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	Input      string
	Output     string
	Format     string
	Charset    string
	ConfigFile string
	LogLevel   string
	LogFormat  string
}

var (
	// Log is the shared logger instance for commands
	Log = logging.GetLogger()

	// AppConfig is the configuration loaded by PersistentPreRun
	AppConfig *config.Config

	// AppContainer holds the wired dependencies for subcommands
	AppContainer *container.Container

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "statement-ocr",
		Short: "A CLI tool to extract transactions from OCR'd bank statement text.",
		Long: `statement-ocr reads the plain text produced by OCR of a bank or card statement
and extracts the transactions it contains as JSON or CSV, together with a quality
score for the OCR text.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to statement-ocr!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if err := Initialize(); err != nil {
				Log.Fatalf("Failed to initialize: %v", err)
			}
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if AppContainer != nil {
				if err := AppContainer.Close(); err != nil {
					Log.WithError(err).Warn("Failed to release resources")
				}
			}
		},
	}

	// Common flags accessible to all commands
	SharedFlags = CommonFlags{}
)

// Init initializes the root command and all flags
func Init() {
	flags := Cmd.PersistentFlags()
	flags.StringVarP(&SharedFlags.Input, "input", "i", "", "Input file or directory (\"-\" or empty reads stdin)")
	flags.StringVarP(&SharedFlags.Output, "output", "o", "", "Output file or directory (empty writes stdout)")
	flags.StringVarP(&SharedFlags.Format, "format", "f", "json", "Output format: json or csv")
	flags.StringVar(&SharedFlags.Charset, "charset", "", "Source text encoding, e.g. windows-1252 (default: detect)")
	flags.StringVar(&SharedFlags.ConfigFile, "config", "", "Config file (default: config.yaml in ., .statement-ocr or ~/.statement-ocr)")
	flags.StringVar(&SharedFlags.LogLevel, "log-level", "", "Log level override (debug, info, warn, error)")
	flags.StringVar(&SharedFlags.LogFormat, "log-format", "", "Log format override (text or json)")
}

// LoadConfig loads .env and the configuration, then applies flag overrides.
func LoadConfig() (*config.Config, error) {
	config.LoadEnv(Log)
	cfg, err := config.Load(SharedFlags.ConfigFile)
	if err != nil {
		return nil, err
	}
	if SharedFlags.LogLevel != "" {
		cfg.Log.Level = SharedFlags.LogLevel
	}
	if SharedFlags.LogFormat != "" {
		cfg.Log.Format = SharedFlags.LogFormat
	}
	return cfg, nil
}

// Initialize loads the configuration and builds the container.
func Initialize() error {
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}
	c, err := container.NewContainer(cfg)
	if err != nil {
		return err
	}
	AppConfig = cfg
	AppContainer = c
	Log = c.GetLogger()
	return nil
}

// GetLogger returns the logger configured for the current run.
func GetLogger() logging.Logger {
	return Log
}

// GetContainer returns the container built by PersistentPreRun, or nil.
func GetContainer() *container.Container {
	return AppContainer
}

// GetConfig returns the loaded configuration, or nil.
func GetConfig() *config.Config {
	return AppConfig
}
