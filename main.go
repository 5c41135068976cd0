package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"fjacquet/statement-ocr/cmd/batch"
	"fjacquet/statement-ocr/cmd/categorize"
	"fjacquet/statement-ocr/cmd/extract"
	"fjacquet/statement-ocr/cmd/quality"
	"fjacquet/statement-ocr/cmd/root"
	"fjacquet/statement-ocr/internal/logging"
)

func init() {
	// 1. Load environment variables silently first (no logging yet)
	loadEnvSilently()

	// 2. Configure the global log level before any logger is used
	logging.SetAllLogLevels(configureLogLevelDirectly())

	// 3. Initialize root command and add all subcommands
	root.Init()
	root.Cmd.AddCommand(extract.Cmd)
	root.Cmd.AddCommand(quality.Cmd)
	root.Cmd.AddCommand(categorize.Cmd)
	root.Cmd.AddCommand(batch.Cmd)
}

// loadEnvSilently loads environment variables without logging anything
func loadEnvSilently() {
	for _, envFile := range []string{".env", filepath.Join("..", ".env")} {
		if _, err := os.Stat(envFile); err == nil {
			_ = godotenv.Load(envFile)
			return
		}
	}
}

// configureLogLevelDirectly sets the global log level for all logrus instances
// and returns the configured level
func configureLogLevelDirectly() logrus.Level {
	logLevelStr := os.Getenv("STMT_LOG_LEVEL")
	if logLevelStr == "" {
		logLevelStr = os.Getenv("LOG_LEVEL")
	}
	if logLevelStr == "" {
		logLevelStr = "info"
	}

	logLevel, err := logrus.ParseLevel(strings.ToLower(logLevelStr))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	return logLevel
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
