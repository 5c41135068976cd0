package config

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/joho/godotenv"

	"fjacquet/statement-ocr/internal/logging"
	"fjacquet/statement-ocr/internal/validation"
)

var envOnce sync.Once

// LoadEnv loads variables from a .env file in the working directory or its
// parent. Variables already present in the environment win.
func LoadEnv(logger logging.Logger) {
	envOnce.Do(func() {
		loadEnvFile(logger, ".env", filepath.Join("..", ".env"))
	})
}

func loadEnvFile(logger logging.Logger, candidates ...string) string {
	if logger == nil {
		logger = logging.GetLogger()
	}
	for _, envFile := range candidates {
		if _, err := os.Stat(envFile); err != nil {
			continue
		}
		if err := validation.CheckSecretFile(envFile); err != nil {
			logger.WithError(err).Warn(".env file is readable by other users")
		}
		if err := godotenv.Load(envFile); err != nil {
			logger.WithError(err).Warn("Error loading .env file")
			return ""
		}
		logger.WithField(logging.FieldFile, envFile).Debug("Loaded environment variables")
		return envFile
	}
	logger.Debug("No .env file found, using environment variables")
	return ""
}
