// Package store provides functionality for storing and retrieving application data.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"fjacquet/statement-ocr/internal/logging"
	"fjacquet/statement-ocr/internal/models"
	"fjacquet/statement-ocr/internal/parsererror"
)

// DefaultTaxonomyFile is looked up when no explicit file is configured.
const DefaultTaxonomyFile = "taxonomy.yaml"

// TaxonomyStore manages loading and saving of the classification tables.
type TaxonomyStore struct {
	TaxonomyFile string
	logger       logging.Logger
}

// NewTaxonomyStore creates a new store for the taxonomy file.
func NewTaxonomyStore(taxonomyFile string, logger logging.Logger) *TaxonomyStore {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &TaxonomyStore{TaxonomyFile: taxonomyFile, logger: logger}
}

// Source returns the configured taxonomy file name.
func (s *TaxonomyStore) Source() string {
	return s.filename()
}

// FindConfigFile looks for a configuration file in standard locations
func (s *TaxonomyStore) FindConfigFile(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		if _, err := os.Stat(filename); err == nil {
			return filename, nil
		}
		return "", os.ErrNotExist
	}

	locations := []string{
		filename,
		filepath.Join("config", filename),
		filepath.Join(".statement-ocr", filename),
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		locations = append(locations, filepath.Join(homeDir, ".statement-ocr", filename))
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location, nil
		}
	}
	return "", os.ErrNotExist
}

func (s *TaxonomyStore) filename() string {
	if s.TaxonomyFile == "" {
		return DefaultTaxonomyFile
	}
	return s.TaxonomyFile
}

// LoadTaxonomy loads the taxonomy from YAML. A missing file yields an empty
// taxonomy, which consumers complete with the built-in tables.
func (s *TaxonomyStore) LoadTaxonomy() (models.TaxonomyConfig, error) {
	filename := s.filename()
	filePath, err := s.FindConfigFile(filename)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.logger.WithField(logging.FieldFile, filename).Debug("Taxonomy file not found, using built-in tables")
			return models.TaxonomyConfig{}, nil
		}
		return models.TaxonomyConfig{}, fmt.Errorf("error resolving taxonomy file: %w", err)
	}

	data, err := os.ReadFile(filePath) // #nosec G304 -- path comes from configuration
	if err != nil {
		return models.TaxonomyConfig{}, fmt.Errorf("error reading taxonomy file: %w", err)
	}

	var cfg models.TaxonomyConfig
	if err := yaml.Unmarshal(data, &cfg); err == nil && !isEmpty(cfg) {
		s.logger.WithFields(
			logging.Field{Key: logging.FieldFile, Value: filePath},
			logging.Field{Key: logging.FieldCount, Value: len(cfg.Categories)},
		).Debug("Loaded taxonomy")
		return cfg, nil
	}

	// A bare list of categories is accepted as well.
	var categories []models.CategoryConfig
	if err := yaml.Unmarshal(data, &categories); err == nil && len(categories) > 0 {
		s.logger.WithFields(
			logging.Field{Key: logging.FieldFile, Value: filePath},
			logging.Field{Key: logging.FieldCount, Value: len(categories)},
		).Debug("Loaded category list")
		return models.TaxonomyConfig{Categories: categories}, nil
	}

	var probe interface{}
	if err := yaml.Unmarshal(data, &probe); err != nil {
		return models.TaxonomyConfig{}, &parsererror.ParseError{
			Parser: "taxonomy",
			Field:  "file",
			Value:  filePath,
			Err:    err,
		}
	}
	return models.TaxonomyConfig{}, nil
}

// SaveTaxonomy writes the taxonomy to YAML, creating parent directories.
func (s *TaxonomyStore) SaveTaxonomy(cfg models.TaxonomyConfig) error {
	filename := s.filename()
	filePath, err := s.FindConfigFile(filename)
	if err != nil {
		filePath = filename
	}

	if err := os.MkdirAll(filepath.Dir(filePath), models.PermissionDirectory); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling taxonomy: %w", err)
	}

	if err := os.WriteFile(filePath, data, models.PermissionReportFile); err != nil {
		return fmt.Errorf("error writing taxonomy: %w", err)
	}

	s.logger.WithField(logging.FieldFile, filePath).Debug("Saved taxonomy")
	return nil
}

func isEmpty(cfg models.TaxonomyConfig) bool {
	return len(cfg.Categories) == 0 && len(cfg.TypeRules) == 0 && len(cfg.QualityKeywords) == 0
}
