package store

import (
	"fjacquet/statement-ocr/internal/models"
)

// MockTaxonomyStore is a mock implementation of TaxonomyStore for testing.
type MockTaxonomyStore struct {
	Taxonomy models.TaxonomyConfig

	LoadTaxonomyError error
	SaveTaxonomyError error
	Saved             int
}

// LoadTaxonomy returns the mock taxonomy.
func (m *MockTaxonomyStore) LoadTaxonomy() (models.TaxonomyConfig, error) {
	if m.LoadTaxonomyError != nil {
		return models.TaxonomyConfig{}, m.LoadTaxonomyError
	}
	return m.Taxonomy, nil
}

// SaveTaxonomy replaces the mock taxonomy.
func (m *MockTaxonomyStore) SaveTaxonomy(cfg models.TaxonomyConfig) error {
	if m.SaveTaxonomyError != nil {
		return m.SaveTaxonomyError
	}
	m.Taxonomy = cfg
	m.Saved++
	return nil
}

// Source returns a fixed mock source name.
func (m *MockTaxonomyStore) Source() string {
	return "mock"
}

// FindConfigFile is a mock implementation that returns a dummy path.
func (m *MockTaxonomyStore) FindConfigFile(filename string) (string, error) {
	return "/mock/path/" + filename, nil
}
