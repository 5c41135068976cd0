package categorizer

import "fjacquet/statement-ocr/internal/models"

// TaxonomyStoreInterface defines the interface for taxonomy storage.
// This allows for dependency injection and easier testing.
type TaxonomyStoreInterface interface {
	LoadTaxonomy() (models.TaxonomyConfig, error)
	// Source names where the taxonomy comes from, for error messages.
	Source() string
}
