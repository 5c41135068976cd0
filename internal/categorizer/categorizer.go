// Package categorizer infers the direction and category of a transaction from
// its description using ordered keyword tables.
package categorizer

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"fjacquet/statement-ocr/internal/logging"
	"fjacquet/statement-ocr/internal/models"
)

type categoryRule struct {
	title    string
	keywords []string
}

type typeRule struct {
	txType   models.TransactionType
	keywords []string
}

// Categorizer applies a taxonomy. It is immutable after construction and safe
// for concurrent use.
type Categorizer struct {
	categories []categoryRule
	typeRules  []typeRule
	taxonomy   models.TaxonomyConfig
	logger     logging.Logger
}

// NewCategorizer creates a Categorizer from a taxonomy. Empty sections of the
// taxonomy fall back to the built-in tables.
func NewCategorizer(taxonomy models.TaxonomyConfig, logger logging.Logger) *Categorizer {
	if logger == nil {
		logger = logging.GetLogger()
	}
	taxonomy = WithDefaults(taxonomy)
	titler := cases.Title(language.English)

	c := &Categorizer{taxonomy: taxonomy, logger: logger}
	for _, cat := range taxonomy.Categories {
		c.categories = append(c.categories, categoryRule{
			title:    titler.String(strings.TrimSpace(cat.Name)),
			keywords: lowerAll(cat.Keywords),
		})
	}
	for _, r := range taxonomy.TypeRules {
		c.typeRules = append(c.typeRules, typeRule{txType: r.Type, keywords: lowerAll(r.Keywords)})
	}
	return c
}

// NewCategorizerFromStore loads and validates the taxonomy from store and
// builds a Categorizer.
func NewCategorizerFromStore(store TaxonomyStoreInterface, logger logging.Logger) (*Categorizer, error) {
	taxonomy, err := store.LoadTaxonomy()
	if err != nil {
		return nil, fmt.Errorf("failed to load taxonomy: %w", err)
	}
	if err := ValidateTaxonomy(taxonomy, store.Source()); err != nil {
		return nil, err
	}
	return NewCategorizer(taxonomy, logger), nil
}

// Taxonomy returns the effective taxonomy, built-in tables included.
func (c *Categorizer) Taxonomy() models.TaxonomyConfig {
	return c.taxonomy
}

// InferType walks the type-rule table in order; the first rule with a keyword
// contained in the lower-cased description decides. When no rule matches, the
// sign of the amount as parsed decides: positive is an expense, zero or
// negative is income.
func (c *Categorizer) InferType(description string, amount decimal.Decimal) models.TransactionType {
	desc := strings.ToLower(description)
	for _, r := range c.typeRules {
		if kw, ok := firstContained(desc, r.keywords); ok {
			c.logger.WithFields(
				logging.Field{Key: logging.FieldDescription, Value: description},
				logging.Field{Key: logging.FieldType, Value: r.txType},
				logging.Field{Key: "keyword", Value: kw},
			).Debug("Type inferred from keyword")
			return r.txType
		}
	}
	if amount.IsPositive() {
		return models.TransactionTypeExpense
	}
	return models.TransactionTypeIncome
}

// Categorize returns the title-cased name of the first category with a keyword
// contained in the lower-cased description, or "Uncategorized".
func (c *Categorizer) Categorize(description string) string {
	desc := strings.ToLower(description)
	for _, cat := range c.categories {
		if _, ok := firstContained(desc, cat.keywords); ok {
			return cat.title
		}
	}
	return models.CategoryUncategorized
}

// Categories returns the title-cased category names in evaluation order.
func (c *Categorizer) Categories() []string {
	names := make([]string, len(c.categories))
	for i, cat := range c.categories {
		names[i] = cat.title
	}
	return names
}

func firstContained(s string, keywords []string) (string, bool) {
	for _, kw := range keywords {
		if kw != "" && strings.Contains(s, kw) {
			return kw, true
		}
	}
	return "", false
}

func lowerAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		out = append(out, strings.ToLower(strings.TrimSpace(s)))
	}
	return out
}
