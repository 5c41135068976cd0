package categorizer

import (
	"fmt"
	"strings"

	"fjacquet/statement-ocr/internal/models"
	"fjacquet/statement-ocr/internal/parsererror"
	"fjacquet/statement-ocr/internal/quality"
)

// DefaultTypeRules is the built-in type-rule table. Order matters: the income
// rule runs first, so "payment", which appears in both lists, resolves to income.
func DefaultTypeRules() []models.TypeRule {
	return []models.TypeRule{
		{
			Type:     models.TransactionTypeIncome,
			Keywords: []string{"deposit", "credit", "refund", "payment", "transfer in", "income"},
		},
		{
			Type:     models.TransactionTypeExpense,
			Keywords: []string{"withdrawal", "debit", "purchase", "payment", "fee", "charge"},
		},
	}
}

// DefaultCategories is the built-in ordered category table.
func DefaultCategories() []models.CategoryConfig {
	return []models.CategoryConfig{
		{Name: "food", Keywords: []string{
			"starbucks", "coffee", "cafe", "restaurant", "pizza", "burger", "taco", "mcdonald",
			"chipotle", "dunkin", "doordash", "grubhub", "uber eats", "grocery", "whole foods",
			"trader joe", "kroger", "safeway", "heb", "bakery",
		}},
		{Name: "transportation", Keywords: []string{
			"uber", "lyft", "taxi", "shell", "exxon", "chevron", "fuel", "gas station", "parking",
			"toll", "transit", "metro", "airline", "airlines",
		}},
		{Name: "entertainment", Keywords: []string{
			"netflix", "spotify", "hulu", "disney", "cinema", "movie", "theater", "steam",
			"xbox", "playstation", "ticketmaster",
		}},
		{Name: "utilities", Keywords: []string{
			"electric", "water", "internet", "comcast", "verizon", "at&t", "t-mobile", "utility",
			"energy",
		}},
		{Name: "shopping", Keywords: []string{
			"amazon", "amzn", "walmart", "target", "costco", "best buy", "ebay", "etsy", "mall",
		}},
		{Name: "healthcare", Keywords: []string{
			"pharmacy", "cvs", "walgreens", "hospital", "clinic", "medical", "dental", "doctor",
		}},
		{Name: "finance", Keywords: []string{
			"payment", "bank", "transfer", "interest", "atm", "loan", "insurance",
		}},
	}
}

// DefaultTaxonomy returns the complete built-in classification tables.
func DefaultTaxonomy() models.TaxonomyConfig {
	return models.TaxonomyConfig{
		Categories:      DefaultCategories(),
		TypeRules:       DefaultTypeRules(),
		QualityKeywords: append([]string(nil), quality.DefaultKeywords...),
	}
}

// WithDefaults fills every empty section of cfg with the built-in table.
func WithDefaults(cfg models.TaxonomyConfig) models.TaxonomyConfig {
	def := DefaultTaxonomy()
	if len(cfg.Categories) == 0 {
		cfg.Categories = def.Categories
	}
	if len(cfg.TypeRules) == 0 {
		cfg.TypeRules = def.TypeRules
	}
	if len(cfg.QualityKeywords) == 0 {
		cfg.QualityKeywords = def.QualityKeywords
	}
	return cfg
}

// ValidateTaxonomy checks a loaded taxonomy for unusable entries.
func ValidateTaxonomy(cfg models.TaxonomyConfig, source string) error {
	for i, c := range cfg.Categories {
		if strings.TrimSpace(c.Name) == "" {
			return &parsererror.ValidationError{FilePath: source, Reason: fmt.Sprintf("category %d has no name", i)}
		}
	}
	for i, r := range cfg.TypeRules {
		if r.Type != models.TransactionTypeIncome && r.Type != models.TransactionTypeExpense {
			return &parsererror.ValidationError{
				FilePath: source,
				Reason:   fmt.Sprintf("type rule %d has unknown type %q", i, r.Type),
			}
		}
		if len(r.Keywords) == 0 {
			return &parsererror.ValidationError{FilePath: source, Reason: fmt.Sprintf("type rule %d has no keywords", i)}
		}
	}
	return nil
}
