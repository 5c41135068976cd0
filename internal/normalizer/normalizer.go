// Package normalizer converts validated candidates into transactions.
package normalizer

import (
	"time"

	"fjacquet/statement-ocr/internal/categorizer"
	"fjacquet/statement-ocr/internal/dateutils"
	"fjacquet/statement-ocr/internal/logging"
	"fjacquet/statement-ocr/internal/models"
	"fjacquet/statement-ocr/internal/textparser"
)

// Normalizer turns candidates into transactions: canonical date, positive
// magnitude, inferred type and category. Confidence is carried through.
type Normalizer struct {
	categorizer *categorizer.Categorizer
	now         func() time.Time
	logger      logging.Logger
}

// NewNormalizer creates a Normalizer. now supplies the processing date used
// for candidates without a usable date; nil selects time.Now.
func NewNormalizer(c *categorizer.Categorizer, now func() time.Time, logger logging.Logger) *Normalizer {
	if logger == nil {
		logger = logging.GetLogger()
	}
	if c == nil {
		c = categorizer.NewCategorizer(models.TaxonomyConfig{}, logger)
	}
	if now == nil {
		now = time.Now
	}
	return &Normalizer{categorizer: c, now: now, logger: logger}
}

// Normalize converts one candidate.
func (n *Normalizer) Normalize(c textparser.Candidate) models.Transaction {
	desc := c.Description()
	amount := c.Amount()
	magnitude, _ := amount.Abs().Round(2).Float64()

	return models.Transaction{
		Date:        dateutils.NormalizeStatementDate(c.RawDate, n.now()),
		Description: desc,
		Amount:      magnitude,
		Type:        n.categorizer.InferType(desc, amount),
		Category:    n.categorizer.Categorize(desc),
		Confidence:  c.Confidence,
	}
}

// NormalizeAll converts candidates, preserving order.
func (n *Normalizer) NormalizeAll(candidates []textparser.Candidate) []models.Transaction {
	out := make([]models.Transaction, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, n.Normalize(c))
	}
	return out
}

// Now returns the processing time.
func (n *Normalizer) Now() time.Time {
	return n.now()
}
