package normalizer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fjacquet/statement-ocr/internal/categorizer"
	"fjacquet/statement-ocr/internal/logging"
	"fjacquet/statement-ocr/internal/models"
	"fjacquet/statement-ocr/internal/textparser"
)

var fixedNow = time.Date(2025, 8, 1, 15, 4, 5, 0, time.UTC)

func newTestNormalizer() *Normalizer {
	logger := logging.NewMockLogger()
	return NewNormalizer(
		categorizer.NewCategorizer(models.TaxonomyConfig{}, logger),
		func() time.Time { return fixedNow },
		logger,
	)
}

func TestNormalize_Starbucks(t *testing.T) {
	n := newTestNormalizer()
	tx := n.Normalize(textparser.Candidate{
		RawDescription: "STARBUCKS STORE 10001 AUSTIN TX",
		RawAmount:      "$4.75",
		RawDate:        "07/11/2025",
		Confidence:     0.8,
	})

	assert.Equal(t, models.Transaction{
		Date:        "2025-07-11",
		Description: "STARBUCKS STORE 10001 AUSTIN TX",
		Amount:      4.75,
		Type:        models.TransactionTypeExpense,
		Category:    models.CategoryFood,
		Confidence:  0.8,
	}, tx)
}

func TestNormalize_NegativeAmountStoredAsMagnitude(t *testing.T) {
	n := newTestNormalizer()
	tx := n.Normalize(textparser.Candidate{
		RawDescription: "AMAZON MKTPLACE PMTS Amzn.com/billWA",
		RawAmount:      "-$7.57",
		RawDate:        "2/10/25",
		Confidence:     0.8,
	})

	assert.Equal(t, 7.57, tx.Amount)
	assert.Equal(t, "2025-02-10", tx.Date)
	assert.Equal(t, models.TransactionTypeIncome, tx.Type)
	assert.Equal(t, models.CategoryShopping, tx.Category)
}

func TestNormalize_Dates(t *testing.T) {
	n := newTestNormalizer()

	tests := []struct {
		raw  string
		want string
	}{
		{"02/10/2025", "2025-02-10"},
		{"2-10-25", "2025-02-10"},
		{"Pending", models.PendingDate},
		{"", "2025-08-01"},
		{"13/45/2025", "2025-08-01"},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			tx := n.Normalize(textparser.Candidate{RawDescription: "COFFEE", RawAmount: "$1.00", RawDate: tt.raw, Confidence: 0.7})
			assert.Equal(t, tt.want, tx.Date)
			assert.True(t, tx.HasValidDate())
		})
	}
}

func TestNormalize_RoundsToCents(t *testing.T) {
	n := newTestNormalizer()
	tx := n.Normalize(textparser.Candidate{RawDescription: "FUEL", RawAmount: "$1,234.5678", RawDate: "07/01/2025"})
	assert.Equal(t, 1234.57, tx.Amount)
}

func TestNormalizeAll_PreservesOrder(t *testing.T) {
	n := newTestNormalizer()
	txs := n.NormalizeAll([]textparser.Candidate{
		{RawDescription: "B SHOP", RawAmount: "$2.00", RawDate: "07/02/2025"},
		{RawDescription: "A SHOP", RawAmount: "$1.00", RawDate: "07/01/2025"},
	})
	require.Len(t, txs, 2)
	assert.Equal(t, "B SHOP", txs[0].Description)
	assert.Equal(t, "A SHOP", txs[1].Description)
	assert.Equal(t, fixedNow, n.Now())
}

func TestNewNormalizer_Defaults(t *testing.T) {
	n := NewNormalizer(nil, nil, logging.NewMockLogger())
	tx := n.Normalize(textparser.Candidate{RawDescription: "NETFLIX", RawAmount: "$15.49"})
	assert.Equal(t, models.CategoryEntertainment, tx.Category)
	assert.True(t, tx.HasValidDate())
}
