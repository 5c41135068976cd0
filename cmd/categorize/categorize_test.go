package categorize_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fjacquet/statement-ocr/cmd/categorize"
	"fjacquet/statement-ocr/internal/categorizer"
	"fjacquet/statement-ocr/internal/logging"
	"fjacquet/statement-ocr/internal/models"
)

func TestCategorizeCommand_Metadata(t *testing.T) {
	assert.Equal(t, "categorize", categorize.Cmd.Use)
	assert.Contains(t, categorize.Cmd.Short, "Categorize transactions")
	assert.NotNil(t, categorize.Cmd.Run)
}

func TestCategorizeCommand_Flags(t *testing.T) {
	descFlag := categorize.Cmd.Flags().Lookup("description")
	require.NotNil(t, descFlag)
	assert.Equal(t, "d", descFlag.Shorthand)

	amountFlag := categorize.Cmd.Flags().Lookup("amount")
	require.NotNil(t, amountFlag)
	assert.Equal(t, "a", amountFlag.Shorthand)
	assert.Equal(t, "0", amountFlag.DefValue)
}

func TestClassify(t *testing.T) {
	cat := categorizer.NewCategorizer(categorizer.DefaultTaxonomy(), logging.NewMockLogger())

	tests := []struct {
		name        string
		description string
		amount      string
		wantType    models.TransactionType
		wantCat     string
	}{
		{"keyword expense", "STARBUCKS PURCHASE", "$4.75", models.TransactionTypeExpense, "Food"},
		{"payment is income", "PAYMENT THANK YOU", "-$500.00", models.TransactionTypeIncome, "Finance"},
		{"positive sign fallback", "NETFLIX.COM", "$15.49", models.TransactionTypeExpense, "Entertainment"},
		{"negative sign fallback", "MYSTERY VENDOR", "-$3.00", models.TransactionTypeIncome, "Uncategorized"},
		{"no amount", "MYSTERY VENDOR", "", models.TransactionTypeIncome, "Uncategorized"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := categorize.Classify(cat, tt.description, tt.amount)
			require.NoError(t, err)
			assert.Equal(t, tt.wantType, got.Type)
			assert.Equal(t, tt.wantCat, got.Category)
		})
	}
}

func TestClassify_Errors(t *testing.T) {
	cat := categorizer.NewCategorizer(categorizer.DefaultTaxonomy(), logging.NewMockLogger())

	_, err := categorize.Classify(cat, "", "1.00")
	assert.Error(t, err)

	_, err = categorize.Classify(cat, "STARBUCKS", "four dollars")
	assert.Error(t, err)
}

func TestPrint(t *testing.T) {
	var buf bytes.Buffer
	categorize.Print(&buf, categorize.Classification{Type: models.TransactionTypeExpense, Category: "Food"})
	assert.Equal(t, "Type: expense\nCategory: Food\n", buf.String())
}
