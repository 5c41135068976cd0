// Package categorize handles the description classification command
package categorize

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"fjacquet/statement-ocr/cmd/root"
	"fjacquet/statement-ocr/internal/categorizer"
	"fjacquet/statement-ocr/internal/models"
	"fjacquet/statement-ocr/internal/textparser"
)

var (
	description string
	amount      string
)

// Classification is the type and category assigned to one description.
type Classification struct {
	Description string                 `json:"description"`
	Amount      decimal.Decimal        `json:"amount"`
	Type        models.TransactionType `json:"type"`
	Category    string                 `json:"category"`
}

// Cmd represents the categorize command
var Cmd = &cobra.Command{
	Use:   "categorize",
	Short: "Categorize transactions by description",
	Long: `Show the transaction type and category the extractor would assign to a description.

The amount is only consulted when no type keyword matches: a positive amount is
an expense, zero or negative is income.`,
	Run: categorizeFunc,
}

func init() {
	Cmd.Flags().StringVarP(&description, "description", "d", "", "Transaction description to categorize")
	Cmd.Flags().StringVarP(&amount, "amount", "a", "0", "Transaction amount as printed, e.g. -$7.57 (optional)")
	_ = Cmd.MarkFlagRequired("description")
}

func categorizeFunc(cmd *cobra.Command, args []string) {
	logger := root.GetLogger()
	c := root.GetContainer()
	if c == nil {
		logger.Fatal("Container not initialized")
	}

	result, err := Classify(c.GetCategorizer(), description, amount)
	if err != nil {
		logger.Fatalf("Error categorizing transaction: %v", err)
	}
	Print(cmd.OutOrStdout(), result)
}

// Classify assigns a type and category to description.
func Classify(cat *categorizer.Categorizer, description, rawAmount string) (Classification, error) {
	if description == "" {
		return Classification{}, fmt.Errorf("description is required for categorization")
	}
	value := decimal.Zero
	if rawAmount != "" {
		parsed, err := textparser.ParseAmount(rawAmount)
		if err != nil {
			return Classification{}, err
		}
		value = parsed
	}
	return Classification{
		Description: description,
		Amount:      value,
		Type:        cat.InferType(description, value),
		Category:    cat.Categorize(description),
	}, nil
}

// Print writes the classification as two labelled lines.
func Print(w io.Writer, c Classification) {
	_, _ = fmt.Fprintf(w, "Type: %s\nCategory: %s\n", c.Type, c.Category)
}
