package common

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fjacquet/statement-ocr/internal/logging"
	"fjacquet/statement-ocr/internal/models"
)

func sampleResult() *models.ExtractionResult {
	return &models.ExtractionResult{
		Transactions: []models.Transaction{
			{Date: "2025-07-11", Description: "STARBUCKS STORE 10001 AUSTIN TX", Amount: 4.75,
				Type: models.TransactionTypeExpense, Category: models.CategoryFood, Confidence: 0.8},
			{Date: "Pending", Description: "UBER TRIP", Amount: 18.2,
				Type: models.TransactionTypeExpense, Category: models.CategoryTransport, Confidence: 0.75},
		},
		Quality: models.QualityReport{Score: 0.95, Issues: []string{}},
	}
}

func TestWriteTransactionsCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTransactionsCSV(&buf, sampleResult().Transactions, ';'))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Date;Description;Amount;Type;Category;Confidence", lines[0])
	assert.Equal(t, "2025-07-11;STARBUCKS STORE 10001 AUSTIN TX;4.75;expense;Food;0.8", lines[1])
	assert.Equal(t, "Pending;UBER TRIP;18.2;expense;Transportation;0.75", lines[2])

	assert.Error(t, WriteTransactionsCSV(&buf, nil, ','))
}

func TestWriteTransactionsToCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "transactions.csv")
	logger := logging.NewMockLogger()

	require.NoError(t, WriteTransactionsToCSV(sampleResult().Transactions, path, ',', logger))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "Date,Description,Amount,Type,Category,Confidence\n"))
	assert.True(t, logger.HasEntry("INFO", "Writing transactions to CSV file"))
}

func TestWriteResult_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteResult(&buf, sampleResult(), FormatJSON, ','))

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Contains(t, decoded, "transactions")
	assert.Contains(t, decoded, "quality")

	txs := decoded["transactions"].([]interface{})
	first := txs[0].(map[string]interface{})
	assert.Equal(t, "2025-07-11", first["date"])
	assert.Equal(t, 4.75, first["amount"])
	assert.Equal(t, "expense", first["type"])
	assert.NotContains(t, first, "fallback")
}

func TestWriteResult_Errors(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, WriteResult(&buf, nil, FormatJSON, ','))
	assert.Error(t, WriteResult(&buf, sampleResult(), "xml", ','))
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	f, err = ParseFormat(" CSV ")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, f)

	_, err = ParseFormat("xlsx")
	assert.Error(t, err)
}

func TestWriteJSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "result.json")
	require.NoError(t, WriteJSONFile(path, sampleResult()))

	var decoded models.ExtractionResult
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Len(t, decoded.Transactions, 2)
	assert.Equal(t, 0.95, decoded.Quality.Score)
}
