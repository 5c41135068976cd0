package quality

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fjacquet/statement-ocr/internal/logging"
)

const statementText = `ACCOUNT STATEMENT
STARBUCKS STORE 10001 AUSTIN TX - $4.75 on 07/11/2025
PAYMENT FROM CHK 7012 CONF#162rrgson - $700.00 on 07/23/2025
AMAZON MKTPLACE PMTS Amzn.com/billWA -$7.57 on 02/10/2025
DEPOSIT PAYROLL ACME CORP - $2,400.00 on 07/01/2025
Ending balance $3,120.18`

func newTestAssessor() *Assessor {
	return NewAssessor(DefaultConfig(), logging.NewMockLogger())
}

func TestAssess_EmptyText(t *testing.T) {
	for _, text := range []string{"", "   \n\t  "} {
		report := newTestAssessor().Assess(text)
		assert.Equal(t, 0.0, report.Score)
		assert.Equal(t, []string{IssueEmptyText}, report.Issues)
	}
}

func TestAssess_SingleShortLine(t *testing.T) {
	report := newTestAssessor().Assess("STARBUCKS STORE 10001 AUSTIN TX - $4.75 on 07/11/2025")

	assert.InDelta(t, 0.85, report.Score, 1e-9)
	assert.Equal(t, []string{IssueTooShort}, report.Issues)
	assert.Equal(t, 0.0, report.Details.NoiseCharRatio)
	assert.True(t, report.Details.HasCurrencyMarks)
	assert.True(t, report.Details.HasDateLikeTokens)
	assert.True(t, report.Details.HasAmountLikeTokens)
	assert.Equal(t, []string{"STARBUCKS"}, report.Details.MatchedKeywords)
	assert.Equal(t, 0.0, report.Details.WordRepetitionRatio)
}

func TestAssess_RealisticStatementCapsBonus(t *testing.T) {
	report := newTestAssessor().Assess(statementText)

	assert.Equal(t, 1.0, report.Score)
	assert.Empty(t, report.Issues)
	assert.Subset(t, report.Details.MatchedKeywords, []string{"PAYMENT", "BALANCE", "DEPOSIT", "STARBUCKS", "AMAZON"})
}

func TestAssess_GarbageClampsToZero(t *testing.T) {
	text := strings.Repeat("%%%% ", 30)
	report := newTestAssessor().Assess(text)

	assert.Equal(t, 0.0, report.Score)
	assert.Equal(t, []string{IssueHighNoise, IssueNoFinancial, IssueNoKeywords, IssueHighRepetition}, report.Issues)
	assert.Greater(t, report.Details.NoiseCharRatio, 0.2)
	assert.InDelta(t, 1-1.0/30, report.Details.WordRepetitionRatio, 1e-9)
}

func TestAssess_NoKeywordsPenalty(t *testing.T) {
	text := "lorem ipsum dolor sit amet 12.50 consectetur adipiscing elit sed do eiusmod tempor incididunt ut labore et dolore magna"
	report := newTestAssessor().Assess(text)

	require.GreaterOrEqual(t, report.Details.TotalChars, 100)
	assert.Equal(t, []string{IssueNoKeywords}, report.Issues)
	assert.InDelta(t, 0.8, report.Score, 1e-9)
}

func TestAssess_KeywordsCaseInsensitive(t *testing.T) {
	report := newTestAssessor().Assess("monthly payment and deposit")
	assert.Equal(t, []string{"PAYMENT", "DEPOSIT"}, report.Details.MatchedKeywords)
}

func TestAssess_CustomVocabulary(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Keywords = []string{"virement", "VIREMENT", " "}
	report := NewAssessor(cfg, nil).Assess("VIREMENT BANCAIRE 12.00")
	assert.Equal(t, []string{"VIREMENT"}, report.Details.MatchedKeywords)
}

func TestAssess_Deterministic(t *testing.T) {
	a := newTestAssessor()
	assert.Equal(t, a.Assess(statementText), a.Assess(statementText))
}

func TestIsAllowed(t *testing.T) {
	for _, r := range "aZ09 \t.,$#-/'&é" {
		assert.True(t, isAllowed(r), "rune %q", r)
	}
	for _, r := range "|*@%(){}" {
		assert.False(t, isAllowed(r), "rune %q", r)
	}
}
