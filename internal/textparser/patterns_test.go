package textparser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fjacquet/statement-ocr/internal/models"
)

func patternByID(t *testing.T, id int) Pattern {
	t.Helper()
	for _, p := range DefaultPatterns() {
		if p.ID == id {
			return p
		}
	}
	t.Fatalf("pattern %d not found", id)
	return Pattern{}
}

func TestDefaultPatterns_LayoutFamilies(t *testing.T) {
	tests := []struct {
		name     string
		id       int
		line     string
		wantDesc string
		wantAmt  string
		wantDate string
	}{
		{"dash on", PatternDashOn, "STARBUCKS STORE 10001 AUSTIN TX - $4.75 on 07/11/2025",
			"STARBUCKS STORE 10001 AUSTIN TX", "$4.75", "07/11/2025"},
		{"dash on without currency mark", PatternDashOn, "COFFEE BAR - 12 on 07/12/2025",
			"COFFEE BAR", "12", "07/12/2025"},
		{"space separated", PatternSpaceSeparated, "SHELL OIL 5744 $38.10 07/14/2025",
			"SHELL OIL 5744", "$38.10", "07/14/2025"},
		{"table row", PatternTableRow, "07/15/2025 | HEB #123 AUSTIN | Debit | $52.10 | $1,200.00",
			"HEB #123 AUSTIN", "$52.10", "07/15/2025"},
		{"pending row", PatternPendingRow, "Pending | UBER TRIP | Debit | $18.20 | $1,181.80",
			"UBER TRIP", "$18.20", models.PendingDate},
		{"store number", PatternStoreNumber, "TARGET #1234 - $25.99 on 07/02/2025",
			"TARGET #1234", "$25.99", "07/02/2025"},
		{"phone number", PatternPhoneNumber, "NETFLIX.COM 866-579-7172 CA - $15.49 on 03/01/2025",
			"NETFLIX.COM", "$15.49", "03/01/2025"},
		{"dotted domain", PatternDottedDomain, "AMAZON MKTPLACE PMTS Amzn.com/billWA -$7.57 on 02/10/2025",
			"Amzn.com/billWA", "$7.57", "02/10/2025"},
		{"leading asterisk", PatternLeadingAsterisk, "*SPOTIFY USA $9.99 on 03/02/2025",
			"SPOTIFY USA", "$9.99", "03/02/2025"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, ok := patternByID(t, tt.id).Match(tt.line, 1)
			require.True(t, ok)
			assert.Equal(t, tt.wantDesc, c.Description())
			assert.Equal(t, tt.wantAmt, c.RawAmount)
			assert.Equal(t, tt.wantDate, c.RawDate)
			assert.Equal(t, tt.id, c.PatternID)
			assert.Equal(t, tt.line, c.Line)
		})
	}
}

func TestDefaultPatterns_ConfidenceAndOrder(t *testing.T) {
	patterns := DefaultPatterns()
	require.Len(t, patterns, 8)
	for i, p := range patterns {
		assert.Equal(t, i+1, p.ID)
		assert.Greater(t, p.Confidence, 0.0)
		assert.LessOrEqual(t, p.Confidence, 1.0)
	}
	assert.Equal(t, 0.8, patterns[0].Confidence)
	assert.True(t, patterns[2].Tabular)
	assert.True(t, patterns[3].Tabular)
	assert.Equal(t, models.PendingDate, patterns[3].FixedDate)
}

func TestPattern_NoMatch(t *testing.T) {
	_, ok := patternByID(t, PatternDashOn).Match("Statement period ending July 2025", 1)
	assert.False(t, ok)

	_, ok = patternByID(t, PatternTableRow).Match("Date | Description | Type | Amount | Balance", 1)
	assert.False(t, ok)
}

func TestNewPattern_Validation(t *testing.T) {
	_, err := NewPattern(99, "bad-regex", `(?P<desc>[`, 0.5)
	assert.Error(t, err)

	_, err = NewPattern(99, "no-amount", `(?P<desc>\w+) (?P<date>\d+)`, 0.5)
	assert.Error(t, err)

	_, err = NewPattern(99, "no-date", `(?P<desc>\w+) (?P<amount>\d+)`, 0.5)
	assert.Error(t, err)

	_, err = NewPattern(99, "zero-confidence", `(?P<desc>\w+) (?P<amount>\d+) (?P<date>\S+)`, 0)
	assert.Error(t, err)

	p, err := NewPattern(99, "fixed-date", `(?P<desc>\w+) (?P<amount>\d+\.\d{2})`, 0.5, WithFixedDate("01/01/2025"))
	require.NoError(t, err)
	c, ok := p.Match("COFFEE 3.50", 4)
	require.True(t, ok)
	assert.Equal(t, "01/01/2025", c.RawDate)
	assert.Equal(t, 4, c.LineNo)
}
