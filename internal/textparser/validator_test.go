package textparser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fjacquet/statement-ocr/internal/logging"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"$1,234.56", "1234.56"},
		{"-$7.57", "-7.57"},
		{"$-7.57", "-7.57"},
		{"12", "12"},
		{" $4.75 ", "4.75"},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseAmount(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}

	_, err := ParseAmount("")
	assert.Error(t, err)
	_, err = ParseAmount("$abc")
	assert.Error(t, err)
}

func TestValidator_Check(t *testing.T) {
	v := NewValidator(DefaultValidatorConfig(), logging.NewMockLogger())

	tests := []struct {
		name       string
		candidate  Candidate
		wantOK     bool
		wantReason string
	}{
		{"plausible", Candidate{RawDescription: "STARBUCKS", RawAmount: "$4.75"}, true, ""},
		{"description too short", Candidate{RawDescription: " A ", RawAmount: "$4.75"}, false, ReasonDescriptionLength},
		{"description too long", Candidate{RawDescription: strings.Repeat("x", 201), RawAmount: "$4.75"}, false, ReasonDescriptionLength},
		{"description at max", Candidate{RawDescription: strings.Repeat("x", 200), RawAmount: "$4.75"}, true, ""},
		{"zero amount", Candidate{RawDescription: "STARBUCKS", RawAmount: "$0.00"}, false, ReasonAmountRange},
		{"one cent", Candidate{RawDescription: "STARBUCKS", RawAmount: "$0.01"}, true, ""},
		{"one million", Candidate{RawDescription: "WIRE", RawAmount: "$1,000,000.00"}, false, ReasonAmountRange},
		{"below one million", Candidate{RawDescription: "WIRE", RawAmount: "$999,999.99"}, true, ""},
		{"negative magnitude", Candidate{RawDescription: "REFUND", RawAmount: "-$7.57"}, true, ""},
		{"day-shaped integer", Candidate{RawDescription: "COFFEE", RawAmount: "12"}, false, ReasonDateLikeAmount},
		{"day-shaped with currency", Candidate{RawDescription: "COFFEE", RawAmount: "$5"}, false, ReasonDateLikeAmount},
		{"year-shaped integer", Candidate{RawDescription: "COFFEE", RawAmount: "2024"}, false, ReasonDateLikeAmount},
		{"integer outside bands", Candidate{RawDescription: "COFFEE", RawAmount: "45"}, true, ""},
		{"decimal inside band", Candidate{RawDescription: "COFFEE", RawAmount: "12.34"}, true, ""},
		{"decimal whole inside band", Candidate{RawDescription: "COFFEE", RawAmount: "$12.00"}, true, ""},
		{"state abbreviation", Candidate{RawDescription: "TX", RawAmount: "$4.75"}, false, ReasonNoiseDescription},
		{"domain fragment", Candidate{RawDescription: "com", RawAmount: "$4.75"}, false, ReasonNoiseDescription},
		{"type-code suffix", Candidate{RawDescription: "pr:", RawAmount: "$4.75"}, false, ReasonNoiseDescription},
		{"unparsable amount", Candidate{RawDescription: "STARBUCKS", RawAmount: "$"}, false, ReasonUnparsableAmount},
		{"opening balance row", Candidate{
			RawDescription: "Beginning balance", RawAmount: "$1,000.00", Tabular: true,
			Line: "07/01/2025 | Beginning balance | Balance | $1,000.00 | $1,000.00",
		}, false, ReasonOpeningBalance},
		{"opening balance text outside a table", Candidate{
			RawDescription: "Beginning balance", RawAmount: "$1,000.00",
			Line: "Beginning balance - $1,000.00 on 07/01/2025",
		}, true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, reason := v.Check(tt.candidate)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantReason, reason)
		})
	}
}

func TestValidator_Filter_LogsRejections(t *testing.T) {
	logger := logging.NewMockLogger()
	v := NewValidator(DefaultValidatorConfig(), logger)

	kept := v.Filter([]Candidate{
		{RawDescription: "COFFEE", RawAmount: "12", PatternID: PatternDashOn},
		{RawDescription: "COFFEE", RawAmount: "12.34", PatternID: PatternDashOn},
	})

	require.Len(t, kept, 1)
	assert.Equal(t, "12.34", kept[0].RawAmount)

	rejected := logger.GetEntriesByLevel("DEBUG")
	require.Len(t, rejected, 1)
	assert.Equal(t, "Rejected candidate", rejected[0].Message)
	assert.Contains(t, rejected[0].Fields, logging.Field{Key: logging.FieldReason, Value: ReasonDateLikeAmount})
}

func TestValidator_CustomNoiseTokens(t *testing.T) {
	cfg := DefaultValidatorConfig()
	cfg.NoiseTokens = []string{"SUBTOTAL"}
	v := NewValidator(cfg, logging.NewMockLogger())

	ok, _ := v.Check(Candidate{RawDescription: "SUBTOTAL", RawAmount: "$45.10"})
	assert.False(t, ok)
	ok, _ = v.Check(Candidate{RawDescription: "TX", RawAmount: "$45.10"})
	assert.True(t, ok)
}
