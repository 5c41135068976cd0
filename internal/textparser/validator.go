package textparser

import (
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"fjacquet/statement-ocr/internal/logging"
)

// Rejection reasons reported by Validator.Check.
const (
	ReasonDescriptionLength = "description length out of range"
	ReasonAmountRange       = "amount out of range"
	ReasonDateLikeAmount    = "amount looks like a date fragment"
	ReasonNoiseDescription  = "description is a layout-noise token"
	ReasonOpeningBalance    = "opening balance row"
	ReasonUnparsableAmount  = "amount does not parse"
)

// OpeningBalanceMarker identifies table rows that carry the opening balance.
const OpeningBalanceMarker = "Beginning balance"

// DefaultNoiseTokens are descriptions that are artifacts of column layouts:
// bare state abbreviations, domain or country fragments and type-code suffixes.
var DefaultNoiseTokens = []string{
	"AL", "AK", "AZ", "AR", "CA", "CO", "CT", "DE", "FL", "GA",
	"HI", "ID", "IL", "IN", "IA", "KS", "KY", "LA", "ME", "MD",
	"MA", "MI", "MN", "MS", "MO", "MT", "NE", "NV", "NH", "NJ",
	"NM", "NY", "NC", "ND", "OH", "OK", "OR", "PA", "RI", "SC",
	"SD", "TN", "TX", "UT", "VT", "VA", "WA", "WV", "WI", "WY", "DC",
	"com", "net", "org", "US", "USA",
	"Hr", "Bd", "<M", "pr:",
}

// ValidatorConfig holds the plausibility bounds.
type ValidatorConfig struct {
	MinDescriptionLength int
	MaxDescriptionLength int
	MinAmount            decimal.Decimal
	// MaxAmount is exclusive.
	MaxAmount   decimal.Decimal
	NoiseTokens []string
}

// DefaultValidatorConfig returns the standard bounds.
func DefaultValidatorConfig() ValidatorConfig {
	return ValidatorConfig{
		MinDescriptionLength: 2,
		MaxDescriptionLength: 200,
		MinAmount:            decimal.New(1, -2),
		MaxAmount:            decimal.New(1_000_000, 0),
		NoiseTokens:          DefaultNoiseTokens,
	}
}

// Validator rejects implausible candidates.
type Validator struct {
	cfg    ValidatorConfig
	noise  map[string]struct{}
	logger logging.Logger
}

// NewValidator creates a Validator.
func NewValidator(cfg ValidatorConfig, logger logging.Logger) *Validator {
	if logger == nil {
		logger = logging.GetLogger()
	}
	noise := make(map[string]struct{}, len(cfg.NoiseTokens))
	for _, tok := range cfg.NoiseTokens {
		noise[strings.TrimSpace(tok)] = struct{}{}
	}
	return &Validator{cfg: cfg, noise: noise, logger: logger}
}

// Check returns an empty reason when c is plausible.
func (v *Validator) Check(c Candidate) (bool, string) {
	desc := c.Description()
	if n := utf8.RuneCountInString(desc); n < v.cfg.MinDescriptionLength || n > v.cfg.MaxDescriptionLength {
		return false, ReasonDescriptionLength
	}

	amount, err := ParseAmount(c.RawAmount)
	if err != nil {
		return false, ReasonUnparsableAmount
	}
	magnitude := amount.Abs()
	if magnitude.LessThan(v.cfg.MinAmount) || !magnitude.LessThan(v.cfg.MaxAmount) {
		return false, ReasonAmountRange
	}
	if c.HasIntegerAmount() && isDateLike(magnitude) {
		return false, ReasonDateLikeAmount
	}

	if _, ok := v.noise[desc]; ok {
		return false, ReasonNoiseDescription
	}
	if c.Tabular && strings.Contains(c.Line, OpeningBalanceMarker) {
		return false, ReasonOpeningBalance
	}
	return true, ""
}

// Filter returns the candidates that pass Check, preserving order.
// Rejections have no side effect beyond a debug log entry.
func (v *Validator) Filter(candidates []Candidate) []Candidate {
	kept := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		ok, reason := v.Check(c)
		if !ok {
			v.logger.WithFields(
				logging.Field{Key: logging.FieldDescription, Value: c.Description()},
				logging.Field{Key: logging.FieldAmount, Value: c.RawAmount},
				logging.Field{Key: logging.FieldPattern, Value: c.PatternID},
				logging.Field{Key: logging.FieldReason, Value: reason},
			).Debug("Rejected candidate")
			continue
		}
		kept = append(kept, c)
	}
	return kept
}

var (
	dayMin  = decimal.NewFromInt(1)
	dayMax  = decimal.NewFromInt(31)
	yearMin = decimal.NewFromInt(1900)
	yearMax = decimal.NewFromInt(2100)
)

// isDateLike covers days [1,31], which includes months [1,12], and years.
func isDateLike(d decimal.Decimal) bool {
	if !d.Equal(d.Truncate(0)) {
		return false
	}
	inDays := d.GreaterThanOrEqual(dayMin) && d.LessThanOrEqual(dayMax)
	inYears := d.GreaterThanOrEqual(yearMin) && d.LessThanOrEqual(yearMax)
	return inDays || inYears
}
