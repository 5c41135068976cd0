// Package quality scores how statement-like a block of OCR text is.
//
// The score is advisory: extraction always runs, and callers decide whether to
// trust the result, retry with better input or warn the user.
package quality

import (
	"math"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"fjacquet/statement-ocr/internal/dateutils"
	"fjacquet/statement-ocr/internal/logging"
	"fjacquet/statement-ocr/internal/models"
)

// Issues recorded on a QualityReport.
const (
	IssueEmptyText      = "empty text"
	IssueHighNoise      = "high noise character ratio"
	IssueNoFinancial    = "no currency, date or amount tokens found"
	IssueNoKeywords     = "no financial keywords found"
	IssueTooShort       = "text too short"
	IssueHighRepetition = "high word repetition"
)

// DefaultKeywords is the financial vocabulary scanned for by default.
var DefaultKeywords = []string{
	"PAYMENT", "TRANSACTION", "BALANCE", "DEPOSIT", "WITHDRAWAL", "CHARGE", "CREDIT", "DEBIT",
	"AMAZON", "WALMART", "TARGET", "STARBUCKS", "COSTCO", "UBER", "NETFLIX", "PAYPAL",
}

// Config holds the thresholds and penalties applied by the Assessor.
type Config struct {
	NoiseThreshold      float64
	MinLength           int
	RepetitionThreshold float64
	Keywords            []string
}

// DefaultConfig returns the stock thresholds.
func DefaultConfig() Config {
	return Config{
		NoiseThreshold:      0.2,
		MinLength:           100,
		RepetitionThreshold: 0.5,
		Keywords:            DefaultKeywords,
	}
}

const (
	noisePenalty      = 0.4
	noTokensPenalty   = 0.3
	noKeywordPenalty  = 0.2
	keywordBonus      = 0.05
	keywordBonusCap   = 0.2
	shortTextPenalty  = 0.2
	repetitionPenalty = 0.3
)

var (
	currencyPattern = regexp.MustCompile(`[$€£¥]|\b(?:USD|EUR|GBP|CHF|CAD)\b`)
	datePattern     = regexp.MustCompile(dateutils.TokenExpr)
	amountPattern   = regexp.MustCompile(`\d+\.\d{2}`)
)

// Assessor computes QualityReports. It is safe for concurrent use.
type Assessor struct {
	cfg      Config
	keywords []string
	logger   logging.Logger
}

// NewAssessor creates an Assessor. Keywords are matched case-insensitively.
func NewAssessor(cfg Config, logger logging.Logger) *Assessor {
	if logger == nil {
		logger = logging.GetLogger()
	}
	if len(cfg.Keywords) == 0 {
		cfg.Keywords = DefaultKeywords
	}
	keywords := make([]string, 0, len(cfg.Keywords))
	seen := make(map[string]bool, len(cfg.Keywords))
	for _, k := range cfg.Keywords {
		k = strings.ToUpper(strings.TrimSpace(k))
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		keywords = append(keywords, k)
	}
	return &Assessor{cfg: cfg, keywords: keywords, logger: logger}
}

// Assess scores text. An empty or whitespace-only text scores 0.
func (a *Assessor) Assess(text string) models.QualityReport {
	details := a.measure(text)
	report := models.QualityReport{
		Score:   1.0,
		Issues:  []string{},
		Details: details,
	}

	if strings.TrimSpace(text) == "" {
		report.Score = 0
		report.Issues = append(report.Issues, IssueEmptyText)
		return report
	}

	if details.NoiseCharRatio > a.cfg.NoiseThreshold {
		report.Score -= noisePenalty
		report.Issues = append(report.Issues, IssueHighNoise)
	}

	if !details.HasCurrencyMarks && !details.HasDateLikeTokens && !details.HasAmountLikeTokens {
		report.Score -= noTokensPenalty
		report.Issues = append(report.Issues, IssueNoFinancial)
	}

	if n := len(details.MatchedKeywords); n == 0 {
		report.Score -= noKeywordPenalty
		report.Issues = append(report.Issues, IssueNoKeywords)
	} else {
		report.Score += math.Min(float64(n)*keywordBonus, keywordBonusCap)
	}

	if details.TotalChars < a.cfg.MinLength {
		report.Score -= shortTextPenalty
		report.Issues = append(report.Issues, IssueTooShort)
	}

	if details.WordRepetitionRatio > a.cfg.RepetitionThreshold {
		report.Score -= repetitionPenalty
		report.Issues = append(report.Issues, IssueHighRepetition)
	}

	report.Score = clamp(report.Score)

	a.logger.Debug("Assessed text quality",
		logging.Field{Key: logging.FieldScore, Value: report.Score},
		logging.Field{Key: logging.FieldCount, Value: len(report.Issues)})

	return report
}

func (a *Assessor) measure(text string) models.QualityDetails {
	total := utf8.RuneCountInString(text)
	noise := 0
	for _, r := range text {
		if !isAllowed(r) {
			noise++
		}
	}

	details := models.QualityDetails{
		TotalChars:          total,
		HasCurrencyMarks:    currencyPattern.MatchString(text),
		HasDateLikeTokens:   datePattern.MatchString(text),
		HasAmountLikeTokens: amountPattern.MatchString(text),
		MatchedKeywords:     []string{},
	}
	if total > 0 {
		details.NoiseCharRatio = float64(noise) / float64(total)
	}

	upper := strings.ToUpper(text)
	for _, k := range a.keywords {
		if strings.Contains(upper, k) {
			details.MatchedKeywords = append(details.MatchedKeywords, k)
		}
	}

	words := strings.Fields(strings.ToLower(text))
	if len(words) > 0 {
		unique := make(map[string]struct{}, len(words))
		for _, w := range words {
			unique[w] = struct{}{}
		}
		details.WordRepetitionRatio = 1 - float64(len(unique))/float64(len(words))
	}

	return details
}

// isAllowed reports whether r belongs to the characters expected in statement text.
func isAllowed(r rune) bool {
	if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
		return true
	}
	switch r {
	case '.', ',', '$', '#', '-', '/', '\'', '&':
		return true
	}
	return false
}

func clamp(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
