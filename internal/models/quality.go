package models

// QualityDetails holds the raw measurements behind a QualityReport.
type QualityDetails struct {
	TotalChars          int      `json:"totalChars"`
	NoiseCharRatio      float64  `json:"noiseCharRatio"`
	HasCurrencyMarks    bool     `json:"hasCurrencyMarks"`
	HasDateLikeTokens   bool     `json:"hasDateLikeTokens"`
	HasAmountLikeTokens bool     `json:"hasAmountLikeTokens"`
	MatchedKeywords     []string `json:"matchedKeywords"`
	WordRepetitionRatio float64  `json:"wordRepetitionRatio"`
}

// QualityReport is an advisory score describing how statement-like a text is.
// It never blocks extraction.
type QualityReport struct {
	Score   float64        `json:"score"`
	Issues  []string       `json:"issues"`
	Details QualityDetails `json:"details"`
}

// HasIssue reports whether the given issue was recorded.
func (r QualityReport) HasIssue(issue string) bool {
	for _, i := range r.Issues {
		if i == issue {
			return true
		}
	}
	return false
}

// ExtractionResult is the sole output of the extraction core. Transactions keep
// discovery order and always contain at least one entry.
type ExtractionResult struct {
	Transactions []Transaction `json:"transactions"`
	Quality      QualityReport `json:"quality"`
}

// IsFallback reports whether the result carries only the placeholder entry.
func (r ExtractionResult) IsFallback() bool {
	return len(r.Transactions) == 1 && r.Transactions[0].IsFallback()
}
