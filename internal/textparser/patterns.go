package textparser

import (
	"fmt"
	"regexp"

	"fjacquet/statement-ocr/internal/dateutils"
	"fjacquet/statement-ocr/internal/models"
)

// Pattern IDs of the built-in layout families, in priority order.
const (
	PatternDashOn = iota + 1
	PatternSpaceSeparated
	PatternTableRow
	PatternPendingRow
	PatternStoreNumber
	PatternPhoneNumber
	PatternDottedDomain
	PatternLeadingAsterisk
)

// Named capture groups every pattern expression uses.
const (
	groupDescription = "desc"
	groupAmount      = "amount"
	groupDate        = "date"
)

// Pattern is one declarative layout rule. Expr must define the named groups
// "desc" and "amount", and either "date" or a FixedDate.
type Pattern struct {
	ID         int
	Name       string
	Expr       *regexp.Regexp
	Confidence float64
	Tabular    bool
	FixedDate  string

	descIdx   int
	amountIdx int
	dateIdx   int
}

// NewPattern compiles and checks a pattern definition.
func NewPattern(id int, name, expr string, confidence float64, opts ...PatternOption) (Pattern, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return Pattern{}, fmt.Errorf("pattern %s: %w", name, err)
	}
	p := Pattern{ID: id, Name: name, Expr: re, Confidence: confidence}
	for _, opt := range opts {
		opt(&p)
	}
	p.descIdx = re.SubexpIndex(groupDescription)
	p.amountIdx = re.SubexpIndex(groupAmount)
	p.dateIdx = re.SubexpIndex(groupDate)

	if p.descIdx < 0 || p.amountIdx < 0 {
		return Pattern{}, fmt.Errorf("pattern %s: missing %q or %q group", name, groupDescription, groupAmount)
	}
	if p.dateIdx < 0 && p.FixedDate == "" {
		return Pattern{}, fmt.Errorf("pattern %s: needs a %q group or a fixed date", name, groupDate)
	}
	if confidence <= 0 || confidence > 1 {
		return Pattern{}, fmt.Errorf("pattern %s: confidence %v outside (0,1]", name, confidence)
	}
	return p, nil
}

// PatternOption customizes a Pattern.
type PatternOption func(*Pattern)

// Tabular marks a pattern as matching pipe-delimited table rows.
func Tabular() PatternOption {
	return func(p *Pattern) { p.Tabular = true }
}

// WithFixedDate records date for every match instead of a captured group.
func WithFixedDate(date string) PatternOption {
	return func(p *Pattern) { p.FixedDate = date }
}

// Match applies the pattern to one line.
func (p Pattern) Match(line string, lineNo int) (Candidate, bool) {
	m := p.Expr.FindStringSubmatch(line)
	if m == nil {
		return Candidate{}, false
	}
	c := Candidate{
		RawDescription: m[p.descIdx],
		RawAmount:      m[p.amountIdx],
		RawDate:        p.FixedDate,
		PatternID:      p.ID,
		Confidence:     p.Confidence,
		Tabular:        p.Tabular,
		Line:           line,
		LineNo:         lineNo,
	}
	if p.dateIdx >= 0 {
		c.RawDate = m[p.dateIdx]
	}
	return c, true
}

const (
	dateExpr       = `(?P<date>` + dateutils.TokenExpr + `)`
	looseAmount    = `(?P<amount>-?\$?\d[\d,]*(?:\.\d{2})?)`
	dollarAmount   = `(?P<amount>-?\$\d[\d,]*\.\d{2})`
	tableAmount    = `(?P<amount>-?\$?\d[\d,]*\.\d{2})`
	tableBalance   = `-?\$?\d[\d,]*\.\d{2}`
	optionalDash   = `(?:-\s*)?`
	optionalOn     = `(?:on\s+)?`
	tableRowSuffix = `\s*\|\s*(?P<desc>[^|]+?)\s*\|\s*[^|]*?\s*\|\s*` + tableAmount + `\s*\|\s*` + tableBalance + `\s*\|?\s*$`
)

// DefaultPatterns returns the built-in layout families in priority order.
// Tighter layouts carry higher confidence.
func DefaultPatterns() []Pattern {
	return []Pattern{
		// STARBUCKS STORE 10001 AUSTIN TX - $4.75 on 07/11/2025
		mustPattern(PatternDashOn, "dash-on",
			`^(?P<desc>.+?)\s+-\s*`+looseAmount+`\s+on\s+`+dateExpr+`\b`, 0.8),
		// SHELL OIL 5744 $38.10 07/14/2025
		mustPattern(PatternSpaceSeparated, "space-separated",
			`^(?P<desc>.+?)\s+`+dollarAmount+`\s+`+dateExpr+`\s*$`, 0.75),
		// 07/15/2025 | HEB #123 AUSTIN | Debit | $52.10 | $1,200.00
		mustPattern(PatternTableRow, "table-row",
			`^`+dateExpr+tableRowSuffix, 0.8, Tabular()),
		// Pending | UBER TRIP | Debit | $18.20 | $1,181.80
		mustPattern(PatternPendingRow, "pending-row",
			`^Pending`+tableRowSuffix, 0.75, Tabular(), WithFixedDate(models.PendingDate)),
		// TARGET #1234 - $25.99 on 07/02/2025
		mustPattern(PatternStoreNumber, "store-number",
			`^(?P<desc>.+?#\s?\d{2,6}.*?)\s+`+optionalDash+dollarAmount+`\s+`+optionalOn+dateExpr, 0.7),
		// NETFLIX.COM 866-579-7172 CA - $15.49 on 03/01/2025
		mustPattern(PatternPhoneNumber, "phone-number",
			`^(?P<desc>.+?)\s+\(?\d{3}\)?[-.\s]\d{3}[-.\s]\d{4}\b.*?\s`+optionalDash+dollarAmount+`\s+`+optionalOn+dateExpr, 0.7),
		// AMAZON MKTPLACE PMTS Amzn.com/billWA -$7.57 on 02/10/2025
		mustPattern(PatternDottedDomain, "dotted-domain",
			`(?P<desc>[A-Za-z0-9][A-Za-z0-9-]*\.(?i:com|net|org|io|co)(?:/\S*)?)\s.*?`+optionalDash+dollarAmount+`\s+`+optionalOn+dateExpr, 0.7),
		// *SPOTIFY USA $9.99 on 03/02/2025
		mustPattern(PatternLeadingAsterisk, "leading-asterisk",
			`^\*+\s*(?P<desc>.+?)\s+`+optionalDash+dollarAmount+`\s+`+optionalOn+dateExpr, 0.7),
	}
}

func mustPattern(id int, name, expr string, confidence float64, opts ...PatternOption) Pattern {
	p, err := NewPattern(id, name, expr, confidence, opts...)
	if err != nil {
		panic(err)
	}
	return p
}
