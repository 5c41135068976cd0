// Package textparser turns statement text into transaction candidates.
//
// Matching is deliberately permissive: every pattern runs on every line and a
// line may yield several overlapping candidates. Validate, ResolveOverlaps and
// Deduplicate reconcile the multiplicity afterward.
package textparser

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"fjacquet/statement-ocr/internal/models"
)

// Candidate is an unvalidated, possibly duplicate, possibly partial transaction
// guess produced by one pattern match on one line.
type Candidate struct {
	RawDescription string
	RawAmount      string
	// RawDate is empty when the layout carries no date.
	RawDate    string
	PatternID  int
	Confidence float64
	// Tabular marks matches of pipe-delimited table rows.
	Tabular bool
	Line    string
	LineNo  int
}

// ParseAmount parses a statement amount token such as "$1,234.56", "-$7.57",
// "$-7.57" or "12". Currency marks and thousands separators are ignored.
func ParseAmount(raw string) (decimal.Decimal, error) {
	clean := strings.TrimSpace(raw)
	negative := false
	clean = strings.ReplaceAll(clean, "$", "")
	clean = strings.ReplaceAll(clean, ",", "")
	clean = strings.ReplaceAll(clean, " ", "")
	if strings.HasPrefix(clean, "-") {
		negative = true
		clean = strings.TrimPrefix(clean, "-")
	}
	if clean == "" {
		return decimal.Zero, fmt.Errorf("empty amount: %q", raw)
	}
	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", raw, err)
	}
	if negative {
		d = d.Neg()
	}
	return d, nil
}

// Amount returns the signed amount as written on the statement.
func (c Candidate) Amount() decimal.Decimal {
	d, err := ParseAmount(c.RawAmount)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// Magnitude returns the absolute amount.
func (c Candidate) Magnitude() decimal.Decimal {
	return c.Amount().Abs()
}

// HasIntegerAmount reports whether the amount token was written without a
// fractional part.
func (c Candidate) HasIntegerAmount() bool {
	return !strings.Contains(c.RawAmount, ".")
}

// DateKey returns the date token used when comparing candidates. Tokens are
// compared as written: "07/11/2025" and "07/11/25" are different dates here.
func (c Candidate) DateKey() string {
	return strings.TrimSpace(c.RawDate)
}

// Description returns the trimmed description.
func (c Candidate) Description() string {
	return strings.TrimSpace(c.RawDescription)
}

// sameEvent reports whether two candidates carry the same amount and date.
func sameEvent(a, b Candidate) bool {
	return a.Magnitude().Sub(b.Magnitude()).Abs().LessThan(centTolerance) &&
		a.DateKey() == b.DateKey()
}

var centTolerance = decimal.New(1, -2)

// String renders the candidate in a layout the default patterns parse back:
// "DESCRIPTION - $AMOUNT on DATE", or a pending table row when the candidate
// has no posting date.
func (c Candidate) String() string {
	amount := "$" + c.Magnitude().StringFixed(2)
	if c.Amount().IsNegative() {
		amount = "-" + amount
	}
	switch c.RawDate {
	case "":
		return fmt.Sprintf("%s - %s", c.Description(), amount)
	case models.PendingDate:
		return fmt.Sprintf("%s | %s | %s | %s | $0.00", models.PendingDate, c.Description(), models.PendingDate, amount)
	}
	return fmt.Sprintf("%s - %s on %s", c.Description(), amount, c.RawDate)
}
