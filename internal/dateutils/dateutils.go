// Package dateutils normalizes the date tokens found in statement text.
package dateutils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"fjacquet/statement-ocr/internal/models"
)

// Date layouts used throughout the application
const (
	DateLayoutISO = models.DateLayoutISO
	DateLayoutUS  = "1/2/2006"
)

// TokenExpr matches a US-style statement date: MM/DD/YYYY, MM-DD-YYYY and 2-digit years.
const TokenExpr = `\d{1,2}[/-]\d{1,2}[/-]\d{2,4}`

var tokenPattern = regexp.MustCompile(`^` + TokenExpr + `$`)

// ParseStatementDate parses MM/DD/YYYY, MM-DD-YYYY, MM/DD/YY and MM-DD-YY.
// Two-digit years are expanded by prefixing "20".
func ParseStatementDate(raw string) (time.Time, error) {
	clean := strings.TrimSpace(raw)
	if !tokenPattern.MatchString(clean) {
		return time.Time{}, fmt.Errorf("unable to parse date: %s", raw)
	}

	parts := strings.FieldsFunc(clean, func(r rune) bool { return r == '/' || r == '-' })
	if len(parts) != 3 {
		return time.Time{}, fmt.Errorf("unable to parse date: %s", raw)
	}
	year := parts[2]
	if len(year) <= 2 {
		short, err := strconv.Atoi(year)
		if err != nil {
			return time.Time{}, fmt.Errorf("unable to parse year %q: %w", year, err)
		}
		year = fmt.Sprintf("20%02d", short)
	}

	t, err := time.Parse(DateLayoutUS, parts[0]+"/"+parts[1]+"/"+year)
	if err != nil {
		return time.Time{}, fmt.Errorf("unable to parse date %s: %w", raw, err)
	}
	return t, nil
}

// NormalizeStatementDate converts a raw date token to YYYY-MM-DD.
//
// The pending marker passes through unchanged. A missing or unparseable token
// defaults to the processing date now.
func NormalizeStatementDate(raw string, now time.Time) string {
	raw = strings.TrimSpace(raw)
	if raw == models.PendingDate {
		return models.PendingDate
	}
	if raw == "" {
		return ToISODate(now)
	}
	t, err := ParseStatementDate(raw)
	if err != nil {
		return ToISODate(now)
	}
	return ToISODate(t)
}

// ToISODate formats a time.Time value as an ISO date (YYYY-MM-DD)
func ToISODate(date time.Time) string {
	return date.Format(DateLayoutISO)
}
