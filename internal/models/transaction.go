// Package models provides the data structures used throughout the application.
package models

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var isoDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Transaction is the terminal artifact of an extraction. It is a value object:
// callers that persist it assign their own identifier afterward.
type Transaction struct {
	Date        string          `json:"date" csv:"Date"`
	Description string          `json:"description" csv:"Description"`
	Amount      float64         `json:"amount" csv:"Amount"`
	Type        TransactionType `json:"type" csv:"Type"`
	Category    string          `json:"category" csv:"Category"`
	Confidence  float64         `json:"confidence" csv:"Confidence"`

	fallback bool
}

// NewFallbackTransaction builds the placeholder emitted when nothing else qualified.
func NewFallbackTransaction(date, description string, confidence float64) Transaction {
	return Transaction{
		Date:        date,
		Description: description,
		Amount:      0,
		Type:        TransactionTypeExpense,
		Category:    CategoryUncategorized,
		Confidence:  confidence,
		fallback:    true,
	}
}

// IsFallback reports whether the transaction is the placeholder entry.
func (t Transaction) IsFallback() bool {
	return t.fallback
}

// IsPending reports whether the transaction has no posting date yet.
func (t Transaction) IsPending() bool {
	return t.Date == PendingDate
}

// HasValidDate reports whether Date is a YYYY-MM-DD date or the pending marker.
func (t Transaction) HasValidDate() bool {
	return t.IsPending() || isoDatePattern.MatchString(t.Date)
}

// Key identifies a transaction for duplicate detection: amount in cents, date and
// description.
func (t Transaction) Key() string {
	cents := int64(math.Round(t.Amount * 100))
	return strings.Join([]string{t.Date, t.Description, strconv.FormatInt(cents, 10)}, "|")
}
