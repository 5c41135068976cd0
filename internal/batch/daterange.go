package batch

import (
	"fmt"
	"time"

	"fjacquet/statement-ocr/internal/dateutils"
	"fjacquet/statement-ocr/internal/models"
)

// DateRange represents a date range with start and end dates
type DateRange struct {
	Start time.Time
	End   time.Time
}

// String returns the date range in the format "YYYY-MM-DD_YYYY-MM-DD"
func (dr DateRange) String() string {
	if dr.Start.IsZero() || dr.End.IsZero() {
		return ""
	}
	return fmt.Sprintf("%s_%s", dateutils.ToISODate(dr.Start), dateutils.ToISODate(dr.End))
}

// MarshalText renders the range for JSON summaries.
func (dr DateRange) MarshalText() ([]byte, error) {
	return []byte(dr.String()), nil
}

// Merge combines this date range with another, returning the overall range
func (dr DateRange) Merge(other DateRange) DateRange {
	start := dr.Start
	end := dr.End

	if dr.Start.IsZero() {
		start = other.Start
	} else if !other.Start.IsZero() && other.Start.Before(start) {
		start = other.Start
	}

	if dr.End.IsZero() {
		end = other.End
	} else if !other.End.IsZero() && other.End.After(end) {
		end = other.End
	}

	return DateRange{Start: start, End: end}
}

// CalculateDateRange returns the span of posted transaction dates. Pending
// and placeholder entries are ignored.
func CalculateDateRange(transactions []models.Transaction) DateRange {
	var dr DateRange
	for _, tx := range transactions {
		if tx.IsFallback() || tx.IsPending() || !tx.HasValidDate() {
			continue
		}
		d, err := time.Parse(dateutils.DateLayoutISO, tx.Date)
		if err != nil {
			continue
		}
		dr = dr.Merge(DateRange{Start: d, End: d})
	}
	return dr
}
