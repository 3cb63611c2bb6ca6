// Package pricing computes rental totals from a daily rate and a
// calendar date range. Both the start and the end date are billed.
package pricing

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// ParseDate converts a yyyy-mm-dd formatted string into a calendar date.
// The result carries no time-of-day and is always UTC.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected yyyy-mm-dd", s)
	}
	return t, nil
}

// FormatDate renders a calendar date as yyyy-mm-dd.
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// Days returns the inclusive day count of [start, end].
// start 2024-01-01, end 2024-01-03 -> 3.
func Days(start, end time.Time) (int64, error) {
	start = truncate(start)
	end = truncate(end)
	if end.Before(start) {
		return 0, fmt.Errorf("end date must be >= start date")
	}
	return int64(end.Sub(start).Hours()/24) + 1, nil
}

// Total computes pricePerDay x inclusive day count, rounded to two
// decimal places half-up.
func Total(pricePerDay decimal.Decimal, start, end time.Time) (decimal.Decimal, error) {
	days, err := Days(start, end)
	if err != nil {
		return decimal.Zero, err
	}
	return pricePerDay.Mul(decimal.NewFromInt(days)).Round(2), nil
}

// DateOf normalizes an instant to its UTC calendar date, midnight UTC.
func DateOf(t time.Time) time.Time {
	return truncate(t.UTC())
}

func truncate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
