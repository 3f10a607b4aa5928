package store

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// dateLayout is the stored form of invoice dates. It sorts lexically.
const dateLayout = "2006-01-02"

// encodeDate converts a date to TEXT for storage.
// Only the calendar date is kept; the time of day is dropped.
func encodeDate(t time.Time) string {
	return t.Format(dateLayout)
}

// decodeDate parses a stored date. The result is midnight UTC.
func decodeDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("decode date %q: %w", s, err)
	}
	return t, nil
}

// encodeDecimal converts a decimal to its exact TEXT form.
func encodeDecimal(d decimal.Decimal) string {
	return d.String()
}

// decodeDecimal parses a stored decimal.
func decodeDecimal(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("decode decimal %q: %w", s, err)
	}
	return d, nil
}
