package validate

import (
	"errors"
	"net/mail"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// DateLayout is the day-first layout used for entering and displaying dates.
const DateLayout = "02-01-2006"

// MinNameLength is the minimum number of characters in a name part.
const MinNameLength = 3

// MaxInvoiceAgeYears bounds how far back an invoice date may lie.
const MaxInvoiceAgeYears = 100

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
)

// Name validates a first or last name and returns it NFC-normalised.
func Name(s string) (string, error) {
	n := norm.NFC.String(s)
	if strings.TrimSpace(n) == "" {
		return "", reject(FieldName, s, "must not be empty")
	}
	if utf8.RuneCountInString(n) < MinNameLength {
		return "", reject(FieldName, s, "must be at least 3 characters")
	}
	for _, r := range n {
		if !unicode.IsLetter(r) && r != ' ' && r != '-' {
			return "", reject(FieldName, s, "may only contain letters, spaces or hyphens")
		}
	}
	return n, nil
}

// FormatName collapses repeated spaces and title-cases every word.
func FormatName(s string) string {
	caser := cases.Title(language.Und)
	words := strings.Fields(norm.NFC.String(s))
	for i, w := range words {
		words[i] = caser.String(w)
	}
	return strings.Join(words, " ")
}

// CustomerName joins a validated first and last name into the stored form.
func CustomerName(first, last string) string {
	return FormatName(first) + " " + FormatName(last)
}

// Email accepts a bare address such as "jane@example.com".
// Display-name forms like "Jane <jane@example.com>" are rejected.
// An empty string is rejected too; skipping the email is decided by the caller.
func Email(s string) (string, error) {
	if strings.TrimSpace(s) == "" {
		return "", reject(FieldEmail, s, "must not be empty")
	}
	addr, err := mail.ParseAddress(s)
	if err != nil {
		return "", reject(FieldEmail, s, "not a valid address")
	}
	if addr.Address != s {
		return "", reject(FieldEmail, s, "not a bare address")
	}
	return addr.Address, nil
}

// InvoiceDate parses s as dd-MM-yyyy and checks it lies within
// [today - 100 years, today]. Only the calendar date of today is used.
func InvoiceDate(s string, today time.Time) (time.Time, error) {
	d, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, reject(FieldInvoiceDate, s, "expected dd-MM-yyyy")
	}
	y, m, day := today.Date()
	upper := time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
	lower := upper.AddDate(-MaxInvoiceAgeYears, 0, 0)
	if d.After(upper) {
		return time.Time{}, reject(FieldInvoiceDate, s, "lies in the future")
	}
	if d.Before(lower) {
		return time.Time{}, reject(FieldInvoiceDate, s, "more than 100 years ago")
	}
	return d, nil
}

// PositiveDecimal parses a fixed-point decimal that must be greater than zero.
func PositiveDecimal(s string) (decimal.Decimal, error) {
	return positive(FieldDecimal, s)
}

// Quantity is PositiveDecimal reported against the quantity field.
func Quantity(s string) (decimal.Decimal, error) {
	return positive(FieldQuantity, s)
}

// UnitPrice is PositiveDecimal reported against the unit price field.
func UnitPrice(s string) (decimal.Decimal, error) {
	return positive(FieldUnitPrice, s)
}

func positive(field Field, s string) (decimal.Decimal, error) {
	v, err := parseFixed(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, reject(field, s, "not a decimal number")
	}
	if !v.IsPositive() {
		return decimal.Zero, reject(field, s, "must be greater than 0")
	}
	return v, nil
}

// TaxRate normalises a tax rate to a fraction in [0,1].
//
// The input is trimmed, "%" and spaces are removed and a decimal comma
// becomes a point. A parsed value above 1 is divided by 100 before the
// range check, so "21", "21%" and "0.21" all yield 0.21 and "1,5" yields 0.015.
func TaxRate(s string) (decimal.Decimal, error) {
	cleaned := strings.TrimSpace(s)
	cleaned = strings.ReplaceAll(cleaned, "%", "")
	cleaned = strings.ReplaceAll(cleaned, " ", "")
	cleaned = strings.ReplaceAll(cleaned, ",", ".")
	if cleaned == "" {
		return decimal.Zero, reject(FieldTaxRate, s, "must not be empty")
	}

	v, err := parseFixed(cleaned)
	if err != nil {
		return decimal.Zero, reject(FieldTaxRate, s, "not a decimal number")
	}
	if v.GreaterThan(one) {
		v = v.Div(hundred)
	}
	if v.IsNegative() || v.GreaterThan(one) {
		return decimal.Zero, reject(FieldTaxRate, s, "must be between 0 and 1 (or 0% and 100%)")
	}
	return v, nil
}

// ItemDescription requires a non-blank line item description.
func ItemDescription(s string) (string, error) {
	d := strings.TrimSpace(norm.NFC.String(s))
	if d == "" {
		return "", reject(FieldItemDescription, s, "must not be empty")
	}
	return d, nil
}

// parseFixed parses plain decimal notation. Exponents and digit grouping
// are not accepted.
func parseFixed(s string) (decimal.Decimal, error) {
	if s == "" || strings.ContainsAny(s, "eE,_ ") {
		return decimal.Zero, errNotFixed
	}
	return decimal.NewFromString(s)
}

var errNotFixed = errors.New("not fixed-point notation")
