package testutil

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/roach88/invoicebook/internal/invoice"
)

// Today is the date tests pin the clock to.
var Today = time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)

// Date builds a midnight-UTC date.
func Date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Item builds an item from decimal strings. It panics on malformed input.
func Item(desc, qty, price, tax string) invoice.Item {
	return invoice.Item{
		Description: desc,
		Quantity:    decimal.RequireFromString(qty),
		UnitPrice:   decimal.RequireFromString(price),
		TaxRate:     decimal.RequireFromString(tax),
	}
}

// JaneDoe is the consulting invoice: 10 × 50.00 at 21% = 605.00.
func JaneDoe() invoice.Invoice {
	return invoice.Invoice{
		CustomerName:  "Jane Doe",
		CustomerEmail: "jane@example.com",
		Description:   "Consulting",
		InvoiceDate:   Date(2024, time.January, 15),
		Items:         []invoice.Item{Item("Hours", "10", "50.00", "0.21")},
	}
}
