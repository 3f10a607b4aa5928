package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/roach88/invoicebook/internal/invoice"
)

// createTestStore opens a fresh database in a temp dir.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// createTestItem creates an item from decimal strings.
func createTestItem(desc, qty, price, tax string) invoice.Item {
	return invoice.Item{
		Description: desc,
		Quantity:    dec(qty),
		UnitPrice:   dec(price),
		TaxRate:     dec(tax),
	}
}

// sampleInvoice is the Jane Doe consulting invoice totalling 605.00.
func sampleInvoice() invoice.Invoice {
	return invoice.Invoice{
		CustomerName:  "Jane Doe",
		CustomerEmail: "jane@example.com",
		Description:   "Consulting",
		InvoiceDate:   date(2024, time.January, 15),
		Items:         []invoice.Item{createTestItem("Hours", "10", "50.00", "0.21")},
	}
}

// invoiceWithTotal creates a one-item, tax-free invoice totalling amount.
func invoiceWithTotal(name, amount string) invoice.Invoice {
	return invoice.Invoice{
		CustomerName: name,
		Description:  "fixed " + amount,
		InvoiceDate:  date(2024, time.June, 1),
		Items:        []invoice.Item{createTestItem("Flat fee", "1", amount, "0")},
	}
}
