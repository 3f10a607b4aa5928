package invoice

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice is a billing record for one customer on one date.
type Invoice struct {
	ID            int64     `json:"id"`
	CustomerName  string    `json:"customer_name"`
	CustomerEmail string    `json:"customer_email,omitempty"`
	Description   string    `json:"description"`
	InvoiceDate   time.Time `json:"invoice_date"`
	Items         []Item    `json:"items"`
}

// Item is one billable line of an invoice. Items have no identity of
// their own outside the invoice that owns them.
type Item struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TaxRate     decimal.Decimal `json:"tax_rate"` // fraction, 0.21 = 21%
}

// Subtotal returns Quantity × UnitPrice.
func (it Item) Subtotal() decimal.Decimal {
	return it.Quantity.Mul(it.UnitPrice)
}

// Total returns Quantity × UnitPrice × (1 + TaxRate).
func (it Item) Total() decimal.Decimal {
	return it.Subtotal().Mul(decimal.NewFromInt(1).Add(it.TaxRate))
}

// TotalAmount sums the tax-inclusive totals of all items.
// An invoice without items totals zero.
func (inv Invoice) TotalAmount() decimal.Decimal {
	total := decimal.Zero
	for _, it := range inv.Items {
		total = total.Add(it.Total())
	}
	return total
}

// Subtotal sums the items before tax.
func (inv Invoice) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, it := range inv.Items {
		total = total.Add(it.Subtotal())
	}
	return total
}

// TaxAmount is the tax part of TotalAmount.
func (inv Invoice) TaxAmount() decimal.Decimal {
	return inv.TotalAmount().Sub(inv.Subtotal())
}

// Stats aggregates totals over a set of invoices.
type Stats struct {
	Count   int             `json:"count"`
	Sum     decimal.Decimal `json:"sum"`
	Average decimal.Decimal `json:"average"`
}

// Summarize reduces per-invoice totals to count, sum and average.
// The average of zero invoices is zero.
func Summarize(totals []decimal.Decimal) Stats {
	st := Stats{Count: len(totals), Sum: decimal.Zero, Average: decimal.Zero}
	for _, t := range totals {
		st.Sum = st.Sum.Add(t)
	}
	st.Average = Average(st.Sum, st.Count)
	return st
}

// Average divides sum by count, returning zero when count is zero.
func Average(sum decimal.Decimal, count int) decimal.Decimal {
	if count == 0 {
		return decimal.Zero
	}
	return sum.Div(decimal.NewFromInt(int64(count)))
}
