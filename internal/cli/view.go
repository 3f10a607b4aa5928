package cli

import (
	"github.com/roach88/invoicebook/internal/invoice"
)

// isoDate is the date layout used in JSON output.
const isoDate = "2006-01-02"

// InvoiceView is the JSON shape of an invoice. Amounts are decimal
// strings with two places; rates and quantities keep their precision.
type InvoiceView struct {
	ID            int64      `json:"id"`
	CustomerName  string     `json:"customer_name"`
	CustomerEmail string     `json:"customer_email,omitempty"`
	Description   string     `json:"description"`
	InvoiceDate   string     `json:"invoice_date"`
	Items         []ItemView `json:"items"`
	Subtotal      string     `json:"subtotal"`
	Tax           string     `json:"tax"`
	TotalAmount   string     `json:"total_amount"`
}

// ItemView is the JSON shape of a line item.
type ItemView struct {
	Description string `json:"description"`
	Quantity    string `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
	TaxRate     string `json:"tax_rate"`
	Total       string `json:"total"`
}

// StatsView is the JSON shape of the statistics.
type StatsView struct {
	Count   int    `json:"count"`
	Sum     string `json:"sum"`
	Average string `json:"average"`
}

// NewInvoiceView converts an invoice for JSON output.
func NewInvoiceView(inv invoice.Invoice) InvoiceView {
	items := make([]ItemView, 0, len(inv.Items))
	for _, it := range inv.Items {
		items = append(items, ItemView{
			Description: it.Description,
			Quantity:    it.Quantity.String(),
			UnitPrice:   it.UnitPrice.StringFixed(2),
			TaxRate:     it.TaxRate.String(),
			Total:       it.Total().StringFixed(2),
		})
	}
	return InvoiceView{
		ID:            inv.ID,
		CustomerName:  inv.CustomerName,
		CustomerEmail: inv.CustomerEmail,
		Description:   inv.Description,
		InvoiceDate:   inv.InvoiceDate.Format(isoDate),
		Items:         items,
		Subtotal:      inv.Subtotal().StringFixed(2),
		Tax:           inv.TaxAmount().StringFixed(2),
		TotalAmount:   inv.TotalAmount().StringFixed(2),
	}
}

// NewInvoiceViews converts a list; the result is never nil.
func NewInvoiceViews(invoices []invoice.Invoice) []InvoiceView {
	views := make([]InvoiceView, 0, len(invoices))
	for _, inv := range invoices {
		views = append(views, NewInvoiceView(inv))
	}
	return views
}

// NewStatsView converts statistics for JSON output.
func NewStatsView(st invoice.Stats) StatsView {
	return StatsView{
		Count:   st.Count,
		Sum:     st.Sum.StringFixed(2),
		Average: st.Average.StringFixed(2),
	}
}
