package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/roach88/invoicebook/internal/invoice"
	"github.com/roach88/invoicebook/internal/validate"
)

const (
	tableRow  = "%-4v %-20s %-15s %-13s %s\n"
	tableRule = 62
)

// FormatMoney renders an amount in euros with two decimals.
func FormatMoney(d decimal.Decimal) string {
	return "€" + d.StringFixed(2)
}

// FormatDate renders a date as dd-MM-yyyy.
func FormatDate(t time.Time) string {
	return t.Format(validate.DateLayout)
}

// RenderTable writes invoices as a fixed-width table.
func RenderTable(w io.Writer, invoices []invoice.Invoice) {
	fmt.Fprintf(w, tableRow, "ID", "Name", "Description", "Amount", "Date")
	fmt.Fprintln(w, strings.Repeat("-", tableRule))

	if len(invoices) == 0 {
		fmt.Fprintln(w, "No invoices found.")
		return
	}
	for _, inv := range invoices {
		fmt.Fprintf(w, tableRow,
			inv.ID,
			inv.CustomerName,
			inv.Description,
			FormatMoney(inv.TotalAmount()),
			FormatDate(inv.InvoiceDate))
	}
}

// RenderMatches writes search results one per line.
func RenderMatches(w io.Writer, invoices []invoice.Invoice) {
	if len(invoices) == 0 {
		fmt.Fprintln(w, "No matching invoice found.")
		return
	}
	for _, inv := range invoices {
		fmt.Fprintf(w, "%d. %s - %s - %s - %s\n",
			inv.ID,
			inv.CustomerName,
			inv.Description,
			FormatMoney(inv.TotalAmount()),
			FormatDate(inv.InvoiceDate))
	}
}

// RenderInvoice writes one invoice with its line items.
func RenderInvoice(w io.Writer, inv invoice.Invoice) {
	fmt.Fprintf(w, "Invoice #%d\n", inv.ID)
	fmt.Fprintf(w, "Customer:    %s\n", inv.CustomerName)
	if inv.CustomerEmail != "" {
		fmt.Fprintf(w, "Email:       %s\n", inv.CustomerEmail)
	}
	if inv.Description != "" {
		fmt.Fprintf(w, "Description: %s\n", inv.Description)
	}
	fmt.Fprintf(w, "Date:        %s\n", FormatDate(inv.InvoiceDate))
	fmt.Fprintln(w)

	if len(inv.Items) == 0 {
		fmt.Fprintln(w, "No items.")
	} else {
		fmt.Fprintf(w, "%-3s %-24s %8s %12s %6s %12s\n", "#", "Item", "Qty", "Unit price", "Tax", "Total")
		for i, it := range inv.Items {
			fmt.Fprintf(w, "%-3d %-24s %8s %12s %6s %12s\n",
				i+1,
				it.Description,
				it.Quantity.String(),
				FormatMoney(it.UnitPrice),
				FormatRate(it.TaxRate),
				FormatMoney(it.Total()))
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Subtotal: %s\n", FormatMoney(inv.Subtotal()))
	fmt.Fprintf(w, "Tax:      %s\n", FormatMoney(inv.TaxAmount()))
	fmt.Fprintf(w, "Total:    %s\n", FormatMoney(inv.TotalAmount()))
}

// FormatRate renders a tax fraction as a percentage, 0.21 as "21%".
func FormatRate(rate decimal.Decimal) string {
	return rate.Shift(2).String() + "%"
}

// RenderStats writes the invoice statistics.
func RenderStats(w io.Writer, st invoice.Stats) {
	fmt.Fprintf(w, "Total invoices: %d\n", st.Count)
	fmt.Fprintf(w, "Total amount: %s\n", FormatMoney(st.Sum))
	fmt.Fprintf(w, "Average amount: %s\n", FormatMoney(st.Average))
}
