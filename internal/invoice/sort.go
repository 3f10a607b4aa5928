package invoice

import (
	"slices"
	"strings"
)

// SortKey selects the ordering of a sorted listing.
type SortKey int

const (
	// SortUnsorted keeps storage order (ascending id).
	SortUnsorted SortKey = iota
	SortByCustomerName
	SortByInvoiceDate
	SortByTotalAmount
)

// String returns the flag spelling of the key.
func (k SortKey) String() string {
	switch k {
	case SortByCustomerName:
		return "name"
	case SortByInvoiceDate:
		return "date"
	case SortByTotalAmount:
		return "amount"
	default:
		return "none"
	}
}

// ParseSortKey accepts the menu digits 1-3 and the names used by the
// --by flag. Anything else yields SortUnsorted.
func ParseSortKey(s string) SortKey {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "name", "customer", "customer_name":
		return SortByCustomerName
	case "2", "date", "invoice_date":
		return SortByInvoiceDate
	case "3", "amount", "total", "total_amount":
		return SortByTotalAmount
	default:
		return SortUnsorted
	}
}

// SortByTotal orders invoices by ascending TotalAmount in place.
// Equal totals keep their relative order.
func SortByTotal(invoices []Invoice) {
	slices.SortStableFunc(invoices, func(a, b Invoice) int {
		return a.TotalAmount().Cmp(b.TotalAmount())
	})
}
