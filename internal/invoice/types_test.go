package invoice

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func item(desc, qty, price, tax string) Item {
	return Item{Description: desc, Quantity: d(qty), UnitPrice: d(price), TaxRate: d(tax)}
}

func TestTotalAmount_Example(t *testing.T) {
	inv := Invoice{
		CustomerName: "Jane Doe",
		Description:  "Consulting",
		InvoiceDate:  time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		Items:        []Item{item("Hours", "10", "50.00", "0.21")},
	}

	assert.Equal(t, "605.00", inv.TotalAmount().StringFixed(2))
	assert.Equal(t, "500.00", inv.Subtotal().StringFixed(2))
	assert.Equal(t, "105.00", inv.TaxAmount().StringFixed(2))
}

func TestTotalAmount_NoItems(t *testing.T) {
	inv := Invoice{CustomerName: "Jane Doe"}
	assert.True(t, inv.TotalAmount().IsZero())
}

func TestTotalAmount_OrderIndependent(t *testing.T) {
	items := []Item{
		item("A", "3", "19.99", "0.21"),
		item("B", "1.5", "7.10", "0.09"),
		item("C", "12", "0.35", "0"),
		item("D", "2", "1000", "1"),
	}
	want := Invoice{Items: items}.TotalAmount()

	reversed := make([]Item, len(items))
	for i, it := range items {
		reversed[len(items)-1-i] = it
	}
	rotated := append(append([]Item{}, items[2:]...), items[:2]...)

	assert.True(t, want.Equal(Invoice{Items: reversed}.TotalAmount()))
	assert.True(t, want.Equal(Invoice{Items: rotated}.TotalAmount()))
}

func TestTotalAmount_NoBinaryFloatDrift(t *testing.T) {
	var items []Item
	for i := 0; i < 10; i++ {
		items = append(items, item("cent", "1", "0.10", "0"))
	}
	assert.True(t, Invoice{Items: items}.TotalAmount().Equal(d("1")))
}

func TestSummarize(t *testing.T) {
	st := Summarize([]decimal.Decimal{d("100"), d("50"), d("75")})
	assert.Equal(t, 3, st.Count)
	assert.True(t, st.Sum.Equal(d("225")))
	assert.True(t, st.Average.Equal(d("75")))
}

func TestSummarize_Empty(t *testing.T) {
	st := Summarize(nil)
	assert.Equal(t, 0, st.Count)
	assert.True(t, st.Sum.IsZero())
	assert.True(t, st.Average.IsZero())
}

func TestParseSortKey(t *testing.T) {
	tests := map[string]SortKey{
		"1":      SortByCustomerName,
		"name":   SortByCustomerName,
		" Name ": SortByCustomerName,
		"2":      SortByInvoiceDate,
		"date":   SortByInvoiceDate,
		"3":      SortByTotalAmount,
		"amount": SortByTotalAmount,
		"total":  SortByTotalAmount,
		"":       SortUnsorted,
		"4":      SortUnsorted,
		"price":  SortUnsorted,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseSortKey(in), "input %q", in)
	}
}

func TestSortKey_StringRoundTrips(t *testing.T) {
	for _, k := range []SortKey{SortByCustomerName, SortByInvoiceDate, SortByTotalAmount} {
		assert.Equal(t, k, ParseSortKey(k.String()))
	}
	assert.Equal(t, "none", SortUnsorted.String())
}

func TestSortByTotal(t *testing.T) {
	invoices := []Invoice{
		{ID: 1, Items: []Item{item("x", "1", "100", "0")}},
		{ID: 2, Items: []Item{item("x", "1", "50", "0")}},
		{ID: 3, Items: []Item{item("x", "1", "75", "0")}},
	}
	SortByTotal(invoices)

	var got []string
	for _, inv := range invoices {
		got = append(got, inv.TotalAmount().String())
	}
	assert.Equal(t, []string{"50", "75", "100"}, got)
}

func TestSortByTotal_StableForTies(t *testing.T) {
	invoices := []Invoice{
		{ID: 1, Items: []Item{item("x", "2", "10", "0")}},
		{ID: 2, Items: []Item{item("x", "1", "5", "0")}},
		{ID: 3, Items: []Item{item("x", "1", "20", "0")}},
		{ID: 4},
	}
	SortByTotal(invoices)

	var ids []int64
	for _, inv := range invoices {
		ids = append(ids, inv.ID)
	}
	assert.Equal(t, []int64{4, 2, 1, 3}, ids)
}

func TestStorageError(t *testing.T) {
	cause := errors.New("disk I/O error")
	err := fmt.Errorf("stats: %w", NewStorageError("sum", cause))

	require.True(t, IsStorageError(err))
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "storage: sum: disk I/O error")
	assert.NoError(t, NewStorageError("sum", nil))
	assert.False(t, IsStorageError(ErrNotFound))
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(fmt.Errorf("get 7: %w", ErrNotFound)))
	assert.False(t, IsNotFound(errors.New("other")))
}
