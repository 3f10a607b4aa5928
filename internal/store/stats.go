package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/roach88/invoicebook/internal/invoice"
)

// Count returns the number of stored invoices.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM invoices`).Scan(&n); err != nil {
		return 0, invoice.NewStorageError("count", err)
	}
	return n, nil
}

// Sum returns the total amount over all invoices: items are summed per
// invoice first, then the invoice totals are summed.
func (s *Store) Sum(ctx context.Context) (decimal.Decimal, error) {
	totals, err := s.invoiceTotals(ctx)
	if err != nil {
		return decimal.Zero, invoice.NewStorageError("sum", err)
	}
	return invoice.Summarize(totals).Sum, nil
}

// Average returns Sum divided by Count, or zero when there are no invoices.
func (s *Store) Average(ctx context.Context) (decimal.Decimal, error) {
	n, err := s.Count(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	if n == 0 {
		return decimal.Zero, nil
	}
	sum, err := s.Sum(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return invoice.Average(sum, n), nil
}

// invoiceTotals returns one tax-inclusive total per invoice, in id order.
// Invoices without items contribute a zero total.
func (s *Store) invoiceTotals(ctx context.Context) ([]decimal.Decimal, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT i.id, it.quantity, it.unit_price, it.tax_rate
		FROM invoices i
		LEFT JOIN invoice_items it ON it.invoice_id = i.id
		ORDER BY i.id ASC, it.position ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query totals: %w", err)
	}
	defer rows.Close()

	totals := []decimal.Decimal{}
	var current int64
	for rows.Next() {
		var (
			id                       int64
			quantity, price, taxRate sql.NullString
		)
		if err := rows.Scan(&id, &quantity, &price, &taxRate); err != nil {
			return nil, fmt.Errorf("scan totals: %w", err)
		}

		if len(totals) == 0 || id != current {
			totals = append(totals, decimal.Zero)
			current = id
		}
		if !quantity.Valid {
			continue
		}

		it, err := decodeItemAmounts(quantity.String, price.String, taxRate.String)
		if err != nil {
			return nil, fmt.Errorf("invoice %d: %w", id, err)
		}
		last := len(totals) - 1
		totals[last] = totals[last].Add(it.Total())
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate totals: %w", err)
	}

	return totals, nil
}

// decodeItemAmounts rebuilds the numeric part of an item.
func decodeItemAmounts(quantity, price, taxRate string) (invoice.Item, error) {
	var it invoice.Item
	var err error
	if it.Quantity, err = decodeDecimal(quantity); err != nil {
		return invoice.Item{}, err
	}
	if it.UnitPrice, err = decodeDecimal(price); err != nil {
		return invoice.Item{}, err
	}
	if it.TaxRate, err = decodeDecimal(taxRate); err != nil {
		return invoice.Item{}, err
	}
	return it, nil
}
