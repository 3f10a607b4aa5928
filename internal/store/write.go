package store

import (
	"context"
	"fmt"

	"github.com/roach88/invoicebook/internal/invoice"
)

// Add inserts an invoice and all its items in one transaction and
// returns the id assigned to the invoice. inv.ID is ignored.
//
// An invoice without items is stored as is.
func (s *Store) Add(ctx context.Context, inv invoice.Invoice) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, invoice.NewStorageError("add", fmt.Errorf("begin tx: %w", err))
	}
	defer tx.Rollback() // No-op if committed

	result, err := tx.ExecContext(ctx, `
		INSERT INTO invoices
		(customer_name, customer_email, description, invoice_date)
		VALUES (?, ?, ?, ?)
	`,
		inv.CustomerName,
		inv.CustomerEmail,
		inv.Description,
		encodeDate(inv.InvoiceDate),
	)
	if err != nil {
		return 0, invoice.NewStorageError("add", fmt.Errorf("insert invoice: %w", err))
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, invoice.NewStorageError("add", fmt.Errorf("last insert id: %w", err))
	}

	for pos, it := range inv.Items {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO invoice_items
			(invoice_id, position, description, quantity, unit_price, tax_rate)
			VALUES (?, ?, ?, ?, ?, ?)
		`,
			id,
			pos,
			it.Description,
			encodeDecimal(it.Quantity),
			encodeDecimal(it.UnitPrice),
			encodeDecimal(it.TaxRate),
		)
		if err != nil {
			return 0, invoice.NewStorageError("add", fmt.Errorf("insert item %d: %w", pos, err))
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, invoice.NewStorageError("add", fmt.Errorf("commit: %w", err))
	}

	return id, nil
}

// Delete removes an invoice and its items. Deleting an id that does not
// exist is not an error and changes nothing.
func (s *Store) Delete(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM invoices WHERE id = ?`, id)
	if err != nil {
		return invoice.NewStorageError("delete", err)
	}
	return nil
}
