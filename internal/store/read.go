package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/roach88/invoicebook/internal/invoice"
)

const selectInvoices = `
	SELECT id, customer_name, customer_email, description, invoice_date
	FROM invoices
`

// GetAll returns every invoice with its items, in ascending id order.
// Returns an empty slice (not nil) if there are no invoices.
func (s *Store) GetAll(ctx context.Context) ([]invoice.Invoice, error) {
	invoices, err := s.queryInvoices(ctx, selectInvoices+` ORDER BY id ASC`)
	if err != nil {
		return nil, invoice.NewStorageError("get all", err)
	}
	if err := s.attachItems(ctx, invoices, true); err != nil {
		return nil, invoice.NewStorageError("get all", err)
	}
	return invoices, nil
}

// GetByID returns one invoice with its items.
// Returns invoice.ErrNotFound if no invoice has that id.
func (s *Store) GetByID(ctx context.Context, id int64) (invoice.Invoice, error) {
	invoices, err := s.queryInvoices(ctx, selectInvoices+` WHERE id = ?`, id)
	if err != nil {
		return invoice.Invoice{}, invoice.NewStorageError("get by id", err)
	}
	if len(invoices) == 0 {
		return invoice.Invoice{}, fmt.Errorf("invoice %d: %w", id, invoice.ErrNotFound)
	}
	if err := s.attachItems(ctx, invoices, false); err != nil {
		return invoice.Invoice{}, invoice.NewStorageError("get by id", err)
	}
	return invoices[0], nil
}

// Search returns invoices whose customer name or description contains
// term, ignoring case. An empty term matches every invoice.
func (s *Store) Search(ctx context.Context, term string) ([]invoice.Invoice, error) {
	if term == "" {
		return s.GetAll(ctx)
	}

	invoices, err := s.queryInvoices(ctx, selectInvoices+`
		WHERE instr(casefold(customer_name), casefold(?1)) > 0
		   OR instr(casefold(description), casefold(?1)) > 0
		ORDER BY id ASC
	`, term)
	if err != nil {
		return nil, invoice.NewStorageError("search", err)
	}
	if err := s.attachItems(ctx, invoices, false); err != nil {
		return nil, invoice.NewStorageError("search", err)
	}
	return invoices, nil
}

// GetSorted returns all invoices in ascending order of key. Ties keep
// storage order. Name and date are ordered by SQLite; TotalAmount is
// derived from items, so that listing is sorted after loading.
func (s *Store) GetSorted(ctx context.Context, key invoice.SortKey) ([]invoice.Invoice, error) {
	var orderBy string
	switch key {
	case invoice.SortByCustomerName:
		orderBy = ` ORDER BY customer_name ASC, id ASC`
	case invoice.SortByInvoiceDate:
		orderBy = ` ORDER BY invoice_date ASC, id ASC`
	case invoice.SortByTotalAmount, invoice.SortUnsorted:
		orderBy = ` ORDER BY id ASC`
	default:
		return nil, invoice.NewStorageError("get sorted", fmt.Errorf("unknown sort key %d", key))
	}

	invoices, err := s.queryInvoices(ctx, selectInvoices+orderBy)
	if err != nil {
		return nil, invoice.NewStorageError("get sorted", err)
	}
	if err := s.attachItems(ctx, invoices, true); err != nil {
		return nil, invoice.NewStorageError("get sorted", err)
	}

	if key == invoice.SortByTotalAmount {
		invoice.SortByTotal(invoices)
	}
	return invoices, nil
}

// queryInvoices runs an invoice SELECT and scans the rows without items.
func (s *Store) queryInvoices(ctx context.Context, query string, args ...any) ([]invoice.Invoice, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query invoices: %w", err)
	}
	defer rows.Close()

	invoices := []invoice.Invoice{}
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, inv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate invoices: %w", err)
	}

	return invoices, nil
}

// attachItems loads the items of the given invoices, in position order.
// Every invoice ends up with a non-nil Items slice. When all is set the
// invoices are the whole table and items are read without an id filter.
func (s *Store) attachItems(ctx context.Context, invoices []invoice.Invoice, all bool) error {
	if len(invoices) == 0 {
		return nil
	}

	index := make(map[int64]int, len(invoices))
	placeholders := make([]string, len(invoices))
	args := make([]any, len(invoices))
	for i := range invoices {
		invoices[i].Items = []invoice.Item{}
		index[invoices[i].ID] = i
		placeholders[i] = "?"
		args[i] = invoices[i].ID
	}

	query := `SELECT invoice_id, description, quantity, unit_price, tax_rate FROM invoice_items`
	if all {
		args = nil
	} else {
		query += ` WHERE invoice_id IN (` + strings.Join(placeholders, ",") + `)`
	}
	query += ` ORDER BY invoice_id ASC, position ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("query items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		invoiceID, it, err := scanItem(rows)
		if err != nil {
			return err
		}
		i, ok := index[invoiceID]
		if !ok {
			continue
		}
		invoices[i].Items = append(invoices[i].Items, it)
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate items: %w", err)
	}

	return nil
}

// scanInvoice scans a row into an Invoice struct.
func scanInvoice(rows *sql.Rows) (invoice.Invoice, error) {
	var inv invoice.Invoice
	var date string

	if err := rows.Scan(&inv.ID, &inv.CustomerName, &inv.CustomerEmail, &inv.Description, &date); err != nil {
		return invoice.Invoice{}, fmt.Errorf("scan invoice: %w", err)
	}

	d, err := decodeDate(date)
	if err != nil {
		return invoice.Invoice{}, fmt.Errorf("scan invoice %d: %w", inv.ID, err)
	}
	inv.InvoiceDate = d

	return inv, nil
}

// scanItem scans a row into an Item and the id of its invoice.
func scanItem(rows *sql.Rows) (int64, invoice.Item, error) {
	var (
		invoiceID                int64
		it                       invoice.Item
		quantity, price, taxRate string
	)

	if err := rows.Scan(&invoiceID, &it.Description, &quantity, &price, &taxRate); err != nil {
		return 0, invoice.Item{}, fmt.Errorf("scan item: %w", err)
	}

	amounts, err := decodeItemAmounts(quantity, price, taxRate)
	if err != nil {
		return 0, invoice.Item{}, fmt.Errorf("scan item: %w", err)
	}
	it.Quantity, it.UnitPrice, it.TaxRate = amounts.Quantity, amounts.UnitPrice, amounts.TaxRate

	return invoiceID, it, nil
}
