// Package store provides SQLite-backed persistence for invoices.
//
// Two tables hold the data:
//   - invoices: one row per invoice (customer, description, date)
//   - invoice_items: line items, owned by an invoice and deleted with it
//
// # Storage Rules
//
//   - An invoice and its items are written in one transaction.
//   - Decimals are stored as TEXT in their exact string form, never as REAL.
//   - Dates are stored as TEXT in YYYY-MM-DD form, so they sort correctly.
//   - Storage order is ascending id; item order is the position column.
//   - Totals are derived from items on read and are never stored.
//
// # Database Configuration
//
//   - WAL mode
//   - synchronous=NORMAL
//   - busy_timeout=5000
//   - foreign_keys=ON: required for ON DELETE CASCADE of items
//
// Every failure returned by a Store method wraps an *invoice.StorageError.
package store
