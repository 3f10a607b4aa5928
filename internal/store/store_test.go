package store

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"
)

func TestOpen_CreatesNewDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer s.Close()

	// Verify file was created
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("database file was not created")
	}
}

func TestOpen_OpensExistingDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	s1, err := Open(path)
	if err != nil {
		t.Fatalf("first Open() failed: %v", err)
	}
	if _, err := s1.Add(context.Background(), sampleInvoice()); err != nil {
		t.Fatalf("Add() failed: %v", err)
	}
	s1.Close()

	s2, err := Open(path)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer s2.Close()

	n, err := s2.Count(context.Background())
	if err != nil {
		t.Fatalf("Count() failed: %v", err)
	}
	if n != 1 {
		t.Errorf("Count() = %d after reopen, want 1", n)
	}
}

func TestOpen_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	for i := 0; i < 3; i++ {
		s, err := Open(path)
		if err != nil {
			t.Fatalf("Open() iteration %d failed: %v", i, err)
		}
		s.Close()
	}

	s, err := Open(path)
	if err != nil {
		t.Fatalf("final Open() failed: %v", err)
	}
	defer s.Close()

	tables := []string{"invoices", "invoice_items"}
	for _, table := range tables {
		var name string
		err := s.db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?",
			table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %q not found after idempotent opens: %v", table, err)
		}
	}
}

func TestOpen_InvalidPath(t *testing.T) {
	path := "/nonexistent/dir/test.db"

	_, err := Open(path)
	if err == nil {
		t.Error("expected error for invalid path, got nil")
	}
}

func TestClose_NilDB(t *testing.T) {
	s := &Store{db: nil}
	if err := s.Close(); err != nil {
		t.Errorf("Close() on nil db should not error: %v", err)
	}
}

func TestClose_MultipleCalls(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}

	if err := s.Close(); err != nil {
		t.Errorf("first Close() failed: %v", err)
	}

	// Second close must not panic
	_ = s.Close()
}

// Pragma tests

func TestPragma_JournalMode(t *testing.T) {
	s := createTestStore(t)
	if err := s.verifyPragma("journal_mode", "wal"); err != nil {
		t.Error(err)
	}
}

func TestPragma_Synchronous(t *testing.T) {
	s := createTestStore(t)
	// NORMAL = 1
	if err := s.verifyPragma("synchronous", "1"); err != nil {
		t.Error(err)
	}
}

func TestPragma_BusyTimeout(t *testing.T) {
	s := createTestStore(t)
	if err := s.verifyPragma("busy_timeout", "5000"); err != nil {
		t.Error(err)
	}
}

func TestPragma_ForeignKeys(t *testing.T) {
	s := createTestStore(t)
	// ON = 1
	if err := s.verifyPragma("foreign_keys", "1"); err != nil {
		t.Error(err)
	}
}

// Schema tests

func TestSchema_InvoicesTable(t *testing.T) {
	s := createTestStore(t)

	columns := getTableColumns(t, s.db, "invoices")
	expected := []string{"id", "customer_name", "customer_email", "description", "invoice_date"}

	for _, col := range expected {
		if !contains(columns, col) {
			t.Errorf("invoices table missing column %q", col)
		}
	}
}

func TestSchema_InvoiceItemsTable(t *testing.T) {
	s := createTestStore(t)

	columns := getTableColumns(t, s.db, "invoice_items")
	expected := []string{"id", "invoice_id", "position", "description", "quantity", "unit_price", "tax_rate"}

	for _, col := range expected {
		if !contains(columns, col) {
			t.Errorf("invoice_items table missing column %q", col)
		}
	}
}

func TestSchema_InvoiceItemsIndex(t *testing.T) {
	s := createTestStore(t)

	indexes := getTableIndexes(t, s.db, "invoice_items")
	if !contains(indexes, "idx_invoice_items_invoice") {
		t.Errorf("invoice_items missing idx_invoice_items_invoice, got %v", indexes)
	}
}

// Constraint tests

func TestConstraint_ItemRequiresInvoice(t *testing.T) {
	s := createTestStore(t)

	_, err := s.db.Exec(`
		INSERT INTO invoice_items (invoice_id, position, description, quantity, unit_price, tax_rate)
		VALUES (999, 0, 'orphan', '1', '1', '0')
	`)
	if err == nil {
		t.Error("expected foreign key violation for item without invoice")
	}
}

func TestConstraint_EmptyCustomerNameRejected(t *testing.T) {
	s := createTestStore(t)

	_, err := s.db.Exec(`
		INSERT INTO invoices (customer_name, description, invoice_date)
		VALUES ('', 'x', '2024-01-15')
	`)
	if err == nil {
		t.Error("expected CHECK violation for empty customer_name")
	}
}

// Migration tests

func TestMigration_SchemaVersion(t *testing.T) {
	s := createTestStore(t)

	version, err := s.SchemaVersion(context.Background())
	if err != nil {
		t.Fatalf("SchemaVersion() failed: %v", err)
	}
	if version != currentSchemaVersion {
		t.Errorf("user_version = %d, want %d", version, currentSchemaVersion)
	}
}

func TestMigration_IdempotentUpgrade(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	for i := 0; i < 3; i++ {
		s, err := Open(path)
		if err != nil {
			t.Fatalf("Open() iteration %d failed: %v", i, err)
		}

		version, err := s.SchemaVersion(context.Background())
		if err != nil {
			t.Fatalf("SchemaVersion() failed: %v", err)
		}
		if version != currentSchemaVersion {
			t.Errorf("iteration %d: user_version = %d, want %d", i, version, currentSchemaVersion)
		}

		s.Close()
	}
}

func TestMigration_UpgradeFromV1(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	// Create a v1 database by hand: no customer_email column.
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	stmts := []string{
		`CREATE TABLE invoices (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			customer_name TEXT NOT NULL,
			description   TEXT NOT NULL DEFAULT '',
			invoice_date  TEXT NOT NULL
		)`,
		`CREATE TABLE invoice_items (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			invoice_id  INTEGER NOT NULL REFERENCES invoices(id) ON DELETE CASCADE,
			position    INTEGER NOT NULL,
			description TEXT NOT NULL,
			quantity    TEXT NOT NULL,
			unit_price  TEXT NOT NULL,
			tax_rate    TEXT NOT NULL
		)`,
		`INSERT INTO invoices (customer_name, description, invoice_date) VALUES ('Old Timer', 'legacy', '2020-05-01')`,
		`PRAGMA user_version = 1`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("setup %q failed: %v", stmt, err)
		}
	}
	db.Close()

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer s.Close()

	if !contains(getTableColumns(t, s.db, "invoices"), "customer_email") {
		t.Fatal("customer_email column not added by migration")
	}

	version, err := s.SchemaVersion(context.Background())
	if err != nil {
		t.Fatalf("SchemaVersion() failed: %v", err)
	}
	if version != currentSchemaVersion {
		t.Errorf("user_version = %d, want %d after migration", version, currentSchemaVersion)
	}

	invoices, err := s.GetAll(context.Background())
	if err != nil {
		t.Fatalf("GetAll() failed: %v", err)
	}
	if len(invoices) != 1 || invoices[0].CustomerName != "Old Timer" || invoices[0].CustomerEmail != "" {
		t.Errorf("legacy row not preserved: %+v", invoices)
	}
}

// Helper functions

func getTableColumns(t *testing.T, db *sql.DB, table string) []string {
	t.Helper()

	rows, err := db.Query("PRAGMA table_info(" + table + ")")
	if err != nil {
		t.Fatalf("failed to get table info for %q: %v", table, err)
	}
	defer rows.Close()

	var columns []string
	for rows.Next() {
		var cid int
		var name, ctype string
		var notnull, pk int
		var dfltValue interface{}
		if err := rows.Scan(&cid, &name, &ctype, &notnull, &dfltValue, &pk); err != nil {
			t.Fatalf("failed to scan column info: %v", err)
		}
		columns = append(columns, name)
	}
	return columns
}

func getTableIndexes(t *testing.T, db *sql.DB, table string) []string {
	t.Helper()

	rows, err := db.Query("SELECT name FROM sqlite_master WHERE type='index' AND tbl_name=?", table)
	if err != nil {
		t.Fatalf("failed to get indexes for %q: %v", table, err)
	}
	defer rows.Close()

	var indexes []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			t.Fatalf("failed to scan index name: %v", err)
		}
		indexes = append(indexes, name)
	}
	return indexes
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
