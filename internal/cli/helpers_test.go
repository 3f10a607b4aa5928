package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/roach88/invoicebook/internal/invoice"
	"github.com/roach88/invoicebook/internal/store"
	"github.com/roach88/invoicebook/internal/testutil"
)

// newTestOptions returns text-mode options on a fresh database with the
// clock pinned to testutil.Today.
func newTestOptions(t *testing.T) *RootOptions {
	t.Helper()
	return &RootOptions{
		Format:   "text",
		Database: filepath.Join(t.TempDir(), "test.db"),
		Clock:    testutil.NewFixedClock(testutil.Today),
		OpIDs:    testutil.NewFixedIDGenerator(""),
	}
}

// runCommand executes cmd with args and stdin, returning what it wrote
// to stdout and stderr.
func runCommand(t *testing.T, cmd *cobra.Command, stdin string, args ...string) (string, string, error) {
	t.Helper()
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

// openTestStore opens the database named by opts.
func openTestStore(t *testing.T, opts *RootOptions) *store.Store {
	t.Helper()
	st, err := store.Open(opts.Database)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

// seedInvoices adds invoices to the database named by opts and closes it.
func seedInvoices(t *testing.T, opts *RootOptions, invoices ...invoice.Invoice) []int64 {
	t.Helper()
	st, err := store.Open(opts.Database)
	require.NoError(t, err)
	defer st.Close()

	ids := make([]int64, 0, len(invoices))
	for _, inv := range invoices {
		id, err := st.Add(context.Background(), inv)
		require.NoError(t, err)
		ids = append(ids, id)
	}
	return ids
}

// flatInvoice is a tax-free one-item invoice totalling amount.
func flatInvoice(name, amount string) invoice.Invoice {
	return invoice.Invoice{
		CustomerName: name,
		Description:  "Flat fee",
		InvoiceDate:  testutil.Date(2024, 6, 1),
		Items:        []invoice.Item{testutil.Item("Fee", "1", amount, "0")},
	}
}
