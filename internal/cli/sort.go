package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/roach88/invoicebook/internal/invoice"
)

// SortOptions holds flags for the sort command.
type SortOptions struct {
	*RootOptions
	By string
}

// NewSortCommand creates the sort command.
func NewSortCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SortOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "sort",
		Short: "List invoices in sorted order",
		Long: `List all invoices sorted ascending by customer name, invoice date or
total amount. Invoices that compare equal keep ascending id order.

Example:
  invoicebook sort --by amount`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSort(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.By, "by", "name", "sort key (name|date|amount)")

	return cmd
}

func runSort(opts *SortOptions, cmd *cobra.Command) error {
	key := invoice.ParseSortKey(opts.By)
	if key == invoice.SortUnsorted {
		return NewExitError(ExitCommandError,
			fmt.Sprintf("invalid sort key %q: must be one of name, date, amount", opts.By))
	}

	f := opts.formatter(cmd)
	return withStore(opts.RootOptions, cmd, func(ctx context.Context, repo Repository, log zerolog.Logger) error {
		invoices, err := repo.GetSorted(ctx, key)
		if err != nil {
			return f.Fail(ExitFailure, "failed to sort invoices", err)
		}
		log.Debug().Stringer("key", key).Int("count", len(invoices)).Msg("sorted invoices")
		return f.Render(NewInvoiceViews(invoices), func(w io.Writer) {
			RenderTable(w, invoices)
		})
	})
}
