package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/roach88/invoicebook/internal/invoice"
)

// NewListCommand creates the list command.
func NewListCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all invoices",
		Long: `List all invoices in ascending id order.

Examples:
  invoicebook list
  invoicebook list --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(opts, cmd)
		},
	}
}

func runList(opts *RootOptions, cmd *cobra.Command) error {
	f := opts.formatter(cmd)
	return withStore(opts, cmd, func(ctx context.Context, repo Repository, log zerolog.Logger) error {
		invoices, err := repo.GetAll(ctx)
		if err != nil {
			return f.Fail(ExitFailure, "failed to list invoices", err)
		}
		log.Debug().Int("count", len(invoices)).Msg("listed invoices")
		return f.Render(NewInvoiceViews(invoices), func(w io.Writer) {
			RenderTable(w, invoices)
		})
	})
}

// NewShowCommand creates the show command.
func NewShowCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one invoice with its items",
		Long: `Show one invoice with its line items and totals.

Exit codes:
  0 - Invoice shown
  1 - No invoice with that id, or storage error
  2 - Command error (id is not a number, database cannot be opened)

Example:
  invoicebook show 3`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return runShow(opts, id, cmd)
		},
	}
}

func runShow(opts *RootOptions, id int64, cmd *cobra.Command) error {
	f := opts.formatter(cmd)
	return withStore(opts, cmd, func(ctx context.Context, repo Repository, log zerolog.Logger) error {
		inv, err := repo.GetByID(ctx, id)
		if invoice.IsNotFound(err) {
			return f.Fail(ExitFailure, fmt.Sprintf("invoice %d not found", id), err)
		}
		if err != nil {
			return f.Fail(ExitFailure, "failed to load invoice", err)
		}
		return f.Render(NewInvoiceView(inv), func(w io.Writer) {
			RenderInvoice(w, inv)
		})
	})
}

// parseID parses an invoice id argument.
func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, WrapExitError(ExitCommandError, fmt.Sprintf("invalid invoice id %q", arg), err)
	}
	return id, nil
}
