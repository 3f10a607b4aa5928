package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/roach88/invoicebook/internal/invoice"
)

// DeleteOptions holds flags for the delete command.
type DeleteOptions struct {
	*RootOptions
	Yes bool
}

// DeleteResult is the JSON payload of the delete command.
type DeleteResult struct {
	ID      int64 `json:"id"`
	Deleted bool  `json:"deleted"`
}

// NewDeleteCommand creates the delete command.
func NewDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DeleteOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an invoice and its items",
		Long: `Delete an invoice and all of its line items.

Without --yes the command asks for confirmation on stdin. JSON output
never prompts, so --yes is required with --format json. Deleting an id
that does not exist changes nothing and is not an error.

Example:
  invoicebook delete 3 --yes`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return runDelete(opts, id, cmd)
		},
	}

	cmd.Flags().BoolVarP(&opts.Yes, "yes", "y", false, "delete without asking for confirmation")

	return cmd
}

func runDelete(opts *DeleteOptions, id int64, cmd *cobra.Command) error {
	f := opts.formatter(cmd)
	if opts.Format == "json" && !opts.Yes {
		return NewExitError(ExitCommandError, "--yes is required with --format json")
	}

	return withStore(opts.RootOptions, cmd, func(ctx context.Context, repo Repository, log zerolog.Logger) error {
		inv, err := repo.GetByID(ctx, id)
		if invoice.IsNotFound(err) {
			log.Debug().Int64("invoice_id", id).Msg("nothing to delete")
			return f.Render(DeleteResult{ID: id, Deleted: false}, func(w io.Writer) {
				fmt.Fprintln(w, "Invoice not found.")
			})
		}
		if err != nil {
			return f.Fail(ExitFailure, "failed to load invoice", err)
		}

		if !opts.Yes {
			prompt := NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
			confirmed, err := prompt.Confirm(ctx,
				fmt.Sprintf("Are you sure you want to delete invoice %d (Customer: %s)? (y/n): ", inv.ID, inv.CustomerName))
			if err != nil && !errors.Is(err, io.EOF) {
				return WrapExitError(ExitCommandError, "failed to read confirmation", err)
			}
			if !confirmed {
				fmt.Fprintln(cmd.OutOrStdout(), "Deletion cancelled.")
				return nil
			}
		}

		if err := repo.Delete(ctx, id); err != nil {
			return f.Fail(ExitFailure, "failed to delete invoice", err)
		}
		log.Info().Int64("invoice_id", id).Msg("invoice deleted")

		return f.Render(DeleteResult{ID: id, Deleted: true}, func(w io.Writer) {
			fmt.Fprintln(w, "Invoice deleted.")
		})
	})
}
