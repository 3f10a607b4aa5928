package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/roach88/invoicebook/internal/importer"
)

// AddOptions holds flags for the add command.
type AddOptions struct {
	*RootOptions
	FirstName   string
	LastName    string
	Email       string
	Description string
	Date        string
	Items       []string
}

// AddResult is the JSON payload of the add command.
type AddResult struct {
	ID      int64       `json:"id"`
	Invoice InvoiceView `json:"invoice"`
}

// NewAddCommand creates the add command.
func NewAddCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AddOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an invoice",
		Long: `Add an invoice with its line items in one step.

Each --item is "description;quantity;unit price;tax rate". The tax rate
may be a fraction (0.21) or a percentage (21 or 21%). Every field is
validated before anything is written; all problems are reported.

Exit codes:
  0 - Invoice added
  1 - Input rejected or storage error
  2 - Command error (bad flags, database cannot be opened)

Example:
  invoicebook add --first jane --last doe --date 15-01-2024 \
    --description Consulting --item "Hours;10;50.00;21%"`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.FirstName, "first", "", "customer first name (required)")
	cmd.Flags().StringVar(&opts.LastName, "last", "", "customer last name (required)")
	cmd.Flags().StringVar(&opts.Email, "email", "", "customer email address")
	cmd.Flags().StringVar(&opts.Description, "description", "", "invoice description")
	cmd.Flags().StringVar(&opts.Date, "date", "", "invoice date, dd-MM-yyyy (required)")
	cmd.Flags().StringArrayVar(&opts.Items, "item", nil, `line item "description;quantity;unit price;tax rate" (repeatable)`)
	_ = cmd.MarkFlagRequired("first")
	_ = cmd.MarkFlagRequired("last")
	_ = cmd.MarkFlagRequired("date")

	return cmd
}

func runAdd(opts *AddOptions, cmd *cobra.Command) error {
	f := opts.formatter(cmd)

	entry := importer.Entry{
		FirstName:   opts.FirstName,
		LastName:    opts.LastName,
		Email:       opts.Email,
		Description: opts.Description,
		Date:        opts.Date,
	}
	for i, raw := range opts.Items {
		item, err := parseItemFlag(raw)
		if err != nil {
			return f.Fail(ExitFailure, "invalid input", fmt.Errorf("item %d: %w", i+1, err))
		}
		entry.Items = append(entry.Items, item)
	}

	inv, err := entry.Invoice(opts.clock().Now())
	if err != nil {
		return f.Fail(ExitFailure, "invalid input", err)
	}

	return withStore(opts.RootOptions, cmd, func(ctx context.Context, repo Repository, log zerolog.Logger) error {
		id, err := repo.Add(ctx, inv)
		if err != nil {
			log.Error().Err(err).Msg("add failed")
			return f.Fail(ExitFailure, "failed to add invoice", err)
		}
		inv.ID = id
		log.Info().Int64("invoice_id", id).Int("items", len(inv.Items)).Msg("invoice added")

		return f.Render(AddResult{ID: id, Invoice: NewInvoiceView(inv)}, func(w io.Writer) {
			fmt.Fprintf(w, "Invoice %d added (total %s).\n", id, FormatMoney(inv.TotalAmount()))
		})
	})
}

// parseItemFlag splits "description;quantity;unit price;tax rate".
// Values are validated later with the rest of the invoice.
func parseItemFlag(raw string) (importer.EntryItem, error) {
	parts := strings.Split(raw, ";")
	if len(parts) != 4 {
		return importer.EntryItem{}, fmt.Errorf("%q: expected description;quantity;unit price;tax rate", raw)
	}
	return importer.EntryItem{
		Description: parts[0],
		Quantity:    parts[1],
		UnitPrice:   parts[2],
		TaxRate:     parts[3],
	}, nil
}
