package cli

import (
	"context"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// NewSearchCommand creates the search command.
func NewSearchCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "search <term>",
		Short: "Find invoices by customer name or description",
		Long: `Find invoices whose customer name or description contains term.

Matching ignores case. An empty term matches every invoice.

Example:
  invoicebook search doe`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(opts, args[0], cmd)
		},
	}
}

func runSearch(opts *RootOptions, term string, cmd *cobra.Command) error {
	f := opts.formatter(cmd)
	return withStore(opts, cmd, func(ctx context.Context, repo Repository, log zerolog.Logger) error {
		results, err := repo.Search(ctx, term)
		if err != nil {
			return f.Fail(ExitFailure, "search failed", err)
		}
		log.Debug().Str("term", term).Int("matches", len(results)).Msg("searched invoices")
		return f.Render(NewInvoiceViews(results), func(w io.Writer) {
			RenderMatches(w, results)
		})
	})
}
