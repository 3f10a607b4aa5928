package cli

import (
	"context"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// NewStatsCommand creates the stats command.
func NewStatsCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show invoice count, total and average",
		Long: `Show the number of invoices, the sum of their totals and the
average total. The average of no invoices is 0.00.

Example:
  invoicebook stats --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(opts, cmd)
		},
	}
}

func runStats(opts *RootOptions, cmd *cobra.Command) error {
	f := opts.formatter(cmd)
	return withStore(opts, cmd, func(ctx context.Context, repo Repository, log zerolog.Logger) error {
		st, err := collectStats(ctx, repo)
		if err != nil {
			return f.Fail(ExitFailure, "failed to compute statistics", err)
		}
		log.Debug().Int("count", st.Count).Msg("computed statistics")
		return f.Render(NewStatsView(st), func(w io.Writer) {
			RenderStats(w, st)
		})
	})
}
