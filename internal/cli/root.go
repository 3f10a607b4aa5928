package cli

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/roach88/invoicebook/internal/config"
	"github.com/roach88/invoicebook/internal/invoice"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose  bool
	Format   string // "json" | "text"
	Database string

	// Clock supplies "today" for date validation.
	// If nil, defaults to invoice.SystemClock.
	Clock invoice.Clock

	// OpIDs generates the op_id attached to log lines (for testing).
	// If nil, defaults to UUIDv7Generator.
	OpIDs OpIDGenerator
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command. cfg supplies the default
// database path; nil means config.DefaultDatabasePath.
//
// Without a subcommand the interactive menu starts.
func NewRootCommand(cfg *config.Config) *cobra.Command {
	opts := &RootOptions{}

	dbPath := config.DefaultDatabasePath
	if cfg != nil {
		dbPath = cfg.DatabasePath
	}

	cmd := &cobra.Command{
		Use:   "invoicebook",
		Short: "Invoicebook - customer invoices on the console",
		Long: `Record customer invoices and their line items in a local SQLite database,
then list, search, sort and summarise them.

Run without a subcommand to start the interactive menu.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return NewExitError(ExitCommandError,
					fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			if opts.Verbose {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMenu(opts, cmd)
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.Database, "db", dbPath, "path to SQLite database")

	// Add subcommands
	cmd.AddCommand(NewMenuCommand(opts))
	cmd.AddCommand(NewAddCommand(opts))
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewShowCommand(opts))
	cmd.AddCommand(NewSearchCommand(opts))
	cmd.AddCommand(NewDeleteCommand(opts))
	cmd.AddCommand(NewStatsCommand(opts))
	cmd.AddCommand(NewSortCommand(opts))
	cmd.AddCommand(NewImportCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
