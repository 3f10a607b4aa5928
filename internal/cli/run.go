package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/roach88/invoicebook/internal/logger"
	"github.com/roach88/invoicebook/internal/store"
)

// NewMenuCommand creates the menu command. The root command runs the
// same session when no subcommand is given.
func NewMenuCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "Start the interactive menu",
		Long: `Start the interactive invoice menu.

The database is created if it doesn't exist and stays open until you
choose 0, input ends, or the process is interrupted.

Example:
  invoicebook menu --db ./invoices.db`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMenu(opts, cmd)
		},
	}
}

func runMenu(opts *RootOptions, cmd *cobra.Command) error {
	if opts.Format == "json" {
		return NewExitError(ExitCommandError, "the interactive menu only supports --format text")
	}

	log := logger.WithComponent("menu")

	// Open database (create if not exists)
	log.Info().Str("path", opts.Database).Msg("opening database")
	st, err := store.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			log.Error().Err(closeErr).Msg("error closing database")
		}
	}()

	// Setup signal handling for graceful shutdown
	// Use command's context if available (for testing), otherwise create one
	parentCtx := cmd.Context()
	if parentCtx == nil {
		parentCtx = context.Background()
	}
	ctx, cancel := context.WithCancel(parentCtx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan) // Prevent signal handler leak

	go func() {
		select {
		case sig := <-sigChan:
			log.Info().Stringer("signal", sig).Msg("received signal, shutting down")
			cancel()
		case <-ctx.Done():
			// Parent context cancelled (e.g., from test)
		}
	}()

	menu := NewMenu(st, cmd.InOrStdin(), cmd.OutOrStdout(), opts.clock(), opts.OpIDs)
	if err := menu.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return WrapExitError(ExitFailure, "menu error", err)
	}

	log.Info().Msg("menu closed")
	return nil
}
