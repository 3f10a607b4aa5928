// Command invoicebook records customer invoices in a local SQLite
// database. Without arguments it starts the interactive menu.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/invoicebook/internal/cli"
	"github.com/roach88/invoicebook/internal/config"
	"github.com/roach88/invoicebook/internal/logger"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return cli.ExitCommandError
	}

	logCloser, err := logger.Setup(cfg.GetLoggerConfig())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize logger: %v\n", err)
		return cli.ExitCommandError
	}
	defer logCloser.Close()

	log := logger.WithComponent("main")
	log.Debug().Str("db", cfg.DatabasePath).Msg("starting invoicebook")

	if err := cli.NewRootCommand(cfg).Execute(); err != nil {
		if !cli.IsReported(err) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return cli.GetExitCode(err)
	}
	return cli.ExitSuccess
}
