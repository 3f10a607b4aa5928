package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/roach88/invoicebook/internal/importer"
)

// ImportResult is the JSON payload of the import command.
type ImportResult struct {
	Imported int     `json:"imported"`
	IDs      []int64 `json:"ids"`
}

// NewImportCommand creates the import command.
func NewImportCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.yaml>",
		Short: "Add invoices from a YAML batch file",
		Long: `Add every invoice listed in a YAML batch file.

The whole file is validated first; if any entry is rejected nothing is
written and every problem is listed. Each invoice is then added in its
own transaction.

Exit codes:
  0 - All invoices added
  1 - File rejected, or a storage error stopped the import
  2 - Command error (database cannot be opened)

Example:
  invoicebook import january.yaml`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(opts, args[0], cmd)
		},
	}
}

func runImport(opts *RootOptions, path string, cmd *cobra.Command) error {
	f := opts.formatter(cmd)

	batch, err := importer.LoadBatch(path)
	if err != nil {
		return failImport(f, "failed to read batch file", err)
	}
	invoices, err := batch.Build(opts.clock().Now())
	if err != nil {
		return f.Fail(ExitFailure, "batch file rejected", err)
	}
	f.VerboseLog("validated %d invoices from %s", len(invoices), path)

	return withStore(opts, cmd, func(ctx context.Context, repo Repository, log zerolog.Logger) error {
		result := ImportResult{IDs: make([]int64, 0, len(invoices))}
		for i, inv := range invoices {
			id, err := repo.Add(ctx, inv)
			if err != nil {
				log.Error().Err(err).Int("entry", i).Int("imported", result.Imported).Msg("import stopped")
				return f.Fail(ExitFailure,
					fmt.Sprintf("import stopped at invoices[%d] after %d of %d", i, result.Imported, len(invoices)), err)
			}
			result.IDs = append(result.IDs, id)
			result.Imported++
		}
		log.Info().Str("file", path).Int("imported", result.Imported).Msg("batch imported")

		return f.Render(result, func(w io.Writer) {
			fmt.Fprintf(w, "Imported %d invoices.\n", result.Imported)
		})
	})
}

// failImport reports an unreadable or malformed batch file.
func failImport(f *OutputFormatter, message string, err error) error {
	if outErr := f.Error(ErrCodeImport, message, err.Error()); outErr != nil {
		return WrapExitError(ExitFailure, message, errors.Join(err, outErr))
	}
	exitErr := WrapExitError(ExitFailure, message, err)
	exitErr.Reported = true
	return exitErr
}
