package cli

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/roach88/invoicebook/internal/invoice"
	"github.com/roach88/invoicebook/internal/logger"
	"github.com/roach88/invoicebook/internal/store"
)

// Repository is the set of invoice operations the commands and the
// menu use. *store.Store implements it.
type Repository interface {
	Add(ctx context.Context, inv invoice.Invoice) (int64, error)
	GetAll(ctx context.Context) ([]invoice.Invoice, error)
	GetByID(ctx context.Context, id int64) (invoice.Invoice, error)
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, term string) ([]invoice.Invoice, error)
	GetSorted(ctx context.Context, key invoice.SortKey) ([]invoice.Invoice, error)
	Count(ctx context.Context) (int, error)
	Sum(ctx context.Context) (decimal.Decimal, error)
	Average(ctx context.Context) (decimal.Decimal, error)
}

var _ Repository = (*store.Store)(nil)

// OpIDGenerator produces the op_id that ties together the log lines of
// one command or menu action.
type OpIDGenerator interface {
	Generate() string
}

// UUIDv7Generator generates time-ordered UUIDv7 op ids.
type UUIDv7Generator struct{}

// Generate returns a new UUIDv7 string.
func (UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}

func (o *RootOptions) clock() invoice.Clock {
	if o.Clock == nil {
		return invoice.SystemClock{}
	}
	return o.Clock
}

func (o *RootOptions) newOpID() string {
	if o.OpIDs == nil {
		return UUIDv7Generator{}.Generate()
	}
	return o.OpIDs.Generate()
}

func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   o.Verbose,
	}
}

// withStore opens the database for the duration of fn. Failure to open
// is a command error; the store is always closed afterwards.
func withStore(opts *RootOptions, cmd *cobra.Command, fn func(ctx context.Context, repo Repository, log zerolog.Logger) error) error {
	log := logger.WithOp(cmd.Name(), opts.newOpID())

	log.Debug().Str("path", opts.Database).Msg("opening database")
	st, err := store.Open(opts.Database)
	if err != nil {
		log.Error().Err(err).Str("path", opts.Database).Msg("failed to open database")
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			log.Error().Err(closeErr).Msg("error closing database")
		}
	}()

	// Use command's context if available (for testing)
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return fn(ctx, st, log)
}
