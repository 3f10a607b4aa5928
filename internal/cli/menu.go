package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/roach88/invoicebook/internal/invoice"
	"github.com/roach88/invoicebook/internal/logger"
	"github.com/roach88/invoicebook/internal/validate"
)

const invalidNameHint = "Name must be at least 3 letters and contain only letters, spaces or hyphens."

// Menu is the interactive console session. Each numbered option runs
// one action against the repository and returns to the menu.
type Menu struct {
	repo   Repository
	prompt *Prompter
	out    io.Writer
	clock  invoice.Clock
	opIDs  OpIDGenerator
}

// menuAction runs one menu option.
type menuAction struct {
	name string
	run  func(m *Menu, ctx context.Context, log zerolog.Logger) error
}

var menuActions = map[string]menuAction{
	"1": {"add", (*Menu).addInvoice},
	"2": {"list", (*Menu).listInvoices},
	"3": {"search", (*Menu).searchInvoices},
	"4": {"delete", (*Menu).deleteInvoice},
	"5": {"stats", (*Menu).showStats},
	"6": {"sort", (*Menu).sortInvoices},
}

// NewMenu creates a menu reading answers from in and writing to out.
// Nil clock and opIDs fall back to the system clock and UUIDv7 ids.
func NewMenu(repo Repository, in io.Reader, out io.Writer, clock invoice.Clock, opIDs OpIDGenerator) *Menu {
	if clock == nil {
		clock = invoice.SystemClock{}
	}
	if opIDs == nil {
		opIDs = UUIDv7Generator{}
	}
	return &Menu{
		repo:   repo,
		prompt: NewPrompter(in, out),
		out:    out,
		clock:  clock,
		opIDs:  opIDs,
	}
}

// Run shows the menu until the user chooses 0 or input ends.
// A failing action is reported and the menu continues. Run returns
// ctx.Err() if ctx is cancelled while waiting for input.
func (m *Menu) Run(ctx context.Context) error {
	for {
		m.showMenu()
		choice, err := m.prompt.Ask(ctx, "Choose an option: ")
		if err != nil {
			return endOfInput(err)
		}

		if choice == "0" {
			fmt.Fprintln(m.out, "Goodbye!")
			return nil
		}

		action, ok := menuActions[choice]
		if !ok {
			fmt.Fprintln(m.out, "Invalid input. Please enter a number from 0 to 6.")
			fmt.Fprintln(m.out, "Press Enter to try again...")
			if _, err := m.prompt.Ask(ctx, ""); err != nil {
				return endOfInput(err)
			}
			continue
		}

		log := logger.WithOp("menu", m.opIDs.Generate()).With().Str("action", action.name).Logger()
		log.Debug().Msg("menu action started")

		fmt.Fprintln(m.out)
		if err := action.run(m, ctx, log); err != nil {
			if errors.Is(err, io.EOF) || ctx.Err() != nil {
				return endOfInput(err)
			}
			log.Error().Err(err).Msg("menu action failed")
			fmt.Fprintf(m.out, "Error: %v\n", err)
		}
		fmt.Fprintln(m.out)
	}
}

// endOfInput treats exhausted input as a normal exit.
func endOfInput(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func (m *Menu) showMenu() {
	fmt.Fprintln(m.out, "=== INVOICE MANAGER ===")
	fmt.Fprintln(m.out, "1. Add invoice")
	fmt.Fprintln(m.out, "2. Show all invoices")
	fmt.Fprintln(m.out, "3. Search invoice")
	fmt.Fprintln(m.out, "4. Delete invoice")
	fmt.Fprintln(m.out, "5. Show statistics")
	fmt.Fprintln(m.out, "6. Sort invoices")
	fmt.Fprintln(m.out, "0. Exit")
	fmt.Fprintln(m.out)
}

func (m *Menu) addInvoice(ctx context.Context, log zerolog.Logger) error {
	first, ok, err := m.askName(ctx, "First name", "first name")
	if err != nil || !ok {
		return err
	}
	last, ok, err := m.askName(ctx, "Last name", "last name")
	if err != nil || !ok {
		return err
	}

	email, err := m.askEmail(ctx)
	if err != nil {
		return err
	}

	description, err := m.prompt.Ask(ctx, "Description: ")
	if err != nil {
		return err
	}

	var date time.Time
	for {
		answer, err := m.prompt.Ask(ctx, "Invoice date (dd-MM-yyyy): ")
		if err != nil {
			return err
		}
		if date, err = validate.InvoiceDate(answer, m.clock.Now()); err == nil {
			break
		}
		log.Debug().Err(err).Msg("rejected invoice date")
		fmt.Fprintln(m.out, "Invalid date format or unrealistic date.")
	}

	var items []invoice.Item
	for {
		item, err := m.askItem(ctx, log)
		if err != nil {
			return err
		}
		items = append(items, item)

		another, err := m.prompt.Confirm(ctx, "Add another item? (y/n): ")
		if err != nil {
			return err
		}
		if !another {
			break
		}
	}

	inv := invoice.Invoice{
		CustomerName:  validate.CustomerName(first, last),
		CustomerEmail: email,
		Description:   description,
		InvoiceDate:   date,
		Items:         items,
	}
	id, err := m.repo.Add(ctx, inv)
	if err != nil {
		return err
	}

	log.Info().Int64("invoice_id", id).Int("items", len(items)).Msg("invoice added")
	fmt.Fprintf(m.out, "Invoice %d with items added successfully.\n", id)
	return nil
}

// askName asks until a valid name is entered. ok is false if the user
// typed "cancel".
func (m *Menu) askName(ctx context.Context, label, field string) (string, bool, error) {
	for {
		answer, err := m.prompt.Ask(ctx, label+" (or type 'cancel' to return): ")
		if err != nil {
			return "", false, err
		}
		if strings.EqualFold(answer, "cancel") {
			return "", false, nil
		}
		name, err := validate.Name(answer)
		if err == nil {
			return name, true, nil
		}
		fmt.Fprintf(m.out, "Invalid %s. %s\n", field, invalidNameHint)
	}
}

// askEmail returns "" when the email is skipped.
func (m *Menu) askEmail(ctx context.Context) (string, error) {
	for {
		answer, err := m.prompt.Ask(ctx, "Email (or type 'skip' to leave empty): ")
		if err != nil {
			return "", err
		}
		if answer == "" || strings.EqualFold(answer, "skip") {
			return "", nil
		}
		email, err := validate.Email(answer)
		if err == nil {
			return email, nil
		}
		fmt.Fprintln(m.out, "Invalid email address.")
	}
}

func (m *Menu) askItem(ctx context.Context, log zerolog.Logger) (invoice.Item, error) {
	var item invoice.Item
	for {
		answer, err := m.prompt.Ask(ctx, "Item description: ")
		if err != nil {
			return item, err
		}
		if item.Description, err = validate.ItemDescription(answer); err == nil {
			break
		}
		fmt.Fprintln(m.out, "Description cannot be empty.")
	}

	var err error
	if item.Quantity, err = m.askDecimal(ctx, log, "Quantity: ", "Invalid quantity.", validate.Quantity); err != nil {
		return item, err
	}
	if item.UnitPrice, err = m.askDecimal(ctx, log, "Unit price: ", "Invalid unit price.", validate.UnitPrice); err != nil {
		return item, err
	}
	if item.TaxRate, err = m.askDecimal(ctx, log, "Tax rate (e.g. 0.21 for 21%): ", "Invalid tax rate.", validate.TaxRate); err != nil {
		return item, err
	}
	return item, nil
}

// askDecimal repeats prompt until parse accepts the answer.
func (m *Menu) askDecimal(ctx context.Context, log zerolog.Logger, prompt, invalid string, parse func(string) (decimal.Decimal, error)) (decimal.Decimal, error) {
	for {
		answer, err := m.prompt.Ask(ctx, prompt)
		if err != nil {
			return decimal.Zero, err
		}
		v, err := parse(answer)
		if err == nil {
			return v, nil
		}
		log.Debug().Err(err).Msg("rejected item field")
		fmt.Fprintln(m.out, invalid)
	}
}

func (m *Menu) listInvoices(ctx context.Context, log zerolog.Logger) error {
	invoices, err := m.repo.GetAll(ctx)
	if err != nil {
		return err
	}
	log.Debug().Int("count", len(invoices)).Msg("listed invoices")
	RenderTable(m.out, invoices)
	return nil
}

func (m *Menu) searchInvoices(ctx context.Context, log zerolog.Logger) error {
	term, err := m.prompt.Ask(ctx, "Enter search term: ")
	if err != nil {
		return err
	}
	results, err := m.repo.Search(ctx, term)
	if err != nil {
		return err
	}
	log.Debug().Str("term", term).Int("matches", len(results)).Msg("searched invoices")
	RenderMatches(m.out, results)
	return nil
}

func (m *Menu) deleteInvoice(ctx context.Context, log zerolog.Logger) error {
	answer, err := m.prompt.Ask(ctx, "Enter ID to delete: ")
	if err != nil {
		return err
	}
	id, err := strconv.ParseInt(answer, 10, 64)
	if err != nil {
		fmt.Fprintln(m.out, "Invalid ID.")
		return nil
	}

	inv, err := m.repo.GetByID(ctx, id)
	if invoice.IsNotFound(err) {
		fmt.Fprintln(m.out, "Invoice not found.")
		return nil
	}
	if err != nil {
		return err
	}

	confirmed, err := m.prompt.Confirm(ctx,
		fmt.Sprintf("Are you sure you want to delete invoice %d (Customer: %s)? (y/n): ", inv.ID, inv.CustomerName))
	if err != nil {
		return err
	}
	if !confirmed {
		fmt.Fprintln(m.out, "Deletion cancelled.")
		return nil
	}

	if err := m.repo.Delete(ctx, id); err != nil {
		return err
	}
	log.Info().Int64("invoice_id", id).Msg("invoice deleted")
	fmt.Fprintln(m.out, "Invoice deleted.")
	return nil
}

func (m *Menu) showStats(ctx context.Context, log zerolog.Logger) error {
	st, err := collectStats(ctx, m.repo)
	if err != nil {
		return err
	}
	log.Debug().Int("count", st.Count).Msg("computed statistics")
	RenderStats(m.out, st)
	return nil
}

func (m *Menu) sortInvoices(ctx context.Context, log zerolog.Logger) error {
	fmt.Fprintln(m.out, "Sort by: 1. Customer Name  2. Invoice Date  3. Amount")
	answer, err := m.prompt.Ask(ctx, "")
	if err != nil {
		return err
	}
	key := invoice.ParseSortKey(answer)
	invoices, err := m.repo.GetSorted(ctx, key)
	if err != nil {
		return err
	}
	log.Debug().Stringer("key", key).Int("count", len(invoices)).Msg("sorted invoices")
	RenderTable(m.out, invoices)
	return nil
}

// collectStats gathers count, sum and average from the repository.
func collectStats(ctx context.Context, repo Repository) (invoice.Stats, error) {
	count, err := repo.Count(ctx)
	if err != nil {
		return invoice.Stats{}, err
	}
	sum, err := repo.Sum(ctx)
	if err != nil {
		return invoice.Stats{}, err
	}
	avg, err := repo.Average(ctx)
	if err != nil {
		return invoice.Stats{}, err
	}
	return invoice.Stats{Count: count, Sum: sum, Average: avg}, nil
}
