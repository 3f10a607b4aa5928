package importer

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/roach88/invoicebook/internal/invoice"
	"github.com/roach88/invoicebook/internal/validate"
)

// Batch is the top-level document of a batch file.
type Batch struct {
	// Invoices lists the invoices to add, in order.
	Invoices []Entry `yaml:"invoices"`
}

// Entry is one invoice as written in the file.
type Entry struct {
	FirstName   string      `yaml:"first_name"`
	LastName    string      `yaml:"last_name"`
	Email       string      `yaml:"email,omitempty"`
	Description string      `yaml:"description,omitempty"`
	Date        string      `yaml:"date"`
	Items       []EntryItem `yaml:"items"`
}

// EntryItem is one line item as written in the file.
type EntryItem struct {
	Description string `yaml:"description"`
	Quantity    string `yaml:"quantity"`
	UnitPrice   string `yaml:"unit_price"`
	TaxRate     string `yaml:"tax_rate"`
}

// LoadBatch reads and parses a batch YAML file.
// Returns an error if the file doesn't exist, is malformed or
// contains unknown fields.
func LoadBatch(path string) (*Batch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}
	return ParseBatch(data)
}

// ParseBatch parses batch YAML from memory.
func ParseBatch(data []byte) (*Batch, error) {
	var batch Batch
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&batch); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("batch file is empty")
		}
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if len(batch.Invoices) == 0 {
		return nil, fmt.Errorf("invalid batch: invoices list is required and must be non-empty")
	}

	return &batch, nil
}

// Build validates every entry against today and converts the batch.
// Nothing is returned unless all entries are valid; the error lists
// every problem found, each prefixed with its position.
func (b *Batch) Build(today time.Time) ([]invoice.Invoice, error) {
	var errs []error
	out := make([]invoice.Invoice, 0, len(b.Invoices))

	for i, e := range b.Invoices {
		inv, err := e.Invoice(today)
		if err != nil {
			errs = append(errs, fmt.Errorf("invoices[%d]: %w", i, err))
			continue
		}
		out = append(out, inv)
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return out, nil
}

// Invoice applies the validation rules to one entry. All problems are
// reported, each prefixed with its field name.
func (e Entry) Invoice(today time.Time) (invoice.Invoice, error) {
	var errs []error

	first, err := validate.Name(strings.TrimSpace(e.FirstName))
	if err != nil {
		errs = append(errs, fmt.Errorf("first_name: %w", err))
	}
	last, err := validate.Name(strings.TrimSpace(e.LastName))
	if err != nil {
		errs = append(errs, fmt.Errorf("last_name: %w", err))
	}

	var email string
	if e.Email != "" {
		if email, err = validate.Email(strings.TrimSpace(e.Email)); err != nil {
			errs = append(errs, fmt.Errorf("email: %w", err))
		}
	}

	date, err := validate.InvoiceDate(e.Date, today)
	if err != nil {
		errs = append(errs, fmt.Errorf("date: %w", err))
	}

	items := make([]invoice.Item, 0, len(e.Items))
	for j, ei := range e.Items {
		it, err := ei.toItem()
		if err != nil {
			errs = append(errs, fmt.Errorf("items[%d]: %w", j, err))
			continue
		}
		items = append(items, it)
	}

	if len(errs) > 0 {
		return invoice.Invoice{}, errors.Join(errs...)
	}

	return invoice.Invoice{
		CustomerName:  validate.CustomerName(first, last),
		CustomerEmail: email,
		Description:   strings.TrimSpace(e.Description),
		InvoiceDate:   date,
		Items:         items,
	}, nil
}

// toItem applies the item rules; the first failing field is reported.
func (ei EntryItem) toItem() (invoice.Item, error) {
	desc, err := validate.ItemDescription(ei.Description)
	if err != nil {
		return invoice.Item{}, err
	}
	qty, err := validate.Quantity(ei.Quantity)
	if err != nil {
		return invoice.Item{}, err
	}
	price, err := validate.UnitPrice(ei.UnitPrice)
	if err != nil {
		return invoice.Item{}, err
	}
	rate, err := validate.TaxRate(ei.TaxRate)
	if err != nil {
		return invoice.Item{}, err
	}
	return invoice.Item{Description: desc, Quantity: qty, UnitPrice: price, TaxRate: rate}, nil
}
