package validate

import (
	"errors"
	"fmt"
)

// ErrRejected is matched by every validation failure.
var ErrRejected = errors.New("input rejected")

// Field names the input a rule was applied to.
type Field string

const (
	FieldName            Field = "name"
	FieldEmail           Field = "email"
	FieldDecimal         Field = "decimal"
	FieldInvoiceDate     Field = "invoice_date"
	FieldQuantity        Field = "quantity"
	FieldUnitPrice       Field = "unit_price"
	FieldTaxRate         Field = "tax_rate"
	FieldItemDescription Field = "item_description"
)

// Error describes why an input was rejected.
type Error struct {
	// Field identifies the rule that rejected the input.
	Field Field

	// Input is the raw value as entered.
	Input string

	// Reason is a short human-readable explanation.
	Reason string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Input, e.Reason)
}

// Is reports ErrRejected so callers can classify without a type assertion.
func (e *Error) Is(target error) bool {
	return target == ErrRejected
}

func reject(field Field, input, reason string) *Error {
	return &Error{Field: field, Input: input, Reason: reason}
}
