// Package validate turns raw user-entered strings into typed invoice values.
//
// Every rule is a pure function: the same input always yields the same
// result, and nothing is shared between calls. Rules that depend on the
// current date take it as an argument instead of reading the wall clock.
//
// # Rules
//
//   - Name: letters, spaces and hyphens only, at least 3 characters
//   - Email: a bare local-part@domain address
//   - InvoiceDate: dd-MM-yyyy, not in the future, not older than 100 years
//   - PositiveDecimal: fixed-point decimal strictly greater than zero
//   - TaxRate: fraction in [0,1]; values above 1 are read as percentages
//
// A rejected input is reported as *Error, which matches ErrRejected
// under errors.Is.
package validate
