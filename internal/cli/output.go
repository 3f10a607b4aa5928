package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/roach88/invoicebook/internal/invoice"
	"github.com/roach88/invoicebook/internal/validate"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Operation failed (invalid input, invoice not found, storage error)
	ExitCommandError = 2 // Command error (bad flags, database cannot be opened, etc.)
)

// Error codes used in JSON error responses.
const (
	ErrCodeGeneric    = "E001" // Generic/unknown error
	ErrCodeValidation = "E002" // Input rejected by a validation rule
	ErrCodeNotFound   = "E003" // No invoice with the given id
	ErrCodeStorage    = "E004" // Database failure
	ErrCodeImport     = "E005" // Batch file unreadable or malformed
)

// ExitError represents an error with a specific exit code.
// Use this to return errors with meaningful exit codes from CLI commands.
type ExitError struct {
	Code    int    // Exit code (use ExitFailure or ExitCommandError)
	Message string // Error message
	Err     error  // Underlying error (optional)

	// Reported is set once the error has been written to the user,
	// so main does not print it a second time.
	Reported bool
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure (1) if the error is not an ExitError.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// IsReported reports whether err was already written by an OutputFormatter.
func IsReported(err error) bool {
	var exitErr *ExitError
	return errors.As(err, &exitErr) && exitErr.Reported
}

// errorCode classifies err for JSON error responses.
func errorCode(err error) string {
	switch {
	case errors.Is(err, validate.ErrRejected):
		return ErrCodeValidation
	case invoice.IsNotFound(err):
		return ErrCodeNotFound
	case invoice.IsStorageError(err):
		return ErrCodeStorage
	default:
		return ErrCodeGeneric
	}
}

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer // Separate writer for diagnostic output (defaults to Writer)
	Verbose   bool
}

// CLIResponse is the standard JSON response format for CLI output.
type CLIResponse struct {
	Status string      `json:"status"`          // "ok" or "error"
	Data   interface{} `json:"data,omitempty"`  // success payload
	Error  *CLIError   `json:"error,omitempty"` // error details
}

// CLIError is the error structure for CLI responses.
type CLIError struct {
	Code    string      `json:"code"`              // "E001", "E002", etc.
	Message string      `json:"message"`           // human-readable message
	Details interface{} `json:"details,omitempty"` // additional context
}

// Success outputs a successful result in the configured format.
func (f *OutputFormatter) Success(data interface{}) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "ok",
			Data:   data,
		})
	}

	fmt.Fprintln(f.Writer, data)
	return nil
}

// Render outputs data as a JSON envelope, or calls text in text mode.
func (f *OutputFormatter) Render(data interface{}, text func(w io.Writer)) error {
	if f.Format == "json" {
		return f.Success(data)
	}
	text(f.Writer)
	return nil
}

// Error outputs an error in the configured format. Text goes to
// ErrWriter so stdout carries only results.
func (f *OutputFormatter) Error(code, message string, details interface{}) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "error",
			Error: &CLIError{
				Code:    code,
				Message: message,
				Details: details,
			},
		})
	}

	w := f.errWriter()
	fmt.Fprintf(w, "Error [%s]: %s\n", code, message)
	if details != nil {
		fmt.Fprintf(w, "Details: %v\n", details)
	}
	return nil
}

// Fail reports err through the formatter and returns it as an ExitError
// carrying exitCode.
func (f *OutputFormatter) Fail(exitCode int, message string, err error) error {
	var details interface{}
	if err != nil {
		details = err.Error()
	}
	if outErr := f.Error(errorCode(err), message, details); outErr != nil {
		return WrapExitError(exitCode, message, errors.Join(err, outErr))
	}
	exitErr := WrapExitError(exitCode, message, err)
	exitErr.Reported = true
	return exitErr
}

// VerboseLog outputs a message only if verbose mode is enabled.
// Uses ErrWriter if set, otherwise falls back to Writer.
func (f *OutputFormatter) VerboseLog(format string, args ...interface{}) {
	if !f.Verbose {
		return
	}
	fmt.Fprintf(f.errWriter(), format+"\n", args...)
}

func (f *OutputFormatter) errWriter() io.Writer {
	if f.ErrWriter != nil {
		return f.ErrWriter
	}
	return f.Writer
}
