package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/invoicebook/internal/invoice"
	"github.com/roach88/invoicebook/internal/validate"
)

func TestOutputFormatter_JSONSuccess(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "json",
		Writer: buf,
	}

	err := formatter.Success(StatsView{Count: 2, Sum: "640.00", Average: "320.00"})
	require.NoError(t, err)

	var resp struct {
		Status string    `json:"status"`
		Data   StatsView `json:"data"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, 2, resp.Data.Count)
	assert.Equal(t, "640.00", resp.Data.Sum)
}

func TestOutputFormatter_JSONError(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "json",
		Writer: buf,
	}

	err := formatter.Error(ErrCodeNotFound, "invoice 9 not found", nil)
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "E003", resp.Error.Code)
	assert.Equal(t, "invoice 9 not found", resp.Error.Message)
	assert.Nil(t, resp.Error.Details)
}

func TestOutputFormatter_TextErrorGoesToErrWriter(t *testing.T) {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format:    "text",
		Writer:    out,
		ErrWriter: errOut,
	}

	err := formatter.Error(ErrCodeValidation, "invalid input", "invalid name \"Al\"")
	require.NoError(t, err)
	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), "Error [E002]: invalid input")
	assert.Contains(t, errOut.String(), "Details: invalid name \"Al\"")
}

func TestOutputFormatter_TextErrorFallsBackToWriter(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "text", Writer: buf}

	require.NoError(t, formatter.Error(ErrCodeGeneric, "boom", nil))
	assert.Equal(t, "Error [E001]: boom\n", buf.String())
}

func TestOutputFormatter_Render(t *testing.T) {
	t.Run("text", func(t *testing.T) {
		buf := &bytes.Buffer{}
		formatter := &OutputFormatter{Format: "text", Writer: buf}

		err := formatter.Render(DeleteResult{ID: 1, Deleted: true}, func(w io.Writer) {
			fmt.Fprintln(w, "Invoice deleted.")
		})
		require.NoError(t, err)
		assert.Equal(t, "Invoice deleted.\n", buf.String())
	})

	t.Run("json", func(t *testing.T) {
		buf := &bytes.Buffer{}
		formatter := &OutputFormatter{Format: "json", Writer: buf}

		err := formatter.Render(DeleteResult{ID: 1, Deleted: true}, func(w io.Writer) {
			t.Fatal("text callback must not run in json mode")
		})
		require.NoError(t, err)
		assert.JSONEq(t, `{"status":"ok","data":{"id":1,"deleted":true}}`, buf.String())
	})
}

func TestOutputFormatter_Fail(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{"validation", fmt.Errorf("first_name: %w", &validate.Error{Field: validate.FieldName, Input: "Al", Reason: "too short"}), ErrCodeValidation},
		{"not found", fmt.Errorf("invoice 9: %w", invoice.ErrNotFound), ErrCodeNotFound},
		{"storage", invoice.NewStorageError("add", errors.New("disk full")), ErrCodeStorage},
		{"other", errors.New("something else"), ErrCodeGeneric},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			formatter := &OutputFormatter{Format: "json", Writer: buf}

			err := formatter.Fail(ExitFailure, "operation failed", tt.err)
			require.Error(t, err)
			assert.Equal(t, ExitFailure, GetExitCode(err))
			assert.True(t, IsReported(err))
			assert.ErrorIs(t, err, tt.err)

			var resp CLIResponse
			require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
			assert.Equal(t, tt.err.Error(), resp.Error.Details)
		})
	}
}

func TestOutputFormatter_VerboseLog(t *testing.T) {
	tests := []struct {
		name    string
		verbose bool
		wantLog bool
	}{
		{"verbose_enabled", true, true},
		{"verbose_disabled", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			formatter := &OutputFormatter{
				Format:  "text",
				Writer:  buf,
				Verbose: tt.verbose,
			}

			formatter.VerboseLog("validated %d invoices", 2)

			if tt.wantLog {
				assert.Contains(t, buf.String(), "validated 2 invoices")
			} else {
				assert.Empty(t, buf.String())
			}
		})
	}
}

func TestExitError(t *testing.T) {
	cause := errors.New("no such file")
	err := WrapExitError(ExitCommandError, "failed to open database", cause)

	assert.Equal(t, "failed to open database: no such file", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.False(t, IsReported(err))

	assert.Equal(t, "bad flag", NewExitError(ExitCommandError, "bad flag").Error())
	assert.Equal(t, ExitFailure, GetExitCode(errors.New("plain")))
	assert.Equal(t, ExitCommandError, GetExitCode(fmt.Errorf("wrapped: %w", err)))
}
