// Package logger configures the process-wide zerolog logger.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// LogConfig holds logging configuration
type LogConfig struct {
	Level      string // trace, debug, info, warn, error, fatal, panic
	Format     string // json, console
	TimeFormat string // Go layout, e.g. time.RFC3339
	Output     string // stdout, stderr, or file path
}

// DefaultConfig keeps diagnostics off stdout, which belongs to the menu.
func DefaultConfig() LogConfig {
	return LogConfig{
		Level:      "warn",
		Format:     "console",
		TimeFormat: time.RFC3339,
		Output:     "stderr",
	}
}

// Setup initializes the global logger with the provided configuration.
// The returned closer releases a log file, if one was opened.
func Setup(config LogConfig) (io.Closer, error) {
	level, err := zerolog.ParseLevel(strings.ToLower(config.Level))
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}

	var output io.Writer
	var closer io.Closer = nopCloser{}
	switch config.Output {
	case "stdout":
		output = os.Stdout
	case "stderr", "":
		output = os.Stderr
	default:
		file, err := os.OpenFile(config.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		output = file
		closer = file
	}

	if err := configure(output, level, config); err != nil {
		closer.Close()
		return nil, err
	}
	return closer, nil
}

// SetupWriter is Setup with an explicit destination, used by tests.
func SetupWriter(w io.Writer, config LogConfig) error {
	level, err := zerolog.ParseLevel(strings.ToLower(config.Level))
	if err != nil {
		return fmt.Errorf("parse log level: %w", err)
	}
	return configure(w, level, config)
}

func configure(output io.Writer, level zerolog.Level, config LogConfig) error {
	switch strings.ToLower(config.Format) {
	case "json":
	case "console", "":
		output = zerolog.ConsoleWriter{
			Out:        output,
			TimeFormat: config.TimeFormat,
			NoColor:    true,
		}
	default:
		return fmt.Errorf("unknown log format %q", config.Format)
	}

	zerolog.SetGlobalLevel(level)
	if config.TimeFormat != "" {
		zerolog.TimeFieldFormat = config.TimeFormat
	}

	log.Logger = zerolog.New(output).With().
		Timestamp().
		Logger()

	return nil
}

// WithComponent returns a logger with a component field
func WithComponent(component string) zerolog.Logger {
	return log.Logger.With().Str("component", component).Logger()
}

// WithOp returns a component logger tagged with an operation id.
func WithOp(component, opID string) zerolog.Logger {
	return log.Logger.With().Str("component", component).Str("op_id", opID).Logger()
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
