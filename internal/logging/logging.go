// Package logging builds the leveled logger shared by the CLI and the store.
package logging

import (
	"errors"
	"io"

	"github.com/charmbracelet/log"

	internalstrings "github.com/amonks/mdtodo/internal/strings"
	"github.com/amonks/mdtodo/internal/validation"
)

// Prefix tags every log line.
const Prefix = "mdtodo"

var (
	// ErrUnknownLevel is returned for a level name ParseLevel does not know.
	ErrUnknownLevel = errors.New("unknown log level")

	// ErrUnknownFormat is returned for a format name ParseFormatter does not know.
	ErrUnknownFormat = errors.New("unknown log format")
)

var (
	levelNames  = []string{"debug", "info", "warn", "error"}
	formatNames = []string{"text", "json", "logfmt"}
)

// Options configures a logger.
type Options struct {
	Level           string
	Format          string
	ReportTimestamp bool
}

// New returns a logger writing to w. An empty level means warn, so store
// events stay quiet unless asked for.
func New(w io.Writer, opts Options) (*log.Logger, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}
	formatter, err := ParseFormatter(opts.Format)
	if err != nil {
		return nil, err
	}

	return log.NewWithOptions(w, log.Options{
		Level:           level,
		Formatter:       formatter,
		ReportTimestamp: opts.ReportTimestamp,
		Prefix:          Prefix,
	}), nil
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.New(io.Discard)
}

// ParseLevel maps a level name onto a log.Level.
func ParseLevel(level string) (log.Level, error) {
	switch internalstrings.NormalizeLowerTrimSpace(level) {
	case "debug":
		return log.DebugLevel, nil
	case "info":
		return log.InfoLevel, nil
	case "", "warn", "warning":
		return log.WarnLevel, nil
	case "error":
		return log.ErrorLevel, nil
	default:
		return 0, validation.FormatInvalidValueError(ErrUnknownLevel, level, levelNames)
	}
}

// ParseFormatter maps a format name onto a log.Formatter.
func ParseFormatter(format string) (log.Formatter, error) {
	switch internalstrings.NormalizeLowerTrimSpace(format) {
	case "", "text":
		return log.TextFormatter, nil
	case "json":
		return log.JSONFormatter, nil
	case "logfmt":
		return log.LogfmtFormatter, nil
	default:
		return 0, validation.FormatInvalidValueError(ErrUnknownFormat, format, formatNames)
	}
}
