package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
)

// Options holds configuration for a diagnostic logger.
type Options struct {
	Level           log.Level
	Formatter       log.Formatter
	ReportTimestamp bool
	ReportCaller    bool
	Prefix          string
}

// DefaultOptions returns default options for diagnostic logging.
func DefaultOptions() Options {
	return Options{
		Level:     log.InfoLevel,
		Formatter: log.JSONFormatter,
		Prefix:    "todoboard",
	}
}

// New creates a logger writing to w.
func New(w io.Writer, opts Options) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           opts.Level,
		Formatter:       opts.Formatter,
		ReportTimestamp: opts.ReportTimestamp,
		ReportCaller:    opts.ReportCaller,
		Prefix:          opts.Prefix,
	})
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.New(io.Discard)
}

// ParseOptions builds Options from config strings.
func ParseOptions(level, format string, timestamps, caller bool) (Options, error) {
	opts := DefaultOptions()
	lvl, err := ParseLevel(level)
	if err != nil {
		return opts, err
	}
	formatter, err := ParseFormatter(format)
	if err != nil {
		return opts, err
	}
	opts.Level = lvl
	opts.Formatter = formatter
	opts.ReportTimestamp = timestamps
	opts.ReportCaller = caller
	return opts, nil
}

// ParseLevel converts a level name to a log.Level. Empty means info.
func ParseLevel(s string) (log.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return log.DebugLevel, nil
	case "", "info":
		return log.InfoLevel, nil
	case "warn", "warning":
		return log.WarnLevel, nil
	case "error":
		return log.ErrorLevel, nil
	default:
		return log.InfoLevel, fmt.Errorf("unknown log level %q", s)
	}
}

// ParseFormatter converts a format name to a log.Formatter. Empty means json.
func ParseFormatter(s string) (log.Formatter, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "text":
		return log.TextFormatter, nil
	case "", "json":
		return log.JSONFormatter, nil
	case "logfmt":
		return log.LogfmtFormatter, nil
	default:
		return log.JSONFormatter, fmt.Errorf("unknown log format %q", s)
	}
}
