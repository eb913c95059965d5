// Package logger builds charmbracelet/log loggers for the hashmark binary.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// Options selects the logger output and format.
type Options struct {
	Prefix    string
	Level     string
	Timestamp bool
	Caller    bool
	// File receives log records when set. The TUI owns stdout, so the
	// fallback is stderr.
	File string
}

// New creates a charm logger writing to w.
func New(w io.Writer, prefix string, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Prefix:          prefix,
		Level:           level,
		ReportCaller:    false,
		ReportTimestamp: false,
		Formatter:       log.TextFormatter,
	})
}

// Discard returns a logger that drops every record.
func Discard() *log.Logger {
	return log.New(io.Discard)
}

// Open creates a logger from opts. The returned close func releases the log
// file, if any.
func Open(opts Options) (*log.Logger, func() error, error) {
	level := log.InfoLevel
	if opts.Level != "" {
		lvl, err := log.ParseLevel(opts.Level)
		if err != nil {
			return nil, nil, fmt.Errorf("logger: %w", err)
		}
		level = lvl
	}

	var w io.Writer = os.Stderr
	closeFn := func() error { return nil }
	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			return nil, nil, fmt.Errorf("logger: create log dir: %w", err)
		}
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("logger: open %s: %w", opts.File, err)
		}
		w = f
		closeFn = f.Close
	}

	l := New(w, opts.Prefix, level)
	l.SetReportCaller(opts.Caller)
	l.SetReportTimestamp(opts.Timestamp)
	return l, closeFn, nil
}
