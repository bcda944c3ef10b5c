// Package logging builds the process logger and carries request-scoped
// entries through contexts.
package logging

import (
	"context"
	"io"
	"os"

	log "github.com/sirupsen/logrus"
)

type contextKey string

const entryKey contextKey = "log_entry"

// New creates a logrus logger with the given level and format ("json" or
// "text"). Unknown levels fall back to info.
func New(level, format string) *log.Logger {
	return NewWithOutput(level, format, os.Stdout)
}

// NewWithOutput is New writing to out.
func NewWithOutput(level, format string, out io.Writer) *log.Logger {
	logger := log.New()
	logger.SetOutput(out)

	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}
	logger.SetLevel(lvl)

	if format == "text" {
		logger.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	} else {
		logger.SetFormatter(&log.JSONFormatter{})
	}
	return logger
}

// WithEntry returns a copy of ctx carrying entry.
func WithEntry(ctx context.Context, entry *log.Entry) context.Context {
	return context.WithValue(ctx, entryKey, entry)
}

// FromContext returns the request entry stored in ctx, or an entry on the
// standard logger when none is present.
func FromContext(ctx context.Context) *log.Entry {
	if entry, ok := ctx.Value(entryKey).(*log.Entry); ok {
		return entry
	}
	return log.NewEntry(log.StandardLogger())
}
