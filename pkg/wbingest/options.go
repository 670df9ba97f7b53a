// Package wbingest converts loosely structured planning workbooks into typed,
// validated tables.
package wbingest

import (
	"io"
	"log/slog"
)

// Options configures an Ingestor.
type Options struct {
	// Config holds sheet names, markers and aliases. If nil, DefaultConfig is used.
	Config *Config
	// Logger receives warnings and failures. If nil, nothing is logged.
	Logger *slog.Logger
}

// DefaultOptions returns default ingestion options.
func DefaultOptions() Options {
	return Options{
		Config: DefaultConfig(),
	}
}

func (o Options) config() *Config {
	if o.Config != nil {
		return o.Config
	}
	return DefaultConfig()
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
