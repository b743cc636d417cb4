package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Options selects the level and output format of a logger.
type Options struct {
	Level  string    // zerolog level name; empty means info
	Format string    // "json" (default) or "console"
	Out    io.Writer // defaults to os.Stderr
}

// New builds a logger and sets the process-wide minimum level to match.
func New(opts Options) (zerolog.Logger, error) {
	out := opts.Out
	if out == nil {
		out = os.Stderr
	}
	switch opts.Format {
	case "", "json":
	case "console":
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}
	default:
		return zerolog.Nop(), fmt.Errorf("unknown log format %q", opts.Format)
	}
	if err := SetLevel(opts.Level); err != nil {
		return zerolog.Nop(), err
	}
	return zerolog.New(out).With().Timestamp().Logger(), nil
}

// SetLevel changes the global level; used on config reload.
func SetLevel(level string) error {
	if level == "" {
		level = "info"
	}
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("parse log level: %w", err)
	}
	zerolog.SetGlobalLevel(lvl)
	return nil
}
