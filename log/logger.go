package log

import (
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// NewDevelopment returns a new logger for development environments that logs
// to stderr in a human-friendly format.
func NewDevelopment() zerolog.Logger {
	return newConsole(os.Stderr)
}

// NewProduction returns a new logger for production environments that logs to
// stderr in JSON format.
func NewProduction() zerolog.Logger {
	return newJSON(os.Stderr)
}

// New returns a logger writing to w in the given format ("console" or "json")
// at the given level. An empty level means info.
func New(w io.Writer, format, level string) (zerolog.Logger, error) {
	lvl := zerolog.InfoLevel
	if level != "" {
		var err error
		if lvl, err = zerolog.ParseLevel(level); err != nil {
			return zerolog.Nop(), errors.Wrapf(err, "log level %q", level)
		}
	}

	switch format {
	case "", FormatConsole:
		return newConsole(w).Level(lvl), nil
	case FormatJSON:
		return newJSON(w).Level(lvl), nil
	default:
		return zerolog.Nop(), errors.Errorf("unknown log format %q", format)
	}
}

func newConsole(w io.Writer) zerolog.Logger {
	output := zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	return zerolog.New(output).With().Timestamp().Logger()
}

func newJSON(w io.Writer) zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnixMs
	return zerolog.New(w).With().Timestamp().Logger()
}
