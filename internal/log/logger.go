package log

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

const production = "production"

func New(environment string) zerolog.Logger {
	return NewWithWriter(environment, os.Stdout)
}

// NewWithWriter logs JSON lines in production and human readable console
// output everywhere else.
func NewWithWriter(environment string, out io.Writer) zerolog.Logger {
	if environment != production {
		out = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
		}
	}

	logger := zerolog.New(out).With().
		Timestamp().
		Str("env", environment).
		Str("service", "skillup-api").
		Logger()

	if environment != production {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	return logger
}
