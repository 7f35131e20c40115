package logging

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// New builds the process logger. Records are single-line JSON on stdout so
// the surrounding platform's log collector can ship them as-is.
func New(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	zerolog.TimeFieldFormat = "2006-01-02T15:04:05.000Z07:00"
	return zerolog.New(os.Stdout).With().Timestamp().Str("service", "eliza-gateway").Logger().Level(lvl)
}
