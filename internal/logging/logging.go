// Package logging builds the zerolog logger shared by the indexer and
// searcher CLIs. Structured logging is observational only: it never
// changes control flow or exit codes.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// New builds a logger writing to w at the given level. A human-readable
// console writer is used when w is a terminal; otherwise plain JSON.
func New(w io.Writer, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		lvl = zerolog.InfoLevel
	}

	var output io.Writer = w
	if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		output = zerolog.ConsoleWriter{Out: f, TimeFormat: "15:04:05"}
	}

	return zerolog.New(output).Level(lvl).With().Timestamp().Logger()
}

// ParseLevelOrDefault is a small helper for flag validation, returning a
// friendly error for the CLI layer rather than silently falling back.
func ParseLevelOrDefault(level string) (zerolog.Level, error) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return zerolog.InfoLevel, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return lvl, nil
}
