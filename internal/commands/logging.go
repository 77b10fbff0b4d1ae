package commands

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/term"
)

// newLogger builds a zerolog logger writing to w at level. Terminals get the
// human-readable console writer, everything else JSON lines.
func newLogger(w io.Writer, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		w = zerolog.ConsoleWriter{Out: f, TimeFormat: time.Kitchen}
	}

	return zerolog.New(w).Level(lvl).With().Timestamp().Logger()
}

// initLogging installs the global logger used for CLI diagnostics
func initLogging(w io.Writer, verbose bool) {
	level := "warn"
	if verbose {
		level = "debug"
	}
	log.Logger = newLogger(w, level)
}
