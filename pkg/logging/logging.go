// Package logging configures colored structured logging with tint.
//
// Usage:
//
//	logging.Setup(slog.LevelInfo)           // colored when stderr is a terminal
//	logger := logging.New(w, slog.LevelDebug)
package logging

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
)

// Setup installs a tint handler on stderr as the default slog logger.
func Setup(level slog.Level) {
	slog.SetDefault(New(os.Stderr, level))
}

// New returns a logger writing to w. Colors are disabled unless w is a terminal.
func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(
		tint.NewHandler(w, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
			AddSource:  level <= slog.LevelDebug,
			NoColor:    !isTerminal(w),
		}),
	)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
