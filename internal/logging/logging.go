// Package logging builds the structured logger shared by the engine and CLI.
//
// Callers log through log/slog; records are rendered by charmbracelet/log
// with styled level badges and no timestamps.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// ValidLevels lists the accepted level names.
var ValidLevels = []string{"debug", "info", "warn", "error"}

// ParseLevel converts a level name to a charmbracelet/log level.
// An empty name selects warn.
func ParseLevel(level string) (log.Level, error) {
	switch strings.ToLower(level) {
	case "":
		return log.WarnLevel, nil
	case "debug":
		return log.DebugLevel, nil
	case "info":
		return log.InfoLevel, nil
	case "warn":
		return log.WarnLevel, nil
	case "error":
		return log.ErrorLevel, nil
	}
	return 0, fmt.Errorf("invalid log level %q: must be one of %s", level, strings.Join(ValidLevels, ", "))
}

// New creates a logger writing to w at the given level.
func New(w io.Writer, level string) (*slog.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}

	handler := log.NewWithOptions(w, log.Options{
		Prefix: "ordeal",
		Level:  lvl,
	})
	handler.SetStyles(styles())

	return slog.New(handler), nil
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func styles() *log.Styles {
	s := log.DefaultStyles()

	badge := func(name, bg string) lipgloss.Style {
		return lipgloss.NewStyle().
			SetString(name).
			Padding(0, 1, 0, 1).
			Background(lipgloss.Color(bg)).
			Foreground(lipgloss.Color("15"))
	}
	s.Levels[log.DebugLevel] = badge("DEBUG", "240")
	s.Levels[log.InfoLevel] = badge("INFO", "33")
	s.Levels[log.WarnLevel] = badge("WARN", "214")
	s.Levels[log.ErrorLevel] = badge("ERROR", "196")

	s.Keys["error"] = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	s.Values["error"] = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	s.Keys["violation"] = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	return s
}
