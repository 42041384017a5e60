// Package logging builds the slog loggers used across photonwalk.
package logging

import (
	"io"
	"log/slog"
	"strings"
	"time"
)

// Format selects the handler: human readable text or JSON lines for collectors.
type Format int

const (
	Text Format = iota
	JSON
)

// ParseFormat maps "json" (any case) to JSON and everything else to Text.
func ParseFormat(s string) Format {
	if strings.EqualFold(strings.TrimSpace(s), "json") {
		return JSON
	}
	return Text
}

// NewWithWriter logs to w, usually stderr so stdout stays free for the
// results panel. Errors are keyed "err" and durations are rounded to the
// microsecond.
func NewWithWriter(w io.Writer, level slog.Level, format Format) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level, ReplaceAttr: replaceAttr}
	if format == JSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func replaceAttr(_ []string, a slog.Attr) slog.Attr {
	if a.Key == "error" {
		a.Key = "err"
	}
	if a.Value.Kind() == slog.KindDuration {
		a.Value = slog.DurationValue(a.Value.Duration().Round(time.Microsecond))
	}
	return a
}

// Level picks Debug when debug is set, Info otherwise.
func Level(debug bool) slog.Level {
	if debug {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

// NewNop returns a logger that discards everything.
func NewNop() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
