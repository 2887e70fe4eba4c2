// Package logger builds the structured logger used by the command-line tools.
package logger

import (
	"io"
	"log/slog"
	"strings"

	"github.com/sqlagentgilmore/rfdate/internal/config"
)

// New creates a *slog.Logger writing to w and sets it as the default logger.
//
// Format "json" produces one JSON object per line.
// Format "text" produces key=value output with source info.
// Level is one of: debug, info, warn, error (case-insensitive); defaults to info.
func New(cfg config.LogConfig, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:     parseLevel(cfg.Level),
		AddSource: strings.EqualFold(cfg.Format, "text"),
	}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	l := slog.New(handler)
	slog.SetDefault(l)
	return l
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
