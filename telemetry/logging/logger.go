package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// LogFormat represents the output format for logs
type LogFormat string

const (
	// FormatJSON outputs logs in JSON format
	FormatJSON LogFormat = "json"
	// FormatText outputs logs in plain text format
	FormatText LogFormat = "text"
)

// Config contains configuration for the logger
type Config struct {
	// Level is the minimum log level ("debug", "info", "warn", "error")
	Level string
	// Format is the output format ("json", "text")
	Format string
	// Writer is the output writer (defaults to os.Stderr)
	Writer io.Writer
}

// New creates a structured logger with the given configuration
func New(cfg Config) (*slog.Logger, error) {
	level, err := parseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	writer := cfg.Writer
	if writer == nil {
		writer = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	switch LogFormat(strings.ToLower(cfg.Format)) {
	case FormatJSON:
		handler = slog.NewJSONHandler(writer, opts)
	case FormatText, "":
		handler = slog.NewTextHandler(writer, opts)
	default:
		return nil, fmt.Errorf("invalid log format: %q", cfg.Format)
	}
	return slog.New(handler), nil
}

// Discard returns a logger dropping every record
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

func parseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown level: %q", level)
}
