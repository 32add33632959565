package config

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// SetLogLevel sets up the default logger from LOG_LEVEL and LOG_FORMAT and returns it.
func SetLogLevel() *slog.Logger {
	logger, err := NewLogger(os.Stderr, os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"))
	if err != nil {
		slog.Error("Invalid log configuration", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(logger)
	return logger
}

// NewLogger creates a logger writing to w. Level defaults to INFO, format to text.
func NewLogger(w io.Writer, level, format string) (*slog.Logger, error) {
	var slogLevel slog.Level

	switch strings.ToUpper(level) {
	case "DEBUG":
		slogLevel = slog.LevelDebug
	case "", "INFO":
		slogLevel = slog.LevelInfo
	case "WARN":
		slogLevel = slog.LevelWarn
	case "ERROR":
		slogLevel = slog.LevelError
	default:
		return nil, &invalidSettingError{key: "LOG_LEVEL", value: level}
	}

	options := &slog.HandlerOptions{Level: slogLevel}

	switch strings.ToLower(format) {
	case "", "text":
		return slog.New(slog.NewTextHandler(w, options)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, options)), nil
	default:
		return nil, &invalidSettingError{key: "LOG_FORMAT", value: format}
	}
}

type invalidSettingError struct {
	key   string
	value string
}

func (e *invalidSettingError) Error() string {
	return "invalid value for " + e.key + ": " + e.value
}
