// Package logger provides structured file logging for the editor.
// Nothing may ever be printed to the terminal itself, so all
// diagnostics go to a rotated log file.
package logger

import (
	"fmt"
	"log/slog"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	logger *slog.Logger
	writer *lumberjack.Logger
)

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("unknown log level %q", s)
}

// Init opens the log file and installs the package logger. Logging
// before Init, or after a failed Init, is a no-op.
func Init(file, level string) error {
	lvl, err := parseLevel(level)
	if err != nil {
		return err
	}
	writer = &lumberjack.Logger{
		Filename:   file,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     7, // days
	}
	logger = slog.New(slog.NewJSONHandler(writer, &slog.HandlerOptions{
		Level: lvl,
	}))
	return nil
}

// Close flushes and closes the log file.
func Close() error {
	if writer == nil {
		return nil
	}
	err := writer.Close()
	writer = nil
	logger = nil
	return err
}

func Debug(msg string, args ...any) {
	if logger != nil {
		logger.Debug(msg, args...)
	}
}

func Info(msg string, args ...any) {
	if logger != nil {
		logger.Info(msg, args...)
	}
}

func Warn(msg string, args ...any) {
	if logger != nil {
		logger.Warn(msg, args...)
	}
}

func Error(msg string, args ...any) {
	if logger != nil {
		logger.Error(msg, args...)
	}
}
