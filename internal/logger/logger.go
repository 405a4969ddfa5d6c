// internal/logger/logger.go
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

var globalLogger *slog.Logger

func init() {
	// Initialize with a default logger until InitLogger is called.
	// This ensures that Get() always returns a valid logger.
	globalLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
}

// ParseLevel maps a config level name to a slog level. Unknown names map
// to info.
func ParseLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error", "err":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// InitLogger initializes the global logger with the specified log level.
func InitLogger(levelStr string) {
	InitLoggerWithWriter(levelStr, os.Stderr)
}

// InitLoggerForTUI initializes the logger to write to a file instead of stderr to avoid TUI interference.
// The returned closer releases the file.
func InitLoggerForTUI(levelStr string, logFile string) (io.Closer, error) {
	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return nil, err
	}

	InitLoggerWithWriter(levelStr, file)
	return file, nil
}

// InitLoggerWithWriter initializes the logger with a custom writer
func InitLoggerWithWriter(levelStr string, writer io.Writer) {
	globalLogger = slog.New(slog.NewTextHandler(writer, &slog.HandlerOptions{Level: ParseLevel(levelStr)}))
}

// Get returns the initialized global logger.
func Get() *slog.Logger {
	return globalLogger
}
