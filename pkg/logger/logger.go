package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// Leveled logger shared by the record services.
// Init(level) configures the global level; call sites use the printf-style
// helpers below.

var (
	mu     sync.RWMutex
	level  = new(slog.LevelVar)
	logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
)

// Init sets the global log level (case-insensitive: debug, info, warn, error).
// Call early during startup. Default level is Info.
func Init(l string) {
	switch strings.ToLower(strings.TrimSpace(l)) {
	case "debug":
		level.Set(slog.LevelDebug)
	case "warn", "warning":
		level.Set(slog.LevelWarn)
	case "error":
		level.Set(slog.LevelError)
	default:
		level.Set(slog.LevelInfo)
	}
}

// SetOutput redirects log output. Intended for tests.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	logger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func current() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

func Debugf(format string, v ...any) { current().Debug(fmt.Sprintf(format, v...)) }
func Infof(format string, v ...any)  { current().Info(fmt.Sprintf(format, v...)) }
func Warnf(format string, v ...any)  { current().Warn(fmt.Sprintf(format, v...)) }
func Errorf(format string, v ...any) { current().Error(fmt.Sprintf(format, v...)) }

// Fatalf logs at error level and exits the process.
func Fatalf(format string, v ...any) {
	current().Error(fmt.Sprintf(format, v...))
	os.Exit(1)
}

// Debug/Info/Warn/Error helpers that accept a single string.
func Debug(v string) { current().Debug(v) }
func Info(v string)  { current().Info(v) }
func Warn(v string)  { current().Warn(v) }
func Error(v string) { current().Error(v) }

// LevelString returns the current level as text.
func LevelString() string {
	switch level.Level() {
	case slog.LevelDebug:
		return "debug"
	case slog.LevelWarn:
		return "warn"
	case slog.LevelError:
		return "error"
	}
	return "info"
}
