package util

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"

	"gopkg.in/natefinch/lumberjack.v2"

	"pylens/src/config"
)

// Logger provides leveled logging on top of slog
type Logger struct {
	level  slog.Level
	logger *slog.Logger
	closer io.Closer
}

// NewLogger creates a new logger from config. When cfg.File is set the
// output goes to a size-rotated file, otherwise to stderr.
func NewLogger(cfg config.LoggingConfig) *Logger {
	var output io.Writer = os.Stderr
	var closer io.Closer
	if cfg.File != "" {
		rotating := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   cfg.Compress,
		}
		output = rotating
		closer = rotating
	}
	return newLogger(cfg, output, closer)
}

// NewWriterLogger creates a logger that writes to w
func NewWriterLogger(cfg config.LoggingConfig, w io.Writer) *Logger {
	return newLogger(cfg, w, nil)
}

func newLogger(cfg config.LoggingConfig, output io.Writer, closer io.Closer) *Logger {
	level := ParseLevel(cfg.Level, slog.LevelInfo)
	opts := &slog.HandlerOptions{
		AddSource: cfg.IncludeCaller,
		Level:     level,
	}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(output, opts)
	} else {
		handler = slog.NewTextHandler(output, opts)
	}

	return &Logger{
		level:  level,
		logger: slog.New(handler),
		closer: closer,
	}
}

// ParseLevel converts a level name to a slog level
func ParseLevel(value string, defaultLevel slog.Level) slog.Level {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return defaultLevel
	}
}

// Debug logs a debug message
func (l *Logger) Debug(msg string, args ...any) {
	l.log(slog.LevelDebug, msg, args...)
}

// Info logs an info message
func (l *Logger) Info(msg string, args ...any) {
	l.log(slog.LevelInfo, msg, args...)
}

// Warn logs a warning message
func (l *Logger) Warn(msg string, args ...any) {
	l.log(slog.LevelWarn, msg, args...)
}

// Error logs an error message
func (l *Logger) Error(msg string, args ...any) {
	l.log(slog.LevelError, msg, args...)
}

func (l *Logger) log(level slog.Level, msg string, args ...any) {
	ctx := context.Background()
	if !l.logger.Enabled(ctx, level) {
		return
	}
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}
	l.logger.Log(ctx, level, msg)
}

// Slog exposes the underlying structured logger
func (l *Logger) Slog() *slog.Logger {
	return l.logger
}

// Close releases the log file, if any
func (l *Logger) Close() error {
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}

// GetLevel returns the current log level as a string
func (l *Logger) GetLevel() string {
	switch {
	case l.level <= slog.LevelDebug:
		return "debug"
	case l.level <= slog.LevelInfo:
		return "info"
	case l.level <= slog.LevelWarn:
		return "warn"
	default:
		return "error"
	}
}

var defaultLogger atomic.Pointer[Logger]

func init() {
	defaultLogger.Store(NewLogger(config.LoggingConfig{Level: "info"}))
}

// DefaultLogger returns the package-level default logger
func DefaultLogger() *Logger {
	return defaultLogger.Load()
}

// SetDefaultLogger replaces the default logger with one built from cfg
// and installs it as the slog default as well.
func SetDefaultLogger(cfg config.LoggingConfig) {
	SetLogger(NewLogger(cfg))
}

// SetLogger installs l as the default logger
func SetLogger(l *Logger) {
	if old := defaultLogger.Swap(l); old != nil && old != l {
		_ = old.Close()
	}
	slog.SetDefault(l.logger)
}

// Debug logs using the default logger
func Debug(msg string, args ...any) {
	DefaultLogger().Debug(msg, args...)
}

// Info logs using the default logger
func Info(msg string, args ...any) {
	DefaultLogger().Info(msg, args...)
}

// Warn logs using the default logger
func Warn(msg string, args ...any) {
	DefaultLogger().Warn(msg, args...)
}

// Error logs using the default logger
func Error(msg string, args ...any) {
	DefaultLogger().Error(msg, args...)
}
