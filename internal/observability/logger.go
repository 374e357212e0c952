package observability

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

type Logger struct {
	log  *slog.Logger
	file *lumberjack.Logger
}

// Настройки ротации файла логов
type RotationConfig struct {
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// NewLogger logs to stderr and, when logPath is set, to a rotated file.
func NewLogger(logPath, logLevel string, rotation RotationConfig) *Logger {
	var out io.Writer = os.Stderr
	l := &Logger{}

	if logPath != "" {
		l.file = &lumberjack.Logger{
			Filename:   logPath,
			MaxSize:    rotation.MaxSizeMB,
			MaxBackups: rotation.MaxBackups,
			MaxAge:     rotation.MaxAgeDays,
			Compress:   rotation.Compress,
		}
		out = io.MultiWriter(os.Stderr, l.file)
	}

	l.log = slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: ParseLevel(logLevel)}))
	return l
}

// NewNop returns a logger that discards everything.
func NewNop() *Logger {
	return &Logger{log: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

// ParseLevel maps a config level name to a slog level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (l *Logger) Debug(msg string, fields ...interface{}) {
	l.log.Debug(msg, fields...)
}

func (l *Logger) Info(msg string, fields ...interface{}) {
	l.log.Info(msg, fields...)
}

func (l *Logger) Warn(msg string, fields ...interface{}) {
	l.log.Warn(msg, fields...)
}

func (l *Logger) Error(msg string, fields ...interface{}) {
	l.log.Error(msg, fields...)
}

// Close закрывает файл логов, если он открыт.
func (l *Logger) Close() error {
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}
