package util

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"
)

type Logger struct {
	slogger *slog.Logger
}

func NewLogger(level slog.Level, output io.Writer) *Logger {
	opts := &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == "error" && a.Value.Kind() == slog.KindAny {
				if err, ok := a.Value.Any().(error); ok {
					var appErr *AppError
					if !errors.As(err, &appErr) {
						return slog.String(a.Key, err.Error())
					}
				}
			}
			return a
		},
	}
	handler := slog.NewJSONHandler(output, opts)

	return &Logger{
		slogger: slog.New(handler),
	}
}

func (l *Logger) With(args ...any) *Logger {
	return &Logger{
		slogger: l.slogger.With(args...),
	}
}

func (l *Logger) WithComponent(component string) *Logger {
	return l.With("component", component)
}

func (l *Logger) Debug(msg string, fields map[string]any) {
	l.log(slog.LevelDebug, msg, fields)
}

func (l *Logger) Info(msg string, fields map[string]any) {
	l.log(slog.LevelInfo, msg, fields)
}

func (l *Logger) Warn(msg string, fields map[string]any) {
	l.log(slog.LevelWarn, msg, fields)
}

func (l *Logger) Error(msg string, fields map[string]any) {
	l.log(slog.LevelError, msg, fields)
}

func (l *Logger) log(level slog.Level, msg string, fields map[string]any) {
	l.slogger.Log(context.Background(), level, msg, mapToAttrs(fields)...)
}

func (l *Logger) LogError(msg string, err error, fields map[string]any) {
	if err == nil {
		return
	}

	if fields == nil {
		fields = make(map[string]any)
	}
	fields["error"] = err
	l.Error(msg, fields)
}

func mapToAttrs(fields map[string]any) []any {
	if len(fields) == 0 {
		return nil
	}

	attrs := make([]any, 0, len(fields)*2)
	for k, v := range fields {
		attrs = append(attrs, k, v)
	}
	return attrs
}

var DefaultLogger = NewLogger(slog.LevelInfo, os.Stderr)

func SetDefaultLogger(level slog.Level, output io.Writer) {
	DefaultLogger = NewLogger(level, output)
}

func InitDefaultLogger() {
	DefaultLogger = NewLogger(slog.LevelInfo, os.Stderr)
}

func Debug(msg string, fields map[string]any) {
	DefaultLogger.Debug(msg, fields)
}

func With(args ...any) *Logger {
	return DefaultLogger.With(args...)
}

func Info(msg string, fields map[string]any) {
	DefaultLogger.Info(msg, fields)
}

func Warn(msg string, fields map[string]any) {
	DefaultLogger.Warn(msg, fields)
}

func Error(msg string, fields map[string]any) {
	DefaultLogger.Error(msg, fields)
}

func LogError(msg string, err error, fields map[string]any) {
	DefaultLogger.LogError(msg, err, fields)
}

// ParseLogLevel falls back to info for anything it does not recognise.
func ParseLogLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
