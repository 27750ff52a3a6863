// Package logger provides a structured, leveled logger used across the
// composition root and every adapter. It wraps zerolog so call sites deal
// only with the small LoggerInterface contract.
package logger

import (
	"context"
	"io"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"
)

// Level is a coarse logging level, independent of zerolog's own levels so
// callers never need to import zerolog directly.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// LoggerInterface is the contract every adapter and service depends on.
// The "c" variants (Debugc, Infoc, ...) take an explicit caller-skip depth
// argument. Logger accepts it but records no caller information, so its
// "c" variants write exactly what the plain variants write.
type LoggerInterface interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	Debugc(ctx context.Context, caller int, msg string, args ...any)
	Infoc(ctx context.Context, caller int, msg string, args ...any)
	Warnc(ctx context.Context, caller int, msg string, args ...any)
	Errorc(ctx context.Context, caller int, msg string, args ...any)
}

// Logger is the default LoggerInterface implementation.
type Logger struct {
	zl zerolog.Logger
}

// New creates a Logger writing to out at the given level, tagging every
// line with the service name and any static fields.
func New(out io.Writer, level Level, name string, fields map[string]any) *Logger {
	ctx := zerolog.New(out).With().Timestamp().Str("service", name)
	for k, v := range fields {
		ctx = ctx.Interface(k, v)
	}
	zl := ctx.Logger().Level(toZerologLevel(level))
	return &Logger{zl: zl}
}

func toZerologLevel(l Level) zerolog.Level {
	switch l {
	case LevelDebug:
		return zerolog.DebugLevel
	case LevelWarn:
		return zerolog.WarnLevel
	case LevelError:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func (l *Logger) Debug(ctx context.Context, msg string, args ...any) {
	l.log(ctx, zerolog.DebugLevel, msg, args)
}

func (l *Logger) Info(ctx context.Context, msg string, args ...any) {
	l.log(ctx, zerolog.InfoLevel, msg, args)
}

func (l *Logger) Warn(ctx context.Context, msg string, args ...any) {
	l.log(ctx, zerolog.WarnLevel, msg, args)
}

func (l *Logger) Error(ctx context.Context, msg string, args ...any) {
	l.log(ctx, zerolog.ErrorLevel, msg, args)
}

func (l *Logger) Debugc(ctx context.Context, caller int, msg string, args ...any) {
	l.log(ctx, zerolog.DebugLevel, msg, args)
}

func (l *Logger) Infoc(ctx context.Context, caller int, msg string, args ...any) {
	l.log(ctx, zerolog.InfoLevel, msg, args)
}

func (l *Logger) Warnc(ctx context.Context, caller int, msg string, args ...any) {
	l.log(ctx, zerolog.WarnLevel, msg, args)
}

func (l *Logger) Errorc(ctx context.Context, caller int, msg string, args ...any) {
	l.log(ctx, zerolog.ErrorLevel, msg, args)
}

// log writes one event, pairing up args as alternating key/value fields
// and attaching the active trace ID from ctx when one is present.
func (l *Logger) log(ctx context.Context, level zerolog.Level, msg string, args []any) {
	evt := l.zl.WithLevel(level)

	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		evt = evt.Str("trace_id", sc.TraceID().String())
	}

	for i := 0; i+1 < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok {
			continue
		}
		evt = evt.Interface(key, args[i+1])
	}
	if len(args)%2 != 0 {
		evt = evt.Interface("extra", args[len(args)-1])
	}

	evt.Msg(msg)
}

// Nop returns a LoggerInterface that discards everything, for tests.
func Nop() LoggerInterface {
	return New(io.Discard, LevelError, "nop", nil)
}
