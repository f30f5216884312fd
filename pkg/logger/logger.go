// Package logger wraps zap.Logger with the structured fields every
// component in the engine attaches to its log lines (phase, cid,
// store, ingredient). It mirrors the construction style used
// throughout the teacher services, where a *zap.Logger is built once
// at process start and passed down by dependency injection.
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is a thin facade over zap that adds a Tag() helper used by
// the orchestrator to stamp every line with the phase/ingredient it
// belongs to, matching §6's log-entry schema {ts, level, tag, message, data}.
type Logger struct {
	z *zap.Logger
}

// New builds a production-style JSON logger for the named service.
func New(service string, debug bool) *Logger {
	cfg := zap.NewProductionConfig()
	if debug {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	z, err := cfg.Build(zap.Fields(zap.String("service", service)))
	if err != nil {
		z = zap.NewNop()
	}
	return &Logger{z: z}
}

// NewNop returns a logger that discards everything, used by unit tests.
func NewNop() *Logger { return &Logger{z: zap.NewNop()} }

// Tag returns a child logger scoped to a progress-event tag (e.g.
// "market_run", "contract", "ledger").
func (l *Logger) Tag(tag string) *Logger {
	return &Logger{z: l.z.With(zap.String("tag", tag))}
}

// With attaches arbitrary structured fields.
func (l *Logger) With(fields map[string]interface{}) *Logger {
	zf := make([]zap.Field, 0, len(fields))
	for k, v := range fields {
		zf = append(zf, zap.Any(k, v))
	}
	return &Logger{z: l.z.With(zf...)}
}

func (l *Logger) Debug(msg string, kv ...interface{}) { l.z.Sugar().Debugw(msg, kv...) }
func (l *Logger) Info(msg string, kv ...interface{})  { l.z.Sugar().Infow(msg, kv...) }
func (l *Logger) Warn(msg string, kv ...interface{})  { l.z.Sugar().Warnw(msg, kv...) }
func (l *Logger) Error(msg string, kv ...interface{}) { l.z.Sugar().Errorw(msg, kv...) }
func (l *Logger) Fatal(msg string, kv ...interface{}) { l.z.Sugar().Fatalw(msg, kv...) }

// Sync flushes any buffered log entries; call on graceful shutdown.
func (l *Logger) Sync() error { return l.z.Sync() }

// Zap exposes the underlying logger for libraries that want it directly
// (e.g. when constructing a *zap.Logger-typed dependency).
func (l *Logger) Zap() *zap.Logger { return l.z }
