// Package logger provides the structured logging used across editcore.
package logger

import (
	"os"

	"github.com/sykesm/zap-logfmt"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps a sugared zap logger so call sites don't need to import zap
// directly.
type Logger struct {
	*zap.SugaredLogger
}

// NewDefault returns a Logger writing logfmt-encoded records to stderr at
// info level.
func NewDefault() *Logger {
	return New("info")
}

// New builds a Logger at the given zap level name ("debug", "info", "warn",
// "error"); an unrecognized name falls back to info.
func New(level string) *Logger {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = zapcore.InfoLevel
	}

	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "ts"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zaplogfmt.NewEncoder(cfg),
		zapcore.Lock(os.Stderr),
		lvl,
	)

	return &Logger{SugaredLogger: zap.New(core).Sugar()}
}

// Named returns a child logger tagged with the given component name.
func (l *Logger) Named(name string) *Logger {
	return &Logger{SugaredLogger: l.SugaredLogger.Named(name)}
}
