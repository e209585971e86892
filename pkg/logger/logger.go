package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New instantiates a production-ready zap logger emitting JSON at the given
// level ("debug", "info", "warn", "error"). An empty level means info.
func New(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	if level != "" {
		parsed, err := zapcore.ParseLevel(level)
		if err != nil {
			return nil, fmt.Errorf("parse log level: %w", err)
		}
		cfg.Level = zap.NewAtomicLevelAt(parsed)
	}

	return cfg.Build()
}

// Must returns logger or panics with err; it is meant for process startup.
func Must(logger *zap.Logger, err error) *zap.Logger {
	if err != nil {
		panic(fmt.Errorf("build logger: %w", err))
	}
	return logger
}

// Named returns a child logger for component. A nil base falls back to the
// process-wide logger installed with zap.ReplaceGlobals.
func Named(base *zap.Logger, component string) *zap.Logger {
	if base == nil {
		base = zap.L()
	}
	return base.Named(component)
}
