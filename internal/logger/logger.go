// Package logger holds the process-wide zap logger. Until Initialize runs,
// Get returns a no-op logger so packages and tests can log freely.
package logger

import (
	"fmt"

	"aptilab/internal/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var log = zap.NewNop()

// Initialize replaces the global logger. Production writes JSON; every other
// env uses the colored console encoder.
func Initialize(cfg config.LoggerConfig) error {
	level := zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if cfg.Level != "" {
		if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
			return fmt.Errorf("logger level %q: %w", cfg.Level, err)
		}
	}

	zc := zap.NewDevelopmentConfig()
	zc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	if cfg.Env == "production" {
		zc = zap.NewProductionConfig()
		zc.Sampling = nil
	}
	zc.Level = level
	zc.Development = false
	zc.OutputPaths = []string{"stdout"}
	zc.EncoderConfig.TimeKey = "ts"
	zc.EncoderConfig.EncodeTime = zapcore.RFC3339TimeEncoder
	zc.EncoderConfig.EncodeDuration = zapcore.StringDurationEncoder

	built, err := zc.Build(zap.AddStacktrace(zapcore.ErrorLevel))
	if err != nil {
		return err
	}
	log = built
	return nil
}

func Get() *zap.Logger {
	return log
}

// Sync flushes buffered entries; call it before exit.
func Sync() error {
	return log.Sync()
}
