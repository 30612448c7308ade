// Package corelog provides the geometry core's diagnostic logger
// factories: a trimmed version of the host process's console-encoder
// zap setup, sized for a library rather than a long-running service
// (no appender registry, no network sink).
package corelog

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
)

// NewConfig returns the default zap.Config used by both NewLogger and
// NewDebugLogger: console-encoded, colored levels, no stacktraces.
func NewConfig(level zapcore.Level) zap.Config {
	return zap.Config{
		Level:    zap.NewAtomicLevelAt(level),
		Encoding: "console",
		EncoderConfig: zapcore.EncoderConfig{
			TimeKey:        "ts",
			LevelKey:       "level",
			NameKey:        "logger",
			CallerKey:      "caller",
			FunctionKey:    zapcore.OmitKey,
			MessageKey:     "msg",
			StacktraceKey:  "stacktrace",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    zapcore.CapitalColorLevelEncoder,
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			EncodeDuration: zapcore.StringDurationEncoder,
			EncodeCaller:   zapcore.ShortCallerEncoder,
		},
		DisableStacktrace: true,
		OutputPaths:       []string{"stdout"},
		ErrorOutputPaths:  []string{"stderr"},
	}
}

// NewLogger returns a named logger emitting Info+ records.
func NewLogger(name string) *zap.SugaredLogger {
	cfg := NewConfig(zap.InfoLevel)
	logger, err := cfg.Build()
	if err != nil {
		// Config above is a fixed literal; Build can only fail on a
		// malformed config, which would be a programming error here.
		panic(err)
	}
	return logger.Named(name).Sugar()
}

// NewDebugLogger returns a named logger emitting Debug+ records, for
// verbose pipeline tracing.
func NewDebugLogger(name string) *zap.SugaredLogger {
	cfg := NewConfig(zap.DebugLevel)
	logger, err := cfg.Build()
	if err != nil {
		panic(err)
	}
	return logger.Named(name).Sugar()
}

// NewTestLogger returns a logger that writes to the test's own log
// buffer via t.Log, for use inside _test.go files.
func NewTestLogger(tb testing.TB) *zap.SugaredLogger {
	return zaptest.NewLogger(tb, zaptest.Level(zap.DebugLevel)).Sugar()
}
