package corelog

import (
	"testing"

	"go.uber.org/zap"

	"go.viam.com/test"
)

func TestNewConfigLevels(t *testing.T) {
	infoCfg := NewConfig(zap.InfoLevel)
	test.That(t, infoCfg.Level.Level(), test.ShouldEqual, zap.InfoLevel)

	debugCfg := NewConfig(zap.DebugLevel)
	test.That(t, debugCfg.Level.Level(), test.ShouldEqual, zap.DebugLevel)
}

func TestNewLoggerReturnsUsableLogger(t *testing.T) {
	logger := NewLogger("test-component")
	test.That(t, logger, test.ShouldNotBeNil)
	logger.Infow("message", "key", "value")
}

func TestNewDebugLoggerReturnsUsableLogger(t *testing.T) {
	logger := NewDebugLogger("test-component")
	test.That(t, logger, test.ShouldNotBeNil)
	logger.Debugw("message", "key", "value")
}

func TestNewTestLoggerReturnsUsableLogger(t *testing.T) {
	logger := NewTestLogger(t)
	test.That(t, logger, test.ShouldNotBeNil)
	logger.Infow("message from test logger")
}
