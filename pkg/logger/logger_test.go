package logger

import (
	"testing"

	"github.com/Navodhya-Fernando/dreamshift-ems-sub000/pkg/config"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestNewLoggerFromConfig(t *testing.T) {
	l := NewLoggerFromConfig(config.LoggingConfig{Level: "error", Format: "json"})
	assert.False(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, l.Core().Enabled(zapcore.ErrorLevel))
}

func TestNewLoggerFromConfigFallsBack(t *testing.T) {
	l := NewLoggerFromConfig(config.LoggingConfig{Level: "shouting", Format: "smoke-signals"})
	assert.True(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, l.Core().Enabled(zapcore.DebugLevel))
}
