package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	logger, err := New(DefaultConfig())
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Level = "chatty"

	_, err := New(cfg)
	assert.Error(t, err)
}

func TestFromLevel(t *testing.T) {
	logger := FromLevel("debug", false)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))

	// Unparseable level falls back to defaults
	logger = FromLevel("chatty", false)
	assert.True(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))
}

func TestWithRequestID(t *testing.T) {
	logger := NewDefault()
	child := logger.WithRequestID("req-1")
	assert.NotNil(t, child.Logger)
	assert.NotSame(t, logger.Logger, child.Logger)
}
