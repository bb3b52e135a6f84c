package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNopBeforeInitialize(t *testing.T) {
	require.NotNil(t, Logger)
	// Must not panic before Initialize is called.
	Logger.Infow("uninitialized", "key", "value")
}

func TestInitialize(t *testing.T) {
	require.NoError(t, Initialize(true))
	assert.True(t, JSONOutput)

	require.NoError(t, Initialize(false))
	assert.False(t, JSONOutput)
	Logger.Debugw("debug message should be silent at info level")
}

func TestVerbosityToLevel(t *testing.T) {
	tests := []struct {
		verbosity int
		want      zapcore.Level
	}{
		{0, zapcore.WarnLevel},
		{1, zapcore.InfoLevel},
		{2, zapcore.DebugLevel},
		{5, zapcore.DebugLevel},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, VerbosityToLevel(tt.verbosity))
	}
}
