package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	tests := []struct {
		level   string
		enabled zapcore.Level
		hidden  zapcore.Level
	}{
		{level: "debug", enabled: zapcore.DebugLevel},
		{level: "info", enabled: zapcore.InfoLevel, hidden: zapcore.DebugLevel},
		{level: "warn", enabled: zapcore.WarnLevel, hidden: zapcore.InfoLevel},
		{level: "", enabled: zapcore.InfoLevel, hidden: zapcore.DebugLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logger, err := New(tt.level)
			require.NoError(t, err)
			assert.True(t, logger.Core().Enabled(tt.enabled))
			if tt.level != "debug" {
				assert.False(t, logger.Core().Enabled(tt.hidden))
			}
		})
	}
}

func TestNew_UnknownLevel(t *testing.T) {
	_, err := New("verbose")
	require.Error(t, err)
}
