package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew_Levels(t *testing.T) {
	tests := []struct {
		level    string
		expected zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"warn", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"bogus", zapcore.InfoLevel},
		{"", zapcore.InfoLevel},
	}

	for _, tc := range tests {
		t.Run(tc.level, func(t *testing.T) {
			l, err := New(tc.level)
			require.NoError(t, err)
			assert.True(t, l.Core().Enabled(tc.expected))
			if tc.expected > zapcore.DebugLevel {
				assert.False(t, l.Core().Enabled(tc.expected-1))
			}
		})
	}
}

func TestNamed_NeverNil(t *testing.T) {
	assert.NotNil(t, Named("test"))
}
