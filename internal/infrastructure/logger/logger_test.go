package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	t.Run("console logger", func(t *testing.T) {
		log, err := New(DefaultConfig())
		require.NoError(t, err)
		require.NotNil(t, log)
		log.Info("hello")
		require.NoError(t, log.Sync())
	})

	t.Run("json logger", func(t *testing.T) {
		log, err := New(ProductionConfig())
		require.NoError(t, err)
		require.NotNil(t, log)
	})

	t.Run("invalid level", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Level = "loud"
		_, err := New(cfg)
		assert.Error(t, err)
	})

	t.Run("invalid format", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Format = "yaml"
		_, err := New(cfg)
		assert.Error(t, err)
	})
}

func TestNewForEnvironment(t *testing.T) {
	t.Run("production uses json", func(t *testing.T) {
		log, err := NewForEnvironment("production", "")
		require.NoError(t, err)
		assert.False(t, log.Core().Enabled(zapcore.DebugLevel))
	})

	t.Run("level override", func(t *testing.T) {
		log, err := NewForEnvironment("development", "debug")
		require.NoError(t, err)
		assert.True(t, log.Core().Enabled(zapcore.DebugLevel))
	})
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
	}
	for _, tt := range tests {
		level, err := parseLevel(tt.input)
		require.NoError(t, err)
		assert.Equal(t, tt.want, level)
	}

	_, err := parseLevel("trace")
	assert.Error(t, err)
}
