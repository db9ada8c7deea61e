package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name        string
		level       string
		environment string
		wantLevel   zap.AtomicLevel
	}{
		{name: "Debug development", level: "debug", environment: "development", wantLevel: zap.NewAtomicLevelAt(zap.DebugLevel)},
		{name: "Warn production", level: "warn", environment: "production", wantLevel: zap.NewAtomicLevelAt(zap.WarnLevel)},
		{name: "Unknown level falls back to info", level: "verbose", environment: "production", wantLevel: zap.NewAtomicLevelAt(zap.InfoLevel)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := New(tt.level, tt.environment)

			require.NoError(t, err)
			assert.True(t, l.Core().Enabled(tt.wantLevel.Level()))
			assert.False(t, l.Core().Enabled(tt.wantLevel.Level()-1))
		})
	}
}

func TestOrNop(t *testing.T) {
	assert.NotNil(t, OrNop(nil))

	l := zap.NewExample()
	assert.Same(t, l, OrNop(l))
}
