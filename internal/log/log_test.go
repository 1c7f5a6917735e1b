package log

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestStructuredLogger_With(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := NewStructuredLoggerFromSugar(zap.New(core).Sugar())

	runLogger := logger.With("run_id", "abc")
	runLogger.Info("family found", "size", 6)
	runLogger.Debug("pattern scanned", "pattern", "x.")

	entries := logs.All()
	require.Len(t, entries, 2)

	assert.Equal(t, "family found", entries[0].Message)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	fields := entries[0].ContextMap()
	assert.Equal(t, "abc", fields["run_id"])
	assert.EqualValues(t, 6, fields["size"])

	assert.Equal(t, zapcore.DebugLevel, entries[1].Level)
	assert.Equal(t, "x.", entries[1].ContextMap()["pattern"])
}

func TestNewStructuredLogger_Levels(t *testing.T) {
	tests := []struct {
		level string
		want  zapcore.Level
	}{
		{level: "DEBUG", want: zapcore.DebugLevel},
		{level: "WARN", want: zapcore.WarnLevel},
		{level: "ERROR", want: zapcore.ErrorLevel},
		{level: "INFO", want: zapcore.InfoLevel},
		{level: "bogus", want: zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logger, err := NewStructuredLogger(tt.level)
			require.NoError(t, err)
			assert.True(t, logger.zl.Desugar().Core().Enabled(tt.want))
			if tt.want > zapcore.DebugLevel {
				assert.False(t, logger.zl.Desugar().Core().Enabled(tt.want-1))
			}
		})
	}
}

func TestNoOpLogger(t *testing.T) {
	var logger Logger = NewNoOpLogger()
	assert.NotPanics(t, func() {
		logger.With("k", "v").Info("ignored", "a", 1)
		logger.Error("ignored")
	})
}
