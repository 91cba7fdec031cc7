package logger

import (
	"testing"

	"github.com/itrgo/tax-estimator/internal/calculation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var _ calculation.Logger = (*Logger)(nil)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    zapcore.Level
		wantErr bool
	}{
		{"", zapcore.InfoLevel, false},
		{"debug", zapcore.DebugLevel, false},
		{" WARN ", zapcore.WarnLevel, false},
		{"error", zapcore.ErrorLevel, false},
		{"chatty", zapcore.InfoLevel, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewLogger(t *testing.T) {
	l, err := NewLogger(Options{Level: "debug", Console: true})
	require.NoError(t, err)
	assert.True(t, l.Desugar().Core().Enabled(zapcore.DebugLevel))

	_, err = NewLogger(Options{Level: "loud"})
	assert.Error(t, err)
}

func TestLoggerWritesThroughCore(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	l := NewFromCore(core).Named("engine").With("financialYear", "2025-2026")

	l.Debugf("hidden %d", 1)
	l.Infof("computed %s", "ok")
	l.Warnf("warned")

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "computed ok", entries[0].Message)
	assert.Equal(t, "engine", entries[0].LoggerName)
	assert.Equal(t, "2025-2026", entries[0].ContextMap()["financialYear"])
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
}
