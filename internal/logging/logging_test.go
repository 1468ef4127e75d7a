package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	tests := []struct {
		level string
		dev   bool
		want  zapcore.Level
	}{
		{"", false, zapcore.WarnLevel},
		{"debug", false, zapcore.DebugLevel},
		{"info", true, zapcore.InfoLevel},
		{"error", false, zapcore.ErrorLevel},
	}
	for _, tt := range tests {
		logger, err := New(tt.level, tt.dev)
		if err != nil {
			t.Fatalf("New(%q) failed: %v", tt.level, err)
		}
		if !logger.Core().Enabled(tt.want) {
			t.Errorf("New(%q): level %s not enabled", tt.level, tt.want)
		}
		if tt.want > zapcore.DebugLevel && logger.Core().Enabled(tt.want-1) {
			t.Errorf("New(%q): level %s unexpectedly enabled", tt.level, tt.want-1)
		}
	}
}

func TestNewInvalidLevel(t *testing.T) {
	if _, err := New("loud", false); err == nil {
		t.Error("expected an error for an unknown level")
	}
}
