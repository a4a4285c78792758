package logging_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/alnah/go-promptcraft/internal/logging"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    zapcore.Level
		wantErr bool
	}{
		{"", zapcore.WarnLevel, false},
		{"debug", zapcore.DebugLevel, false},
		{"info", zapcore.InfoLevel, false},
		{"WARN", zapcore.WarnLevel, false},
		{"error", zapcore.ErrorLevel, false},
		{"panic", zapcore.WarnLevel, true},
		{"verbose", zapcore.WarnLevel, true},
	}

	for _, tt := range tests {
		got, err := logging.ParseLevel(tt.input)
		if tt.wantErr {
			if !errors.Is(err, logging.ErrInvalidLevel) {
				t.Errorf("ParseLevel(%q) error = %v, want ErrInvalidLevel", tt.input, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, %v; want %v", tt.input, got, err, tt.want)
		}
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logging.New(zapcore.WarnLevel, &buf)

	log.Info("hidden")
	log.Warn("remote correction failed", zap.String("remote", "openai"))

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info line written at warn level:\n%s", out)
	}
	if !strings.Contains(out, "WARN") || !strings.Contains(out, "remote correction failed") {
		t.Errorf("missing warn line:\n%s", out)
	}
	if !strings.Contains(out, `"remote": "openai"`) {
		t.Errorf("missing structured field:\n%s", out)
	}
}
