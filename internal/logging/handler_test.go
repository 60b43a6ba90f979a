package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	color.NoColor = true
}

func TestHandler_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, slog.LevelWarn)

	logger.Info("hidden")
	logger.Warn("shown", "key", "value")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "WARN:")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "key=value")
}

func TestHandler_WithAttrsAndGroup(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, slog.LevelDebug).
		With("scope", "sbf-binnen/basisfragen").
		WithGroup("store")

	logger.Debug("saved", "bytes", 42)

	line := strings.TrimSpace(buf.String())
	assert.Contains(t, line, "DEBUG:")
	assert.Contains(t, line, "scope=sbf-binnen/basisfragen")
	assert.Contains(t, line, "store.bytes=42")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		require.NoError(t, err)
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	_, err := ParseLevel("loud")
	assert.Error(t, err)
}
