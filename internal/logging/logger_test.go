package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected LogLevel
		wantErr  bool
	}{
		{"debug", LevelDebug, false},
		{"INFO", LevelInfo, false},
		{"", LevelInfo, false},
		{"warning", LevelWarn, false},
		{"error", LevelError, false},
		{"verbose", LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			level, err := ParseLevel(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.expected, level)
		})
	}
}

func TestLoggerJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&LoggerConfig{Level: LevelDebug, Format: "json", Output: &buf})

	logger.WithComponent("layout").
		With("panel_id", "nav").
		Warn(context.Background(), errors.New("cookie write failed"), "persist failed", "attempt", 1)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, "persist failed", entry["msg"])
	assert.Equal(t, "layout", entry["component"])
	assert.Equal(t, "nav", entry["panel_id"])
	assert.Equal(t, "cookie write failed", entry["error"])
	assert.EqualValues(t, 1, entry["attempt"])
}

func TestLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&LoggerConfig{Level: LevelWarn, Output: &buf})

	logger.Debug(context.Background(), "hidden debug")
	logger.Info(context.Background(), "hidden info")
	logger.Warn(context.Background(), nil, "shown warning")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown warning")
}

func TestWithDoesNotMutateParent(t *testing.T) {
	var buf bytes.Buffer
	parent := NewLogger(&LoggerConfig{Level: LevelInfo, Output: &buf})
	_ = parent.With("request_id", "abc")

	parent.Info(context.Background(), "parent line")
	assert.NotContains(t, buf.String(), "request_id")
}

func TestWithRequestID(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&LoggerConfig{Level: LevelInfo, Output: &buf})

	WithRequestID(logger.WithComponent("server"), "req-42").Info(context.Background(), "handled")

	assert.Contains(t, buf.String(), "request_id=req-42")
	assert.Contains(t, buf.String(), "component=server")
}

func TestRotatingFileWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "panelkit.log")
	w := NewRotatingFileWriter(RotatingFileConfig{Path: path})
	defer w.Close()

	logger := NewLogger(&LoggerConfig{Level: LevelInfo, Output: w})
	logger.Info(context.Background(), "written to file")

	require.FileExists(t, path)
}

func TestNop(t *testing.T) {
	logger := Nop()
	assert.NotPanics(t, func() {
		logger.Error(context.Background(), errors.New("x"), "discarded")
		logger.With("k", "v").WithComponent("c").Info(context.Background(), "discarded")
	})
	assert.True(t, strings.HasPrefix(LevelWarn.String(), "WARN"))
}
