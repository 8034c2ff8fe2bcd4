package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name string
		want slog.Level
	}{
		{"", slog.LevelInfo},
		{"info", slog.LevelInfo},
		{"DEBUG", slog.LevelDebug},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.name)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, tt.name)
	}

	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestSetup_Stderr(t *testing.T) {
	var buf bytes.Buffer
	logger, cleanup, err := Setup(Options{Level: "info", Stderr: &buf})
	require.NoError(t, err)
	defer cleanup()

	logger.Debug("hidden")
	logger.Info("parameter created", "name", "width")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "msg=\"parameter created\"")
	assert.Contains(t, out, "name=width")
}

func TestSetup_VerboseForcesDebug(t *testing.T) {
	var buf bytes.Buffer
	logger, cleanup, err := Setup(Options{Level: "error", Verbose: true, Stderr: &buf})
	require.NoError(t, err)
	defer cleanup()

	logger.Debug("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestSetup_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "paramedit.log")
	var buf bytes.Buffer

	logger, cleanup, err := Setup(Options{Level: "info", Stderr: &buf, File: path, MaxSizeMB: 1})
	require.NoError(t, err)

	logger.With("component", "mutator").Info("parameter deleted", "name", "w")
	require.NoError(t, cleanup())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)

	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &rec))
	assert.Equal(t, "parameter deleted", rec["msg"])
	assert.Equal(t, "mutator", rec["component"])
	assert.Equal(t, "w", rec["name"])
	assert.True(t, strings.HasSuffix(rec["time"].(string), "Z"), "file timestamps are UTC")

	assert.Contains(t, buf.String(), "parameter deleted", "stderr still receives records")
}

func TestSetup_BadLevel(t *testing.T) {
	_, _, err := Setup(Options{Level: "loud"})
	assert.Error(t, err)
}
