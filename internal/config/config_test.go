package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "paramedit.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "paramedit.db", cfg.Database)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Empty(t, cfg.Log.File)
	assert.Equal(t, 6, cfg.Display.Precision)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_NoFile(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
database: /tmp/design.db
log:
  level: debug
  file: /tmp/paramedit.log
display:
  precision: 3
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/design.db", cfg.Database)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "/tmp/paramedit.log", cfg.Log.File)
	assert.Equal(t, 10, cfg.Log.MaxSizeMB, "unset keys keep defaults")
	assert.Equal(t, 3, cfg.Display.Precision)
}

func TestLoad_EmptyFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"unknown key", "databse: x.db\n", "databse"},
		{"bad yaml", "log: [\n", "load config"},
		{"bad level", "log:\n  level: loud\n", `invalid log level "loud"`},
		{"bad precision", "display:\n  precision: 40\n", "out of range"},
		{"empty database", "database: \"\"\n", "database path is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, "database: file.db\n")
	t.Setenv(EnvDatabase, "env.db")
	t.Setenv(EnvLogLevel, "warn")
	t.Setenv(EnvLogFile, "env.log")
	t.Setenv(EnvPrecision, "2")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "env.db", cfg.Database)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "env.log", cfg.Log.File)
	assert.Equal(t, 2, cfg.Display.Precision)
}

func TestLoad_BadPrecisionEnv(t *testing.T) {
	t.Setenv(EnvPrecision, "many")
	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvPrecision)
}
