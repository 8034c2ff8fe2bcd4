// Package config loads paramedit settings: built-in defaults, then an
// optional YAML file, then environment overrides. Command-line flags are
// applied last by the CLI.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Environment overrides.
const (
	EnvDatabase  = "PARAMEDIT_DB"
	EnvLogLevel  = "PARAMEDIT_LOG_LEVEL"
	EnvLogFile   = "PARAMEDIT_LOG_FILE"
	EnvPrecision = "PARAMEDIT_PRECISION"
)

// Config is the complete paramedit configuration.
type Config struct {
	Database string        `yaml:"database"`
	Log      LogConfig     `yaml:"log"`
	Display  DisplayConfig `yaml:"display"`
}

// LogConfig controls logging.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level"`
	// File enables a rotating JSON log when set.
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"maxSizeMb"`
	MaxBackups int    `yaml:"maxBackups"`
}

// DisplayConfig controls value formatting.
type DisplayConfig struct {
	// Precision is the number of decimals in computed values.
	Precision int `yaml:"precision"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Database: "paramedit.db",
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
		Display: DisplayConfig{
			Precision: 6,
		},
	}
}

// Load builds the configuration. An empty path skips the file; a named file
// that does not exist is an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := loadFromFile(cfg, path); err != nil {
			return nil, fmt.Errorf("load config %s: %w", path, err)
		}
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// loadFromFile decodes a YAML file over cfg. Unknown keys are rejected.
func loadFromFile(cfg *Config, filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return err
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv(EnvDatabase); v != "" {
		cfg.Database = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv(EnvLogFile); v != "" {
		cfg.Log.File = v
	}
	if v := os.Getenv(EnvPrecision); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvPrecision, err)
		}
		cfg.Display.Precision = n
	}
	return nil
}

// Validate checks the configuration for values the program cannot use.
func (c *Config) Validate() error {
	var errs []error
	if c.Database == "" {
		errs = append(errs, errors.New("database path is required"))
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, fmt.Errorf("invalid log level %q", c.Log.Level))
	}
	if c.Display.Precision < 0 || c.Display.Precision > 15 {
		errs = append(errs, fmt.Errorf("display precision %d out of range 0-15", c.Display.Precision))
	}
	if c.Log.MaxSizeMB < 0 || c.Log.MaxBackups < 0 {
		errs = append(errs, errors.New("log rotation limits must not be negative"))
	}
	return errors.Join(errs...)
}
