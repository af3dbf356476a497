// Package config loads server settings from an optional JSON file and the
// environment. Environment variables win over the file.
//
//	PIXEL_MCP_CONFIG      path to a JSON file with the keys below
//	PIXEL_MCP_LOG_LEVEL   "debug" enables debug logging ("logLevel")
//	PIXEL_MCP_WORKERS     goroutines per blur pass; -1 = GOMAXPROCS ("workers")
//	PIXEL_MCP_OUTPUT_DIR  base directory for relative output paths ("outputDir")
package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Environment variable names.
const (
	EnvConfigFile = "PIXEL_MCP_CONFIG"
	EnvLogLevel   = "PIXEL_MCP_LOG_LEVEL"
	EnvWorkers    = "PIXEL_MCP_WORKERS"
	EnvOutputDir  = "PIXEL_MCP_OUTPUT_DIR"
)

// Config holds server settings.
type Config struct {
	// LogLevel is "info" (default) or "debug".
	LogLevel string `json:"logLevel"`

	// Workers is the number of goroutines per blur pass.
	Workers int `json:"workers"`

	// OutputDir resolves relative output_path arguments. Empty means the
	// process working directory.
	OutputDir string `json:"outputDir"`
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		LogLevel: "info",
		Workers:  1,
	}
}

// Debug reports whether debug logging is enabled.
func (c Config) Debug() bool {
	return strings.EqualFold(c.LogLevel, "debug")
}

// Load builds a Config from defaults, the file named by PIXEL_MCP_CONFIG (if
// set) and the remaining environment variables.
func Load() (Config, error) {
	return load(os.Getenv)
}

func load(getenv func(string) string) (Config, error) {
	cfg := Default()

	if path := getenv(EnvConfigFile); path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return Config{}, err
		}
	}

	if v := getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
	if v := getenv(EnvWorkers); v != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvWorkers, err)
		}
		cfg.Workers = n
	}
	if v := getenv(EnvOutputDir); v != "" {
		cfg.OutputDir = v
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// mergeFile overlays the keys present in a JSON file onto c.
func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(c); err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return nil
}

// Validate rejects settings the server cannot run with.
func (c Config) Validate() error {
	switch strings.ToLower(c.LogLevel) {
	case "info", "debug":
	default:
		return fmt.Errorf("unknown log level %q (want info or debug)", c.LogLevel)
	}
	if c.Workers < -1 {
		return fmt.Errorf("workers must be >= -1, got %d", c.Workers)
	}
	return nil
}
