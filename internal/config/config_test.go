package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// env returns a getenv backed by a map.
func env(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(env(nil))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.False(t, cfg.Debug())
}

func TestLoad_Env(t *testing.T) {
	cfg, err := load(env(map[string]string{
		EnvLogLevel:  "DEBUG",
		EnvWorkers:   " 4 ",
		EnvOutputDir: "/tmp/out",
	}))
	require.NoError(t, err)
	assert.True(t, cfg.Debug())
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, "/tmp/out", cfg.OutputDir)
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"workers": 8, "outputDir": "/from/file"}`), 0o644))

	cfg, err := load(env(map[string]string{
		EnvConfigFile: path,
		EnvOutputDir:  "/from/env",
	}))
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Workers)
	assert.Equal(t, "/from/env", cfg.OutputDir)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()
	unknown := filepath.Join(dir, "unknown.json")
	require.NoError(t, os.WriteFile(unknown, []byte(`{"threads": 2}`), 0o644))
	broken := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(broken, []byte(`{`), 0o644))

	tests := []struct {
		name string
		env  map[string]string
	}{
		{"bad workers", map[string]string{EnvWorkers: "many"}},
		{"negative workers", map[string]string{EnvWorkers: "-2"}},
		{"bad level", map[string]string{EnvLogLevel: "trace"}},
		{"missing file", map[string]string{EnvConfigFile: filepath.Join(dir, "nope.json")}},
		{"unknown key", map[string]string{EnvConfigFile: unknown}},
		{"broken json", map[string]string{EnvConfigFile: broken}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := load(env(tt.env))
			assert.Error(t, err)
		})
	}
}
