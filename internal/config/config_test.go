package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "http://localhost:8000", cfg.Endpoint)
	assert.Equal(t, 15*time.Second, cfg.Timeout.Duration)
	assert.Equal(t, 400, cfg.Graph.Samples)
}

func TestLoadTOML(t *testing.T) {
	t.Chdir(t.TempDir())
	path := writeFile(t, t.TempDir(), "config.toml", `
endpoint = "http://calc.internal:9000"
timeout = "3s"
log_level = "debug"
alt_screen = false

[graph]
x_min = -3.5
x_max = 3.5
samples = 50

[hints]
visible = true
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://calc.internal:9000", cfg.Endpoint)
	assert.Equal(t, 3*time.Second, cfg.Timeout.Duration)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.False(t, cfg.AltScreen)
	assert.Equal(t, Graph{XMin: -3.5, XMax: 3.5, Samples: 50}, cfg.Graph)
	assert.True(t, cfg.Hints.Visible)
}

func TestLoadExplicitMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
}

func TestLoadDotEnvAndEnvironment(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeFile(t, dir, ".env", "CALCSCOUT_ENDPOINT=http://from-dotenv:1\nCALCSCOUT_GRAPH_SAMPLES=80\n")
	path := writeFile(t, dir, "config.toml", `endpoint = "http://from-toml:1"`)
	t.Setenv("CALCSCOUT_GRAPH_SAMPLES", "120")
	t.Cleanup(func() { os.Unsetenv("CALCSCOUT_ENDPOINT") })

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://from-dotenv:1", cfg.Endpoint)
	assert.Equal(t, 120, cfg.Graph.Samples, "real environment wins over .env")
}

func TestReadDefersValidation(t *testing.T) {
	t.Chdir(t.TempDir())
	path := writeFile(t, t.TempDir(), "config.toml", `endpoint = "localhost"`)

	cfg, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, "localhost", cfg.Endpoint)

	_, err = Load(path)
	require.ErrorContains(t, err, "endpoint")
}

func TestApplyEnvCollectsErrors(t *testing.T) {
	env := map[string]string{
		"CALCSCOUT_TIMEOUT":       "soon",
		"CALCSCOUT_ALT_SCREEN":    "maybe",
		"CALCSCOUT_GRAPH_SAMPLES": "many",
		"CALCSCOUT_EXPORT_DIR":    "/tmp/plots",
	}
	lookup := func(key string) (string, bool) {
		val, ok := env[key]
		return val, ok
	}
	cfg := Default()
	err := cfg.ApplyEnv(lookup)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "CALCSCOUT_TIMEOUT")
	assert.Contains(t, err.Error(), "CALCSCOUT_ALT_SCREEN")
	assert.Contains(t, err.Error(), "CALCSCOUT_GRAPH_SAMPLES")
	assert.Equal(t, "/tmp/plots", cfg.ExportDir)
}

func TestValidateReportsEverything(t *testing.T) {
	cfg := Default()
	cfg.Endpoint = "localhost"
	cfg.Timeout = Duration{}
	cfg.LogLevel = "loud"
	cfg.Graph.Samples = 0

	err := cfg.Validate()
	require.Error(t, err)
	for _, want := range []string{"endpoint", "timeout", "log_level", "graph.samples"} {
		assert.Contains(t, err.Error(), want)
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]string{"debug": "DEBUG", "": "INFO", "WARN": "WARN", "error": "ERROR"}
	for in, want := range tests {
		level, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, level.String())
	}
}

func TestGraphField(t *testing.T) {
	assert.Equal(t, "-10", GraphField(-10))
	assert.Equal(t, "2.5", GraphField(2.5))
}
