package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 1440, cfg.WindowWidth)
	assert.Equal(t, 900, cfg.WindowHeight)
	assert.Empty(t, cfg.ExtractEndpoint)
	assert.Equal(t, 60*time.Second, cfg.ExtractTimeout)
	assert.Equal(t, "carbon-steel", cfg.DefaultMaterial)
	assert.Equal(t, "workshop", cfg.DefaultLighting)
}

func TestLoadFromFile(t *testing.T) {
	t.Chdir(t.TempDir())

	yaml := `logLevel: debug
window:
  width: 1024
  height: 768
extract:
  endpoint: http://localhost:9000/extract
  timeoutSeconds: 15
defaults:
  material: stainless
`
	require.NoError(t, os.WriteFile("vessel-studio.yaml", []byte(yaml), 0644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 1024, cfg.WindowWidth)
	assert.Equal(t, 768, cfg.WindowHeight)
	assert.Equal(t, "http://localhost:9000/extract", cfg.ExtractEndpoint)
	assert.Equal(t, 15*time.Second, cfg.ExtractTimeout)
	assert.Equal(t, "stainless", cfg.DefaultMaterial)
	// Unset keys fall back to their defaults.
	assert.Equal(t, "workshop", cfg.DefaultLighting)
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	t.Chdir(t.TempDir())
	require.NoError(t, os.WriteFile("vessel-studio.yaml", []byte(":\n\t- not yaml"), 0644))

	_, err := Load()
	assert.Error(t, err)
}
