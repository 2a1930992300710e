package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Empty(t, cfg.Browser.StartDir)
	assert.Empty(t, cfg.Browser.TrashDir)
	assert.False(t, cfg.Browser.ShowHidden)
	assert.Equal(t, 2*time.Second, cfg.Browser.ProbeTimeout)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Logging.Development)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("SHELLMAN_START_DIR", "/srv/data")
	t.Setenv("SHELLMAN_SHOW_HIDDEN", "true")
	t.Setenv("SHELLMAN_PROBE_TIMEOUT", "500ms")
	t.Setenv("SHELLMAN_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/srv/data", cfg.Browser.StartDir)
	assert.True(t, cfg.Browser.ShowHidden)
	assert.Equal(t, 500*time.Millisecond, cfg.Browser.ProbeTimeout)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 2*time.Second, cfg.Browser.ProbeTimeout)
	assert.Equal(t, "info", cfg.Logging.Level)
}
