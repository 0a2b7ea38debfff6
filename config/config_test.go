package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("TMPDIR", "/var/tmp")
	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.LegacyCacheEnabled, "legacy cache should be enabled by default")
	assert.Equal(t, 30*time.Second, cfg.ReloadTimeout)
	assert.Equal(t, "/var/tmp", cfg.StagingRoot, "should fall back to $TMPDIR")
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("NATIVEMOD_STAGING_ROOT", "/opt/staging")
	t.Setenv("NATIVEMOD_LEGACY_CACHE_ENABLED", "false")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/opt/staging", cfg.StagingRoot)
	assert.False(t, cfg.LegacyCacheEnabled, "env override should disable the legacy cache")
}
