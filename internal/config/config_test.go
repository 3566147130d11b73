package config

import (
	"testing"
	"time"

	"github.com/skybi/bitflags/internal/apikey"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromEnvDefaults(t *testing.T) {
	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	assert.True(t, cfg.IsEnvProduction())
	assert.Equal(t, ":8081", cfg.ListenAddress)
	assert.Equal(t, StorageDriverPostgres, cfg.StorageDriver)
	assert.Equal(t, 5*time.Minute, cfg.CacheLifetime)
	assert.Equal(t, apikey.AllCapabilities(), cfg.BootstrapCapabilities)
}

func TestLoadFromEnvOverrides(t *testing.T) {
	t.Setenv("FLAGD_ENVIRONMENT", "dev")
	t.Setenv("FLAGD_STORAGE_DRIVER", StorageDriverMemory)
	t.Setenv("FLAGD_CACHE_LIFETIME", "30s")
	t.Setenv("FLAGD_BOOTSTRAP_CAPABILITIES", "0b001")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	assert.False(t, cfg.IsEnvProduction())
	assert.Equal(t, StorageDriverMemory, cfg.StorageDriver)
	assert.Equal(t, 30*time.Second, cfg.CacheLifetime)
	assert.True(t, cfg.BootstrapCapabilities.Has(apikey.CapabilityReadRegisters))
	assert.False(t, cfg.BootstrapCapabilities.Has(apikey.CapabilityWriteRegisters))
}

func TestLoadFromEnvRejectsInvalidCapabilities(t *testing.T) {
	t.Setenv("FLAGD_BOOTSTRAP_CAPABILITIES", "everything")
	_, err := LoadFromEnv()
	assert.Error(t, err)
}
