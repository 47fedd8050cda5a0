package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "42", cfg.Seed)
	assert.Equal(t, 1.0, cfg.TimeScale)
	assert.True(t, cfg.CatchUp)
	assert.Equal(t, "data", cfg.LogDir)
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	os.Setenv("SIM_SEED", "the-known-world")
	os.Setenv("SIM_CATCH_UP", "true")
	os.Setenv("SIM_CATCH_UP_SPEED", "250.5")
	os.Setenv("SIM_BATCH_DAYS", "30")
	defer clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "the-known-world", cfg.Seed)
	assert.True(t, cfg.CatchUp)
	assert.Equal(t, 250.5, cfg.CatchUpSpeed)
	assert.Equal(t, 30, cfg.BatchDays)
}

func TestLoadInvalidNumberErrors(t *testing.T) {
	clearEnv(t)
	os.Setenv("SIM_TIME_SCALE", "not-a-number")
	defer clearEnv(t)

	_, err := Load()
	assert.Error(t, err)
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"SIM_SEED", "SIM_START_WORLD_TIME", "SIM_TIME_SCALE", "SIM_LOG_DIR",
		"SIM_CATCH_UP", "SIM_CATCH_UP_SPEED", "SIM_BATCH_DAYS", "FORCE_SEED",
	} {
		os.Unsetenv(k)
	}
}
