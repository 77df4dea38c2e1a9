package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv_Defaults(t *testing.T) {
	for _, key := range []string{"APP_PORT", "SEED_SOURCE", "DEFAULT_VIEW_MODE", "CURRENCY", "DB_PORT", "DB_TABLE", "LOG_LEVEL"} {
		t.Setenv(key, "")
	}

	cfg := FromEnv()
	assert.Equal(t, "8080", cfg.APP_PORT)
	assert.Equal(t, SeedEmbedded, cfg.SEED_SOURCE)
	assert.Equal(t, "cards", cfg.DEFAULT_VIEW_MODE)
	assert.Equal(t, "USD", cfg.CURRENCY)
	assert.Equal(t, 5432, cfg.DB_PORT)
	assert.Equal(t, "employees", cfg.DB_TABLE)
	assert.Equal(t, "info", cfg.LOG_LEVEL)
	assert.Equal(t, 20*time.Minute, cfg.DB_CONN_MAX_LIFETIME)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("SEED_SOURCE", "Postgres")
	t.Setenv("CURRENCY", "eur")
	t.Setenv("DB_PORT", "not-a-number")
	t.Setenv("DB_CONN_MAX_LIFETIME", "30")
	t.Setenv("DB_MAX_OPEN_CONNS", "7")

	cfg := FromEnv()
	assert.Equal(t, "9090", cfg.APP_PORT)
	assert.Equal(t, SeedPostgres, cfg.SEED_SOURCE)
	assert.Equal(t, "EUR", cfg.CURRENCY)
	assert.Equal(t, 5432, cfg.DB_PORT)
	assert.Equal(t, 30*time.Second, cfg.DB_CONN_MAX_LIFETIME)
	assert.Equal(t, 7, cfg.DB_MAX_OPEN_CONNS)
}

func TestLoadEnvConfig(t *testing.T) {
	t.Run("missing env file is fine", func(t *testing.T) {
		err := LoadEnvConfig(filepath.Join(t.TempDir(), "absent.env"))
		require.NoError(t, err)
		require.NotNil(t, DefaultEnvConfig)
	})

	t.Run("reads env file", func(t *testing.T) {
		t.Setenv("SEED_FILE", "")
		os.Unsetenv("SEED_FILE")
		path := filepath.Join(t.TempDir(), "test.env")
		require.NoError(t, os.WriteFile(path, []byte("SEED_FILE=./seed.yaml\n"), 0o600))

		require.NoError(t, LoadEnvConfig(path))
		assert.Equal(t, "./seed.yaml", DefaultEnvConfig.SEED_FILE)
	})
}
