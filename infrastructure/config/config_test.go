package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsFromEnv(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("SQLITE_PATH", "test.db")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, EnvProd, cfg.Env)
	assert.Equal(t, "test.db", cfg.SQLitePath)
	assert.Equal(t, ":8080", cfg.Address)
	assert.Equal(t, int64(3670016), cfg.BlobThresholdBytes)
	assert.Equal(t, 12*time.Hour, cfg.SessionTTL)
	assert.Greater(t, cfg.PrintWorkers, 0)
}

func TestLoadReadsYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "local.yaml")
	yaml := []byte(`env: local
sqlite_path: /tmp/monter.db
http_server:
  address: 127.0.0.1:9000
  timeout: 5s
print_workers: 3
allowed_origins:
  - https://monter.example
`)
	require.NoError(t, os.WriteFile(path, yaml, 0o600))
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, EnvLocal, cfg.Env)
	assert.Equal(t, "/tmp/monter.db", cfg.SQLitePath)
	assert.Equal(t, "127.0.0.1:9000", cfg.Address)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, 3, cfg.PrintWorkers)
	assert.Equal(t, []string{"https://monter.example"}, cfg.AllowedOrigins)
}

func TestLoadMissingFileFails(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "nope.yaml"))

	_, err := Load()
	require.Error(t, err)
}
