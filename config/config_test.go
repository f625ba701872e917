package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testYAML = `
env:
  env: test
  log:
    level: info
http:
  port: 9090
store:
  notificationCapacity: 10
  expiryWindow: 720h
snapshot:
  driver: blob
  bucketUrl: mem://
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "test.yaml"), []byte(content), 0o600))

	return dir
}

func TestLoadWithEnv_ReadsYAML(t *testing.T) {
	dir := writeConfig(t, testYAML)
	t.Chdir(dir)

	cfg, err := LoadWithEnv[Config]("test")
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.HTTP.Port)
	require.NotNil(t, cfg.Store)
	assert.Equal(t, 10, cfg.Store.NotificationCapacity)
	assert.Equal(t, 720*time.Hour, cfg.Store.ExpiryWindow)
	assert.Equal(t, "mem://", cfg.Snapshot.BucketURL)
}

func TestLoadWithEnv_EnvOverridesYAML(t *testing.T) {
	dir := writeConfig(t, testYAML)
	t.Chdir(dir)
	t.Setenv("STORE_NOTIFICATIONCAPACITY", "25")
	t.Setenv("HTTP_PORT", "7070")

	cfg, err := LoadWithEnv[Config]("test")
	require.NoError(t, err)

	assert.Equal(t, 25, cfg.Store.NotificationCapacity)
	assert.Equal(t, 7070, cfg.HTTP.Port)
}

func TestLoadWithEnv_MissingFile(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := LoadWithEnv[Config]("absent")
	assert.ErrorContains(t, err, "absent.yaml not found")
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{Auth: &AuthConfig{Enabled: true}}
	applyDefaults(cfg)

	assert.Equal(t, defaultMaxRequestBodySize, cfg.HTTP.MaxRequestBodySize)
	assert.Equal(t, 50, cfg.Store.NotificationCapacity)
	assert.Equal(t, 3, cfg.Store.RecentSalesLimit)
	assert.Equal(t, "America/Lima", cfg.Store.Timezone)
	assert.True(t, cfg.Store.SeedOnEmpty)
	assert.Equal(t, "blob", cfg.Snapshot.Driver)
	assert.Equal(t, "mem://", cfg.Snapshot.BucketURL)
	assert.Equal(t, 12*time.Hour, cfg.Auth.AccessTTL)
	assert.Equal(t, 8081, cfg.Worker.Port)
	assert.Equal(t, "events", cfg.Worker.ArchivePrefix)
}

func TestShippedConfig_ArchiveSeparateFromSnapshot(t *testing.T) {
	cfg, err := LoadWithEnv[Config]("config")
	require.NoError(t, err)
	require.NotNil(t, cfg.Snapshot)
	require.NotNil(t, cfg.Worker)

	assert.NotEqual(t, cfg.Snapshot.BucketURL, cfg.Worker.ArchiveBucketURL)
}
