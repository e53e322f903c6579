package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "local.yaml")

	content := `
env: "dev"
storage:
  type: "memory"
http_server:
  address: "0.0.0.0:9090"
  timeout: 2s
auth:
  jwt_secret: "secret"
  token_ttl: 1h
  denylist: "redis"
  bootstrap_admin_email: "root@example.com"
redis:
  addr: "cache:6379"
notifier:
  sender: "webhook"
  webhook_url: "http://relay.local/notify"
  batch_size: 10
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, StorageMemory, cfg.Storage.Type)
	assert.Equal(t, "0.0.0.0:9090", cfg.HTTPServer.Address)
	assert.Equal(t, 2*time.Second, cfg.HTTPServer.Timeout)
	assert.Equal(t, 60*time.Second, cfg.HTTPServer.IdleTimeout)
	assert.Equal(t, "secret", cfg.Auth.JWTSecret)
	assert.Equal(t, time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, SenderWebhook, cfg.Notifier.Sender)
	assert.Equal(t, 10, cfg.Notifier.BatchSize)
	assert.Equal(t, 5, cfg.Notifier.MaxAttempts)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, DenylistRedis, cfg.Auth.Denylist)
	assert.Equal(t, "root@example.com", cfg.Auth.BootstrapAdminEmail)
	assert.Equal(t, "cache:6379", cfg.Redis.Addr)
	assert.Equal(t, 3, cfg.Redis.MaxRetries)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
