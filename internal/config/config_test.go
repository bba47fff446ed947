package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	staging := filepath.Join(dir, "staging")
	yaml := "server:\n  port: \"9090\"\n" +
		"storage:\n  type: minio\n  staging_path: " + staging + "\n" +
		"drafts:\n  store: memory\n  ttl_hours: 2\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, DraftStoreMemory, cfg.Drafts.Store)
	assert.Equal(t, 2*time.Hour, cfg.Drafts.TTL)
	assert.Equal(t, 24*time.Hour, cfg.JWT.ExpireTime)
	assert.Equal(t, int64(5), cfg.Storage.MaxImageMB)
	assert.Equal(t, time.Minute, cfg.SubmitLockTTL())
	assert.DirExists(t, staging)
}

func TestValidate(t *testing.T) {
	cfg := &Config{
		Server: ServerConfig{Mode: "release"},
		JWT:    JWTConfig{Secret: "short"},
		Drafts: DraftsConfig{Store: DraftStoreRedis, TTL: time.Hour},
	}
	assert.Error(t, cfg.Validate())

	cfg.JWT.Secret = "0123456789abcdef0123456789abcdef"
	assert.NoError(t, cfg.Validate())

	cfg.Drafts.Store = "disk"
	assert.Error(t, cfg.Validate())

	cfg.Drafts.Store = DraftStoreMemory
	cfg.Drafts.TTL = 0
	assert.Error(t, cfg.Validate())
}
