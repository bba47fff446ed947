package configwatcher

import (
	"context"
	"course_admin_backend/internal/config"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(file, []byte("server:\n  mode: debug\n"), 0644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloaded := make(chan *config.Config, 1)
	load := func(d string) (*config.Config, error) {
		assert.Equal(t, dir, d)
		return &config.Config{Server: config.ServerConfig{Mode: "release"}}, nil
	}
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, file, load, func(cfg *config.Config) { reloaded <- cfg })
	}()

	// 等待 watcher 注册完成
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(file, []byte("server:\n  mode: release\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x: 1\n"), 0644))

	select {
	case cfg := <-reloaded:
		assert.Equal(t, "release", cfg.Server.Mode)
	case <-time.After(5 * time.Second):
		t.Fatal("config was not reloaded")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("watcher did not stop")
	}
}
