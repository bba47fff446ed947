package service

import (
	"context"
	"course_admin_backend/internal/config"
	"course_admin_backend/internal/util"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectName(t *testing.T) {
	name := ObjectName("sess-1", "Cover.PNG")
	assert.True(t, strings.HasPrefix(name, "courses/sess-1/"))
	assert.True(t, strings.HasSuffix(name, ".png"))
	assert.NotEqual(t, name, ObjectName("sess-1", "Cover.PNG"))
}

func TestLocalStorageUpload(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(t.TempDir(), "staged.png")
	require.NoError(t, os.WriteFile(src, []byte("png-bytes"), 0644))

	svc := NewStorageService(&config.Config{Storage: config.StorageConfig{Type: util.StorageLocal, LocalPath: root}})
	url, err := svc.UploadFile(context.Background(), "courses/sess-1/a.png", src, "image/png")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/courses/sess-1/a.png", url)

	data, err := os.ReadFile(filepath.Join(root, "courses", "sess-1", "a.png"))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))
}

func TestLocalStorageMissingSource(t *testing.T) {
	svc := &StorageService{Provider: &LocalStorageProvider{Config: &config.StorageConfig{LocalPath: t.TempDir()}}}
	_, err := svc.UploadFile(context.Background(), "courses/x/b.png", filepath.Join(t.TempDir(), "nope.png"), "image/png")
	assert.Error(t, err)
}

func TestLocalStorageCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p := &LocalStorageProvider{Config: &config.StorageConfig{LocalPath: t.TempDir()}}
	_, err := p.UploadFile(ctx, "courses/x/c.png", "unused", "image/png")
	assert.ErrorIs(t, err, context.Canceled)
}
