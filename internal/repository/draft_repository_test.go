package repository

import (
	"context"
	"course_admin_backend/internal/util"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryDraftRepositoryExpires(t *testing.T) {
	repo := NewMemoryDraftRepository()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, "s1", []byte(`{"a":1}`), time.Hour))
	data, err := repo.Get(ctx, "s1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1}`, string(data))

	now = now.Add(time.Hour)
	_, err = repo.Get(ctx, "s1")
	assert.ErrorIs(t, err, util.ErrSessionNotFound)
}

func TestMemoryDraftRepositoryLock(t *testing.T) {
	repo := NewMemoryDraftRepository()
	now := time.Now()
	repo.now = func() time.Time { return now }
	ctx := context.Background()

	ok, err := repo.AcquireLock(ctx, "s1", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, _ = repo.AcquireLock(ctx, "s1", time.Minute)
	assert.False(t, ok)

	require.NoError(t, repo.ReleaseLock(ctx, "s1"))
	ok, _ = repo.AcquireLock(ctx, "s1", time.Minute)
	assert.True(t, ok)

	now = now.Add(2 * time.Minute)
	ok, _ = repo.AcquireLock(ctx, "s1", time.Minute)
	assert.True(t, ok, "stale lock must not block forever")
}

func TestMemoryDraftRepositoryCopiesData(t *testing.T) {
	repo := NewMemoryDraftRepository()
	ctx := context.Background()

	buf := []byte("abc")
	require.NoError(t, repo.Save(ctx, "s1", buf, time.Hour))
	buf[0] = 'x'

	data, err := repo.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(data))

	require.NoError(t, repo.Delete(ctx, "s1"))
	_, err = repo.Get(ctx, "s1")
	assert.ErrorIs(t, err, util.ErrSessionNotFound)
}
