package repository

import (
	"context"
	"course_admin_backend/internal/util"
	"errors"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

const draftKeyPrefix = "course:draft:"

func draftKey(id string) string { return draftKeyPrefix + id }
func lockKey(id string) string  { return draftKeyPrefix + id + ":submit" }

// RedisDraftRepository 编辑会话存储，会话以 JSON 保存并带过期时间
type RedisDraftRepository struct {
	Redis *redis.Client
}

func NewRedisDraftRepository(rdb *redis.Client) *RedisDraftRepository {
	return &RedisDraftRepository{Redis: rdb}
}

func (r *RedisDraftRepository) Get(ctx context.Context, id string) ([]byte, error) {
	data, err := r.Redis.Get(ctx, draftKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, util.ErrSessionNotFound
	}
	return data, err
}

func (r *RedisDraftRepository) Save(ctx context.Context, id string, data []byte, ttl time.Duration) error {
	return r.Redis.Set(ctx, draftKey(id), data, ttl).Err()
}

func (r *RedisDraftRepository) Delete(ctx context.Context, id string) error {
	return r.Redis.Del(ctx, draftKey(id), lockKey(id)).Err()
}

// AcquireLock 提交互斥锁，同一会话同一时间只允许一次提交
func (r *RedisDraftRepository) AcquireLock(ctx context.Context, id string, ttl time.Duration) (bool, error) {
	return r.Redis.SetNX(ctx, lockKey(id), time.Now().Unix(), ttl).Result()
}

func (r *RedisDraftRepository) ReleaseLock(ctx context.Context, id string) error {
	return r.Redis.Del(ctx, lockKey(id)).Err()
}

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// MemoryDraftRepository 单实例部署与测试使用的内存实现
type MemoryDraftRepository struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	locks   map[string]time.Time
	now     func() time.Time
}

func NewMemoryDraftRepository() *MemoryDraftRepository {
	return &MemoryDraftRepository{
		entries: make(map[string]memoryEntry),
		locks:   make(map[string]time.Time),
		now:     time.Now,
	}
}

func (r *MemoryDraftRepository) Get(ctx context.Context, id string) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[id]
	if !ok || !r.now().Before(e.expiresAt) {
		delete(r.entries, id)
		return nil, util.ErrSessionNotFound
	}
	out := make([]byte, len(e.data))
	copy(out, e.data)
	return out, nil
}

func (r *MemoryDraftRepository) Save(ctx context.Context, id string, data []byte, ttl time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	buf := make([]byte, len(data))
	copy(buf, data)
	r.entries[id] = memoryEntry{data: buf, expiresAt: r.now().Add(ttl)}
	return nil
}

func (r *MemoryDraftRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.entries, id)
	delete(r.locks, id)
	return nil
}

func (r *MemoryDraftRepository) AcquireLock(ctx context.Context, id string, ttl time.Duration) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if until, ok := r.locks[id]; ok && r.now().Before(until) {
		return false, nil
	}
	r.locks[id] = r.now().Add(ttl)
	return true, nil
}

func (r *MemoryDraftRepository) ReleaseLock(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.locks, id)
	return nil
}
