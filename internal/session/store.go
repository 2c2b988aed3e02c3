package session

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"campus-portal/internal/model"
	"campus-portal/pkg/redis"
)

// ErrNotFound 会话记录不存在或已过期
var ErrNotFound = errors.New("会话不存在")

// Record 持久化的会话内容
type Record struct {
	Token string     `json:"token"`
	User  model.User `json:"user"`
}

// Store 会话持久化
type Store interface {
	Save(ctx context.Context, id string, rec Record, ttl time.Duration) error
	Load(ctx context.Context, id string) (Record, error)
	Delete(ctx context.Context, id string) error
}

// ────────────────────── Redis ──────────────────────

// redisBackend 由 *redis.Client 实现
type redisBackend interface {
	SetSession(ctx context.Context, sessionID string, payload []byte, ttl time.Duration) error
	GetSession(ctx context.Context, sessionID string) ([]byte, error)
	DeleteSession(ctx context.Context, sessionID string) (bool, error)
}

var _ redisBackend = (*redis.Client)(nil)

// RedisStore 会话存储在 Redis，key 为 session:<id>
type RedisStore struct {
	rdb redisBackend
}

// NewRedisStore 创建 Redis 会话存储
func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func (s *RedisStore) Save(ctx context.Context, id string, rec Record, ttl time.Duration) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return s.rdb.SetSession(ctx, id, payload, ttl)
}

func (s *RedisStore) Load(ctx context.Context, id string) (Record, error) {
	payload, err := s.rdb.GetSession(ctx, id)
	if errors.Is(err, redis.ErrNotFound) {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, err
	}
	var rec Record
	if err := json.Unmarshal(payload, &rec); err != nil {
		return Record{}, err
	}
	return rec, nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	deleted, err := s.rdb.DeleteSession(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

// ────────────────────── 内存 ──────────────────────

type memoryEntry struct {
	rec       Record
	expiresAt time.Time
}

// memorySweepInterval Save 时清理过期条目的最小间隔
const memorySweepInterval = time.Minute

// MemoryStore 进程内会话存储，Redis 不可用时降级使用
// 过期条目在 Load 命中时删除，其余由 Save 定期清理
type MemoryStore struct {
	mu        sync.Mutex
	entries   map[string]memoryEntry
	now       func() time.Time
	lastSweep time.Time
}

// NewMemoryStore 创建内存会话存储
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]memoryEntry), now: time.Now}
}

func (s *MemoryStore) Save(_ context.Context, id string, rec Record, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	if now.Sub(s.lastSweep) >= memorySweepInterval {
		s.sweep(now)
	}
	s.entries[id] = memoryEntry{rec: rec, expiresAt: now.Add(ttl)}
	return nil
}

// sweep 删除所有已过期条目，调用方需持有锁
func (s *MemoryStore) sweep(now time.Time) {
	for id, e := range s.entries {
		if !now.Before(e.expiresAt) {
			delete(s.entries, id)
		}
	}
	s.lastSweep = now
}

func (s *MemoryStore) Load(_ context.Context, id string) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[id]
	if !ok {
		return Record{}, ErrNotFound
	}
	if !s.now().Before(e.expiresAt) {
		delete(s.entries, id)
		return Record{}, ErrNotFound
	}
	return e.rec, nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[id]; !ok {
		return ErrNotFound
	}
	delete(s.entries, id)
	return nil
}
