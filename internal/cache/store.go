package cache

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store JSON 键值存储，游客购物车、结算状态、商品列表缓存共用
type Store interface {
	GetJSON(ctx context.Context, key string, dest interface{}) (bool, error)
	SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Del(ctx context.Context, key string) error
	// SAdd 向集合追加成员，集合本身不过期
	SAdd(ctx context.Context, key string, members ...string) error
	SMembers(ctx context.Context, key string) ([]string, error)
	SRem(ctx context.Context, key string, members ...string) error
}

// NewStore Redis 启用时返回 Redis 存储，否则返回进程内存储
func NewStore() Store {
	if Enabled() {
		return NewRedisStore(redisClient, redisPrefix)
	}
	return NewMemoryStore()
}

// RedisStore 基于 Redis 的实现
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore 创建 Redis 存储
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

// GetJSON 读取并反序列化，不存在时返回 false
func (s *RedisStore) GetJSON(ctx context.Context, key string, dest interface{}) (bool, error) {
	val, err := s.client.Get(ctx, buildKey(s.prefix, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(val, dest); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON 序列化写入，ttl<=0 表示不过期
func (s *RedisStore) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if ttl < 0 {
		ttl = 0
	}
	return s.client.Set(ctx, buildKey(s.prefix, key), payload, ttl).Err()
}

// Del 删除键
func (s *RedisStore) Del(ctx context.Context, key string) error {
	return s.client.Del(ctx, buildKey(s.prefix, key)).Err()
}

// SAdd 追加集合成员
func (s *RedisStore) SAdd(ctx context.Context, key string, members ...string) error {
	if len(members) == 0 {
		return nil
	}
	values := make([]interface{}, 0, len(members))
	for _, member := range members {
		values = append(values, member)
	}
	return s.client.SAdd(ctx, buildKey(s.prefix, key), values...).Err()
}

// SMembers 读取集合成员
func (s *RedisStore) SMembers(ctx context.Context, key string) ([]string, error) {
	return s.client.SMembers(ctx, buildKey(s.prefix, key)).Result()
}

// SRem 移除集合成员
func (s *RedisStore) SRem(ctx context.Context, key string, members ...string) error {
	if len(members) == 0 {
		return nil
	}
	values := make([]interface{}, 0, len(members))
	for _, member := range members {
		values = append(values, member)
	}
	return s.client.SRem(ctx, buildKey(s.prefix, key), values...).Err()
}

// 过期条目的清扫间隔
const memorySweepInterval = time.Minute

type memoryEntry struct {
	payload   []byte
	expiresAt time.Time
}

// MemoryStore 进程内实现，用于未启用 Redis 的单实例部署与测试
type MemoryStore struct {
	mu        sync.Mutex
	items     map[string]memoryEntry
	sets      map[string]map[string]struct{}
	now       func() time.Time
	lastSweep time.Time
}

// NewMemoryStore 创建进程内存储
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		items: make(map[string]memoryEntry),
		sets:  make(map[string]map[string]struct{}),
		now:   time.Now,
	}
}

// GetJSON 读取并反序列化，过期视为不存在
func (s *MemoryStore) GetJSON(_ context.Context, key string, dest interface{}) (bool, error) {
	s.mu.Lock()
	entry, ok := s.items[key]
	if ok && !entry.expiresAt.IsZero() && !s.now().Before(entry.expiresAt) {
		delete(s.items, key)
		ok = false
	}
	s.mu.Unlock()
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(entry.payload, dest); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON 序列化写入
func (s *MemoryStore) SetJSON(_ context.Context, key string, value interface{}, ttl time.Duration) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	entry := memoryEntry{payload: payload}
	if ttl > 0 {
		entry.expiresAt = s.now().Add(ttl)
	}
	s.mu.Lock()
	s.items[key] = entry
	s.sweepLocked()
	s.mu.Unlock()
	return nil
}

// sweepLocked 写入时顺带清理已过期条目，调用方需持有锁
func (s *MemoryStore) sweepLocked() {
	now := s.now()
	if !s.lastSweep.IsZero() && now.Sub(s.lastSweep) < memorySweepInterval {
		return
	}
	s.lastSweep = now
	for key, entry := range s.items {
		if !entry.expiresAt.IsZero() && !now.Before(entry.expiresAt) {
			delete(s.items, key)
		}
	}
}

// Del 删除键
func (s *MemoryStore) Del(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.items, key)
	delete(s.sets, key)
	s.mu.Unlock()
	return nil
}

// SAdd 追加集合成员
func (s *MemoryStore) SAdd(_ context.Context, key string, members ...string) error {
	if len(members) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	set, ok := s.sets[key]
	if !ok {
		set = make(map[string]struct{}, len(members))
		s.sets[key] = set
	}
	for _, member := range members {
		set[member] = struct{}{}
	}
	return nil
}

// SMembers 读取集合成员，顺序不保证
func (s *MemoryStore) SMembers(_ context.Context, key string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	set := s.sets[key]
	members := make([]string, 0, len(set))
	for member := range set {
		members = append(members, member)
	}
	return members, nil
}

// SRem 移除集合成员
func (s *MemoryStore) SRem(_ context.Context, key string, members ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	set, ok := s.sets[key]
	if !ok {
		return nil
	}
	for _, member := range members {
		delete(set, member)
	}
	if len(set) == 0 {
		delete(s.sets, key)
	}
	return nil
}

// Len 当前保存的键值条目数
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}
