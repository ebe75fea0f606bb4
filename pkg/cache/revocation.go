package cache

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// RevocationStore remembers revoked token ids until they would have expired anyway.
type RevocationStore interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// ==================== In-memory ====================

// cacheItem value with absolute expiry in unix seconds
type cacheItem struct {
	expiration int64
}

type memoryStore struct {
	items sync.Map
	now   func() time.Time
}

// NewMemoryStore returns a process-local store. Entries are dropped lazily once expired.
func NewMemoryStore() RevocationStore {
	return &memoryStore{now: time.Now}
}

func (s *memoryStore) Revoke(_ context.Context, jti string, ttl time.Duration) error {
	if jti == "" || ttl <= 0 {
		return nil
	}
	s.items.Store(jti, cacheItem{expiration: s.now().Add(ttl).Unix()})
	return nil
}

func (s *memoryStore) IsRevoked(_ context.Context, jti string) (bool, error) {
	val, ok := s.items.Load(jti)
	if !ok {
		return false, nil
	}

	item := val.(cacheItem)
	if s.now().Unix() > item.expiration {
		s.items.Delete(jti) // lazy eviction
		return false, nil
	}
	return true, nil
}

// ==================== Redis ====================

const redisKeyPrefix = "revoked_token:"

type redisStore struct {
	client *redis.Client
}

// NewRedisStore wraps an existing client.
func NewRedisStore(client *redis.Client) RevocationStore {
	return &redisStore{client: client}
}

func (s *redisStore) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if jti == "" || ttl <= 0 {
		return nil
	}
	return s.client.Set(ctx, redisKeyPrefix+jti, "1", ttl).Err()
}

func (s *redisStore) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := s.client.Exists(ctx, redisKeyPrefix+jti).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ==================== Factory ====================

// RedisConfig connection settings; an empty Addr selects the in-memory store.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// NewRevocationStore connects to Redis when configured and pings it once.
func NewRevocationStore(ctx context.Context, cfg RedisConfig) (RevocationStore, error) {
	if cfg.Addr == "" {
		return NewMemoryStore(), nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return NewRedisStore(client), nil
}
