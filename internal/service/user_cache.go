package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"societyhub/internal/model"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// UserCache holds authenticated users between requests. Implementations
// must be safe for concurrent use.
type UserCache interface {
	Get(ctx context.Context, id uint) (*model.User, bool)
	Set(ctx context.Context, user *model.User)
	Delete(ctx context.Context, id uint)
}

type userCacheEntry struct {
	user      model.User
	expiresAt time.Time
}

// MemoryUserCache is an in-process cache used when Redis is not configured
type MemoryUserCache struct {
	mu      sync.RWMutex
	entries map[uint]*userCacheEntry
	ttl     time.Duration
}

func NewMemoryUserCache(ttl time.Duration) *MemoryUserCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &MemoryUserCache{entries: make(map[uint]*userCacheEntry), ttl: ttl}
}

func (c *MemoryUserCache) Get(_ context.Context, id uint) (*model.User, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.entries[id]
	if !ok || !time.Now().Before(entry.expiresAt) {
		return nil, false
	}
	u := entry.user
	return &u, true
}

func (c *MemoryUserCache) Set(_ context.Context, user *model.User) {
	c.mu.Lock()
	c.entries[user.ID] = &userCacheEntry{user: *user, expiresAt: time.Now().Add(c.ttl)}
	c.mu.Unlock()
}

func (c *MemoryUserCache) Delete(_ context.Context, id uint) {
	c.mu.Lock()
	delete(c.entries, id)
	c.mu.Unlock()
}

// RedisClient is the subset of the go-redis client the cache needs
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	SetEx(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// RedisUserCache shares cached users across API replicas
type RedisUserCache struct {
	redis RedisClient
	ttl   time.Duration
}

func NewRedisUserCache(client RedisClient, ttl time.Duration) *RedisUserCache {
	return &RedisUserCache{redis: client, ttl: ttl}
}

func userKey(id uint) string {
	return fmt.Sprintf("user:%d", id)
}

func (c *RedisUserCache) Get(ctx context.Context, id uint) (*model.User, bool) {
	cached, err := c.redis.Get(ctx, userKey(id)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Warn().Err(err).Uint("user_id", id).Msg("User cache read failed")
		}
		return nil, false
	}
	var user model.User
	if err := json.Unmarshal([]byte(cached), &user); err != nil {
		return nil, false
	}
	return &user, true
}

func (c *RedisUserCache) Set(ctx context.Context, user *model.User) {
	data, err := json.Marshal(user)
	if err != nil {
		return
	}
	if err := c.redis.SetEx(ctx, userKey(user.ID), data, c.ttl).Err(); err != nil {
		log.Warn().Err(err).Uint("user_id", user.ID).Msg("User cache write failed")
	}
}

func (c *RedisUserCache) Delete(ctx context.Context, id uint) {
	if err := c.redis.Del(ctx, userKey(id)).Err(); err != nil {
		log.Warn().Err(err).Uint("user_id", id).Msg("User cache invalidation failed")
	}
}
