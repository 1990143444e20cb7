package helpers

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient initializes a redis client
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

// RedisHashCache exposes redis hashes as a plain field cache. The daily-pick
// protocol manages staleness itself via date stamps, so no TTL is set here.
type RedisHashCache struct {
	RDB *redis.Client
}

func NewRedisHashCache(rdb *redis.Client) *RedisHashCache {
	return &RedisHashCache{RDB: rdb}
}

// GetFields returns all fields stored under key. A missing key yields an
// empty map, not an error.
func (c *RedisHashCache) GetFields(ctx context.Context, key string) (map[string]string, error) {
	return c.RDB.HGetAll(ctx, key).Result()
}

// SetFields overwrites the given fields under key, last writer wins.
func (c *RedisHashCache) SetFields(ctx context.Context, key string, fields map[string]string) error {
	return c.RDB.HSet(ctx, key, fields).Err()
}
