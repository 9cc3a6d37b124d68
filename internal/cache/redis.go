package cache

import (
	"time"

	"github.com/VitaminP8/bloggery/internal/logger"
	"github.com/go-redis/redis"
)

// RedisCache shares cached pages between processes. All operations are
// best-effort: a redis hiccup degrades to a store read, never to an error
// the user sees.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(addr string, ttl time.Duration) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping().Err(); err != nil {
		return nil, err
	}
	return &RedisCache{client: client, ttl: ttl}, nil
}

func (c *RedisCache) Get(key string) ([]byte, bool) {
	value, err := c.client.Get(key).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.Warn.Printf("redis get %s: %v", key, err)
		}
		return nil, false
	}
	return value, true
}

func (c *RedisCache) Set(key string, value []byte) {
	if err := c.client.Set(key, value, c.ttl).Err(); err != nil {
		logger.Warn.Printf("redis set %s: %v", key, err)
	}
}

func (c *RedisCache) DeletePrefix(prefix string) {
	keys, err := c.client.Keys(prefix + "*").Result()
	if err != nil {
		logger.Warn.Printf("redis keys %s*: %v", prefix, err)
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := c.client.Del(keys...).Err(); err != nil {
		logger.Warn.Printf("redis del: %v", err)
	}
}
