package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// ResponseCache is a read-through TTL cache for list/get responses, keyed by
// route plus query string. Entries age out, nothing invalidates them early.
type ResponseCache struct {
	client *redis.Client
	TTL    time.Duration
}

func New(addr string, ttl time.Duration) (*ResponseCache, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &ResponseCache{client: client, TTL: ttl}, nil
}

func (c *ResponseCache) Get(ctx context.Context, key string) (string, bool) {
	val, err := c.client.Get(ctx, key).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

func (c *ResponseCache) Set(ctx context.Context, key, value string) error {
	return c.client.Set(ctx, key, value, c.TTL).Err()
}

func (c *ResponseCache) Close() error {
	return c.client.Close()
}
