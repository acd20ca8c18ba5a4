package metadata

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache stores resolved URIs keyed by token id. Invalidate drops every entry
// at once; reveal configuration changes are rare and global.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string)
	Invalidate(ctx context.Context)
}

// NoopCache derives every URI fresh; used when redis is not configured.
type NoopCache struct{}

func (NoopCache) Get(context.Context, string) (string, bool) { return "", false }
func (NoopCache) Set(context.Context, string, string)        {}
func (NoopCache) Invalidate(context.Context)                 {}

const (
	cacheGenerationKey = "hypehaus:metadata:gen"
	cacheTTL           = time.Hour
)

// RedisCache namespaces entries under a generation counter. Invalidation bumps
// the counter instead of scanning keys; stale entries age out via TTL. Cache
// failures degrade to derivation, never to an error.
type RedisCache struct {
	client *redis.Client
	logger *slog.Logger
}

func NewRedisCache(client *redis.Client, logger *slog.Logger) *RedisCache {
	if logger == nil {
		logger = slog.Default()
	}
	return &RedisCache{client: client, logger: logger}
}

func (c *RedisCache) Get(ctx context.Context, key string) (string, bool) {
	full, err := c.namespaced(ctx, key)
	if err != nil {
		return "", false
	}
	value, err := c.client.Get(ctx, full).Result()
	if err != nil {
		if err != redis.Nil {
			c.logger.WarnContext(ctx, "metadata cache read failed", "key", key, "error", err)
		}
		return "", false
	}
	return value, true
}

func (c *RedisCache) Set(ctx context.Context, key, value string) {
	full, err := c.namespaced(ctx, key)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, full, value, cacheTTL).Err(); err != nil {
		c.logger.WarnContext(ctx, "metadata cache write failed", "key", key, "error", err)
	}
}

func (c *RedisCache) Invalidate(ctx context.Context) {
	if err := c.client.Incr(ctx, cacheGenerationKey).Err(); err != nil {
		c.logger.WarnContext(ctx, "metadata cache invalidation failed", "error", err)
	}
}

func (c *RedisCache) namespaced(ctx context.Context, key string) (string, error) {
	gen, err := c.client.Get(ctx, cacheGenerationKey).Result()
	if err == redis.Nil {
		gen = "0"
	} else if err != nil {
		c.logger.WarnContext(ctx, "metadata cache generation read failed", "error", err)
		return "", err
	}
	return "hypehaus:metadata:" + gen + ":" + key, nil
}
