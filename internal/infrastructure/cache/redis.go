package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"payguard-lab/internal/config"
	"payguard-lab/pkg/logger"
)

// RedisCache wraps the Redis client with typed operations
type RedisCache struct {
	client    *redis.Client
	keyPrefix string
	logger    *logger.Logger
}

// Cache key namespaces
const (
	KeyAssessmentPrefix = "cache:assessment:"
	KeyRateLimitPrefix  = "rate_limit:"
)

// NewRedis creates a new Redis client
func NewRedis(ctx context.Context, cfg config.RedisConfig, log *logger.Logger) (*RedisCache, error) {
	log = log.WithComponent("redis")
	log.Info().Str("host", cfg.Host).Int("port", cfg.Port).Msg("connecting to Redis")

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}

	log.Info().Msg("connected to Redis successfully")

	return &RedisCache{
		client:    client,
		keyPrefix: cfg.KeyPrefix,
		logger:    log,
	}, nil
}

// Client returns the underlying Redis client
func (c *RedisCache) Client() *redis.Client {
	return c.client
}

// Close closes the Redis connection
func (c *RedisCache) Close() error {
	c.logger.Info().Msg("closing Redis connection")
	return c.client.Close()
}

// key prepends the namespace prefix to a key
func (c *RedisCache) key(k string) string {
	return c.keyPrefix + k
}

// Get retrieves a value from cache
func (c *RedisCache) Get(ctx context.Context, key string) (string, error) {
	return c.client.Get(ctx, c.key(key)).Result()
}

// GetJSON retrieves and unmarshals a JSON value from cache
func (c *RedisCache) GetJSON(ctx context.Context, key string, dest any) error {
	data, err := c.Get(ctx, key)
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(data), dest)
}

// Set stores a value in cache with optional TTL
func (c *RedisCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	return c.client.Set(ctx, c.key(key), value, ttl).Err()
}

// SetJSON marshals and stores a value in cache
func (c *RedisCache) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}
	return c.Set(ctx, key, string(data), ttl)
}

// Delete removes keys from cache
func (c *RedisCache) Delete(ctx context.Context, keys ...string) error {
	prefixedKeys := make([]string, len(keys))
	for i, k := range keys {
		prefixedKeys[i] = c.key(k)
	}
	return c.client.Del(ctx, prefixedKeys...).Err()
}

// CacheAssessment caches an assessment result under the report's input hash
func (c *RedisCache) CacheAssessment(ctx context.Context, hash string, result any, ttl time.Duration) error {
	return c.SetJSON(ctx, KeyAssessmentPrefix+hash, result, ttl)
}

// GetCachedAssessment retrieves a cached assessment result
func (c *RedisCache) GetCachedAssessment(ctx context.Context, hash string, dest any) error {
	return c.GetJSON(ctx, KeyAssessmentPrefix+hash, dest)
}

// CheckRateLimit checks and increments a fixed-window rate limit counter.
// Returns (allowed, remaining, resetTime, error).
func (c *RedisCache) CheckRateLimit(ctx context.Context, key string, limit int64, window time.Duration) (bool, int64, time.Time, error) {
	now := time.Now()
	windowKey := fmt.Sprintf("%s%s:%d", KeyRateLimitPrefix, key, now.Unix()/int64(window.Seconds()))

	pipe := c.client.Pipeline()
	incr := pipe.Incr(ctx, c.key(windowKey))
	pipe.Expire(ctx, c.key(windowKey), window)
	_, err := pipe.Exec(ctx)
	if err != nil {
		return false, 0, time.Time{}, err
	}

	count := incr.Val()
	remaining := limit - count
	if remaining < 0 {
		remaining = 0
	}

	return count <= limit, remaining, now.Add(window), nil
}
