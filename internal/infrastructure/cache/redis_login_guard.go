package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/storefront/backend/internal/domain/shared"
)

// RedisLoginGuard implements IdempotencyStore using Redis. It backs the
// once-per-login-event merge guard and shares state across instances, so a
// login replayed against another replica is still recognized.
type RedisLoginGuard struct {
	client    *redis.Client
	keyPrefix string
}

// RedisGuardConfig holds Redis connection configuration
type RedisGuardConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// NewRedisLoginGuard creates a new Redis-backed login guard
func NewRedisLoginGuard(cfg RedisGuardConfig) (*RedisLoginGuard, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisLoginGuard{
		client:    client,
		keyPrefix: "merge:guard:",
	}, nil
}

// NewRedisLoginGuardWithClient creates a guard with an existing Redis client
func NewRedisLoginGuardWithClient(client *redis.Client, keyPrefix string) *RedisLoginGuard {
	if keyPrefix == "" {
		keyPrefix = "merge:guard:"
	}
	return &RedisLoginGuard{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

// MarkProcessed marks a key as processed with a TTL.
// Returns true if the key was newly marked, false if it was already
// processed. SETNX makes check and set a single atomic operation.
func (s *RedisLoginGuard) MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	result, err := s.client.SetNX(ctx, s.keyPrefix+key, "1", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to mark key as processed: %w", err)
	}
	return result, nil
}

// IsProcessed checks if a key has already been processed
func (s *RedisLoginGuard) IsProcessed(ctx context.Context, key string) (bool, error) {
	exists, err := s.client.Exists(ctx, s.keyPrefix+key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check if key is processed: %w", err)
	}
	return exists > 0, nil
}

// Close closes the Redis client
func (s *RedisLoginGuard) Close() error {
	return s.client.Close()
}

var _ shared.IdempotencyStore = (*RedisLoginGuard)(nil)
