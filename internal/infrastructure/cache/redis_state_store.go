package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStateStore implements accounting.StateStore using Redis.
// Suitable for deployments with more than one instance, where the
// authorization redirect and the callback may hit different processes.
type RedisStateStore struct {
	client    *redis.Client
	keyPrefix string
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// NewRedisStateStore creates a new Redis-backed state store
func NewRedisStateStore(cfg RedisConfig) (*RedisStateStore, error) {
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

	return &RedisStateStore{
		client:    client,
		keyPrefix: "oauth:state:",
	}, nil
}

// NewRedisStateStoreWithClient creates a store with an existing Redis client.
// Useful for testing or when sharing a client across components.
func NewRedisStateStoreWithClient(client *redis.Client, keyPrefix string) *RedisStateStore {
	if keyPrefix == "" {
		keyPrefix = "oauth:state:"
	}
	return &RedisStateStore{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

// Save stores the state with the given TTL
func (s *RedisStateStore) Save(ctx context.Context, state string, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.keyPrefix+state, "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to save oauth state: %w", err)
	}
	return nil
}

// Consume atomically removes the state and reports whether it existed.
// A second call with the same state always reports false.
func (s *RedisStateStore) Consume(ctx context.Context, state string) (bool, error) {
	deleted, err := s.client.Del(ctx, s.keyPrefix+state).Result()
	if err != nil {
		return false, fmt.Errorf("failed to consume oauth state: %w", err)
	}
	return deleted > 0, nil
}

// Close releases the underlying Redis client
func (s *RedisStateStore) Close() error {
	return s.client.Close()
}
