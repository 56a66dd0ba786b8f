package session

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/oseyili/myspace-dashboard/config"
)

// RedisStorage keeps the credential in Redis so a restarted or replicated
// dashboard instance picks the session back up.
type RedisStorage struct {
	client *redis.Client
}

// NewRedisStorage connects to Redis and verifies the connection.
func NewRedisStorage(ctx context.Context, cfg config.RedisConfig) (*RedisStorage, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisStorage{client: client}, nil
}

func (s *RedisStorage) Get(ctx context.Context, key string) (string, error) {
	value, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

func (s *RedisStorage) Set(ctx context.Context, key, value string) error {
	return s.client.Set(ctx, key, value, 0).Err()
}

func (s *RedisStorage) Remove(ctx context.Context, key string) error {
	return s.client.Del(ctx, key).Err()
}

// Close closes the Redis connection.
func (s *RedisStorage) Close() error {
	return s.client.Close()
}
