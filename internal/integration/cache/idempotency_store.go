package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/spendings-bot/ledger/internal/application/adapter"
)

const idempotencyKeyPrefix = "ledger:idempotency:"

// redisIdempotencyStore implements adapter.IdempotencyStore on Redis.
type redisIdempotencyStore struct {
	client *redis.Client
}

// NewRedisIdempotencyStore creates a new Redis backed idempotency store.
func NewRedisIdempotencyStore(client *redis.Client) adapter.IdempotencyStore {
	return &redisIdempotencyStore{
		client: client,
	}
}

// Get returns the stored response for key.
func (s *redisIdempotencyStore) Get(ctx context.Context, key string) (*adapter.StoredResponse, error) {
	raw, err := s.client.Get(ctx, idempotencyKeyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read idempotency key: %w", err)
	}

	var response adapter.StoredResponse
	if err := json.Unmarshal(raw, &response); err != nil {
		return nil, fmt.Errorf("failed to decode idempotency record: %w", err)
	}
	return &response, nil
}

// Save stores the response for key unless one is already stored.
func (s *redisIdempotencyStore) Save(ctx context.Context, key string, response adapter.StoredResponse, ttl time.Duration) error {
	raw, err := json.Marshal(response)
	if err != nil {
		return fmt.Errorf("failed to encode idempotency record: %w", err)
	}
	if err := s.client.SetNX(ctx, idempotencyKeyPrefix+key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store idempotency key: %w", err)
	}
	return nil
}

// NewRedisClient parses a redis:// URL and returns a connected client.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	options, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	client := redis.NewClient(options)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return client, nil
}
