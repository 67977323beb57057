package storage

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"ticket-marketplace/monitoring"
	"ticket-marketplace/utils"
)

// RedisStore keeps each collection as a JSON string value. Calls go
// through a circuit breaker so a dead Redis fails fast instead of
// stalling every request.
type RedisStore struct {
	client  *redis.Client
	breaker *utils.CircuitBreaker
	prefix  string
}

func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{
		client:  client,
		breaker: utils.NewCircuitBreaker("redis-store"),
		prefix:  prefix,
	}
}

func (s *RedisStore) key(key string) string {
	if s.prefix == "" {
		return key
	}
	return fmt.Sprintf("%s:%s", s.prefix, key)
}

func (s *RedisStore) Load(ctx context.Context, key string) ([]byte, bool, error) {
	result, err := s.breaker.Execute(ctx, func() (any, error) {
		data, err := s.client.Get(ctx, s.key(key)).Bytes()
		if err == redis.Nil {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		return data, nil
	})
	if err != nil {
		monitoring.TrackStoreOperation("load", "error")
		return nil, false, err
	}

	monitoring.TrackStoreOperation("load", "ok")
	if result == nil {
		return nil, false, nil
	}
	return result.([]byte), true, nil
}

func (s *RedisStore) Save(ctx context.Context, key string, data []byte) error {
	_, err := s.breaker.Execute(ctx, func() (any, error) {
		return nil, s.client.Set(ctx, s.key(key), data, 0).Err()
	})
	if err != nil {
		monitoring.TrackStoreOperation("save", "error")
		return err
	}

	monitoring.TrackStoreOperation("save", "ok")
	return nil
}

// Healthy reports whether the breaker currently lets requests through.
func (s *RedisStore) Healthy() bool {
	return s.breaker.State() != utils.StateOpen
}
