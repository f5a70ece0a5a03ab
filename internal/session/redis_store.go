package session

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore persists sessions in Redis so they survive process restarts
// and are shared across instances.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore wraps client. ttl bounds how long an idle session lives.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) key(sessionID, key string) string {
	return "session:" + sessionID + ":" + key
}

func (s *RedisStore) Get(ctx context.Context, sessionID, key string) (string, error) {
	val, err := s.client.Get(ctx, s.key(sessionID, key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

func (s *RedisStore) Set(ctx context.Context, sessionID, key, value string) error {
	return s.client.Set(ctx, s.key(sessionID, key), value, s.ttl).Err()
}

func (s *RedisStore) Delete(ctx context.Context, sessionID string, keys ...string) error {
	full := make([]string, 0, len(keys))
	for _, key := range keys {
		full = append(full, s.key(sessionID, key))
	}
	if len(full) == 0 {
		return nil
	}
	return s.client.Del(ctx, full...).Err()
}
