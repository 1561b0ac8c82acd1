package docstore

import (
	"context"
	"log"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps each document under a plain redis string key.
type RedisStore struct {
	rdb *redis.Client
}

// MustRedis connects to redis or exits.
func MustRedis(url string) *RedisStore {
	opt, err := redis.ParseURL(url)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	return &RedisStore{rdb: redis.NewClient(opt)}
}

// NewRedis wraps an existing client.
func NewRedis(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := s.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (s *RedisStore) Put(ctx context.Context, key string, value []byte) error {
	return s.rdb.Set(ctx, key, value, 0).Err()
}

func (s *RedisStore) Close() error { return s.rdb.Close() }
