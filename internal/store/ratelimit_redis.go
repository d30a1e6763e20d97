package store

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/serroba/portfolio-go/internal/ratelimit"
)

// RedisWindowStore is a Redis list implementation of ratelimit.WindowStore.
// Each key holds string-encoded epoch-millisecond timestamps pushed at the
// tail, so list order matches insertion order.
type RedisWindowStore struct {
	client *redis.Client
}

// NewRedisWindowStore creates a Redis-backed window store.
func NewRedisWindowStore(client *redis.Client) *RedisWindowStore {
	return &RedisWindowStore{client: client}
}

func (s *RedisWindowStore) Entries(ctx context.Context, key string) ([]int64, error) {
	values, err := s.client.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]int64, 0, len(values))

	for _, v := range values {
		ts, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, err
		}

		entries = append(entries, ts)
	}

	return entries, nil
}

func (s *RedisWindowStore) Trim(ctx context.Context, key string, start, stop int64) error {
	return s.client.LTrim(ctx, key, start, stop).Err()
}

func (s *RedisWindowStore) Append(ctx context.Context, key string, ts int64) error {
	return s.client.RPush(ctx, key, strconv.FormatInt(ts, 10)).Err()
}

func (s *RedisWindowStore) Expire(ctx context.Context, key string, ttl time.Duration) error {
	return s.client.PExpire(ctx, key, ttl).Err()
}

func (s *RedisWindowStore) Keys(ctx context.Context, pattern string) ([]string, error) {
	return s.client.Keys(ctx, pattern).Result()
}

func (s *RedisWindowStore) Delete(ctx context.Context, keys ...string) error {
	return s.client.Del(ctx, keys...).Err()
}

// Compile-time check.
var _ ratelimit.WindowStore = (*RedisWindowStore)(nil)
