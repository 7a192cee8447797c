package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	DefaultTTL       = 24 * time.Hour
	DefaultNamespace = "marketlens"
)

// RedisStore keeps entries in Redis under "<namespace>:result:<key>" with a
// TTL. A nil client turns every call into a miss or a no-op, so the memo
// falls through to recomputation.
type RedisStore struct {
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

// NewRedisStore wraps rdb. A non-positive ttl means DefaultTTL and an empty
// namespace means DefaultNamespace.
func NewRedisStore(rdb *redis.Client, ttl time.Duration, namespace string) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return &RedisStore{rdb: rdb, ttl: ttl, namespace: namespace}
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if s.rdb == nil {
		return nil, false, nil
	}
	b, err := s.rdb.Get(ctx, s.redisKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, len(b) > 0, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte) error {
	if s.rdb == nil {
		return nil
	}
	return s.rdb.Set(ctx, s.redisKey(key), value, s.ttl).Err()
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if s.rdb == nil {
		return nil
	}
	return s.rdb.Del(ctx, s.redisKey(key)).Err()
}

func (s *RedisStore) redisKey(key string) string {
	return s.namespace + ":result:" + key
}
