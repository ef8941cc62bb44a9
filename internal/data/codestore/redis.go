package codestore

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/N0Xl0US/HMP-issue-fix/internal/platform/logger"
)

type redisStore struct {
	rdb    goredis.Cmdable
	prefix string
	log    *logger.Logger
}

func NewRedisStore(rdb goredis.Cmdable, log *logger.Logger) Store {
	return &redisStore{rdb: rdb, prefix: "codestore:", log: log.With("store", "RedisCodeStore")}
}

func (s *redisStore) Put(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return fmt.Errorf("codestore: ttl must be positive")
	}
	return s.rdb.Set(ctx, s.prefix+key, value, ttl).Err()
}

func (s *redisStore) Get(ctx context.Context, key string) ([]byte, error) {
	raw, err := s.rdb.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return raw, nil
}

func (s *redisStore) Delete(ctx context.Context, key string) error {
	return s.rdb.Del(ctx, s.prefix+key).Err()
}
