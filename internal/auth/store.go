package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var errCodeNotFound = errors.New("verification code not found")

// CodeStore keeps at most one pending verification code per customer number.
type CodeStore interface {
	// Put replaces any pending code for number and resets its attempt counter.
	Put(ctx context.Context, number, hash string, ttl time.Duration) error
	// Get returns the pending code hash, or errCodeNotFound.
	Get(ctx context.Context, number string) (string, error)
	// Fail records a wrong guess and returns how many have been made.
	Fail(ctx context.Context, number string) (int64, error)
	Delete(ctx context.Context, number string) error
}

// RedisCodeStore stores each pending code as a hash that expires with the code.
type RedisCodeStore struct {
	rdb    *redis.Client
	prefix string
}

func NewRedisCodeStore(rdb *redis.Client) *RedisCodeStore {
	return &RedisCodeStore{rdb: rdb, prefix: "verify"}
}

func (s *RedisCodeStore) key(number string) string {
	return s.prefix + ":" + number
}

func (s *RedisCodeStore) Put(ctx context.Context, number, hash string, ttl time.Duration) error {
	key := s.key(number)
	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		pipe.HSet(ctx, key, "hash", hash, "failures", 0)
		pipe.PExpire(ctx, key, ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("store verification code failed: %w", err)
	}
	return nil
}

func (s *RedisCodeStore) Get(ctx context.Context, number string) (string, error) {
	hash, err := s.rdb.HGet(ctx, s.key(number), "hash").Result()
	if errors.Is(err, redis.Nil) {
		return "", errCodeNotFound
	}
	if err != nil {
		return "", fmt.Errorf("load verification code failed: %w", err)
	}
	return hash, nil
}

func (s *RedisCodeStore) Fail(ctx context.Context, number string) (int64, error) {
	n, err := s.rdb.HIncrBy(ctx, s.key(number), "failures", 1).Result()
	if err != nil {
		return 0, fmt.Errorf("record verification failure failed: %w", err)
	}
	return n, nil
}

func (s *RedisCodeStore) Delete(ctx context.Context, number string) error {
	if err := s.rdb.Del(ctx, s.key(number)).Err(); err != nil {
		return fmt.Errorf("delete verification code failed: %w", err)
	}
	return nil
}
