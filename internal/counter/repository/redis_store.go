package repository

import (
	"context"
	"errors"

	redis "github.com/redis/go-redis/v9"
	counterdomain "github.com/smallbiznis/rankinvoice/internal/counter/domain"
)

type redisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore stores slots as plain string keys under prefix.
func NewRedisStore(client *redis.Client, prefix string) counterdomain.Store {
	return &redisStore{client: client, prefix: prefix}
}

func (s *redisStore) Get(ctx context.Context, key string) (string, bool, error) {
	if s == nil || s.client == nil {
		return "", false, counterdomain.ErrStoreNotConfigured
	}
	if key == "" {
		return "", false, counterdomain.ErrInvalidKey
	}

	value, err := s.client.Get(ctx, s.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (s *redisStore) Set(ctx context.Context, key, value string) error {
	if s == nil || s.client == nil {
		return counterdomain.ErrStoreNotConfigured
	}
	if key == "" {
		return counterdomain.ErrInvalidKey
	}
	return s.client.Set(ctx, s.prefix+key, value, 0).Err()
}
