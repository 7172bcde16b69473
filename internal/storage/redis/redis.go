package redis

import (
	"context"
	"errors"
	"fmt"

	"glassquote/internal/storage"
	redisclient "glassquote/pkg/redis"
)

// Storage keeps each document as a plain Redis string under prefix+key.
// Keys never expire.
type Storage struct {
	client *redisclient.Client
	prefix string
}

var _ storage.Store = (*Storage)(nil)

func New(client *redisclient.Client, prefix string) *Storage {
	return &Storage{client: client, prefix: prefix}
}

func (s *Storage) Load(ctx context.Context, key storage.Key) ([]byte, error) {
	data, err := s.client.Get(ctx, s.buildKey(key))
	if errors.Is(err, redisclient.Nil) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", key, err)
	}
	return data, nil
}

func (s *Storage) Save(ctx context.Context, key storage.Key, data []byte) error {
	if err := s.client.Set(ctx, s.buildKey(key), data, 0); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

func (s *Storage) Delete(ctx context.Context, key storage.Key) error {
	if err := s.client.Del(ctx, s.buildKey(key)); err != nil {
		return fmt.Errorf("del %s: %w", key, err)
	}
	return nil
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

func (s *Storage) buildKey(key storage.Key) string {
	return s.prefix + string(key)
}
