package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Nil is returned by Get when the key does not exist.
var Nil = redis.Nil

type Client struct {
	client *redis.Client
}

// Options mirrors the subset of connection settings the service exposes.
type Options struct {
	Addr     string
	Password string
	DB       int
}

// New creates a new Redis client
func New(opts Options) *Client {
	return &Client{
		client: redis.NewClient(&redis.Options{
			Addr:         opts.Addr,
			Password:     opts.Password,
			DB:           opts.DB,
			PoolSize:     20,
			MinIdleConns: 2,
		}),
	}
}

// Ping checks connectivity.
func (c *Client) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Get retrieves a key's value
func (c *Client) Get(ctx context.Context, key string) ([]byte, error) {
	return c.client.Get(ctx, key).Bytes()
}

// Set sets a key's value. A zero ttl keeps the key until it is deleted.
func (c *Client) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return c.client.Set(ctx, key, data, ttl).Err()
}

// SetNX sets a key's value only if the key does not exist yet. It reports
// whether the value was written.
func (c *Client) SetNX(ctx context.Context, key string, data []byte, ttl time.Duration) (bool, error) {
	return c.client.SetNX(ctx, key, data, ttl).Result()
}

// Del deletes a key
func (c *Client) Del(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}

// Close closes the Redis connection
func (c *Client) Close() error {
	if c.client == nil {
		return nil
	}
	return c.client.Close()
}
