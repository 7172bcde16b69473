package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"glassquote/pkg/redis"
)

// PostgresConfig holds connection and pool settings.
type PostgresConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	ConnectTimeout  time.Duration
}

// PostgresStore keeps one jsonb row per key in the collections table.
//
// Loads are optionally cached in Redis. Writes go through to the cache, while
// a load only fills a key that is absent, so a slow reader never replaces a
// newer payload. Deleted keys are cached as an empty tombstone. Concurrent
// writers to the same key must be serialized by the caller.
type PostgresStore struct {
	db       *sqlx.DB
	cache    *redis.Client
	cacheTTL time.Duration
	logger   *zap.Logger

	mu sync.Mutex
	// stale holds keys whose cached copy could be neither refreshed nor
	// removed. They are read from Postgres until the entry is cleared.
	stale map[Key]struct{}
}

var _ Store = (*PostgresStore)(nil)

// NewPostgresStore connects with exponential backoff until ctx is done or
// cfg.ConnectTimeout elapses.
func NewPostgresStore(ctx context.Context, cfg PostgresConfig, logger *zap.Logger) (*PostgresStore, error) {
	const operation = "storage.NewPostgresStore"

	connStr := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host,
		cfg.Port,
		cfg.User,
		cfg.Password,
		cfg.Name,
	)

	var db *sqlx.DB

	retryPolicy := backoff.NewExponentialBackOff()
	retryPolicy.MaxElapsedTime = cfg.ConnectTimeout
	retryPolicy.MaxInterval = 15 * time.Second

	logger.Info("Connecting to PostgreSQL...")

	err := backoff.RetryNotify(
		func() error {
			conn, err := sqlx.ConnectContext(ctx, "postgres", connStr)
			if err != nil {
				return fmt.Errorf("connect: %w", err)
			}
			if err := conn.PingContext(ctx); err != nil {
				conn.Close()
				return fmt.Errorf("ping: %w", err)
			}
			db = conn
			return nil
		},
		backoff.WithContext(retryPolicy, ctx),
		func(err error, duration time.Duration) {
			logger.Warn("PostgreSQL connection failed, retrying...",
				zap.Error(err),
				zap.Duration("next_attempt_in", duration))
		},
	)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to connect after retries: %w", operation, err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	logger.Info("Successfully connected to PostgreSQL")
	return NewPostgresStoreFromDB(db, logger), nil
}

// NewPostgresStoreFromDB wraps an existing connection.
func NewPostgresStoreFromDB(db *sqlx.DB, logger *zap.Logger) *PostgresStore {
	return &PostgresStore{db: db, logger: logger, stale: make(map[Key]struct{})}
}

// WithCache enables a Redis read-through cache for loaded documents.
func (s *PostgresStore) WithCache(cache *redis.Client, ttl time.Duration) *PostgresStore {
	s.cache = cache
	s.cacheTTL = ttl
	return s
}

// DB exposes the underlying handle for migrations.
func (s *PostgresStore) DB() *sql.DB {
	return s.db.DB
}

func (s *PostgresStore) Load(ctx context.Context, key Key) ([]byte, error) {
	useCache := s.cacheUsable(ctx, key)
	if useCache {
		cached, err := s.cache.Get(ctx, cacheKey(key))
		switch {
		case err == nil && len(cached) == 0:
			return nil, ErrNotFound
		case err == nil:
			return cached, nil
		case !errors.Is(err, redis.Nil):
			s.logger.Warn("Cache read failed", zap.String("key", string(key)), zap.Error(err))
		}
	}

	const query = `SELECT payload FROM collections WHERE key = $1`

	var payload []byte
	err := s.db.GetContext(ctx, &payload, query, string(key))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", key, err)
	}

	if useCache && !s.isStale(key) {
		if _, err := s.cache.SetNX(ctx, cacheKey(key), payload, s.cacheTTL); err != nil {
			s.logger.Warn("Cache write failed", zap.String("key", string(key)), zap.Error(err))
		}
	}
	return payload, nil
}

func (s *PostgresStore) Save(ctx context.Context, key Key, data []byte) error {
	const query = `
        INSERT INTO collections (key, payload, updated_at)
        VALUES ($1, $2, NOW())
        ON CONFLICT (key) DO UPDATE
        SET payload = EXCLUDED.payload, updated_at = EXCLUDED.updated_at
    `

	if _, err := s.db.ExecContext(ctx, query, string(key), data); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	s.refresh(ctx, key, data)
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, key Key) error {
	const query = `DELETE FROM collections WHERE key = $1`

	if _, err := s.db.ExecContext(ctx, query, string(key)); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	s.refresh(ctx, key, []byte{})
	return nil
}

func (s *PostgresStore) Close() error {
	if s.cache != nil {
		if err := s.cache.Close(); err != nil {
			s.logger.Warn("Failed to close cache", zap.Error(err))
		}
	}
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// refresh overwrites the cached copy after a committed write. When Redis
// rejects both the write and the delete, the key is marked stale.
func (s *PostgresStore) refresh(ctx context.Context, key Key, data []byte) {
	if s.cache == nil {
		return
	}

	err := s.cache.Set(ctx, cacheKey(key), data, s.cacheTTL)
	if err == nil {
		s.markStale(key, false)
		return
	}
	s.logger.Warn("Cache write failed", zap.String("key", string(key)), zap.Error(err))

	if err := s.cache.Del(ctx, cacheKey(key)); err != nil {
		s.logger.Error("Cache entry left stale, bypassing cache for key",
			zap.String("key", string(key)),
			zap.Error(err))
		s.markStale(key, true)
		return
	}
	s.markStale(key, false)
}

// cacheUsable reports whether key may be served from Redis. A stale key is
// retried for removal first.
func (s *PostgresStore) cacheUsable(ctx context.Context, key Key) bool {
	if s.cache == nil {
		return false
	}
	if !s.isStale(key) {
		return true
	}
	if err := s.cache.Del(ctx, cacheKey(key)); err != nil {
		return false
	}
	s.markStale(key, false)
	return true
}

func (s *PostgresStore) isStale(key Key) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.stale[key]
	return ok
}

func (s *PostgresStore) markStale(key Key, stale bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if stale {
		s.stale[key] = struct{}{}
	} else {
		delete(s.stale, key)
	}
}

func cacheKey(key Key) string {
	return "glassquote:cache:" + string(key)
}
