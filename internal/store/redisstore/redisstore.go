// Package redisstore keeps progress snapshots in Redis.
package redisstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/abhisek/sbfquiz/internal/store"
)

// KeyPrefix namespaces every key written by the store.
const KeyPrefix = "sbfquiz:"

// Options configures the Redis connection.
type Options struct {
	Addr     string
	Password string
	DB       int
}

// Store is a store.ProgressRepo backed by Redis.
type Store struct {
	client *redis.Client
}

var _ store.ProgressRepo = (*Store)(nil)

// Open connects to Redis and verifies the connection.
func Open(ctx context.Context, opts Options) (*Store, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("connect redis %s: %w", opts.Addr, err)
	}
	return &Store{client: rdb}, nil
}

// New wraps an existing client.
func New(client *redis.Client) *Store {
	return &Store{client: client}
}

func key(scope store.Scope) string {
	return KeyPrefix + scope.Key()
}

// Get returns the snapshot for scope, or nil if none exists.
func (s *Store) Get(ctx context.Context, scope store.Scope) ([]byte, error) {
	b, err := s.client.Get(ctx, key(scope)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get progress %s: %w", scope, err)
	}
	return b, nil
}

// Put replaces the snapshot for scope.
func (s *Store) Put(ctx context.Context, scope store.Scope, data []byte) error {
	if err := s.client.Set(ctx, key(scope), data, 0).Err(); err != nil {
		return fmt.Errorf("put progress %s: %w", scope, err)
	}
	return nil
}

// Delete removes the snapshot for scope.
func (s *Store) Delete(ctx context.Context, scope store.Scope) error {
	if err := s.client.Del(ctx, key(scope)).Err(); err != nil {
		return fmt.Errorf("delete progress %s: %w", scope, err)
	}
	return nil
}

// HealthCheck pings the server.
func (s *Store) HealthCheck(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis health check failed: %w", err)
	}
	return nil
}

// Close closes the connection.
func (s *Store) Close() error {
	return s.client.Close()
}
