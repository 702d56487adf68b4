// internal/infrastructure/storage/redis/store.go
package redis

import (
	"context"
	"errors"
	"time"

	"github.com/mindstore/order-service/internal/infrastructure/storage"
	"github.com/redis/go-redis/v9"
)

// Store implements storage.Store on top of Redis. Snapshots are opaque
// JSON blobs keyed by session, exactly like guest carts.
type Store struct {
	client *redis.Client
}

// NewStore creates a Redis-backed snapshot store
func NewStore(client *redis.Client) *Store {
	return &Store{client: client}
}

// Get retrieves a value by key
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return value, nil
}

// Set stores a value with an optional TTL
func (s *Store) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return s.client.Set(ctx, key, value, ttl).Err()
}

// Delete removes a key
func (s *Store) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, key).Err()
}

// Health checks the underlying connection
func (s *Store) Health(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
