// Package rediskv implements the ephemeral correlation store on Redis.
// Expiry is delegated entirely to Redis TTLs; nothing is ever scanned or
// enumerated, so the keyspace stays bounded by construction.
package rediskv

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/eytanenglard/HebrewClubBackend/internal/auth/store"

	"github.com/redis/go-redis/v9"
)

type Store struct {
	client *redis.Client
	prefix string
}

// NewStore wraps an existing Redis client. All keys are namespaced under
// prefix to keep the correlation bindings apart from anything else sharing
// the instance.
func NewStore(client *redis.Client, prefix string) *Store {
	if prefix == "" {
		prefix = "auth"
	}
	return &Store{client: client, prefix: prefix}
}

// Open dials a Redis instance and returns a ready store.
func Open(addr string, db int, prefix string) *Store {
	client := redis.NewClient(&redis.Options{Addr: addr, DB: db})
	return NewStore(client, prefix)
}

func (s *Store) key(k string) string {
	return s.prefix + ":" + k
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	val, err := s.client.Get(ctx, s.key(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", store.ErrNotFound
		}
		return "", fmt.Errorf("rediskv: get %q: %w", key, err)
	}
	return val, nil
}

func (s *Store) SetWithTTL(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.key(key), value, ttl).Err(); err != nil {
		return fmt.Errorf("rediskv: set %q: %w", key, err)
	}
	return nil
}

func (s *Store) Exists(ctx context.Context, key string) (bool, error) {
	n, err := s.client.Exists(ctx, s.key(key)).Result()
	if err != nil {
		return false, fmt.Errorf("rediskv: exists %q: %w", key, err)
	}
	return n > 0, nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("rediskv: delete %q: %w", key, err)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *Store) Close() error {
	return s.client.Close()
}
