package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MrSnakeDoc/ytdown/internal/store"
	"github.com/redis/go-redis/v9"
)

// DefaultSessionTTL is used when the store is built with a non-positive TTL (30 days)
const DefaultSessionTTL = 30 * 24 * time.Hour

// Store persists session keys in Redis. It implements store.KV.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStore creates a new Redis store. Every write refreshes the key TTL.
func NewStore(client *redis.Client, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &Store{
		client: client,
		ttl:    ttl,
	}
}

// Get retrieves a session value, store.ErrNotFound on a miss
func (s *Store) Get(ctx context.Context, sessionID, key string) (string, error) {
	val, err := s.client.Get(ctx, SessionKey(sessionID, key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", store.ErrNotFound
		}
		return "", fmt.Errorf("failed to get %s: %w", key, err)
	}
	return val, nil
}

// Set stores a session value
func (s *Store) Set(ctx context.Context, sessionID, key, value string) error {
	if err := s.client.Set(ctx, SessionKey(sessionID, key), value, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}

// Delete removes a session value
func (s *Store) Delete(ctx context.Context, sessionID, key string) error {
	if err := s.client.Del(ctx, SessionKey(sessionID, key)).Err(); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *Store) Kind() string { return "redis" }

// CountSessions walks the session keyspace and returns the number of distinct sessions
func (s *Store) CountSessions(ctx context.Context) (int, error) {
	seen := make(map[string]struct{})
	iter := s.client.Scan(ctx, 0, SessionPattern(), 0).Iterator()
	for iter.Next(ctx) {
		sid, err := ExtractSessionID(iter.Val())
		if err != nil {
			continue
		}
		seen[sid] = struct{}{}
	}
	if err := iter.Err(); err != nil {
		return 0, fmt.Errorf("failed to scan sessions: %w", err)
	}
	return len(seen), nil
}
