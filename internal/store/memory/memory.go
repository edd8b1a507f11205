package memory

import (
	"context"
	"sync"
	"time"

	"github.com/MrSnakeDoc/ytdown/internal/store"
)

type entry struct {
	value string
	exp   time.Time
}

// Store provides in-memory session storage.
// It is used when no Redis address is configured; data does not survive a restart.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]map[string]entry // session ID -> key -> value
	ttl      time.Duration
	now      func() time.Time
}

// NewStore creates a memory store. ttl <= 0 disables expiry.
func NewStore(ttl time.Duration) *Store {
	return &Store{
		sessions: make(map[string]map[string]entry),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Get retrieves a value, store.ErrNotFound when absent or expired.
func (s *Store) Get(_ context.Context, sessionID, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.sessions[sessionID][key]
	if !ok || s.expired(item, s.now()) {
		return "", store.ErrNotFound
	}
	return item.value, nil
}

// Set stores a value and refreshes its expiry.
func (s *Store) Set(_ context.Context, sessionID, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	keys, ok := s.sessions[sessionID]
	if !ok {
		keys = make(map[string]entry)
		s.sessions[sessionID] = keys
	}
	var exp time.Time
	if s.ttl > 0 {
		exp = s.now().Add(s.ttl)
	}
	keys[key] = entry{value: value, exp: exp}
	return nil
}

// Delete removes a key. Deleting a missing key is not an error.
func (s *Store) Delete(_ context.Context, sessionID, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	keys, ok := s.sessions[sessionID]
	if !ok {
		return nil
	}
	delete(keys, key)
	if len(keys) == 0 {
		delete(s.sessions, sessionID)
	}
	return nil
}

func (s *Store) Ping(context.Context) error { return nil }

func (s *Store) Kind() string { return "memory" }

// Sweep removes expired keys and empty sessions, returning the number of keys removed.
func (s *Store) Sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for sid, keys := range s.sessions {
		for k, item := range keys {
			if s.expired(item, now) {
				delete(keys, k)
				removed++
			}
		}
		if len(keys) == 0 {
			delete(s.sessions, sid)
		}
	}
	return removed
}

// Sessions returns the number of sessions holding at least one key.
func (s *Store) Sessions() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.sessions)
}

func (s *Store) expired(item entry, now time.Time) bool {
	return !item.exp.IsZero() && now.After(item.exp)
}
