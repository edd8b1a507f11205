// Package store defines the per-session key-value contract that replaces the
// browser's local storage: every client session owns a namespace, keys inside
// it keep their well-known names.
package store

import (
	"context"
	"errors"
)

const (
	// KeyHistory holds the JSON array of history entries.
	KeyHistory = "soraa_history"
	// KeyLang holds the active language code.
	KeyLang = "soraa_lang"
)

// ErrNotFound is returned by Get when the key is absent or expired.
var ErrNotFound = errors.New("store: key not found")

// KV is a session-scoped key-value store.
type KV interface {
	Get(ctx context.Context, sessionID, key string) (string, error)
	Set(ctx context.Context, sessionID, key, value string) error
	Delete(ctx context.Context, sessionID, key string) error

	// Ping reports whether the backend is reachable.
	Ping(ctx context.Context) error
	// Kind names the backend for status endpoints ("redis", "memory").
	Kind() string
}
