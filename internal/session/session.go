// Package session maps the browser cookie to the live per-user state: search
// orchestrator, chat transcript and history store.
package session

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/MrSnakeDoc/ytdown/internal/assistant"
	"github.com/MrSnakeDoc/ytdown/internal/history"
	"github.com/MrSnakeDoc/ytdown/internal/lookup"
	"github.com/google/uuid"
)

// CookieName is the cookie carrying the session ID.
const CookieName = "soraa_sid"

// Session is the in-memory state of one browser.
type Session struct {
	ID      string
	Search  *lookup.Orchestrator
	Chat    *assistant.Widget
	History *history.Store

	lastSeen atomic.Int64 // unix nanoseconds
}

func (s *Session) touch(now time.Time) {
	s.lastSeen.Store(now.UnixNano())
}

// LastSeen returns the time of the last Acquire.
func (s *Session) LastSeen() time.Time {
	return time.Unix(0, s.lastSeen.Load())
}

// NewID returns a fresh random session ID.
func NewID() string {
	return uuid.NewString()
}

// ValidID reports whether id looks like an ID issued by NewID.
func ValidID(id string) bool {
	if len(id) != 36 {
		return false
	}
	_, err := uuid.Parse(id)
	return err == nil
}

type ctxKey struct{}

// WithSession stores s in ctx.
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext returns the session stored by WithSession.
func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(ctxKey{}).(*Session)
	return s, ok && s != nil
}
