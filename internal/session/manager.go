package session

import (
	"sync"
	"time"

	"github.com/MrSnakeDoc/ytdown/internal/assistant"
	"github.com/MrSnakeDoc/ytdown/internal/history"
	"github.com/MrSnakeDoc/ytdown/internal/i18n"
	"github.com/MrSnakeDoc/ytdown/internal/logger"
	"github.com/MrSnakeDoc/ytdown/internal/lookup"
	"github.com/MrSnakeDoc/ytdown/internal/store"
)

// Manager keeps live sessions in memory. Persisted state (history, language)
// lives in the KV store and outlives a sweep.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session // ID -> Session

	kv        store.KV
	fetcher   lookup.Fetcher
	completer assistant.Completer
	locales   *i18n.Bundle
	logger    logger.Logger
	now       func() time.Time
}

func NewManager(
	kv store.KV,
	fetcher lookup.Fetcher,
	completer assistant.Completer,
	locales *i18n.Bundle,
	log logger.Logger,
) *Manager {
	return &Manager{
		sessions:  make(map[string]*Session),
		kv:        kv,
		fetcher:   fetcher,
		completer: completer,
		locales:   locales,
		logger:    log,
		now:       time.Now,
	}
}

// Acquire returns the live session for id, creating it on first use.
func (m *Manager) Acquire(id string) *Session {
	now := m.now()

	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if ok {
		s.touch(now)
		return s
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// Another request may have created it meanwhile.
	if s, ok := m.sessions[id]; ok {
		s.touch(now)
		return s
	}

	log := m.logger.With(logger.String("session", id))
	hist := history.NewStore(m.kv, id, log)
	s = &Session{
		ID:      id,
		History: hist,
		Search:  lookup.New(m.fetcher, hist, log),
		Chat:    assistant.NewWidget(m.completer, m.locales, log),
	}
	s.touch(now)
	m.sessions[id] = s
	return s
}

// Sweep drops sessions idle for longer than idle and returns how many went.
func (m *Manager) Sweep(now time.Time, idle time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for id, s := range m.sessions {
		if now.Sub(s.LastSeen()) > idle {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed
}

// Count returns the number of live sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.sessions)
}
