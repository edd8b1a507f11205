// Package history persists the capped, most-recent-first list of lookups of
// one session.
package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MrSnakeDoc/ytdown/internal/domain"
	"github.com/MrSnakeDoc/ytdown/internal/logger"
	"github.com/MrSnakeDoc/ytdown/internal/store"
)

// Store reads and writes the history of one session under store.KeyHistory.
// It is not safe for concurrent writers; callers serialize mutations.
type Store struct {
	kv        store.KV
	sessionID string
	log       logger.Logger
}

func NewStore(kv store.KV, sessionID string, log logger.Logger) *Store {
	return &Store{
		kv:        kv,
		sessionID: sessionID,
		log:       log,
	}
}

// Load returns the persisted history. A missing, unreadable or malformed value
// yields an empty list; the problem is logged, never returned.
func (s *Store) Load(ctx context.Context) []domain.HistoryEntry {
	raw, err := s.kv.Get(ctx, s.sessionID, store.KeyHistory)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			s.log.Warn("failed to read history",
				logger.String("session", s.sessionID),
				logger.Error(err))
		}
		return []domain.HistoryEntry{}
	}

	var entries []domain.HistoryEntry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		s.log.Warn("discarding malformed history",
			logger.String("session", s.sessionID),
			logger.Error(err))
		return []domain.HistoryEntry{}
	}
	return domain.NormalizeHistory(entries)
}

// UpsertFront moves entry to the front (dropping any older copy), applies the
// cap and persists the list. The new list is returned even when persisting fails.
func (s *Store) UpsertFront(ctx context.Context, entry domain.HistoryEntry) ([]domain.HistoryEntry, error) {
	updated := domain.UpsertFront(s.Load(ctx), entry)

	data, err := json.Marshal(updated)
	if err != nil {
		return updated, fmt.Errorf("failed to marshal history: %w", err)
	}
	if err := s.kv.Set(ctx, s.sessionID, store.KeyHistory, string(data)); err != nil {
		return updated, fmt.Errorf("failed to save history: %w", err)
	}
	return updated, nil
}

// Clear empties the history and removes the persisted key.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.kv.Delete(ctx, s.sessionID, store.KeyHistory); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}
