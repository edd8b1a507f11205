package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/MrSnakeDoc/ytdown/internal/logger"
	"github.com/MrSnakeDoc/ytdown/internal/session"
)

const (
	// DefaultIdleThreshold is how long an untouched session stays in memory
	DefaultIdleThreshold = 2 * time.Hour
)

// KeySweeper drops expired keys from a store that has no native expiry.
type KeySweeper interface {
	Sweep(now time.Time) int
}

// SessionCounter reports how many sessions have persisted state.
type SessionCounter interface {
	CountSessions(ctx context.Context) (int, error)
}

// SessionCollector periodically evicts idle in-memory sessions and expired
// keys of the memory store.
type SessionCollector struct {
	sessions *session.Manager
	keys     KeySweeper     // nil with Redis, which expires keys itself
	counter  SessionCounter // optional, for logging only
	logger   logger.Logger
	interval time.Duration
	idle     time.Duration
	now      func() time.Time
	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewSessionCollector creates a new session collector
func NewSessionCollector(
	sessions *session.Manager,
	keys KeySweeper,
	counter SessionCounter,
	log logger.Logger,
	interval time.Duration,
	idle time.Duration,
) *SessionCollector {
	if idle == 0 {
		idle = DefaultIdleThreshold
	}

	return &SessionCollector{
		sessions: sessions,
		keys:     keys,
		counter:  counter,
		logger:   log,
		interval: interval,
		idle:     idle,
		now:      time.Now,
		stopCh:   make(chan struct{}),
	}
}

// Start runs one collection, then collects every interval until Stop or ctx ends
func (sc *SessionCollector) Start(ctx context.Context) error {
	if err := sc.Collect(ctx); err != nil {
		sc.logger.Warn("initial session collection failed",
			logger.Error(err))
	}

	ticker := time.NewTicker(sc.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := sc.Collect(ctx); err != nil {
					sc.logger.Error("session collection failed",
						logger.Error(err))
				}
			case <-sc.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the collector. Safe to call more than once.
func (sc *SessionCollector) Stop() {
	sc.stopOnce.Do(func() { close(sc.stopCh) })
}

// Collect evicts idle sessions and expired keys
func (sc *SessionCollector) Collect(ctx context.Context) error {
	now := sc.now()

	evicted := sc.sessions.Sweep(now, sc.idle)

	expired := 0
	if sc.keys != nil {
		expired = sc.keys.Sweep(now)
	}

	fields := []logger.Field{
		logger.Int("sessions_evicted", evicted),
		logger.Int("keys_expired", expired),
		logger.Int("sessions_live", sc.sessions.Count()),
	}
	if sc.counter != nil {
		persisted, err := sc.counter.CountSessions(ctx)
		if err != nil {
			return err
		}
		fields = append(fields, logger.Int("sessions_persisted", persisted))
	}

	if evicted > 0 || expired > 0 {
		sc.logger.Info("session collection completed", fields...)
	} else {
		sc.logger.Debug("no sessions to collect", fields...)
	}

	return nil
}
