// Package lookup drives a search from the submitted link to a rendered result
// and keeps the session history in step with successful lookups.
package lookup

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/MrSnakeDoc/ytdown/internal/domain"
	"github.com/MrSnakeDoc/ytdown/internal/logger"
	"github.com/MrSnakeDoc/ytdown/internal/sources/extractor"
)

// FallbackMessageKey is shown when a failure carries no message key of its own.
const FallbackMessageKey = "errorCORS"

// ErrStale is returned by Search when a newer search started before this one
// completed. The stale outcome is dropped.
var ErrStale = errors.New("lookup: superseded by a newer search")

// Fetcher performs the remote lookup.
type Fetcher interface {
	Fetch(ctx context.Context, videoURL string) (*extractor.Result, error)
}

// History is the session history the orchestrator writes to.
type History interface {
	Load(ctx context.Context) []domain.HistoryEntry
	UpsertFront(ctx context.Context, entry domain.HistoryEntry) ([]domain.HistoryEntry, error)
	Clear(ctx context.Context) error
}

// Translator resolves message keys in the active language.
type Translator interface {
	T(key string) string
}

// Snapshot is a copy of the orchestrator state for rendering.
type Snapshot struct {
	State    State
	Query    string
	Result   *domain.VideoResult
	Variants []domain.MediaVariant // filtered download options, 0 or 1
	Error    string                // localized, empty unless Failed
}

// Orchestrator holds the search state of one session.
type Orchestrator struct {
	fetcher Fetcher
	history History
	log     logger.Logger

	mu     sync.Mutex
	gen    uint64
	state  State
	query  string
	result *domain.VideoResult
	errMsg string
}

func New(fetcher Fetcher, history History, log logger.Logger) *Orchestrator {
	return &Orchestrator{
		fetcher: fetcher,
		history: history,
		log:     log,
		state:   Idle,
	}
}

// Search looks up query. A blank query is a no-op. Failures are turned into a
// localized message on the state and also returned; ErrStale means the
// outcome was discarded.
func (o *Orchestrator) Search(ctx context.Context, query string, tr Translator) error {
	q := strings.TrimSpace(query)
	if q == "" {
		return nil
	}

	o.mu.Lock()
	o.gen++
	gen := o.gen
	o.state = Loading
	o.query = q
	o.result = nil
	o.errMsg = ""
	o.mu.Unlock()

	res, err := o.fetcher.Fetch(ctx, q)

	o.mu.Lock()
	defer o.mu.Unlock()

	if gen != o.gen {
		o.log.Debug("dropping stale lookup", logger.String("query", q))
		return ErrStale
	}

	if err != nil {
		o.state = Failed
		o.errMsg = tr.T(messageKey(err))
		return err
	}

	v := extractor.ToVideoResult(res)
	o.result = &v
	o.state = Success

	// The result stays visible even if the history write fails.
	if _, err := o.history.UpsertFront(ctx, v.Entry()); err != nil {
		o.log.Warn("failed to persist history",
			logger.String("video", v.ID),
			logger.Error(err))
	}
	return nil
}

// SetQuery prefills the input without searching.
func (o *Orchestrator) SetQuery(query string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.query = query
}

// Snapshot returns a copy of the current state.
func (o *Orchestrator) Snapshot() Snapshot {
	o.mu.Lock()
	defer o.mu.Unlock()

	snap := Snapshot{
		State: o.state,
		Query: o.query,
		Error: o.errMsg,
	}
	if o.result != nil {
		r := *o.result
		r.Medias = append([]domain.MediaVariant(nil), o.result.Medias...)
		snap.Result = &r
		snap.Variants = domain.SelectVariants(r.Medias)
	}
	return snap
}

// Selected returns the current result and its download option, if any.
func (o *Orchestrator) Selected() (domain.VideoResult, domain.MediaVariant, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.result == nil {
		return domain.VideoResult{}, domain.MediaVariant{}, false
	}
	variants := domain.SelectVariants(o.result.Medias)
	if len(variants) == 0 {
		return *o.result, domain.MediaVariant{}, false
	}
	return *o.result, variants[0], true
}

// History returns the persisted history.
func (o *Orchestrator) History(ctx context.Context) []domain.HistoryEntry {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.history.Load(ctx)
}

// ClearHistory empties the history. The current result is left alone.
func (o *Orchestrator) ClearHistory(ctx context.Context) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.history.Clear(ctx)
}

func messageKey(err error) string {
	var keyed interface{ MessageKey() string }
	if errors.As(err, &keyed) {
		return keyed.MessageKey()
	}
	return FallbackMessageKey
}
