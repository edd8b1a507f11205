package i18n

import (
	"context"
	"errors"

	"github.com/MrSnakeDoc/ytdown/internal/logger"
	"github.com/MrSnakeDoc/ytdown/internal/store"
)

// Preferences persists the active language of each session under store.KeyLang.
type Preferences struct {
	kv       store.KV
	fallback Lang
	log      logger.Logger
}

func NewPreferences(kv store.KV, fallback Lang, log logger.Logger) *Preferences {
	return &Preferences{kv: kv, fallback: fallback, log: log}
}

// Get returns the stored language, or the fallback when it is absent,
// invalid or unreadable.
func (p *Preferences) Get(ctx context.Context, sessionID string) Lang {
	raw, err := p.kv.Get(ctx, sessionID, store.KeyLang)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			p.log.Warn("failed to read language preference",
				logger.String("session", sessionID),
				logger.Error(err))
		}
		return p.fallback
	}
	lang, ok := ParseLang(raw)
	if !ok {
		return p.fallback
	}
	return lang
}

// Set stores lang for the session.
func (p *Preferences) Set(ctx context.Context, sessionID string, lang Lang) error {
	return p.kv.Set(ctx, sessionID, store.KeyLang, string(lang))
}
