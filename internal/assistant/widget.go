// Package assistant implements the chat widget and its completion backend.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/MrSnakeDoc/ytdown/internal/domain"
	"github.com/MrSnakeDoc/ytdown/internal/i18n"
	"github.com/MrSnakeDoc/ytdown/internal/logger"
)

const (
	// ServiceErrorText replaces the reply when the completion fails.
	ServiceErrorText = "Service error."
	// EmptyReplyText replaces an empty completion.
	EmptyReplyText = "..."
)

var (
	// ErrChatFailed wraps every completion failure.
	ErrChatFailed = errors.New("chat failed")
	// ErrBusy is returned when a send is already in flight; the message is ignored.
	ErrBusy = errors.New("chat: a message is already pending")
	// ErrDiscarded is returned when the transcript was reseeded while waiting.
	ErrDiscarded = errors.New("chat: reply discarded after language change")
)

// Widget is the chat transcript of one session. Nothing is persisted.
type Widget struct {
	completer Completer
	locales   *i18n.Bundle
	log       logger.Logger

	mu       sync.Mutex
	lang     i18n.Lang
	messages []domain.ChatMessage
	pending  bool
	epoch    uint64
}

func NewWidget(completer Completer, locales *i18n.Bundle, log logger.Logger) *Widget {
	return &Widget{
		completer: completer,
		locales:   locales,
		log:       log,
	}
}

// Messages returns the transcript for lang, reseeding it with the greeting
// when the language changed since the last call.
func (w *Widget) Messages(lang i18n.Lang) []domain.ChatMessage {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.seed(lang)
	return append([]domain.ChatMessage(nil), w.messages...)
}

// Pending reports whether a reply is awaited.
func (w *Widget) Pending() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.pending
}

// Send appends text and the assistant's reply. Blank text is ignored.
// A failed completion appends ServiceErrorText and returns an error wrapping
// ErrChatFailed.
func (w *Widget) Send(ctx context.Context, lang i18n.Lang, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	w.mu.Lock()
	w.seed(lang)
	if w.pending {
		w.mu.Unlock()
		return ErrBusy
	}
	w.pending = true
	w.messages = append(w.messages, domain.ChatMessage{Role: domain.RoleUser, Text: text})
	epoch := w.epoch
	w.mu.Unlock()

	reply, err := w.completer.Complete(ctx, SystemPrompt(lang), text)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.pending = false

	if epoch != w.epoch {
		return ErrDiscarded
	}

	if err != nil {
		w.log.Warn("chat completion failed", logger.String("lang", lang.String()), logger.Error(err))
		w.messages = append(w.messages, domain.ChatMessage{Role: domain.RoleAssistant, Text: ServiceErrorText})
		return fmt.Errorf("%w: %w", ErrChatFailed, err)
	}

	if strings.TrimSpace(reply) == "" {
		reply = EmptyReplyText
	}
	w.messages = append(w.messages, domain.ChatMessage{Role: domain.RoleAssistant, Text: reply})
	return nil
}

// seed must be called with mu held.
func (w *Widget) seed(lang i18n.Lang) {
	if w.messages != nil && w.lang == lang {
		return
	}
	w.lang = lang
	w.epoch++
	w.messages = []domain.ChatMessage{{
		Role: domain.RoleAssistant,
		Text: w.locales.For(lang).Greeting,
	}}
}
