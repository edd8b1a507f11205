package handlers

import (
	"errors"
	"net/http"

	"github.com/MrSnakeDoc/ytdown/internal/assistant"
	"github.com/MrSnakeDoc/ytdown/internal/httpserver/deps"
	"github.com/MrSnakeDoc/ytdown/internal/i18n"
	"github.com/MrSnakeDoc/ytdown/internal/logger"
)

// SetLang persists the chosen language, or toggles it when "lang" is absent
// or unknown.
func SetLang(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := currentSession(w, r, d)
		if !ok {
			return
		}

		lang, valid := i18n.ParseLang(r.FormValue("lang"))
		if !valid {
			lang = currentLang(r, d, s).Toggle()
		}
		if err := d.Prefs.Set(r.Context(), s.ID, lang); err != nil {
			d.Logger.Warn("failed to persist language",
				logger.String("session", s.ID),
				logger.String("lang", lang.String()),
				logger.Error(err))
		}
		seeOther(w, r, safeReturn(r))
	}
}

// Chat sends one message to the assistant and reopens the widget.
func Chat(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := currentSession(w, r, d)
		if !ok {
			return
		}

		lang := currentLang(r, d, s)
		err := s.Chat.Send(r.Context(), lang, r.FormValue("message"))
		switch {
		case err == nil, errors.Is(err, assistant.ErrChatFailed):
			// failures are already on the transcript
		case errors.Is(err, assistant.ErrBusy), errors.Is(err, assistant.ErrDiscarded):
			d.Logger.Debug("chat message dropped", logger.String("session", s.ID), logger.Error(err))
		default:
			d.Logger.Warn("chat send failed", logger.String("session", s.ID), logger.Error(err))
		}
		seeOther(w, r, safeReturn(r)+"?chat=1#chat")
	}
}
