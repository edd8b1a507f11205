package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/ytdown/internal/domain"
	"github.com/MrSnakeDoc/ytdown/internal/httpserver/deps"
	"github.com/MrSnakeDoc/ytdown/internal/logger"
	"github.com/MrSnakeDoc/ytdown/internal/lookup"
	"github.com/MrSnakeDoc/ytdown/internal/session"
)

// Search runs a lookup for the "url" field, then goes back to the home view.
//
// GET /search?url=... is the share link form. With paste=1 the value only
// prefills the input unless it looks like a YouTube link.
func Search(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := currentSession(w, r, d)
		if !ok {
			return
		}

		query := strings.TrimSpace(r.FormValue("url"))
		if r.FormValue("paste") == "1" && !domain.LooksLikeYouTube(query) {
			s.Search.SetQuery(query)
			seeOther(w, r, "/")
			return
		}

		runSearch(d, r, s, query)
		seeOther(w, r, "/")
	}
}

// HistoryEntry replays the lookup of a history item.
func HistoryEntry(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := currentSession(w, r, d)
		if !ok {
			return
		}

		id := chi.URLParam(r, "id")
		if id != "" {
			runSearch(d, r, s, domain.WatchURL(id))
		}
		seeOther(w, r, "/")
	}
}

// ClearHistory empties the session history. The current result stays.
func ClearHistory(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := currentSession(w, r, d)
		if !ok {
			return
		}

		if err := s.Search.ClearHistory(r.Context()); err != nil {
			d.Logger.Warn("failed to clear history",
				logger.String("session", s.ID),
				logger.Error(err))
		}
		seeOther(w, r, "/")
	}
}

// runSearch performs the lookup; its outcome lands on the session state.
func runSearch(d deps.Deps, r *http.Request, s *session.Session, query string) error {
	lang := currentLang(r, d, s)
	err := s.Search.Search(r.Context(), query, d.Locales.For(lang))
	switch {
	case err == nil:
	case errors.Is(err, lookup.ErrStale):
		d.Logger.Debug("lookup superseded", logger.String("session", s.ID))
	default:
		d.Logger.Info("lookup failed",
			logger.String("session", s.ID),
			logger.String("query", query),
			logger.Error(err))
	}
	return err
}
