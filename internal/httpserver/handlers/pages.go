package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/ytdown/internal/httpserver/deps"
	"github.com/MrSnakeDoc/ytdown/internal/httpserver/render"
)

// Home renders the search view: form, error banner, result card and history.
func Home(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := currentSession(w, r, d)
		if !ok {
			return
		}

		v := newView(r, d, s, render.PageHome)
		v.Search = s.Search.Snapshot()
		v.History = s.Search.History(r.Context())
		v.ShareURL = shareURL(v.Search.Result)
		renderPage(w, d, v)
	}
}

// Page renders one of the static views (faq, privacy, terms).
func Page(d deps.Deps, page string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := currentSession(w, r, d)
		if !ok {
			return
		}
		renderPage(w, d, newView(r, d, s, page))
	}
}
