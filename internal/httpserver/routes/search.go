package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/ytdown/internal/httpserver/deps"
	"github.com/MrSnakeDoc/ytdown/internal/httpserver/handlers"
)

func init() { Register(registerSearch) }

// Lookup routes share one limiter.
func registerSearch(r chi.Router, d deps.Deps) {
	web := r.With(browser(d)...).With(limited(d))
	web.Post("/search", handlers.Search(d))
	web.Get("/search", handlers.Search(d))
	web.Get("/history/{id}", handlers.HistoryEntry(d))
	web.Get("/api/lookup", handlers.APILookup(d))
}
