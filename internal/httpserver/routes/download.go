package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/ytdown/internal/httpserver/deps"
	"github.com/MrSnakeDoc/ytdown/internal/httpserver/handlers"
)

func init() { RegisterStreaming(registerDownload) }

func registerDownload(r chi.Router, d deps.Deps) {
	web := r.With(browser(d)...)
	web.Get("/download", handlers.Download(d))
	web.Get("/open", handlers.Open(d))
}
