package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/ytdown/internal/httpserver/deps"
	"github.com/MrSnakeDoc/ytdown/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/ytdown/internal/httpserver/render"
)

func init() { Register(registerPages) }

func registerPages(r chi.Router, d deps.Deps) {
	web := r.With(browser(d)...)
	web.Get("/", handlers.Home(d))
	web.Get("/faq", handlers.Page(d, render.PageFAQ))
	web.Get("/privacy", handlers.Page(d, render.PagePrivacy))
	web.Get("/terms", handlers.Page(d, render.PageTerms))
	web.Post("/lang", handlers.SetLang(d))
	web.Post("/history/clear", handlers.ClearHistory(d))
	web.Get("/api/history", handlers.APIHistory(d))
}
