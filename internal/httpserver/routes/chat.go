package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/ytdown/internal/httpserver/deps"
	"github.com/MrSnakeDoc/ytdown/internal/httpserver/handlers"
)

func init() { Register(registerChat) }

func registerChat(r chi.Router, d deps.Deps) {
	r.With(browser(d)...).With(limited(d)).Post("/chat", handlers.Chat(d))
}
