package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/ytdown/internal/httpserver/deps"
	"github.com/MrSnakeDoc/ytdown/internal/httpserver/mw"
	"github.com/MrSnakeDoc/ytdown/internal/httpserver/render"
)

func init() { Register(registerStatic) }

func registerStatic(r chi.Router, d deps.Deps) {
	r.With(mw.EnforceHost(d.AllowedHosts, d.Logger)).Handle("/static/*", render.Static())
}
