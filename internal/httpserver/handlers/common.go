package handlers

import (
	"net/http"
	"net/url"

	"github.com/MrSnakeDoc/ytdown/internal/domain"
	"github.com/MrSnakeDoc/ytdown/internal/httpserver/deps"
	"github.com/MrSnakeDoc/ytdown/internal/httpserver/render"
	"github.com/MrSnakeDoc/ytdown/internal/i18n"
	"github.com/MrSnakeDoc/ytdown/internal/logger"
	"github.com/MrSnakeDoc/ytdown/internal/session"
	"github.com/MrSnakeDoc/ytdown/internal/version"
)

// returnPaths are the pages a form may send the browser back to.
var returnPaths = map[string]bool{
	"/":        true,
	"/faq":     true,
	"/privacy": true,
	"/terms":   true,
}

// currentSession returns the session attached by mw.Session, or writes a 500.
func currentSession(w http.ResponseWriter, r *http.Request, d deps.Deps) (*session.Session, bool) {
	s, ok := session.FromContext(r.Context())
	if !ok {
		d.Logger.Error("route served without session middleware", logger.String("path", r.URL.Path))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return nil, false
	}
	return s, true
}

// currentLang reads soraa_lang before anything is rendered.
func currentLang(r *http.Request, d deps.Deps, s *session.Session) i18n.Lang {
	return d.Prefs.Get(r.Context(), s.ID)
}

func newView(r *http.Request, d deps.Deps, s *session.Session, page string) *render.View {
	lang := currentLang(r, d, s)
	return &render.View{
		Page:         page,
		Lang:         lang,
		Catalog:      d.Locales.For(lang),
		AppName:      version.AppName,
		Version:      d.Version,
		Year:         d.TimeNow().Year(),
		DownloadMode: d.DownloadMode,
		Chat: render.ChatView{
			Open:     r.URL.Query().Get("chat") == "1",
			Pending:  s.Chat.Pending(),
			Messages: s.Chat.Messages(lang),
		},
	}
}

func renderPage(w http.ResponseWriter, d deps.Deps, v *render.View) {
	if err := d.Views.Render(w, http.StatusOK, v); err != nil {
		d.Logger.Error("failed to render page", logger.String("page", v.Page), logger.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// safeReturn resolves the "return" form field to a known page, "/" otherwise.
func safeReturn(r *http.Request) string {
	if p := r.FormValue("return"); returnPaths[p] {
		return p
	}
	return "/"
}

// shareURL is a link that replays the lookup of result.
func shareURL(result *domain.VideoResult) string {
	if result == nil {
		return ""
	}
	target := result.SourceURL
	if target == "" {
		target = domain.WatchURL(result.ID)
	}
	return "/search?url=" + url.QueryEscape(target)
}

// seeOther finishes a form post (post/redirect/get).
func seeOther(w http.ResponseWriter, r *http.Request, to string) {
	http.Redirect(w, r, to, http.StatusSeeOther)
}
