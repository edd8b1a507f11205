package mw

import (
	"net/http"
	"time"

	"github.com/MrSnakeDoc/ytdown/internal/logger"
	"github.com/MrSnakeDoc/ytdown/internal/session"
)

// SessionOptions controls the session cookie.
type SessionOptions struct {
	Secure bool          // set the Secure attribute (HTTPS deployments)
	TTL    time.Duration // cookie Max-Age, 0 = browser session
}

// Session attaches the caller's session to the request context. A missing or
// malformed cookie gets a fresh ID; the cookie is only written when issued.
func Session(m *session.Manager, opts SessionOptions, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := ""
			if c, err := r.Cookie(session.CookieName); err == nil && session.ValidID(c.Value) {
				id = c.Value
			}

			if id == "" {
				id = session.NewID()
				http.SetCookie(w, &http.Cookie{
					Name:     session.CookieName,
					Value:    id,
					Path:     "/",
					MaxAge:   int(opts.TTL.Seconds()),
					HttpOnly: true,
					Secure:   opts.Secure,
					SameSite: http.SameSiteLaxMode,
				})
				log.Debug("session issued", logger.String("session", id))
			}

			s := m.Acquire(id)
			next.ServeHTTP(w, r.WithContext(session.WithSession(r.Context(), s)))
		})
	}
}
