package routes

import (
	"github.com/MrSnakeDoc/ytdown/internal/httpserver/deps"
	"github.com/MrSnakeDoc/ytdown/internal/httpserver/mw"
)

// browser is the stack of every route that reads or writes session state.
func browser(d deps.Deps) []Middleware {
	return []Middleware{
		mw.EnforceHost(d.AllowedHosts, d.Logger),
		mw.Session(d.Sessions, mw.SessionOptions{Secure: d.CookieSecure, TTL: d.SessionTTL}, d.Logger),
	}
}

// limited guards routes that cost an upstream call. Each call returns a
// limiter with its own buckets.
func limited(d deps.Deps) Middleware {
	return mw.RateLimit(mw.RateLimitConfig{
		Burst:             d.RateBurst,
		RefillPerIPPerMin: d.RateRefillMin,
		MaxEntries:        10000,
		TrustProxy:        d.TrustProxy,
		Log:               d.Logger,
	})
}
