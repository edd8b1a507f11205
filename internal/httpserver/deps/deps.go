package deps

import (
	"context"
	"time"

	"github.com/MrSnakeDoc/ytdown/internal/download"
	"github.com/MrSnakeDoc/ytdown/internal/httpserver/render"
	"github.com/MrSnakeDoc/ytdown/internal/i18n"
	"github.com/MrSnakeDoc/ytdown/internal/logger"
	"github.com/MrSnakeDoc/ytdown/internal/session"
	"github.com/MrSnakeDoc/ytdown/internal/store"
)

// SessionCounter reports how many sessions hold persisted state.
type SessionCounter interface {
	CountSessions(ctx context.Context) (int, error)
}

type Deps struct {
	Logger         logger.Logger
	StartTime      time.Time
	Version        string
	Commit         string
	BuildDate      string
	GoVersion      string
	TimeNow        func() time.Time     // for testing, defaults to time.Now
	AllowedHosts   []string             // Host headers allowed to access the server
	AllowedCIDRS   []string             // IPs allowed to access the infra endpoint
	TrustProxy     bool                 // true if running behind a trusted reverse proxy (e.g., cloudflared)
	Store          store.KV             // per-session persisted state (Redis or memory)
	SessionCounter SessionCounter       // nil when the store cannot count sessions
	Sessions       *session.Manager     // live sessions keyed by cookie
	Locales        *i18n.Bundle         // id/en catalogs
	Prefs          *i18n.Preferences    // soraa_lang reader/writer
	Views          *render.Renderer     // HTML templates
	Downloader     *download.Downloader // attachment/redirect strategies
	DownloadMode   string               // config.DownloadModeAttachment | config.DownloadModeRedirect
	CookieSecure   bool                 // mark the session cookie Secure
	SessionTTL     time.Duration        // session cookie lifetime
	RateBurst      int                  // token bucket size on lookup/chat routes
	RateRefillMin  int                  // tokens per minute on lookup/chat routes
	RequestTimeout time.Duration        // per-request timeout, downloads excluded
	ChatEnabled    bool                 // an AI API key is configured
}
