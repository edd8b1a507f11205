package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/ytdown/internal/config"
	"github.com/MrSnakeDoc/ytdown/internal/httpserver/deps"
	"github.com/MrSnakeDoc/ytdown/internal/logger"
)

// Download delivers the variant selected for the session's current result,
// using the configured strategy. There is no way to pass a URL in: without
// a current result the request is refused.
func Download(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := currentSession(w, r, d)
		if !ok {
			return
		}

		result, variant, found := s.Search.Selected()
		if !found {
			http.Error(w, "no media selected", http.StatusNotFound)
			return
		}

		d.Logger.Info("download requested",
			logger.String("session", s.ID),
			logger.String("video", result.ID),
			logger.String("quality", variant.Label()),
			logger.String("mode", d.DownloadMode))

		if d.DownloadMode == config.DownloadModeRedirect {
			d.Downloader.Redirect(w, r, variant)
			return
		}
		d.Downloader.Attachment(w, r, result.Title, variant)
	}
}

// Open hands the selected variant's remote URL to the browser.
func Open(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := currentSession(w, r, d)
		if !ok {
			return
		}

		_, variant, found := s.Search.Selected()
		if !found {
			http.Error(w, "no media selected", http.StatusNotFound)
			return
		}
		d.Downloader.Redirect(w, r, variant)
	}
}
