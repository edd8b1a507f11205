// Package download hands the selected media variant to the browser, either as
// a streamed attachment with a proper file name or as a plain redirect.
package download

import (
	"io"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/ytdown/internal/domain"
	"github.com/MrSnakeDoc/ytdown/internal/logger"
	"github.com/MrSnakeDoc/ytdown/internal/utils"
)

var passthroughHeaders = []string{
	"Content-Type",
	"Content-Length",
	"Last-Modified",
	"ETag",
}

// Downloader streams or redirects to media variants. It never transcodes.
type Downloader struct {
	http *http.Client
	log  logger.Logger
}

func New(httpClient *http.Client, log logger.Logger) *Downloader {
	if httpClient == nil {
		httpClient = utils.NewHTTPClient(10 * time.Second)
	}
	return &Downloader{
		http: httpClient,
		log:  log.Named("download"),
	}
}

// Attachment fetches the variant and streams it back as "<title>.<ext>".
// If the upstream cannot be fetched before any byte is written, the client is
// redirected to the variant URL instead, without a file name.
func (d *Downloader) Attachment(w http.ResponseWriter, r *http.Request, title string, v domain.MediaVariant) {
	req, err := http.NewRequestWithContext(r.Context(), http.MethodGet, v.URL, http.NoBody)
	if err != nil {
		d.fallback(w, r, v, err)
		return
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64)")
	req.Header.Set("Referer", "https://www.youtube.com/")

	resp, err := d.http.Do(req)
	if err != nil {
		d.fallback(w, r, v, err)
		return
	}
	defer utils.Close(resp.Body)

	if resp.StatusCode != http.StatusOK {
		d.fallback(w, r, v, &upstreamStatusError{code: resp.StatusCode})
		return
	}

	for _, key := range passthroughHeaders {
		if values, ok := resp.Header[key]; ok {
			w.Header()[key] = values
		}
	}
	if w.Header().Get("Content-Type") == "" {
		w.Header().Set("Content-Type", "video/mp4")
	}
	name := Filename(title, v.Extension)
	w.Header().Set("Content-Disposition", ContentDisposition(name))
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)

	start := time.Now()
	n, err := io.Copy(w, resp.Body)
	if err != nil {
		// Headers are gone; the client sees a truncated file.
		d.log.Warn("download interrupted",
			logger.String("file", name),
			logger.Int64("bytes", n),
			logger.Error(err))
		return
	}
	d.log.Info("download served",
		logger.String("file", name),
		logger.Int64("bytes", n),
		logger.Duration("elapsed", time.Since(start)))
}

// Redirect sends the browser straight to the variant URL.
func (d *Downloader) Redirect(w http.ResponseWriter, r *http.Request, v domain.MediaVariant) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Referrer-Policy", "no-referrer")
	http.Redirect(w, r, v.URL, http.StatusFound)
}

func (d *Downloader) fallback(w http.ResponseWriter, r *http.Request, v domain.MediaVariant, cause error) {
	d.log.Warn("attachment fetch failed, redirecting", logger.Error(cause))
	d.Redirect(w, r, v)
}

type upstreamStatusError struct{ code int }

func (e *upstreamStatusError) Error() string {
	return "upstream status " + http.StatusText(e.code)
}
