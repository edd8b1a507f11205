package domain

import (
	"fmt"
	"net/url"
	"strings"
)

// VideoResult is the normalized view model of one successful lookup.
//
// It is NOT tied to the extraction API wire format.
// The mapper in sources/extractor builds it from the raw payload.
type VideoResult struct {
	// ID is derived from SourceURL and used as the de-duplication key
	// across history entries.
	ID string `json:"id"`

	// SourceURL is the canonical video URL returned by the extraction API.
	SourceURL string `json:"url"`

	// Title and Author are server-provided and unvalidated.
	Title  string `json:"title"`
	Author string `json:"author"`

	// Duration is the display form ("M:SS" or "H:MM:SS").
	Duration string `json:"duration"`

	// DurationSeconds is kept for the JSON API.
	DurationSeconds int `json:"duration_seconds"`

	// Thumbnail is trusted as-is.
	Thumbnail string `json:"thumbnail"`

	// Medias are the downloadable renditions, verbatim from the remote service.
	Medias []MediaVariant `json:"medias"`
}

// HistoryEntry is a VideoResult without its media variants.
type HistoryEntry struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Author    string `json:"author"`
	Duration  string `json:"duration"`
	Thumbnail string `json:"thumbnail"`
}

// Entry returns the history form of the result.
func (v VideoResult) Entry() HistoryEntry {
	return HistoryEntry{
		ID:        v.ID,
		Title:     v.Title,
		Author:    v.Author,
		Duration:  v.Duration,
		Thumbnail: v.Thumbnail,
	}
}

// FormatDuration renders seconds as "M:SS" below one hour and "H:MM:SS" above.
// Negative input is clamped to zero.
func FormatDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

// VideoID extracts the stable id from a video URL: the value of the "v"
// query parameter, else the last non-empty path segment.
// Example: "https://youtube.com/watch?v=abc123" -> "abc123"
//
//	"https://youtu.be/abc123?si=x"   -> "abc123"
func VideoID(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	u, err := url.Parse(raw)
	if err != nil {
		return lastSegment(raw)
	}
	if v := u.Query().Get("v"); v != "" {
		return v
	}
	if id := lastSegment(u.Path); id != "" {
		return id
	}
	// Bare ids or opaque URLs end up here.
	return lastSegment(strings.SplitN(raw, "?", 2)[0])
}

func lastSegment(p string) string {
	p = strings.TrimRight(p, "/")
	if i := strings.LastIndex(p, "/"); i >= 0 {
		return p[i+1:]
	}
	return p
}

// WatchURL rebuilds a canonical watch URL for a history id.
func WatchURL(id string) string {
	return "https://youtube.com/watch?v=" + url.QueryEscape(id)
}

// LooksLikeYouTube is the paste auto-detect rule: the text mentions "youtu"
// (youtube.com, youtu.be, m.youtube.com, ...).
func LooksLikeYouTube(text string) bool {
	return strings.Contains(strings.ToLower(text), "youtu")
}
