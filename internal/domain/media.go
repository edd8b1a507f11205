package domain

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	MediaTypeVideo   = "video"
	ExtensionMP4     = "mp4"
	PreferredQuality = "360p"
)

// MediaVariant is one downloadable rendition offered by the extraction API.
type MediaVariant struct {
	Type          string `json:"type"`
	Extension     string `json:"extension"`
	Quality       string `json:"quality,omitempty"`
	QualityLabel  string `json:"qualityLabel,omitempty"`
	URL           string `json:"url"`
	ContentLength int64  `json:"contentLength,omitempty"` // bytes, 0 when unknown
}

// Label is the quality shown to the user: qualityLabel, then quality, then 360p.
func (m MediaVariant) Label() string {
	if m.QualityLabel != "" {
		return m.QualityLabel
	}
	if m.Quality != "" {
		return m.Quality
	}
	return PreferredQuality
}

// SizeLabel renders the content length in MB with one decimal, or "Standard" when unknown.
func (m MediaVariant) SizeLabel() string {
	if m.ContentLength <= 0 {
		return "Standard"
	}
	return fmt.Sprintf("%.1fMB", float64(m.ContentLength)/1048576)
}

func (m MediaVariant) isMP4Video() bool {
	return m.Type == MediaTypeVideo && m.Extension == ExtensionMP4
}

func (m MediaVariant) hasQuality(q string) bool {
	return m.QualityLabel == q || m.Quality == q
}

// SelectVariants picks the single download option to display:
// the first mp4 video at 360p, else the first mp4 video, else nothing.
// The returned slice has length 0 or 1.
func SelectVariants(medias []MediaVariant) []MediaVariant {
	var fallback *MediaVariant
	for i := range medias {
		m := medias[i]
		if !m.isMP4Video() {
			continue
		}
		if m.hasQuality(PreferredQuality) {
			return []MediaVariant{m}
		}
		if fallback == nil {
			fallback = &medias[i]
		}
	}
	if fallback != nil {
		return []MediaVariant{*fallback}
	}
	return []MediaVariant{}
}

// ParseContentLength accepts the loose forms the extraction API sends
// ("12345", "12345.0", "") and returns 0 when it cannot tell.
func ParseContentLength(raw string) int64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil && n > 0 {
		return n
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil && f > 0 {
		return int64(f)
	}
	return 0
}
