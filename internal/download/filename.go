package download

import (
	"mime"
	"strings"
	"unicode"
)

const maxNameRunes = 150

// Filename builds "<title>.<ext>" with characters that are unsafe in file
// names removed. An empty title becomes "video".
func Filename(title, ext string) string {
	var b strings.Builder
	space := false
	for _, r := range title {
		switch {
		case unicode.IsSpace(r):
			space = true
			continue
		case strings.ContainsRune(`/\:*?"<>|`, r), unicode.IsControl(r):
			continue
		}
		if space && b.Len() > 0 {
			b.WriteByte(' ')
		}
		space = false
		b.WriteRune(r)
	}

	name := []rune(strings.Trim(b.String(), ". "))
	if len(name) > maxNameRunes {
		name = []rune(strings.TrimSpace(string(name[:maxNameRunes])))
	}
	if len(name) == 0 {
		name = []rune("video")
	}

	ext = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(ext)), ".")
	if ext == "" {
		ext = "mp4"
	}
	return string(name) + "." + ext
}

// ContentDisposition returns an attachment header value for filename,
// RFC 2231 encoded when it is not plain ASCII.
func ContentDisposition(filename string) string {
	if v := mime.FormatMediaType("attachment", map[string]string{"filename": filename}); v != "" {
		return v
	}
	return `attachment; filename="video.mp4"`
}
