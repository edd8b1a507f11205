package download

import (
	"strings"
	"testing"
)

func TestFilename(t *testing.T) {
	tests := []struct {
		title    string
		ext      string
		expected string
	}{
		{title: "Never Gonna Give You Up", ext: "mp4", expected: "Never Gonna Give You Up.mp4"},
		{title: `a/b\c:d*e?f"g<h>i|j`, ext: "mp4", expected: "abcdefghij.mp4"},
		{title: "  tabs\tand\nnewlines  ", ext: ".MP4", expected: "tabs and newlines.mp4"},
		{title: "...", ext: "mp4", expected: "video.mp4"},
		{title: "", ext: "", expected: "video.mp4"},
		{title: "Lagu Indonesia – Terbaru", ext: "mp4", expected: "Lagu Indonesia – Terbaru.mp4"},
	}

	for _, tt := range tests {
		if got := Filename(tt.title, tt.ext); got != tt.expected {
			t.Errorf("Filename(%q, %q) = %q, want %q", tt.title, tt.ext, got, tt.expected)
		}
	}
}

func TestFilenameIsCapped(t *testing.T) {
	got := Filename(strings.Repeat("é", 400), "mp4")
	if n := len([]rune(got)); n != maxNameRunes+len(".mp4") {
		t.Errorf("rune length = %d, want %d", n, maxNameRunes+4)
	}
}

func TestContentDisposition(t *testing.T) {
	if got := ContentDisposition("plain.mp4"); got != `attachment; filename=plain.mp4` {
		t.Errorf("ContentDisposition(ascii) = %q", got)
	}
	if got := ContentDisposition("lagu – baru.mp4"); !strings.HasPrefix(got, "attachment; filename*=utf-8''") {
		t.Errorf("ContentDisposition(utf8) = %q, want RFC 2231 form", got)
	}
}
