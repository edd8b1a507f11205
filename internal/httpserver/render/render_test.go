package render

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MrSnakeDoc/ytdown/internal/domain"
	"github.com/MrSnakeDoc/ytdown/internal/i18n"
	"github.com/MrSnakeDoc/ytdown/internal/lookup"
)

func newView(t *testing.T, page string, lang i18n.Lang) *View {
	t.Helper()
	bundle, err := i18n.Load(i18n.ID)
	if err != nil {
		t.Fatalf("i18n.Load() error = %v", err)
	}
	return &View{
		Page:         page,
		Lang:         lang,
		Catalog:      bundle.For(lang),
		AppName:      "Ytdown Soraa",
		Version:      "test",
		Year:         2026,
		DownloadMode: "attachment",
	}
}

func render(t *testing.T, v *View) string {
	t.Helper()
	r, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	rec := httptest.NewRecorder()
	if err := r.Render(rec, http.StatusOK, v); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q, want text/html", ct)
	}
	return rec.Body.String()
}

func TestRenderHomeIdle(t *testing.T) {
	body := render(t, newView(t, PageHome, i18n.EN))

	if !strings.Contains(body, `<span class="accent">YouTube</span>`) {
		t.Error("hero title should highlight YouTube")
	}
	if !strings.Contains(body, `action="/search"`) {
		t.Error("search form missing")
	}
	if strings.Contains(body, `class="result"`) {
		t.Error("idle page should not render a result card")
	}
	if !strings.Contains(body, `<html lang="en">`) {
		t.Error("document language should follow the active language")
	}
}

func TestRenderHomeResult(t *testing.T) {
	tests := []struct {
		name     string
		mode     string
		variants []domain.MediaVariant
		want     []string
		notWant  []string
	}{
		{
			name:     "attachment mode",
			mode:     "attachment",
			variants: []domain.MediaVariant{{Type: "video", Extension: "mp4", QualityLabel: "360p", ContentLength: 15728640}},
			want:     []string{`href="/download"`, "15.0MB", "360p"},
		},
		{
			name:     "redirect mode",
			mode:     "redirect",
			variants: []domain.MediaVariant{{Type: "video", Extension: "mp4", QualityLabel: "360p"}},
			want:     []string{`href="/open" target="_blank"`, "Standard"},
			notWant:  []string{`href="/download"`},
		},
		{
			name:    "no variant",
			mode:    "attachment",
			want:    []string{"Format not available"},
			notWant: []string{`href="/download"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newView(t, PageHome, i18n.EN)
			v.DownloadMode = tt.mode
			v.Search = lookup.Snapshot{
				State:    lookup.Success,
				Query:    "https://youtu.be/abc",
				Result:   &domain.VideoResult{ID: "abc", Title: "A <b>video</b>", Author: "Someone", Duration: "1:05"},
				Variants: tt.variants,
			}
			body := render(t, v)

			if !strings.Contains(body, "A &lt;b&gt;video&lt;/b&gt;") {
				t.Error("title should be escaped")
			}
			for _, s := range tt.want {
				if !strings.Contains(body, s) {
					t.Errorf("body missing %q", s)
				}
			}
			for _, s := range tt.notWant {
				if strings.Contains(body, s) {
					t.Errorf("body should not contain %q", s)
				}
			}
		})
	}
}

func TestRenderHomeErrorAndHistory(t *testing.T) {
	v := newView(t, PageHome, i18n.ID)
	v.Search = lookup.Snapshot{State: lookup.Failed, Error: "boom"}
	v.History = []domain.HistoryEntry{{ID: "abc", Title: "Old one", Duration: "0:05"}}

	body := render(t, v)

	if !strings.Contains(body, `role="alert">boom<`) {
		t.Error("error banner missing")
	}
	if !strings.Contains(body, `href="/history/abc"`) {
		t.Error("history entry should link to its lookup")
	}
	if !strings.Contains(body, `action="/history/clear"`) {
		t.Error("clear button missing")
	}
}

func TestRenderLegalPages(t *testing.T) {
	for _, page := range []string{PagePrivacy, PageTerms} {
		t.Run(page, func(t *testing.T) {
			v := newView(t, page, i18n.EN)
			body := render(t, v)
			if !strings.Contains(body, v.Document().Title) {
				t.Errorf("%s page missing its title %q", page, v.Document().Title)
			}
		})
	}
}

func TestRenderFAQ(t *testing.T) {
	v := newView(t, PageFAQ, i18n.EN)
	body := render(t, v)
	for _, e := range v.Catalog.FAQ {
		if !strings.Contains(body, e.Q) && !strings.Contains(body, strings.ReplaceAll(e.Q, "'", "&#39;")) {
			t.Errorf("faq page missing question %q", e.Q)
		}
	}
}

func TestRenderChat(t *testing.T) {
	v := newView(t, PageFAQ, i18n.EN)
	v.Chat = ChatView{
		Open:    true,
		Pending: true,
		Messages: []domain.ChatMessage{
			{Role: domain.RoleAssistant, Text: "Hello! Need help with **Ytdown Soraa**?"},
			{Role: domain.RoleUser, Text: "<script>alert(1)</script>"},
		},
	}
	body := render(t, v)

	if !strings.Contains(body, "<strong>Ytdown Soraa</strong>") {
		t.Error("assistant markup should be rendered")
	}
	if strings.Contains(body, "<script>alert(1)</script>") {
		t.Error("user text must be escaped")
	}
	if !strings.Contains(body, "Thinking...") {
		t.Error("pending indicator missing")
	}
	if !strings.Contains(body, `name="return" value="/faq"`) {
		t.Error("chat form should return to the current page")
	}
}

func TestRenderUnknownPage(t *testing.T) {
	r, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	v := newView(t, "nope", i18n.EN)
	if err := r.Render(httptest.NewRecorder(), http.StatusOK, v); err == nil {
		t.Error("Render() should fail for an unknown page")
	}
}

func TestStatic(t *testing.T) {
	rec := httptest.NewRecorder()
	Static().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/static/style.css", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "--red") {
		t.Error("unexpected stylesheet content")
	}
}

func TestHighlight(t *testing.T) {
	if got := highlight("Get <YouTube> now", "YouTube"); got != `Get &lt;<span class="accent">YouTube</span>&gt; now` {
		t.Errorf("highlight() = %q", got)
	}
	if got := highlight("plain", "YouTube"); got != "plain" {
		t.Errorf("highlight() without match = %q", got)
	}
}
