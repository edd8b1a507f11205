package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MrSnakeDoc/ytdown/internal/assistant"
	"github.com/MrSnakeDoc/ytdown/internal/config"
	"github.com/MrSnakeDoc/ytdown/internal/domain"
	"github.com/MrSnakeDoc/ytdown/internal/download"
	"github.com/MrSnakeDoc/ytdown/internal/httpserver/deps"
	"github.com/MrSnakeDoc/ytdown/internal/httpserver/render"
	"github.com/MrSnakeDoc/ytdown/internal/i18n"
	"github.com/MrSnakeDoc/ytdown/internal/logger"
	"github.com/MrSnakeDoc/ytdown/internal/session"
	"github.com/MrSnakeDoc/ytdown/internal/sources/extractor"
	"github.com/MrSnakeDoc/ytdown/internal/store"
	"github.com/MrSnakeDoc/ytdown/internal/store/memory"
)

const mediaPayload = "MP4DATA"

type fakeCompleter struct {
	reply string
	err   error
}

func (f fakeCompleter) Complete(context.Context, string, string) (string, error) {
	return f.reply, f.err
}

type harness struct {
	t       *testing.T
	srv     *httptest.Server
	media   *httptest.Server
	client  *http.Client
	kv      *memory.Store
	bundle  *i18n.Bundle
	lookups *atomic.Int32
}

func newHarness(t *testing.T, completer assistant.Completer, mutate func(*deps.Deps)) *harness {
	t.Helper()

	media := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "video/mp4")
		_, _ = io.WriteString(w, mediaPayload)
	}))
	t.Cleanup(media.Close)

	lookups := &atomic.Int32{}
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lookups.Add(1)
		w.Header().Set("Content-Type", "application/json")
		u := r.URL.Query().Get("url")
		if strings.Contains(u, "broken") {
			_, _ = io.WriteString(w, `{"status": false, "message": "Gagal"}`)
			return
		}
		id := domain.VideoID(u)
		_, _ = fmt.Fprintf(w, `{"status": true, "result": {
			"url": "https://youtube.com/watch?v=%[1]s",
			"title": "Video %[1]s",
			"author": "Author",
			"duration": 65,
			"thumbnail": "https://i.ytimg.com/vi/%[1]s/hq.jpg",
			"medias": [
				{"type": "video", "extension": "mp4", "qualityLabel": "720p", "url": "%[2]s/720.mp4"},
				{"type": "video", "extension": "mp4", "qualityLabel": "360p", "url": "%[2]s/360.mp4", "contentLength": "1048576"}
			]}}`, id, media.URL)
	}))
	t.Cleanup(api.Close)

	bundle, err := i18n.Load(i18n.ID)
	if err != nil {
		t.Fatalf("i18n.Load() error = %v", err)
	}
	views, err := render.New()
	if err != nil {
		t.Fatalf("render.New() error = %v", err)
	}

	log := logger.Nop()
	kv := memory.NewStore(time.Hour)
	fetcher := extractor.NewClient(api.URL, api.Client(), log)

	d := deps.Deps{
		Logger:         log,
		StartTime:      time.Now(),
		Version:        "test",
		TimeNow:        time.Now,
		Store:          kv,
		Sessions:       session.NewManager(kv, fetcher, completer, bundle, log),
		Locales:        bundle,
		Prefs:          i18n.NewPreferences(kv, i18n.ID, log),
		Views:          views,
		Downloader:     download.New(media.Client(), log),
		DownloadMode:   config.DownloadModeAttachment,
		SessionTTL:     time.Hour,
		RateBurst:      100,
		RateRefillMin:  100,
		RequestTimeout: 5 * time.Second,
		ChatEnabled:    true,
	}
	if mutate != nil {
		mutate(&d)
	}

	srv := httptest.NewServer(NewRouter(d))
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookiejar.New() error = %v", err)
	}
	client := &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	return &harness{t: t, srv: srv, media: media, client: client, kv: kv, bundle: bundle, lookups: lookups}
}

func (h *harness) do(req *http.Request) (*http.Response, string) {
	h.t.Helper()
	resp, err := h.client.Do(req)
	if err != nil {
		h.t.Fatalf("%s %s: %v", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		h.t.Fatalf("read body: %v", err)
	}
	return resp, string(body)
}

func (h *harness) get(path string) (*http.Response, string) {
	h.t.Helper()
	req, err := http.NewRequest(http.MethodGet, h.srv.URL+path, nil)
	if err != nil {
		h.t.Fatal(err)
	}
	return h.do(req)
}

func (h *harness) post(path string, form url.Values) (*http.Response, string) {
	h.t.Helper()
	req, err := http.NewRequest(http.MethodPost, h.srv.URL+path, strings.NewReader(form.Encode()))
	if err != nil {
		h.t.Fatal(err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return h.do(req)
}

func (h *harness) sessionID() string {
	h.t.Helper()
	u, _ := url.Parse(h.srv.URL)
	for _, c := range h.client.Jar.Cookies(u) {
		if c.Name == session.CookieName {
			return c.Value
		}
	}
	h.t.Fatal("no session cookie in jar")
	return ""
}

func expectRedirect(t *testing.T, resp *http.Response, location string) {
	t.Helper()
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", resp.StatusCode)
	}
	if got := resp.Header.Get("Location"); got != location {
		t.Errorf("Location = %q, want %q", got, location)
	}
}

func TestSessionCookieIssuedOnce(t *testing.T) {
	h := newHarness(t, fakeCompleter{reply: "ok"}, nil)

	resp, _ := h.get("/")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if len(resp.Cookies()) != 1 {
		t.Fatalf("first visit should issue one cookie, got %d", len(resp.Cookies()))
	}

	resp, _ = h.get("/faq")
	if len(resp.Cookies()) != 0 {
		t.Error("cookie should not be reissued on later requests")
	}
}

func TestSearchShowsResultAndRecordsHistory(t *testing.T) {
	h := newHarness(t, fakeCompleter{reply: "ok"}, nil)

	resp, _ := h.post("/search", url.Values{"url": {"https://youtu.be/abc123?si=x"}})
	expectRedirect(t, resp, "/")

	_, body := h.get("/")
	for _, want := range []string{"Video abc123", "1:05", "360p", "1.0MB", `href="/download"`, `href="/history/abc123"`} {
		if !strings.Contains(body, want) {
			t.Errorf("home page missing %q", want)
		}
	}
	if strings.Contains(body, "720p") {
		t.Error("only the 360p mp4 variant should be offered")
	}

	raw, err := h.kv.Get(context.Background(), h.sessionID(), store.KeyHistory)
	if err != nil {
		t.Fatalf("history not persisted: %v", err)
	}
	if !strings.Contains(raw, `"id":"abc123"`) {
		t.Errorf("persisted history = %s", raw)
	}
}

func TestSearchFailureShowsLocalizedError(t *testing.T) {
	h := newHarness(t, fakeCompleter{reply: "ok"}, nil)

	resp, _ := h.post("/search", url.Values{"url": {"https://youtu.be/broken"}})
	expectRedirect(t, resp, "/")

	_, body := h.get("/")
	want := html.EscapeString(h.bundle.For(i18n.ID).T("errorLookup"))
	if !strings.Contains(body, want) {
		t.Errorf("home page missing error %q", want)
	}

	if _, err := h.kv.Get(context.Background(), h.sessionID(), store.KeyHistory); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("failed lookup must not touch history, got err=%v", err)
	}
}

func TestBlankSearchDoesNothing(t *testing.T) {
	h := newHarness(t, fakeCompleter{reply: "ok"}, nil)

	resp, _ := h.post("/search", url.Values{"url": {"   "}})
	expectRedirect(t, resp, "/")
	if h.lookups.Load() != 0 {
		t.Errorf("blank query issued %d remote calls", h.lookups.Load())
	}
}

func TestPastePrefillsWithoutLookup(t *testing.T) {
	h := newHarness(t, fakeCompleter{reply: "ok"}, nil)

	resp, _ := h.get("/search?paste=1&url=" + url.QueryEscape("hello there"))
	expectRedirect(t, resp, "/")
	if h.lookups.Load() != 0 {
		t.Error("non-YouTube paste should not trigger a lookup")
	}
	_, body := h.get("/")
	if !strings.Contains(body, `value="hello there"`) {
		t.Error("pasted text should prefill the input")
	}

	resp, _ = h.get("/search?paste=1&url=" + url.QueryEscape("https://youtu.be/abc123"))
	expectRedirect(t, resp, "/")
	if h.lookups.Load() != 1 {
		t.Errorf("YouTube paste should trigger one lookup, got %d", h.lookups.Load())
	}
}

func TestHistoryReplayAndClear(t *testing.T) {
	h := newHarness(t, fakeCompleter{reply: "ok"}, nil)

	h.post("/search", url.Values{"url": {"https://youtu.be/one"}})
	h.post("/search", url.Values{"url": {"https://youtu.be/two"}})

	resp, _ := h.get("/history/one")
	expectRedirect(t, resp, "/")

	var hist struct {
		Entries []domain.HistoryEntry `json:"entries"`
	}
	_, body := h.get("/api/history")
	if err := json.Unmarshal([]byte(body), &hist); err != nil {
		t.Fatalf("decode history: %v", err)
	}
	if len(hist.Entries) != 2 || hist.Entries[0].ID != "one" {
		t.Fatalf("history = %+v, want one first", hist.Entries)
	}

	resp, _ = h.post("/history/clear", nil)
	expectRedirect(t, resp, "/")

	_, body = h.get("/api/history")
	if strings.TrimSpace(body) != `{"entries":[]}` {
		t.Errorf("history after clear = %s", body)
	}

	_, body = h.get("/")
	if !strings.Contains(body, "Video one") {
		t.Error("clearing history should keep the current result")
	}
}

func TestLanguagePersistsAcrossReloads(t *testing.T) {
	h := newHarness(t, fakeCompleter{reply: "ok"}, nil)

	_, body := h.get("/faq")
	if !strings.Contains(body, `<html lang="id">`) {
		t.Fatal("default language should be id")
	}

	resp, _ := h.post("/lang", url.Values{"lang": {"en"}, "return": {"/faq"}})
	expectRedirect(t, resp, "/faq")

	_, body = h.get("/faq")
	if !strings.Contains(body, `<html lang="en">`) {
		t.Error("language should persist on the next request")
	}
	if v, _ := h.kv.Get(context.Background(), h.sessionID(), store.KeyLang); v != "en" {
		t.Errorf("soraa_lang = %q, want en", v)
	}

	// No explicit language toggles back.
	resp, _ = h.post("/lang", url.Values{"return": {"https://evil.example"}})
	expectRedirect(t, resp, "/")
	_, body = h.get("/")
	if !strings.Contains(body, `<html lang="id">`) {
		t.Error("toggle should switch back to id")
	}
}

func TestDownloadRefusedWithoutResult(t *testing.T) {
	h := newHarness(t, fakeCompleter{reply: "ok"}, nil)

	for _, path := range []string{"/download", "/open"} {
		resp, _ := h.get(path)
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("%s without a result: status = %d, want 404", path, resp.StatusCode)
		}
	}
}

func TestDownloadSelectedVariant(t *testing.T) {
	h := newHarness(t, fakeCompleter{reply: "ok"}, nil)
	h.post("/search", url.Values{"url": {"https://youtu.be/abc123"}})

	resp, body := h.get("/download")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if got := resp.Header.Get("Content-Disposition"); got != `attachment; filename="Video abc123.mp4"` {
		t.Errorf("Content-Disposition = %q", got)
	}
	if body != mediaPayload {
		t.Errorf("body = %q, want the upstream bytes", body)
	}

	resp, _ = h.get("/open")
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("open: status = %d, want 302", resp.StatusCode)
	}
	if got := resp.Header.Get("Location"); got != h.media.URL+"/360.mp4" {
		t.Errorf("open: Location = %q", got)
	}
}

func TestDownloadRedirectMode(t *testing.T) {
	h := newHarness(t, fakeCompleter{reply: "ok"}, func(d *deps.Deps) {
		d.DownloadMode = config.DownloadModeRedirect
	})
	h.post("/search", url.Values{"url": {"https://youtu.be/abc123"}})

	resp, _ := h.get("/download")
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("status = %d, want 302", resp.StatusCode)
	}
	if got := resp.Header.Get("Location"); got != h.media.URL+"/360.mp4" {
		t.Errorf("Location = %q", got)
	}
}

func TestChat(t *testing.T) {
	tests := []struct {
		name      string
		completer fakeCompleter
		want      string
	}{
		{name: "reply", completer: fakeCompleter{reply: "**Hi** there"}, want: "<strong>Hi</strong> there"},
		{name: "empty reply", completer: fakeCompleter{reply: "  "}, want: assistant.EmptyReplyText},
		{name: "failure", completer: fakeCompleter{err: errors.New("quota")}, want: assistant.ServiceErrorText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, tt.completer, nil)

			resp, _ := h.post("/chat", url.Values{"message": {"hello <b>"}, "return": {"/terms"}})
			expectRedirect(t, resp, "/terms?chat=1#chat")

			_, body := h.get("/terms?chat=1")
			if !strings.Contains(body, "hello &lt;b&gt;") {
				t.Error("user message should be shown escaped")
			}
			if !strings.Contains(body, tt.want) {
				t.Errorf("transcript missing %q", tt.want)
			}
			if !strings.Contains(body, "<strong>Ytdown Soraa</strong>") {
				t.Error("greeting should open the transcript")
			}
		})
	}
}

func TestAPILookup(t *testing.T) {
	h := newHarness(t, fakeCompleter{reply: "ok"}, nil)

	resp, _ := h.get("/api/lookup")
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("missing url: status = %d, want 400", resp.StatusCode)
	}

	resp, body := h.get("/api/lookup?url=" + url.QueryEscape("https://youtu.be/abc123"))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var got struct {
		State    string                `json:"state"`
		Result   *domain.VideoResult   `json:"result"`
		Variants []domain.MediaVariant `json:"variants"`
	}
	if err := json.Unmarshal([]byte(body), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.State != "success" || got.Result == nil || got.Result.ID != "abc123" {
		t.Errorf("unexpected lookup response: %s", body)
	}
	if len(got.Variants) != 1 || got.Variants[0].Label() != "360p" {
		t.Errorf("variants = %+v", got.Variants)
	}

	resp, body = h.get("/api/lookup?url=" + url.QueryEscape("https://youtu.be/broken"))
	if resp.StatusCode != http.StatusBadGateway {
		t.Errorf("failed lookup: status = %d, want 502", resp.StatusCode)
	}
	if !strings.Contains(body, `"state":"failed"`) {
		t.Errorf("failed lookup body = %s", body)
	}
}

func TestRateLimitedLookups(t *testing.T) {
	h := newHarness(t, fakeCompleter{reply: "ok"}, func(d *deps.Deps) {
		d.RateBurst = 1
		d.RateRefillMin = 1
	})

	resp, _ := h.post("/search", url.Values{"url": {"https://youtu.be/a"}})
	expectRedirect(t, resp, "/")

	resp, _ = h.post("/search", url.Values{"url": {"https://youtu.be/b"}})
	if resp.StatusCode != http.StatusTooManyRequests {
		t.Errorf("status = %d, want 429", resp.StatusCode)
	}

	resp, _ = h.get("/")
	if resp.StatusCode != http.StatusOK {
		t.Errorf("pages are not rate limited, got %d", resp.StatusCode)
	}
}

func TestProbes(t *testing.T) {
	h := newHarness(t, fakeCompleter{reply: "ok"}, func(d *deps.Deps) {
		d.AllowedHosts = []string{"ytdown.example.com"}
	})

	for _, path := range []string{"/healthz", "/readyz", "/infra"} {
		resp, body := h.get(path)
		if resp.StatusCode != http.StatusOK {
			t.Errorf("%s: status = %d, want 200", path, resp.StatusCode)
		}
		if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("%s: Content-Type = %q", path, ct)
		}
		if path == "/infra" && !strings.Contains(body, `"kind":"memory"`) {
			t.Errorf("infra should report the store kind: %s", body)
		}
	}

	// Host enforcement applies to pages, not probes.
	resp, _ := h.get("/")
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("unknown host: status = %d, want 403", resp.StatusCode)
	}
}

func TestInfraRestrictedToCIDRs(t *testing.T) {
	h := newHarness(t, fakeCompleter{reply: "ok"}, func(d *deps.Deps) {
		d.AllowedCIDRS = []string{"10.0.0.0/8"}
	})

	resp, _ := h.get("/infra")
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("status = %d, want 403", resp.StatusCode)
	}
}

func TestStaticAssets(t *testing.T) {
	h := newHarness(t, fakeCompleter{reply: "ok"}, nil)

	for _, path := range []string{"/static/style.css", "/static/app.js"} {
		resp, _ := h.get(path)
		if resp.StatusCode != http.StatusOK {
			t.Errorf("%s: status = %d, want 200", path, resp.StatusCode)
		}
	}
}
