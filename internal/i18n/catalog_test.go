package i18n

import (
	"strings"
	"testing"
	"testing/fstest"
)

func TestLoadEmbedded(t *testing.T) {
	b, err := Load(ID)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if b.Default() != ID {
		t.Errorf("Default() = %s, want id", b.Default())
	}

	for _, lang := range Supported {
		c := b.For(lang)
		if c.Lang != lang {
			t.Errorf("For(%s).Lang = %s", lang, c.Lang)
		}
		if c.Greeting == "" {
			t.Errorf("%s: greeting is empty", lang)
		}
		if len(c.FAQ) != 10 {
			t.Errorf("%s: %d FAQ entries, want 10", lang, len(c.FAQ))
		}
		if len(c.Privacy.Sections) == 0 || len(c.Terms.Sections) == 0 {
			t.Errorf("%s: legal documents are empty", lang)
		}
	}
}

func TestCatalogsShareKeys(t *testing.T) {
	b, err := Load(ID)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	idKeys := strings.Join(b.For(ID).Keys(), ",")
	enKeys := strings.Join(b.For(EN).Keys(), ",")
	if idKeys != enKeys {
		t.Errorf("catalog keys differ:\nid: %s\nen: %s", idKeys, enKeys)
	}

	for _, key := range []string{"heroTitle", "placeholder", "btnDownload", "wait", "get", "errorCORS", "errorLookup", "formatUnavailable"} {
		for _, lang := range Supported {
			if got := b.For(lang).T(key); got == key {
				t.Errorf("%s: missing message %q", lang, key)
			}
		}
	}
}

func TestGreetingPerLanguage(t *testing.T) {
	b, err := Load(ID)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := b.For(ID).Greeting; got != "Halo! Ada yang bisa saya bantu terkait **Ytdown Soraa**?" {
		t.Errorf("id greeting = %q", got)
	}
	if got := b.For(EN).Greeting; got != "Hello! Need help with **Ytdown Soraa**?" {
		t.Errorf("en greeting = %q", got)
	}
}

func TestTFallsBackToKey(t *testing.T) {
	b, _ := Load(EN)
	if got := b.For(EN).T("noSuchKey"); got != "noSuchKey" {
		t.Errorf("T() = %q, want key echo", got)
	}
	var nilCatalog *Catalog
	if got := nilCatalog.T("x"); got != "x" {
		t.Errorf("nil T() = %q", got)
	}
}

func TestForUnknownUsesFallback(t *testing.T) {
	b, _ := Load(EN)
	if got := b.For(Lang("fr")).Lang; got != EN {
		t.Errorf("For(fr) = %s, want en", got)
	}
}

func TestLoadFSErrors(t *testing.T) {
	valid := "lang: %s\nmessages:\n  a: b\n"

	tests := []struct {
		name     string
		fsys     fstest.MapFS
		fallback Lang
	}{
		{
			name:     "bad fallback",
			fsys:     fstest.MapFS{},
			fallback: Lang("fr"),
		},
		{
			name: "missing en",
			fsys: fstest.MapFS{
				"locales/id.yaml": {Data: []byte(strings.ReplaceAll(valid, "%s", "id"))},
			},
			fallback: ID,
		},
		{
			name: "lang mismatch",
			fsys: fstest.MapFS{
				"locales/id.yaml": {Data: []byte(strings.ReplaceAll(valid, "%s", "en"))},
				"locales/en.yaml": {Data: []byte(strings.ReplaceAll(valid, "%s", "en"))},
			},
			fallback: ID,
		},
		{
			name: "no messages",
			fsys: fstest.MapFS{
				"locales/id.yaml": {Data: []byte("lang: id\n")},
				"locales/en.yaml": {Data: []byte(strings.ReplaceAll(valid, "%s", "en"))},
			},
			fallback: ID,
		},
		{
			name: "invalid yaml",
			fsys: fstest.MapFS{
				"locales/id.yaml": {Data: []byte("lang: [id\n")},
				"locales/en.yaml": {Data: []byte(strings.ReplaceAll(valid, "%s", "en"))},
			},
			fallback: ID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadFS(tt.fsys, tt.fallback); err == nil {
				t.Error("LoadFS() expected error")
			}
		})
	}
}

func TestParseLang(t *testing.T) {
	tests := map[string]Lang{
		"id":   ID,
		"EN":   EN,
		" en ": EN,
	}
	for in, want := range tests {
		got, ok := ParseLang(in)
		if !ok || got != want {
			t.Errorf("ParseLang(%q) = %s, %v, want %s", in, got, ok, want)
		}
	}
	if _, ok := ParseLang("fr"); ok {
		t.Error("ParseLang(fr) should fail")
	}
	if ID.Toggle() != EN || EN.Toggle() != ID {
		t.Error("Toggle() should swap id and en")
	}
}
