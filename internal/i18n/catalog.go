// Package i18n holds the embedded id/en catalogs and the per-session
// language preference.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var embedded embed.FS

// Catalog is the text of one language.
type Catalog struct {
	Lang     Lang
	Greeting string
	FAQ      []FAQEntry
	Privacy  Document
	Terms    Document
	messages map[string]string
}

// T returns the message for key, or the key itself when it is missing.
func (c *Catalog) T(key string) string {
	if c == nil {
		return key
	}
	if msg, ok := c.messages[key]; ok {
		return msg
	}
	return key
}

// Keys returns the message keys in sorted order.
func (c *Catalog) Keys() []string {
	keys := make([]string, 0, len(c.messages))
	for k := range c.messages {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Bundle groups the catalogs of every supported language.
type Bundle struct {
	catalogs map[Lang]*Catalog
	fallback Lang
}

// Load parses the embedded catalogs.
func Load(fallback Lang) (*Bundle, error) {
	return LoadFS(embedded, fallback)
}

// LoadFS parses locales/<lang>.yaml for every supported language from fsys.
func LoadFS(fsys fs.FS, fallback Lang) (*Bundle, error) {
	if _, ok := ParseLang(string(fallback)); !ok {
		return nil, fmt.Errorf("unsupported fallback language %q", fallback)
	}

	b := &Bundle{
		catalogs: make(map[Lang]*Catalog, len(Supported)),
		fallback: fallback,
	}
	for _, lang := range Supported {
		c, err := loadCatalog(fsys, lang)
		if err != nil {
			return nil, err
		}
		b.catalogs[lang] = c
	}
	return b, nil
}

func loadCatalog(fsys fs.FS, lang Lang) (*Catalog, error) {
	path := "locales/" + string(lang) + ".yaml"
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse catalog %s: %w", path, err)
	}
	if file.Lang != string(lang) {
		return nil, fmt.Errorf("catalog %s declares lang %q", path, file.Lang)
	}
	if len(file.Messages) == 0 {
		return nil, fmt.Errorf("catalog %s has no messages", path)
	}

	return &Catalog{
		Lang:     lang,
		Greeting: file.Greeting,
		FAQ:      file.FAQ,
		Privacy:  file.Privacy,
		Terms:    file.Terms,
		messages: file.Messages,
	}, nil
}

// For returns the catalog of lang, or the fallback catalog.
func (b *Bundle) For(lang Lang) *Catalog {
	if c, ok := b.catalogs[lang]; ok {
		return c
	}
	return b.catalogs[b.fallback]
}

// Default is the language used when a session has no preference.
func (b *Bundle) Default() Lang { return b.fallback }
