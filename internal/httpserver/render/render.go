// Package render holds the HTML views and static assets of the web interface.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"

	"github.com/MrSnakeDoc/ytdown/internal/assistant"
)

// View names.
const (
	PageHome    = "home"
	PageFAQ     = "faq"
	PagePrivacy = "privacy"
	PageTerms   = "terms"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// pageFiles maps a view to the template defining its "content" block.
var pageFiles = map[string]string{
	PageHome:    "templates/home.html",
	PageFAQ:     "templates/faq.html",
	PagePrivacy: "templates/legal.html",
	PageTerms:   "templates/legal.html",
}

var funcs = template.FuncMap{
	"markup":    assistant.RenderMarkup,
	"highlight": highlight,
	"inc":       func(i int) int { return i + 1 },
}

// Renderer executes the layout with one page body.
type Renderer struct {
	pages map[string]*template.Template
}

// New parses the embedded templates. Each page gets its own copy of the
// layout so "content" blocks do not collide.
func New() (*Renderer, error) {
	layout, err := template.New("layout.html").Funcs(funcs).ParseFS(templateFS, "templates/layout.html")
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}

	pages := make(map[string]*template.Template, len(pageFiles))
	for page, file := range pageFiles {
		t, err := layout.Clone()
		if err != nil {
			return nil, fmt.Errorf("clone layout for %s: %w", page, err)
		}
		if _, err := t.ParseFS(templateFS, file); err != nil {
			return nil, fmt.Errorf("parse %s: %w", file, err)
		}
		pages[page] = t
	}
	return &Renderer{pages: pages}, nil
}

// Render writes the page with the given status. The page is rendered into a
// buffer first so a template error never leaves a half-written response; the
// returned error is always a template error and nothing was written.
func (r *Renderer) Render(w http.ResponseWriter, status int, v *View) error {
	t, ok := r.pages[v.Page]
	if !ok {
		return fmt.Errorf("render: unknown page %q", v.Page)
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", v); err != nil {
		return fmt.Errorf("render %s: %w", v.Page, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
	return nil
}

// Static serves the embedded assets under /static/.
func Static() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err) // the directory is embedded at build time
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}

// highlight wraps the first occurrence of word in an accent span.
func highlight(text, word string) template.HTML {
	before, after, found := strings.Cut(text, word)
	if !found {
		return template.HTML(template.HTMLEscapeString(text))
	}
	return template.HTML(template.HTMLEscapeString(before) +
		`<span class="accent">` + template.HTMLEscapeString(word) + `</span>` +
		template.HTMLEscapeString(after))
}
