package render

import (
	"fmt"

	"github.com/MrSnakeDoc/ytdown/internal/domain"
	"github.com/MrSnakeDoc/ytdown/internal/i18n"
	"github.com/MrSnakeDoc/ytdown/internal/lookup"
)

// SupportURL is the contact link shown in the header, footer and FAQ.
const SupportURL = "https://wa.me/6288242449961"

// View is the data every page template receives.
type View struct {
	Page    string
	Lang    i18n.Lang
	Catalog *i18n.Catalog
	AppName string
	Version string
	Year    int

	// Home
	Search       lookup.Snapshot
	History      []domain.HistoryEntry
	DownloadMode string // "attachment" opens /download, "redirect" opens /open in a new tab
	ShareURL     string

	// Chat widget, on every page
	Chat ChatView
}

// ChatView is the rendered state of the chat widget.
type ChatView struct {
	Open     bool
	Pending  bool
	Messages []domain.ChatMessage
}

// T resolves a message key in the active language.
func (v *View) T(key string) string {
	return v.Catalog.T(key)
}

// NextLang is the language the toggle switches to.
func (v *View) NextLang() i18n.Lang {
	return v.Lang.Toggle()
}

// Languages lists the languages offered by the switcher.
func (v *View) Languages() []i18n.Lang {
	return i18n.Supported
}

// Document returns the legal document for the privacy and terms views.
func (v *View) Document() i18n.Document {
	if v.Page == PageTerms {
		return v.Catalog.Terms
	}
	return v.Catalog.Privacy
}

// ShareText is the message offered with the share action.
func (v *View) ShareText() string {
	if v.Search.Result == nil {
		return ""
	}
	return fmt.Sprintf(v.T("shareText"), v.Search.Result.Title)
}

// Loading reports whether a lookup is in flight for this session.
func (v *View) Loading() bool {
	return v.Search.State == lookup.Loading
}

// SupportURL is exposed to templates.
func (v *View) SupportURL() string {
	return SupportURL
}
