package i18n

import "strings"

// Lang is a supported interface language.
type Lang string

const (
	ID Lang = "id"
	EN Lang = "en"
)

// Supported lists every language with a catalog, default first.
var Supported = []Lang{ID, EN}

// ParseLang normalizes a language code. Unknown codes report false.
func ParseLang(s string) (Lang, bool) {
	switch Lang(strings.ToLower(strings.TrimSpace(s))) {
	case ID:
		return ID, true
	case EN:
		return EN, true
	}
	return "", false
}

// Toggle returns the other supported language.
func (l Lang) Toggle() Lang {
	if l == EN {
		return ID
	}
	return EN
}

func (l Lang) String() string { return string(l) }
