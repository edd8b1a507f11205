package i18n

// catalogFile mirrors one locales/<lang>.yaml document.
type catalogFile struct {
	Lang     string            `yaml:"lang"`
	Greeting string            `yaml:"greeting"`
	Messages map[string]string `yaml:"messages"`
	FAQ      []FAQEntry        `yaml:"faq"`
	Privacy  Document          `yaml:"privacy"`
	Terms    Document          `yaml:"terms"`
}

// FAQEntry is one question/answer pair of the help page.
type FAQEntry struct {
	Q    string `yaml:"q"`
	A    string `yaml:"a"`
	Icon string `yaml:"icon,omitempty"`
}

// Document is a legal page (privacy or terms).
type Document struct {
	Title    string    `yaml:"title"`
	Updated  string    `yaml:"updated"`
	Sections []Section `yaml:"sections"`
}

// Section holds either a paragraph, a bullet list, or both.
type Section struct {
	Title string   `yaml:"title"`
	Body  string   `yaml:"body,omitempty"`
	Items []string `yaml:"items,omitempty"`
}
