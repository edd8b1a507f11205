package assistant

import (
	"html/template"
	"regexp"
	"strings"
)

var (
	reBold = regexp.MustCompile(`\*\*(.*?)\*\*`)
	reEm   = regexp.MustCompile(`\*(.*?)\*`)
	reCode = regexp.MustCompile("`(.*?)`")
)

// RenderMarkup turns chat text into safe HTML. The text is escaped first; only
// **bold**, *em*, `code` and line breaks become markup.
func RenderMarkup(text string) template.HTML {
	s := template.HTMLEscapeString(text)
	s = reBold.ReplaceAllString(s, "<strong>$1</strong>")
	s = reEm.ReplaceAllString(s, "<em>$1</em>")
	s = reCode.ReplaceAllString(s, `<code class="chat-code">$1</code>`)
	s = strings.ReplaceAll(s, "\n", "<br />")
	return template.HTML(s) // escaped above
}
