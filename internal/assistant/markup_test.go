package assistant

import "testing"

func TestRenderMarkup(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "bold", input: "Need help with **Ytdown Soraa**?", expected: "Need help with <strong>Ytdown Soraa</strong>?"},
		{name: "em", input: "a *b* c", expected: "a <em>b</em> c"},
		{name: "code", input: "run `ls`", expected: `run <code class="chat-code">ls</code>`},
		{name: "newline", input: "a\nb", expected: "a<br />b"},
		{name: "html is escaped", input: "<script>alert(1)</script>", expected: "&lt;script&gt;alert(1)&lt;/script&gt;"},
		{name: "escaped inside bold", input: "**<b>x</b>**", expected: "<strong>&lt;b&gt;x&lt;/b&gt;</strong>"},
		{name: "quotes", input: `say "hi"`, expected: "say &#34;hi&#34;"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := string(RenderMarkup(tt.input)); got != tt.expected {
				t.Errorf("RenderMarkup(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
