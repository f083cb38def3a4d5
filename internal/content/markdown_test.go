package content

import (
	"strings"
	"testing"
)

func TestRendererRendersMarkdown(t *testing.T) {
	t.Parallel()

	source := "# Getting Started\n\nSome ~~old~~ *new* text.\n\n| a | b |\n|---|---|\n| 1 | 2 |\n\n```go\nfmt.Println(\"hi\")\n```\n"
	html, err := NewRenderer().Render([]byte(source))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	got := string(html)
	for _, want := range []string{
		`<h1 id="getting-started">Getting Started</h1>`,
		"<del>old</del>",
		"<em>new</em>",
		"<table>",
		`<code class="language-go">`,
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("Render output missing %q:\n%s", want, got)
		}
	}
}

func TestRendererSanitizesRawHTML(t *testing.T) {
	t.Parallel()

	source := "Hello\n\n<script>alert(1)</script>\n\n<a href=\"javascript:alert(1)\" onclick=\"x()\">link</a>\n"
	html, err := NewRenderer().Render([]byte(source))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	got := string(html)
	for _, banned := range []string{"<script", "alert(1)</script>", "javascript:", "onclick"} {
		if strings.Contains(got, banned) {
			t.Fatalf("Render output contains %q:\n%s", banned, got)
		}
	}
	if !strings.Contains(got, "<p>Hello</p>") {
		t.Fatalf("Render output lost paragraph:\n%s", got)
	}
}
