package templates

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/a-h/templ"
	"github.com/louisbranch/portfolio/internal/content"
	"github.com/louisbranch/portfolio/internal/platform/branding"
	"github.com/louisbranch/portfolio/internal/platform/icons"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	if err := c.Render(context.Background(), &buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	return buf.String()
}

func testPage(t *testing.T, title, path string) PageContext {
	t.Helper()
	registry, err := icons.Default()
	if err != nil {
		t.Fatalf("icons.Default: %v", err)
	}
	return PageContext{
		SiteName:    "Ada Example",
		Title:       title,
		CurrentPath: path,
		BaseURL:     "https://ada.example.com/",
		Icons:       registry,
		Year:        2026,
	}
}

func TestComposePageTitleAddsSiteNameSuffix(t *testing.T) {
	got := ComposePageTitle("Blog", "Ada")
	if want := "Blog | Ada"; got != want {
		t.Fatalf("ComposePageTitle = %q, want %q", got, want)
	}
}

func TestComposePageTitleSkipsExistingSuffix(t *testing.T) {
	got := ComposePageTitle("Blog | Ada", "Ada")
	if want := "Blog | Ada"; got != want {
		t.Fatalf("ComposePageTitle = %q, want %q", got, want)
	}
}

func TestComposePageTitleFallsBackToBrand(t *testing.T) {
	if got := ComposePageTitle("", ""); got != branding.SiteName {
		t.Fatalf("ComposePageTitle = %q, want %q", got, branding.SiteName)
	}
	if got := ComposePageTitle("Ada", "Ada"); got != "Ada" {
		t.Fatalf("ComposePageTitle = %q, want %q", got, "Ada")
	}
}

func TestAbsoluteURL(t *testing.T) {
	if got := AbsoluteURL("https://ada.example.com/", "/blog/"); got != "https://ada.example.com/blog/" {
		t.Fatalf("AbsoluteURL = %q", got)
	}
	if got := AbsoluteURL("", "/blog/"); got != "" {
		t.Fatalf("AbsoluteURL without base = %q, want empty", got)
	}
}

func TestLayoutIncludesSpriteOnceAndMarksCurrentSection(t *testing.T) {
	t.Parallel()

	page := testPage(t, "Blog", "/blog/some-post/")
	got := render(t, Layout(page, templ.Raw("<p>body</p>")))

	if n := strings.Count(got, `style="display:none"`); n != 1 {
		t.Fatalf("sprite count = %d, want 1", n)
	}
	for _, want := range []string{
		"<!doctype html>",
		"<title>Blog | Ada Example</title>",
		`<link rel="canonical" href="https://ada.example.com/blog/some-post/">`,
		`<a href="/blog/" aria-current="page">Blog</a>`,
		`<a href="/">Home</a>`,
		"<p>body</p>",
		"&copy; 2026 Ada Example",
		`<use href="#icon-rss"/>`,
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("layout missing %q:\n%s", want, got)
		}
	}
}

func TestLayoutWithoutIcons(t *testing.T) {
	t.Parallel()

	got := render(t, Layout(PageContext{Title: "Plain"}, nil))
	if strings.Contains(got, "<svg") {
		t.Fatalf("layout without registry rendered svg:\n%s", got)
	}
	if strings.Contains(got, `rel="canonical"`) {
		t.Fatalf("layout without base url rendered canonical link:\n%s", got)
	}
	if !strings.Contains(got, "<title>Plain | "+branding.SiteName+"</title>") {
		t.Fatalf("layout title mismatch:\n%s", got)
	}
}

func TestHomePage(t *testing.T) {
	t.Parallel()

	params := HomeParams{
		Profile: content.Profile{
			Name:      "Ada <Example>",
			Headline:  "Engineer",
			AboutHTML: "<p>About me</p>",
			Email:     "ada@example.com",
			Links: []content.Link{
				{Label: "GitHub", URL: "https://github.com/ada", Icon: "github"},
				{Label: "Bad", URL: "javascript:alert(1)", Icon: "code"},
			},
		},
		Featured: []content.Project{{Name: "Star", URL: "https://star.dev", Featured: true}},
		RecentPosts: []content.Post{{
			Slug: "hello", Title: "Hello", Date: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), ReadingMinutes: 3,
		}},
		Work: []content.Job{{
			Title: "Staff Engineer", Company: "Now Co", Start: content.NewYearMonth(2023, time.February),
			Highlights: []string{"Shipped things"},
		}},
	}
	got := render(t, HomePage(testPage(t, "", "/"), params))

	for _, want := range []string{
		"<h1>Ada &lt;Example&gt;</h1>",
		"<p>About me</p>",
		`<a href="https://github.com/ada" rel="me">`,
		`class="icon icon-link" aria-hidden="true">`,
		`href="mailto:ada@example.com"`,
		`<a href="https://star.dev">Star</a>`,
		`<a href="/blog/hello/">Hello</a>`,
		`<time datetime="2024-03-05">March 5, 2024</time>`,
		"3 min read",
		"Feb 2023 – Present",
		"<li>Shipped things</li>",
		`<a href="/" aria-current="page">Home</a>`,
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("home page missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "javascript:") {
		t.Fatalf("home page rendered unsafe url:\n%s", got)
	}
	if strings.Contains(got, `href="#icon-github"`) {
		t.Fatalf("profile links should inline their icons:\n%s", got)
	}
}

func TestPostPage(t *testing.T) {
	t.Parallel()

	post := content.Post{
		Slug:           "hello",
		Title:          "Hello & Welcome",
		Date:           time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
		Updated:        time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
		Tags:           []string{"go", "web-dev"},
		Body:           "<p>Rendered body</p>",
		ReadingMinutes: 1,
	}
	got := render(t, PostPage(testPage(t, post.Title, post.URLPath()), post))

	for _, want := range []string{
		"<title>Hello &amp; Welcome | Ada Example</title>",
		"<h1>Hello &amp; Welcome</h1>",
		"updated <time datetime=\"2024-04-01\">",
		"1 min read",
		`<a href="/tags/web-dev/">Web Dev</a>`,
		"<p>Rendered body</p>",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("post page missing %q:\n%s", want, got)
		}
	}
}

func TestBlogIndexAndTagPages(t *testing.T) {
	t.Parallel()

	posts := []content.Post{{Slug: "a", Title: "A", Summary: "First <b>post</b>", ReadingMinutes: 2}}
	tags := []content.TagCount{{Tag: "go", Label: "Go", Count: 4}}

	index := render(t, BlogIndexPage(testPage(t, "Blog", "/blog/"), posts, tags))
	for _, want := range []string{
		`<a href="/blog/a/">A</a>`,
		"First &lt;b&gt;post&lt;/b&gt;",
		`<a href="/tags/go/">Go <span class="count">4</span></a>`,
		"2 min read",
	} {
		if !strings.Contains(index, want) {
			t.Fatalf("blog index missing %q:\n%s", want, index)
		}
	}

	empty := render(t, BlogIndexPage(testPage(t, "Blog", "/blog/"), nil, nil))
	if !strings.Contains(empty, "No posts yet.") {
		t.Fatalf("empty blog index missing placeholder:\n%s", empty)
	}

	tag := render(t, TagPage(testPage(t, "Go", "/tags/go/"), tags[0], posts))
	if !strings.Contains(tag, `<a href="/blog/a/">A</a>`) || !strings.Contains(tag, "#icon-tag") {
		t.Fatalf("tag page mismatch:\n%s", tag)
	}
}

func TestProjectsPage(t *testing.T) {
	t.Parallel()

	projects := []content.Project{
		{Name: "Star", Summary: "Featured", Repo: "https://github.com/ada/star", Featured: true, Tags: []string{"go"}},
		{Name: "Plain"},
	}
	got := render(t, ProjectsPage(testPage(t, "Projects", "/projects/"), projects))
	for _, want := range []string{
		`<li class="featured"><h3>`,
		`<a href="https://github.com/ada/star">`,
		"#icon-external-link",
		"Plain</h3>",
		`<a href="/projects/" aria-current="page">Projects</a>`,
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("projects page missing %q:\n%s", want, got)
		}
	}
}

func TestNotFoundPage(t *testing.T) {
	t.Parallel()

	got := render(t, NotFoundPage(testPage(t, "", "/404.html")))
	if !strings.Contains(got, "<title>Page not found | Ada Example</title>") {
		t.Fatalf("not found title mismatch:\n%s", got)
	}
	if !strings.Contains(got, `<a href="/">`) {
		t.Fatalf("not found page missing home link:\n%s", got)
	}
}

func TestUnknownIconFailsRender(t *testing.T) {
	t.Parallel()

	page := testPage(t, "", "/")
	params := HomeParams{Profile: content.Profile{Name: "Ada", Links: []content.Link{{Label: "X", URL: "https://x", Icon: "nope"}}}}
	var buf bytes.Buffer
	if err := HomePage(page, params).Render(context.Background(), &buf); err == nil {
		t.Fatal("expected unknown icon error")
	}
}
