// Package templates renders the site's pages as templ components.
package templates

import (
	"strings"

	"github.com/louisbranch/portfolio/internal/platform/branding"
	"github.com/louisbranch/portfolio/internal/platform/icons"
)

// PageContext provides shared layout context for pages.
type PageContext struct {
	SiteName    string
	Title       string
	Description string
	// CurrentPath is the site-relative URL of the page, used for the active
	// navigation entry and the canonical link.
	CurrentPath string
	// BaseURL is the public origin; canonical links are omitted when empty.
	BaseURL string
	Icons   *icons.Registry
	Year    int
}

// ComposePageTitle joins a page title with the site name.
func ComposePageTitle(title, siteName string) string {
	siteName = strings.TrimSpace(siteName)
	if siteName == "" {
		siteName = branding.SiteName
	}
	title = strings.TrimSpace(title)
	if title == "" || title == siteName {
		return siteName
	}
	if strings.HasSuffix(title, branding.TitleSeparator+siteName) {
		return title
	}
	return title + branding.TitleSeparator + siteName
}

// AbsoluteURL resolves a site-relative path against baseURL.
func AbsoluteURL(baseURL, path string) string {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return ""
	}
	return baseURL + "/" + strings.TrimLeft(path, "/")
}

func (p PageContext) siteName() string {
	if name := strings.TrimSpace(p.SiteName); name != "" {
		return name
	}
	return branding.SiteName
}

// TagPath is the site-relative URL of a tag page.
func TagPath(tag string) string {
	return "/tags/" + tag + "/"
}

type navItem struct {
	label string
	path  string
}

var navigation = []navItem{
	{label: "Home", path: "/"},
	{label: "Blog", path: "/blog/"},
	{label: "Projects", path: "/projects/"},
}

func isCurrentSection(current, path string) bool {
	if path == "/" {
		return current == "/" || current == ""
	}
	return strings.HasPrefix(current, path)
}
