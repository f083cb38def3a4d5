package site

import (
	"encoding/xml"
	"time"
)

const sitemapNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

type sitemapEntry struct {
	path     string
	modified time.Time
}

func renderSitemap(baseURL string, entries []sitemapEntry) ([]byte, error) {
	set := sitemapURLSet{Xmlns: sitemapNamespace}
	for _, entry := range entries {
		u := sitemapURL{Loc: siteURL(baseURL, entry.path)}
		if !entry.modified.IsZero() {
			u.LastMod = entry.modified.Format("2006-01-02")
		}
		set.URLs = append(set.URLs, u)
	}
	out, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), append(out, '\n')...), nil
}
