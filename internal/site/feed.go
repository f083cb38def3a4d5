package site

import (
	"encoding/xml"
	"time"

	"github.com/louisbranch/portfolio/internal/content"
	"github.com/louisbranch/portfolio/internal/site/templates"
)

const feedSize = 20

type rssFeed struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title         string    `xml:"title"`
	Link          string    `xml:"link"`
	Description   string    `xml:"description"`
	Language      string    `xml:"language"`
	LastBuildDate string    `xml:"lastBuildDate,omitempty"`
	Items         []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string   `xml:"title"`
	Link        string   `xml:"link"`
	GUID        rssGUID  `xml:"guid"`
	PubDate     string   `xml:"pubDate"`
	Description string   `xml:"description,omitempty"`
	Categories  []string `xml:"category"`
}

type rssGUID struct {
	Value       string `xml:",chardata"`
	IsPermaLink bool   `xml:"isPermaLink,attr"`
}

// renderFeed builds the RSS 2.0 document for the newest posts. Links are
// absolute when baseURL is set and site-relative otherwise.
func renderFeed(siteName, description, baseURL string, posts []content.Post) ([]byte, error) {
	posts = posts[:min(feedSize, len(posts))]

	channel := rssChannel{
		Title:       siteName,
		Link:        siteURL(baseURL, "/"),
		Description: description,
		Language:    "en",
	}
	var latest time.Time
	for _, post := range posts {
		if modified := post.LastModified(); modified.After(latest) {
			latest = modified
		}
		link := siteURL(baseURL, post.URLPath())
		categories := make([]string, 0, len(post.Tags))
		for _, tag := range post.Tags {
			categories = append(categories, content.TagLabel(tag))
		}
		channel.Items = append(channel.Items, rssItem{
			Title:       post.Title,
			Link:        link,
			GUID:        rssGUID{Value: link, IsPermaLink: baseURL != ""},
			PubDate:     post.Date.Format(time.RFC1123Z),
			Description: post.Summary,
			Categories:  categories,
		})
	}
	if !latest.IsZero() {
		channel.LastBuildDate = latest.Format(time.RFC1123Z)
	}

	out, err := xml.MarshalIndent(rssFeed{Version: "2.0", Channel: channel}, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), append(out, '\n')...), nil
}

func siteURL(baseURL, path string) string {
	if abs := templates.AbsoluteURL(baseURL, path); abs != "" {
		return abs
	}
	return path
}
