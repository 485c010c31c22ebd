// Package feed produces the RSS syndication document for a site's posts.
package feed

import (
	"encoding/xml"
	"time"

	"git.home.luguber.info/inful/sitebuilder/internal/site"
)

type rssXML struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	Description string    `xml:"description"`
	Items       []rssItem `xml:"item"`
}

type rssItem struct {
	Title   string `xml:"title"`
	Link    string `xml:"link"`
	PubDate string `xml:"pubDate"`
	GUID    string `xml:"guid"`
}

// Renderer produces a feed document from a site. It is a pure function of
// the site model.
type Renderer interface {
	Render(s *site.Site) string
}

// RSS is the default feed Renderer, emitting RSS 2.0.
type RSS struct{}

// Render builds the feed with one item per post, newest first.
func (RSS) Render(s *site.Site) string {
	posts := site.SortByDateDesc(s.Posts)

	items := make([]rssItem, 0, len(posts))
	for _, p := range posts {
		postURL := s.Config.BaseURL + "/" + p.Name + ".html"
		items = append(items, rssItem{
			Title:   p.Frontmatter.Title,
			Link:    postURL,
			PubDate: p.Frontmatter.Date.Format(time.RFC1123Z),
			GUID:    postURL,
		})
	}

	doc := rssXML{
		Version: "2.0",
		Channel: rssChannel{
			Title:       s.Config.Title,
			Link:        s.Config.BaseURL,
			Description: s.Config.Description,
			Items:       items,
		},
	}

	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		// The document is built from plain strings; marshalling cannot
		// realistically fail, but stay total like the template engine.
		return xml.Header
	}
	return xml.Header + string(out) + "\n"
}
