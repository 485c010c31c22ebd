// Package render assembles template contexts and renders pages against
// their theme layouts.
package render

import (
	"git.home.luguber.info/inful/sitebuilder/internal/site"
)

// Context builds the data structure a template sees for one target page:
// the page itself with frontmatter flattened in, the sorted sibling
// collections, the site configuration and the theme metadata.
func Context(s *site.Site, page site.Page) map[string]any {
	return map[string]any{
		"page":   page.Context(),
		"pages":  site.Normalize(s.Pages),
		"posts":  site.Normalize(s.Posts),
		"config": s.Config.Context(),
		"theme":  s.Theme.Context(),
	}
}
