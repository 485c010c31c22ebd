// Package site defines the immutable site model a build operates on: the
// configuration, theme, pages and posts produced by site construction, plus
// the per-entity context views exposed to templates.
package site

import (
	"strings"
	"time"
)

// Site is the aggregate root for one build. It is constructed once per build
// invocation and never mutated afterwards.
type Site struct {
	Config Config
	Theme  Theme
	Pages  []Page
	Posts  []Page
}

// Documents returns pages followed by posts, the order the render phase
// processes them in.
func (s *Site) Documents() []Page {
	docs := make([]Page, 0, len(s.Pages)+len(s.Posts))
	docs = append(docs, s.Pages...)
	docs = append(docs, s.Posts...)
	return docs
}

// Config holds the site-wide settings.
type Config struct {
	Title       string         `yaml:"title"`
	Description string         `yaml:"description,omitempty"`
	BaseURL     string         `yaml:"base_url,omitempty"`
	Output      OutputConfig   `yaml:"output"`
	Feed        bool           `yaml:"feed,omitempty"`
	Build       BuildConfig    `yaml:"build,omitempty"`
	Params      map[string]any `yaml:"params,omitempty"`
}

// OutputConfig holds output location settings.
type OutputConfig struct {
	Directory string `yaml:"directory"`
}

// BuildConfig holds build performance tuning knobs.
type BuildConfig struct {
	// Concurrency bounds the worker count of each parallel phase.
	// 0 keeps the default of one worker per item.
	Concurrency int `yaml:"concurrency,omitempty"`
}

// Context returns the flattened key-value view of the configuration exposed
// to templates. Params entries never shadow the built-in keys.
func (c Config) Context() map[string]any {
	ctx := make(map[string]any, len(c.Params)+4)
	for k, v := range c.Params {
		ctx[k] = v
	}
	ctx["title"] = c.Title
	ctx["description"] = c.Description
	ctx["base_url"] = c.BaseURL
	ctx["output"] = c.Output.Directory
	return ctx
}

// Theme is the bundle of layouts and static assets for a site.
type Theme struct {
	Layouts []File
	Assets  []File
}

// Context returns the flattened theme view exposed to templates, including
// the asset basenames.
func (t Theme) Context() map[string]any {
	assets := make([]string, 0, len(t.Assets))
	for _, a := range t.Assets {
		assets = append(assets, a.Name)
	}
	layouts := make([]string, 0, len(t.Layouts))
	for _, l := range t.Layouts {
		layouts = append(layouts, l.LayoutName())
	}
	return map[string]any{
		"assets":  assets,
		"layouts": layouts,
	}
}

// Frontmatter is the structured metadata attached to a page.
type Frontmatter struct {
	Layout string
	Title  string
	Date   time.Time
	Extra  map[string]any
}

// Context returns the flattened key-value view of the frontmatter. Known
// fields never get shadowed by Extra entries.
func (f Frontmatter) Context() map[string]any {
	ctx := make(map[string]any, len(f.Extra)+3)
	for k, v := range f.Extra {
		ctx[k] = v
	}
	ctx["layout"] = f.Layout
	ctx["title"] = f.Title
	ctx["date"] = f.Date
	return ctx
}

// Page is a renderable document. Posts are pages with a date.
type Page struct {
	// SourcePath is where the document was read from.
	SourcePath string

	// Name is the output-relevant filename with its extension stripped.
	Name string

	// Frontmatter holds the document's metadata.
	Frontmatter Frontmatter

	// Content is the document body after markup conversion.
	Content string
}

// Meta returns the frontmatter-only view used for sibling collections in a
// render context.
func (p Page) Meta() map[string]any {
	ctx := p.Frontmatter.Context()
	ctx["name"] = p.Name
	return ctx
}

// Context returns the full template view of the page: frontmatter flattened
// in, plus name and body content.
func (p Page) Context() map[string]any {
	ctx := p.Frontmatter.Context()
	ctx["name"] = p.Name
	ctx["content"] = p.Content
	return ctx
}

// File is a (path, basename, content) triple used for both input artifacts
// (layouts, assets) and output artifacts (rendered pages).
type File struct {
	Path    string
	Name    string
	Content []byte
}

// LayoutName is the first dot-delimited segment of the basename; layout
// resolution matches against it, so `post.html.tmpl` answers to `post`.
func (f File) LayoutName() string {
	if i := strings.IndexByte(f.Name, '.'); i >= 0 {
		return f.Name[:i]
	}
	return f.Name
}
