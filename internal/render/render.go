package render

import (
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/sitebuilder/internal/errors"
	"git.home.luguber.info/inful/sitebuilder/internal/site"
)

// Renderer turns pages into output files by resolving their layout against
// the theme and invoking the template engine. It performs no writes; the
// only side effect is reading layout files that were loaded lazily.
type Renderer struct {
	engine Engine
}

// NewRenderer creates a Renderer. A nil engine falls back to the default
// text/template engine.
func NewRenderer(engine Engine) *Renderer {
	if engine == nil {
		engine = TemplateEngine{}
	}
	return &Renderer{engine: engine}
}

// RenderPage produces the output file for one page: resolve the declared
// layout, read its content, substitute the page's render context.
//
// The output path is {output_dir}/{page_name}.html; writing it is a later
// phase's job.
func (r *Renderer) RenderPage(s *site.Site, page site.Page) (site.File, error) {
	layout, ok := resolveLayout(s.Theme, page.Frontmatter.Layout)
	if !ok {
		return site.File{}, errors.LayoutNotFound(page.Frontmatter.Layout)
	}

	content := layout.Content
	if content == nil {
		data, err := os.ReadFile(layout.Path)
		if err != nil {
			return site.File{}, errors.IO(err, layout.Path)
		}
		content = data
	}

	rendered := r.engine.Render(string(content), Context(s, page))

	name := page.Name + ".html"
	return site.File{
		Path:    filepath.Join(s.Config.Output.Directory, name),
		Name:    name,
		Content: []byte(rendered),
	}, nil
}

// resolveLayout matches the requested layout name against the first
// dot-delimited segment of each layout file's basename.
func resolveLayout(theme site.Theme, name string) (site.File, bool) {
	for _, f := range theme.Layouts {
		if f.LayoutName() == name {
			return f, true
		}
	}
	return site.File{}, false
}
