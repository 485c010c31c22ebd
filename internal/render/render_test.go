package render

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/sitebuilder/internal/errors"
	"git.home.luguber.info/inful/sitebuilder/internal/site"
)

func testSite(t *testing.T) *site.Site {
	t.Helper()

	jan := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)
	jun := time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC)

	return &site.Site{
		Config: site.Config{
			Title:  "Test Site",
			Output: site.OutputConfig{Directory: filepath.Join(t.TempDir(), "out")},
		},
		Theme: site.Theme{
			Layouts: []site.File{
				{Name: "post.html.mustache", Content: []byte("<h1>{{.page.title}}</h1>{{.page.content}}")},
				{Name: "index.html", Content: []byte("{{.config.title}}: {{len .posts}} posts")},
			},
			Assets: []site.File{{Name: "style.css"}},
		},
		Pages: []site.Page{
			{Name: "index", Frontmatter: site.Frontmatter{Layout: "index", Title: "Home"}},
		},
		Posts: []site.Page{
			{Name: "a", Frontmatter: site.Frontmatter{Layout: "post", Title: "A", Date: jan}},
			{Name: "b", Frontmatter: site.Frontmatter{Layout: "post", Title: "B", Date: jun}},
		},
	}
}

func TestContext_Entries(t *testing.T) {
	s := testSite(t)

	ctx := Context(s, s.Posts[0])

	require.Contains(t, ctx, "page")
	require.Contains(t, ctx, "pages")
	require.Contains(t, ctx, "posts")
	require.Contains(t, ctx, "config")
	require.Contains(t, ctx, "theme")

	page := ctx["page"].(map[string]any)
	assert.Equal(t, "A", page["title"])

	posts := ctx["posts"].([]map[string]any)
	require.Len(t, posts, 2)
	assert.Equal(t, "b", posts[0]["name"], "posts are reverse chronological")
	assert.Equal(t, "a", posts[1]["name"])
}

func TestRenderPage(t *testing.T) {
	s := testSite(t)
	r := NewRenderer(nil)

	post := s.Posts[1]
	post.Content = "<p>hello</p>"

	out, err := r.RenderPage(s, post)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(s.Config.Output.Directory, "b.html"), out.Path)
	assert.Equal(t, "b.html", out.Name)
	assert.Equal(t, "<h1>B</h1><p>hello</p>", string(out.Content))
}

func TestRenderPage_LayoutMatchesFirstDotSegment(t *testing.T) {
	s := testSite(t)
	r := NewRenderer(nil)

	// "post" resolves post.html.mustache.
	_, err := r.RenderPage(s, s.Posts[0])
	assert.NoError(t, err)
}

func TestRenderPage_LayoutNotFound(t *testing.T) {
	s := testSite(t)
	r := NewRenderer(nil)

	page := site.Page{Name: "x", Frontmatter: site.Frontmatter{Layout: "missing"}}

	_, err := r.RenderPage(s, page)
	require.Error(t, err)
	assert.True(t, errors.IsCategory(err, errors.CategoryLayout))
	assert.Contains(t, err.Error(), `"missing"`)
}

func TestRenderPage_ReadsLayoutFromDisk(t *testing.T) {
	dir := t.TempDir()
	layoutPath := filepath.Join(dir, "page.html")
	require.NoError(t, os.WriteFile(layoutPath, []byte("disk: {{.page.title}}"), 0644))

	s := testSite(t)
	s.Theme.Layouts = append(s.Theme.Layouts, site.File{Path: layoutPath, Name: "page.html"})

	r := NewRenderer(nil)
	out, err := r.RenderPage(s, site.Page{Name: "p", Frontmatter: site.Frontmatter{Layout: "page", Title: "P"}})
	require.NoError(t, err)
	assert.Equal(t, "disk: P", string(out.Content))
}

func TestRenderPage_UnreadableLayout(t *testing.T) {
	s := testSite(t)
	s.Theme.Layouts = []site.File{{Path: filepath.Join(t.TempDir(), "gone.html"), Name: "gone.html"}}

	r := NewRenderer(nil)
	_, err := r.RenderPage(s, site.Page{Name: "x", Frontmatter: site.Frontmatter{Layout: "gone"}})
	require.Error(t, err)
	assert.True(t, errors.IsCategory(err, errors.CategoryFileSystem))
}

func TestTemplateEngine_Total(t *testing.T) {
	e := TemplateEngine{}

	// Parse failure renders the source text unchanged.
	assert.Equal(t, "{{.broken", e.Render("{{.broken", nil))

	// Missing keys substitute zero values instead of failing.
	out := e.Render("x{{.nope}}y", map[string]any{})
	assert.Contains(t, out, "x")
	assert.Contains(t, out, "y")
}
