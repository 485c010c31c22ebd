package load

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/sitebuilder/internal/errors"
)

func writeProject(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		target := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(target), 0755))
		require.NoError(t, os.WriteFile(target, []byte(content), 0644))
	}
	return root
}

func TestLoadSite_MissingPath(t *testing.T) {
	_, err := LoadSite(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.True(t, errors.IsCategory(err, errors.CategoryPath))
}

func TestLoadSite_FullProject(t *testing.T) {
	root := writeProject(t, map[string]string{
		"config.yaml":             "title: Blog\nfeed: true\noutput:\n  directory: out\n",
		"pages/index.md":          "---\nlayout: default\ntitle: Home\n---\n# Hi\n",
		"posts/first-post.md":     "---\nlayout: post\ndate: 2021-06-01\n---\nhello *world*\n",
		"theme/layouts/post.html": "{{.page.content}}",
		"theme/assets/style.css":  "body{}",
	})

	s, err := LoadSite(root)
	require.NoError(t, err)

	assert.Equal(t, "Blog", s.Config.Title)
	assert.True(t, s.Config.Feed)
	assert.Equal(t, filepath.Join(root, "out"), s.Config.Output.Directory)

	require.Len(t, s.Pages, 1)
	assert.Equal(t, "index", s.Pages[0].Name)
	assert.Equal(t, "Home", s.Pages[0].Frontmatter.Title)
	assert.Contains(t, s.Pages[0].Content, "<h1")

	require.Len(t, s.Posts, 1)
	post := s.Posts[0]
	assert.Equal(t, "first-post", post.Name)
	assert.Equal(t, time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC), post.Frontmatter.Date)
	assert.Contains(t, post.Content, "<em>world</em>")
	// Derived from the filename since frontmatter has no title.
	assert.Equal(t, "First Post", post.Frontmatter.Title)

	require.Len(t, s.Theme.Layouts, 1)
	assert.Equal(t, "post.html", s.Theme.Layouts[0].Name)
	assert.Nil(t, s.Theme.Layouts[0].Content, "layout content is read lazily")
	require.Len(t, s.Theme.Assets, 1)
}

func TestLoadSite_DefaultsWithoutConfig(t *testing.T) {
	root := writeProject(t, map[string]string{
		"pages/about.md": "about\n",
	})

	s, err := LoadSite(root)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "public"), s.Config.Output.Directory)
	assert.False(t, s.Config.Feed)
}

func TestLoadSite_PostWithoutDateFails(t *testing.T) {
	root := writeProject(t, map[string]string{
		"posts/undated.md": "---\nlayout: post\n---\nbody\n",
	})

	_, err := LoadSite(root)
	require.Error(t, err)
	assert.True(t, errors.IsCategory(err, errors.CategoryRender))
	assert.Contains(t, err.Error(), "no date")
}

func TestLoadSite_ExtraFrontmatterPreserved(t *testing.T) {
	root := writeProject(t, map[string]string{
		"pages/tagged.md": "---\nlayout: default\ntags:\n  - go\n  - web\n---\nbody\n",
	})

	s, err := LoadSite(root)
	require.NoError(t, err)
	require.Len(t, s.Pages, 1)
	assert.Contains(t, s.Pages[0].Frontmatter.Extra, "tags")
}

func TestInit_ScaffoldsBuildableProject(t *testing.T) {
	root := t.TempDir()

	require.NoError(t, Init(root, false))

	s, err := LoadSite(root)
	require.NoError(t, err)
	assert.NotEmpty(t, s.Pages)
	assert.NotEmpty(t, s.Posts)
	assert.NotEmpty(t, s.Theme.Layouts)
	assert.True(t, s.Config.Feed)
}

func TestInit_RefusesOverwrite(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, Init(root, false))

	err := Init(root, false)
	require.Error(t, err)
	assert.True(t, errors.IsCategory(err, errors.CategoryConfig))

	assert.NoError(t, Init(root, true))
}

func TestTitleFromName(t *testing.T) {
	assert.Equal(t, "My First Post", titleFromName("my-first-post"))
	assert.Equal(t, "Hello World", titleFromName("hello_world"))
}
