// Package load constructs the site model from a project directory:
// config.yaml, pages/, posts/, theme/layouts/ and theme/assets/.
package load

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmparser "github.com/yuin/goldmark/parser"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/sitebuilder/internal/errors"
	"git.home.luguber.info/inful/sitebuilder/internal/frontmatter"
	"git.home.luguber.info/inful/sitebuilder/internal/site"
)

const (
	configFile = "config.yaml"
	pagesDir   = "pages"
	postsDir   = "posts"
	layoutsDir = "theme/layouts"
	assetsDir  = "theme/assets"

	defaultOutputDir = "public"
)

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithParserOptions(gmparser.WithAutoHeadingID()),
)

var titleCaser = cases.Title(language.English)

// LoadSite reads a project directory into a Site. A missing project
// directory is reported as a distinct path error so the CLI can answer with
// a friendlier message.
func LoadSite(path string) (*site.Site, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, errors.PathNotFound(path)
	}
	if err != nil {
		return nil, errors.IO(err, path)
	}
	if !info.IsDir() {
		return nil, errors.PathNotFound(path)
	}

	cfg, err := loadConfig(filepath.Join(path, configFile))
	if err != nil {
		return nil, err
	}
	if !filepath.IsAbs(cfg.Output.Directory) {
		cfg.Output.Directory = filepath.Join(path, cfg.Output.Directory)
	}

	pages, err := loadPages(filepath.Join(path, pagesDir), false)
	if err != nil {
		return nil, err
	}
	posts, err := loadPages(filepath.Join(path, postsDir), true)
	if err != nil {
		return nil, err
	}

	theme, err := loadTheme(path)
	if err != nil {
		return nil, err
	}

	slog.Debug("Site loaded",
		slog.Int("pages", len(pages)),
		slog.Int("posts", len(posts)),
		slog.Int("layouts", len(theme.Layouts)),
		slog.Int("assets", len(theme.Assets)))

	return &site.Site{
		Config: cfg,
		Theme:  theme,
		Pages:  pages,
		Posts:  posts,
	}, nil
}

func loadConfig(path string) (site.Config, error) {
	cfg := site.Config{
		Output: site.OutputConfig{Directory: defaultOutputDir},
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		// A config file is optional; defaults apply.
		return cfg, nil
	}
	if err != nil {
		return cfg, errors.ConfigError(err, path)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.ConfigError(err, path)
	}
	if cfg.Output.Directory == "" {
		cfg.Output.Directory = defaultOutputDir
	}
	return cfg, nil
}

func loadPages(dir string, requireDate bool) ([]site.Page, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.IO(err, dir)
	}

	var pages []site.Page
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		page, err := loadPage(filepath.Join(dir, entry.Name()), requireDate)
		if err != nil {
			return nil, err
		}
		pages = append(pages, page)
	}
	return pages, nil
}

func loadPage(path string, requireDate bool) (site.Page, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return site.Page{}, errors.IO(err, path)
	}

	fm, body, _, err := frontmatter.Split(data)
	if err != nil {
		return site.Page{}, errors.RenderFailed(err, path)
	}
	fields, err := frontmatter.ParseYAML(fm)
	if err != nil {
		return site.Page{}, errors.RenderFailed(err, path)
	}

	name := strippedName(filepath.Base(path))
	meta, err := parseFrontmatter(fields, name, path, requireDate)
	if err != nil {
		return site.Page{}, err
	}

	var buf bytes.Buffer
	if err := markdown.Convert(body, &buf); err != nil {
		return site.Page{}, errors.RenderFailed(err, path)
	}

	return site.Page{
		SourcePath:  path,
		Name:        name,
		Frontmatter: meta,
		Content:     buf.String(),
	}, nil
}

func parseFrontmatter(fields map[string]any, name, path string, requireDate bool) (site.Frontmatter, error) {
	meta := site.Frontmatter{Extra: map[string]any{}}

	for k, v := range fields {
		switch k {
		case "layout":
			meta.Layout, _ = v.(string)
		case "title":
			meta.Title, _ = v.(string)
		case "date":
			d, err := parseDate(v)
			if err != nil {
				return meta, errors.RenderFailed(err, path)
			}
			meta.Date = d
		default:
			meta.Extra[k] = v
		}
	}

	if meta.Title == "" {
		meta.Title = titleFromName(name)
	}
	if requireDate && meta.Date.IsZero() {
		return meta, errors.RenderFailed(fmt.Errorf("post has no date"), path)
	}
	return meta, nil
}

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

func parseDate(v any) (time.Time, error) {
	switch d := v.(type) {
	case time.Time:
		return d, nil
	case string:
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, d); err == nil {
				return t, nil
			}
		}
		return time.Time{}, fmt.Errorf("unparseable date %q", d)
	default:
		return time.Time{}, fmt.Errorf("unparseable date %v", v)
	}
}

func loadTheme(root string) (site.Theme, error) {
	layouts, err := listFiles(filepath.Join(root, layoutsDir))
	if err != nil {
		return site.Theme{}, err
	}
	assets, err := listFiles(filepath.Join(root, assetsDir))
	if err != nil {
		return site.Theme{}, err
	}
	return site.Theme{Layouts: layouts, Assets: assets}, nil
}

// listFiles records paths and basenames only; content is read lazily by the
// consuming phase.
func listFiles(dir string) ([]site.File, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.IO(err, dir)
	}

	var files []site.File
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		files = append(files, site.File{
			Path: filepath.Join(dir, entry.Name()),
			Name: entry.Name(),
		})
	}
	return files, nil
}

// strippedName is the filename up to its first dot: `hello-world.md` and
// `hello-world.html.md` both become `hello-world`.
func strippedName(base string) string {
	if i := strings.IndexByte(base, '.'); i >= 0 {
		return base[:i]
	}
	return base
}

// titleFromName derives a display title from a filename: `my-first-post`
// becomes `My First Post`.
func titleFromName(name string) string {
	words := strings.NewReplacer("-", " ", "_", " ").Replace(name)
	return titleCaser.String(words)
}
