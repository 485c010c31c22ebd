package build

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/sitebuilder/internal/errors"
	"git.home.luguber.info/inful/sitebuilder/internal/parallel"
	"git.home.luguber.info/inful/sitebuilder/internal/site"
)

// prepare creates the output assets directory tree. A pre-existing directory
// is not an error; MkdirAll is idempotent.
func (b *Builder) prepare(_ context.Context, _ *state) error {
	assetsDir := filepath.Join(b.site.Config.Output.Directory, "assets")
	if err := os.MkdirAll(assetsDir, 0755); err != nil {
		return errors.IO(err, assetsDir)
	}
	slog.Debug("Output directory prepared", slog.String("path", assetsDir))
	return nil
}

// renderAll renders every page and post concurrently. Nothing touches disk;
// a failure for any document discards all sibling output.
func (b *Builder) renderAll(_ context.Context, st *state) error {
	docs := b.site.Documents()

	outcomes := parallel.Map(docs, b.concurrency, func(p site.Page) (site.File, error) {
		return b.renderer.RenderPage(b.site, p)
	})

	files, err := parallel.Collect(outcomes)
	if err != nil {
		return err
	}
	st.rendered = files
	slog.Debug("Rendered documents", slog.Int("count", len(files)))
	return nil
}

// writeAll writes every rendered file concurrently. Output paths are
// disjoint by construction, one per input document.
func (b *Builder) writeAll(_ context.Context, st *state) error {
	outcomes := parallel.Each(st.rendered, b.concurrency, func(f site.File) error {
		if err := os.WriteFile(f.Path, f.Content, 0644); err != nil {
			return errors.IO(err, f.Path)
		}
		slog.Debug("Wrote page", slog.String("path", f.Path))
		return nil
	})
	return parallel.Wait(outcomes)
}

// copyAssets copies every theme asset into {out}/assets/{basename}
// concurrently.
func (b *Builder) copyAssets(_ context.Context, _ *state) error {
	assetsDir := filepath.Join(b.site.Config.Output.Directory, "assets")

	outcomes := parallel.Each(b.site.Theme.Assets, b.concurrency, func(a site.File) error {
		content := a.Content
		if content == nil {
			data, err := os.ReadFile(a.Path)
			if err != nil {
				return errors.IO(err, a.Path)
			}
			content = data
		}
		dst := filepath.Join(assetsDir, a.Name)
		if err := os.WriteFile(dst, content, 0644); err != nil {
			return errors.IO(err, dst)
		}
		slog.Debug("Copied asset", slog.String("asset", a.Name))
		return nil
	})
	return parallel.Wait(outcomes)
}

// writeFeed emits the syndication document when the feed flag is set and at
// least one post exists; otherwise the phase is a no-op success.
func (b *Builder) writeFeed(_ context.Context, st *state) error {
	if !b.site.Config.Feed || len(b.site.Posts) == 0 {
		return nil
	}

	path := filepath.Join(b.site.Config.Output.Directory, "rss.xml")
	if err := os.WriteFile(path, []byte(b.feed.Render(b.site)), 0644); err != nil {
		return errors.IO(err, path)
	}

	st.feedWritten = true
	slog.Debug("Feed written", slog.String("path", path))
	return nil
}
