package load

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"git.home.luguber.info/inful/sitebuilder/internal/errors"
)

const starterConfig = `title: My Site
description: A new sitebuilder site
base_url: https://example.com
feed: true
output:
  directory: public
`

const starterPage = `---
layout: default
title: Home
---
# Welcome

Edit ` + "`pages/index.md`" + ` to change this page.
`

const starterPost = `---
layout: post
title: First Post
date: %s
---
This is your first post.
`

const starterDefaultLayout = `<!DOCTYPE html>
<html>
<head><title>{{.page.title}} - {{.config.title}}</title></head>
<body>{{.page.content}}</body>
</html>
`

const starterPostLayout = `<!DOCTYPE html>
<html>
<head><title>{{.page.title}}</title></head>
<body><article>{{.page.content}}</article></body>
</html>
`

const starterStylesheet = `body { max-width: 65ch; margin: 0 auto; font-family: sans-serif; }
`

// Init scaffolds a new project: configuration, an example page and post, and
// a minimal theme. It refuses to overwrite an existing config.yaml unless
// force is set.
func Init(path string, force bool) error {
	cfgPath := filepath.Join(path, configFile)
	if !force {
		if _, err := os.Stat(cfgPath); err == nil {
			return errors.New(errors.CategoryConfig, errors.SeverityFatal,
				fmt.Sprintf("%s already exists (use --force to overwrite)", cfgPath))
		}
	}

	files := map[string]string{
		cfgPath: starterConfig,
		filepath.Join(path, pagesDir, "index.md"):       starterPage,
		filepath.Join(path, postsDir, "first-post.md"):  fmt.Sprintf(starterPost, time.Now().Format("2006-01-02")),
		filepath.Join(path, layoutsDir, "default.html"): starterDefaultLayout,
		filepath.Join(path, layoutsDir, "post.html"):    starterPostLayout,
		filepath.Join(path, assetsDir, "style.css"):     starterStylesheet,
	}

	for target, content := range files {
		if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return errors.IO(err, filepath.Dir(target))
		}
		if err := os.WriteFile(target, []byte(content), 0644); err != nil {
			return errors.IO(err, target)
		}
	}
	return nil
}
