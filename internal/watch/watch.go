// Package watch triggers rebuilds when project files change.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher monitors a project directory and invokes a rebuild callback after
// a debounced burst of file changes.
type Watcher struct {
	root         string
	ignore       string
	watcher      *fsnotify.Watcher
	rebuildChan  chan struct{}
	debounceTime time.Duration
	onChange     func()
}

// New creates a Watcher over root. Events under ignore (the output
// directory) are dropped so builds do not retrigger themselves.
func New(root, ignore string, onChange func()) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to resolve project path: %w", err)
	}
	absIgnore, err := filepath.Abs(ignore)
	if err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to resolve output path: %w", err)
	}

	return &Watcher{
		root:         absRoot,
		ignore:       absIgnore,
		watcher:      watcher,
		rebuildChan:  make(chan struct{}, 1),
		debounceTime: 500 * time.Millisecond,
		onChange:     onChange,
	}, nil
}

// Start begins monitoring and blocks until ctx is done.
func (w *Watcher) Start(ctx context.Context) error {
	if err := w.addRecursive(w.root); err != nil {
		return err
	}

	slog.Info("Watching for changes", "path", w.root)

	go w.rebuildLoop(ctx)
	w.watchLoop(ctx)

	return w.watcher.Close()
}

// addRecursive registers root and every subdirectory except the ignored
// output tree.
func (w *Watcher) addRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if w.ignored(path) {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		return nil
	})
}

func (w *Watcher) ignored(path string) bool {
	return path == w.ignore || strings.HasPrefix(path, w.ignore+string(filepath.Separator))
}

func (w *Watcher) watchLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if w.ignored(event.Name) {
				continue
			}

			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
				slog.Debug("Project change detected", "file", event.Name, "op", event.Op.String())
				// Newly created directories need watching too.
				if event.Op&fsnotify.Create != 0 {
					if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
						_ = w.addRecursive(event.Name)
					}
				}
				w.trigger()
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Error("Watcher error", "error", err)
		}
	}
}

// rebuildLoop handles debounced rebuilds.
func (w *Watcher) rebuildLoop(ctx context.Context) {
	var timer *time.Timer

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return
		case <-w.rebuildChan:
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(w.debounceTime, w.onChange)
		}
	}
}

func (w *Watcher) trigger() {
	select {
	case w.rebuildChan <- struct{}{}:
	default:
		// Rebuild already pending.
	}
}
