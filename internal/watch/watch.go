// Package watch re-runs the build pipeline when project sources change.
package watch

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/qiniu/x/log"
)

// Options configures a watch loop.
type Options struct {
	// Root is the project root to watch, recursively.
	Root string

	// Ignore lists path prefixes relative to Root that never trigger
	// a rebuild (the build directory, artifact paths).
	Ignore []string

	// Debounce is how long to wait after the last event before
	// rebuilding. Zero means 500ms.
	Debounce time.Duration
}

// Watch runs fn after filesystem changes under opts.Root, debounced,
// until ctx is cancelled. A failing fn is logged and the loop keeps
// going; only watcher setup errors are returned.
func Watch(ctx context.Context, opts Options, fn func() error) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := addTree(w, opts); err != nil {
		return err
	}

	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = 500 * time.Millisecond
	}

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ignored(opts.Root, opts.Ignore, ev.Name) {
				continue
			}
			// New directories need their own watch.
			if ev.Op&fsnotify.Create != 0 {
				if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
					_ = w.Add(ev.Name)
				}
			}
			log.Debugf("watch: %s %s", ev.Op, ev.Name)
			pending = time.After(debounce)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warnf("watch: %v", err)
		case <-pending:
			pending = nil
			if err := fn(); err != nil {
				log.Errorf("rebuild failed: %v", err)
			}
		}
	}
}

// addTree registers root and every directory below it, skipping
// ignored and hidden directories.
func addTree(w *fsnotify.Watcher, opts Options) error {
	return filepath.WalkDir(opts.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		if path != opts.Root && ignored(opts.Root, opts.Ignore, path) {
			return filepath.SkipDir
		}
		return w.Add(path)
	})
}

// ignored reports whether path falls under an ignored prefix or a
// hidden (dot-prefixed) path segment below root.
func ignored(root string, ignore []string, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return false
	}
	for _, seg := range strings.Split(rel, string(filepath.Separator)) {
		if strings.HasPrefix(seg, ".") {
			return true
		}
	}
	for _, ig := range ignore {
		ig = filepath.Clean(ig)
		if rel == ig || strings.HasPrefix(rel, ig+string(filepath.Separator)) {
			return true
		}
	}
	return false
}
