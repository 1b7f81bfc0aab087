package watcher

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
)

// isBundleGone reports whether ev says a bundle directly under one of the
// watched roots has disappeared. A rename counts only when nothing is left at
// the old path, since some tools replace a bundle in place.
func (w *Watcher) isBundleGone(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
		return false
	}

	if !strings.HasSuffix(ev.Name, w.suffix) || filepath.Base(ev.Name) == w.suffix {
		return false
	}

	if !w.isRootChild(ev.Name) {
		return false
	}

	if _, err := os.Lstat(ev.Name); err == nil {
		return false
	}
	return true
}

// isRootChild reports whether path sits directly inside a watched root.
func (w *Watcher) isRootChild(path string) bool {
	parent := filepath.Dir(path)
	for _, root := range w.roots {
		if filepath.Clean(root) == parent {
			return true
		}
	}
	return false
}
