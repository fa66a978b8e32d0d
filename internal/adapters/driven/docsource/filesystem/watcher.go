package filesystem

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/duxt-mcp/internal/core/ports/driven"
	"github.com/custodia-labs/duxt-mcp/internal/logger"
)

// Ensure Watcher implements the interface.
var _ driven.DocumentWatcher = (*Watcher)(nil)

// DefaultDebounce is how long the watcher waits for events to settle
// before reporting a change.
const DefaultDebounce = 250 * time.Millisecond

// Watcher reports changes to the markdown tree under a root directory.
// The root and every section directory are watched; sections created
// while watching are added as they appear.
type Watcher struct {
	root     string
	debounce time.Duration
}

// NewWatcher creates a watcher for root. A non-positive debounce uses
// DefaultDebounce.
func NewWatcher(root string, debounce time.Duration) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{root: filepath.Clean(root), debounce: debounce}
}

// Watch blocks until ctx is cancelled. onChange is called once per burst
// of relevant events, after the tree has been quiet for the debounce
// interval.
func (w *Watcher) Watch(ctx context.Context, onChange func()) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	if err := w.addTree(fw); err != nil {
		return err
	}
	logger.Debug("watching %s for changes", w.root)

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !w.handleFsEvent(event) {
				continue
			}
			if event.Has(fsnotify.Create) && w.isSectionDir(event.Name) {
				if err := fw.Add(event.Name); err != nil {
					logger.Warn("watch %s: %v", event.Name, err)
				}
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error: %v", err)

		case <-fire:
			fire = nil
			onChange()
		}
	}
}

// addTree registers the root and its immediate subdirectories.
func (w *Watcher) addTree(fw *fsnotify.Watcher) error {
	if err := fw.Add(w.root); err != nil {
		return fmt.Errorf("watch %s: %w", w.root, err)
	}

	entries, err := os.ReadDir(w.root)
	if err != nil {
		return fmt.Errorf("read docs root: %w", err)
	}
	for _, entry := range entries {
		if !entry.IsDir() || isHidden(entry.Name()) {
			continue
		}
		dir := filepath.Join(w.root, entry.Name())
		if err := fw.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
	}
	return nil
}

// handleFsEvent reports whether an event can change the loaded documents.
// Markdown files and section directories count; hidden paths and
// permission changes do not.
func (w *Watcher) handleFsEvent(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}

	rel, err := filepath.Rel(w.root, event.Name)
	if err != nil || rel == "." || rel == ".." ||
		strings.HasPrefix(rel, ".."+string(filepath.Separator)) || isHidden(rel) {
		return false
	}

	if filepath.Ext(event.Name) == markdownExt {
		return true
	}
	// A section directory appearing or disappearing.
	return filepath.Dir(filepath.Clean(event.Name)) == w.root && !event.Has(fsnotify.Write)
}

// isSectionDir reports whether path is an existing directory directly
// under the root.
func (w *Watcher) isSectionDir(path string) bool {
	if filepath.Dir(filepath.Clean(path)) != w.root {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// isHidden reports whether any element of path starts with a dot.
// "." and ".." are not hidden.
func isHidden(path string) bool {
	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if part == "." || part == ".." || part == "" {
			continue
		}
		if strings.HasPrefix(part, ".") {
			return true
		}
	}
	return false
}
