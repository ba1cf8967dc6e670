package filesystem

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"

	"github.com/huynhsang/contentkit/internal/core/domain"
	"github.com/huynhsang/contentkit/internal/core/ports/driven"
	"github.com/huynhsang/contentkit/internal/logger"
)

// Ensure Watcher implements the interface.
var _ driven.SourceWatcher = (*Watcher)(nil)

// rebuildInterval bounds how often change events are delivered. Editors
// fire bursts of writes; one event per interval is enough to trigger a
// rebuild.
const rebuildInterval = 500 * time.Millisecond

// Watcher delivers coalesced change events for collection source
// directories using fsnotify.
type Watcher struct {
	fsw     *fsnotify.Watcher
	limiter *rate.Limiter
}

// NewWatcher creates a filesystem watcher.
func NewWatcher() (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	return &Watcher{
		fsw:     fsw,
		limiter: rate.NewLimiter(rate.Every(rebuildInterval), 1),
	}, nil
}

// Watch registers every directory under each collection's source
// directory and delivers coalesced change events until ctx is cancelled.
func (w *Watcher) Watch(ctx context.Context, collections []domain.Collection) (<-chan driven.ChangeEvent, error) {
	roots := make(map[string]string, len(collections))
	for _, collection := range collections {
		roots[filepath.Clean(collection.SourceDir)] = collection.Name
		if err := w.addRecursive(collection.SourceDir); err != nil {
			return nil, err
		}
	}

	events := make(chan driven.ChangeEvent, 1)
	go w.loop(ctx, roots, events)
	return events, nil
}

// Close releases watcher resources.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

// addRecursive watches root and every directory below it. fsnotify
// watches are not recursive on their own.
func (w *Watcher) addRecursive(root string) error {
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if err := w.fsw.Add(p); err != nil {
			return fmt.Errorf("watch %s: %w", p, err)
		}
		return nil
	})
}

func (w *Watcher) loop(ctx context.Context, roots map[string]string, events chan<- driven.ChangeEvent) {
	defer close(events)

	for {
		select {
		case <-ctx.Done():
			return

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			logger.Warn("watcher error: %v", err)

		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}

			collection := w.collectionFor(roots, event.Name)
			if collection == "" {
				continue
			}

			// New directories must be added to keep the watch recursive.
			if event.Op.Has(fsnotify.Create) {
				_ = w.addRecursive(event.Name)
			}

			// Coalesce event bursts into one rebuild trigger.
			if !w.limiter.Allow() {
				continue
			}

			logger.Debug("source change in %s: %s", collection, event.Name)
			select {
			case events <- driven.ChangeEvent{Collection: collection}:
			case <-ctx.Done():
				return
			}
		}
	}
}

// collectionFor maps a changed path to its owning collection.
func (w *Watcher) collectionFor(roots map[string]string, changed string) string {
	changed = filepath.Clean(changed)
	for root, name := range roots {
		if changed == root || strings.HasPrefix(changed, root+string(filepath.Separator)) {
			return name
		}
	}
	return ""
}
