package driven

import (
	"context"

	"github.com/huynhsang/contentkit/internal/core/domain"
)

// DocumentSource lists and reads a collection's source files.
// Implementations read from the local filesystem; the port exists so the
// build orchestrator can be tested against an in-memory source.
type DocumentSource interface {
	// List returns the paths of all files under the collection's source
	// directory matching its file pattern, relative to the source
	// directory, slash-separated, sorted.
	List(ctx context.Context, collection domain.Collection) ([]string, error)

	// Read loads one source file and splits its front matter from the
	// body. The returned document is immutable.
	Read(ctx context.Context, collection domain.Collection, path string) (*domain.Document, error)
}

// ChangeEvent signals that files under a watched source directory changed.
// Events are coalesced; one event may cover many file changes.
type ChangeEvent struct {
	// Collection is the name of the affected collection.
	Collection string
}

// SourceWatcher pushes change events for collection source directories.
// Used by watch mode to trigger rebuilds.
type SourceWatcher interface {
	// Watch starts watching the given collections and delivers coalesced
	// change events until ctx is cancelled. The returned channel is
	// closed when watching stops.
	Watch(ctx context.Context, collections []domain.Collection) (<-chan ChangeEvent, error)

	// Close releases watcher resources.
	Close() error
}
