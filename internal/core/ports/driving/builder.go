package driving

import (
	"context"

	"github.com/huynhsang/contentkit/internal/core/domain"
)

// BuildResult summarises one build attempt.
type BuildResult struct {
	// GenerationID identifies the stored generation. Empty when the
	// build failed and nothing was swapped in.
	GenerationID string

	// Compiled counts successfully compiled documents per collection.
	Compiled map[string]int

	// CacheHits counts documents served from the build cache.
	CacheHits int

	// Errors holds every document-level failure, ordered by collection
	// then path. A non-empty list means the build failed as a whole.
	Errors []*domain.DocumentError
}

// Failed reports whether any document failed to compile.
func (r *BuildResult) Failed() bool {
	return len(r.Errors) > 0
}

// Builder compiles every configured collection into a new store generation.
type Builder interface {
	// Build compiles all collections. Document-level failures are
	// collected into the result and reported together; the store is only
	// swapped when every document compiled. Build-level failures (slug
	// collisions, configuration bugs) abort immediately with an error.
	Build(ctx context.Context) (*BuildResult, error)
}
