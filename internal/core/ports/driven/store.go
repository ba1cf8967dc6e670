package driven

import (
	"context"

	"github.com/huynhsang/contentkit/internal/core/domain"
)

// Generation is a complete, internally consistent set of compiled documents
// produced by one successful build, keyed by collection name.
type Generation struct {
	// ID identifies the generation (opaque, unique per build).
	ID string

	// Collections maps a collection name to its compiled documents,
	// ordered by slug.
	Collections map[string][]domain.CompiledDocument
}

// CompiledStore holds compiled documents for the rendering layer.
//
// The store is write-once-per-generation: a build assembles a full
// generation off to the side and swaps it in atomically. Readers see either
// the previous complete generation or the new one, never a half-updated
// set.
type CompiledStore interface {
	// Swap atomically replaces the current generation.
	Swap(ctx context.Context, gen Generation) error

	// Collection returns the current generation's documents for a
	// collection. Returns domain.ErrNotFound for unknown collections.
	Collection(ctx context.Context, name string) ([]domain.CompiledDocument, error)

	// BySlug returns the document with the given slug within a
	// collection. Returns domain.ErrNotFound when absent.
	BySlug(ctx context.Context, collection, slug string) (*domain.CompiledDocument, error)

	// GenerationID returns the current generation's ID, or "" before the
	// first swap.
	GenerationID(ctx context.Context) string
}

// BuildCache caches compiled documents between builds, keyed by a content
// hash covering the source bytes and the collection configuration.
// Compilation is deterministic, so a cache hit is byte-identical to a fresh
// compile.
type BuildCache interface {
	// Get returns the cached compiled document for key, or
	// domain.ErrNotFound.
	Get(ctx context.Context, key string) (*domain.CompiledDocument, error)

	// Put stores a compiled document under key.
	Put(ctx context.Context, key string, doc *domain.CompiledDocument) error

	// Close releases cache resources.
	Close() error
}
