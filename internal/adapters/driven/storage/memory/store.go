// Package memory provides the in-memory compiled document store.
package memory

import (
	"context"
	"sync"

	"github.com/huynhsang/contentkit/internal/core/domain"
	"github.com/huynhsang/contentkit/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.CompiledStore = (*Store)(nil)

// Store holds the current generation of compiled documents. Swap replaces
// the whole generation at once; readers never observe a half-updated set.
type Store struct {
	mu  sync.RWMutex
	gen driven.Generation
}

// NewStore creates an empty compiled store.
func NewStore() *Store {
	return &Store{}
}

// Swap atomically replaces the current generation.
func (s *Store) Swap(_ context.Context, gen driven.Generation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen = gen
	return nil
}

// Collection returns the current generation's documents for a collection.
func (s *Store) Collection(_ context.Context, name string) ([]domain.CompiledDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	docs, ok := s.gen.Collections[name]
	if !ok {
		return nil, domain.ErrNotFound
	}

	// Copy so callers cannot mutate the stored generation.
	out := make([]domain.CompiledDocument, len(docs))
	copy(out, docs)
	return out, nil
}

// BySlug returns the document with the given slug within a collection.
func (s *Store) BySlug(_ context.Context, collection, slug string) (*domain.CompiledDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	docs, ok := s.gen.Collections[collection]
	if !ok {
		return nil, domain.ErrNotFound
	}
	for i := range docs {
		if docs[i].Slug == slug {
			doc := docs[i]
			return &doc, nil
		}
	}
	return nil, domain.ErrNotFound
}

// GenerationID returns the current generation's ID, or "" before the
// first swap.
func (s *Store) GenerationID(_ context.Context) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.gen.ID
}
