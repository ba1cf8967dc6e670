package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"path"
	"runtime"
	"sort"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/huynhsang/contentkit/internal/assemble"
	"github.com/huynhsang/contentkit/internal/core/domain"
	"github.com/huynhsang/contentkit/internal/core/ports/driven"
	"github.com/huynhsang/contentkit/internal/core/ports/driving"
	"github.com/huynhsang/contentkit/internal/frontmatter"
	"github.com/huynhsang/contentkit/internal/logger"
	"github.com/huynhsang/contentkit/internal/markup"
	"github.com/huynhsang/contentkit/internal/render"
	"github.com/huynhsang/contentkit/internal/transform"
)

// Ensure BuildService implements the interface.
var _ driving.Builder = (*BuildService)(nil)

// BuildConfig tunes one build service.
type BuildConfig struct {
	// Collections are the collections to compile.
	Collections []domain.Collection

	// Workers bounds the per-document fan-out. Zero or negative means
	// one worker per CPU.
	Workers int

	// IncludeDrafts keeps documents marked draft in the generation.
	IncludeDrafts bool
}

// BuildService compiles every configured collection into a complete
// generation and swaps it into the store. Documents compile independently
// and concurrently; a failure in one never blocks the others, but any
// failure blocks the swap.
type BuildService struct {
	cfg       BuildConfig
	source    driven.DocumentSource
	store     driven.CompiledStore
	cache     driven.BuildCache
	assembler *assemble.Assembler

	parser      *markup.Parser
	highlighter *transform.Highlighter
}

// NewBuildService creates a build service. The cache is optional; pass nil
// to compile everything from scratch.
func NewBuildService(
	cfg BuildConfig,
	source driven.DocumentSource,
	store driven.CompiledStore,
	cache driven.BuildCache,
	assembler *assemble.Assembler,
) *BuildService {
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	return &BuildService{
		cfg:         cfg,
		source:      source,
		store:       store,
		cache:       cache,
		assembler:   assembler,
		parser:      markup.NewParser(),
		highlighter: transform.NewHighlighter(),
	}
}

// compiled pairs one compiled document with its source path so slug
// collisions can name both offenders.
type compiled struct {
	path string
	doc  *domain.CompiledDocument
}

// Build implements driving.Builder.
func (s *BuildService) Build(ctx context.Context) (*driving.BuildResult, error) {
	logger.Section("Collection Build")

	result := &driving.BuildResult{Compiled: make(map[string]int)}
	byCollection := make(map[string][]compiled)

	var mu sync.Mutex

	for _, col := range s.cfg.Collections {
		paths, err := s.source.List(ctx, col)
		if err != nil {
			return nil, fmt.Errorf("list collection %s: %w", col.Name, err)
		}
		logger.Debug("Collection %s: %d source files", col.Name, len(paths))

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(s.cfg.Workers)

		for _, relPath := range paths {
			col, relPath := col, relPath
			g.Go(func() error {
				doc, hit, err := s.compile(gctx, col, relPath)

				mu.Lock()
				defer mu.Unlock()
				switch {
				case err != nil:
					result.Errors = append(result.Errors, &domain.DocumentError{
						Collection: col.Name,
						Path:       relPath,
						Err:        err,
					})
				case doc == nil:
					// Draft excluded from this generation.
				default:
					if hit {
						result.CacheHits++
					}
					byCollection[col.Name] = append(byCollection[col.Name], compiled{path: relPath, doc: doc})
					result.Compiled[col.Name]++
				}
				return gctx.Err()
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	// Deterministic report order regardless of worker scheduling.
	sort.Slice(result.Errors, func(i, j int) bool {
		a, b := result.Errors[i], result.Errors[j]
		if a.Collection != b.Collection {
			return a.Collection < b.Collection
		}
		return a.Path < b.Path
	})

	if result.Failed() {
		return result, fmt.Errorf("%w: %d document(s) did not compile", domain.ErrBuildFailed, len(result.Errors))
	}

	gen := driven.Generation{
		ID:          uuid.NewString(),
		Collections: make(map[string][]domain.CompiledDocument, len(byCollection)),
	}
	for name, docs := range byCollection {
		sort.Slice(docs, func(i, j int) bool { return docs[i].doc.Slug < docs[j].doc.Slug })
		if err := detectCollisions(name, docs); err != nil {
			return nil, err
		}
		out := make([]domain.CompiledDocument, len(docs))
		for i, c := range docs {
			out[i] = *c.doc
		}
		gen.Collections[name] = out
	}

	if err := s.store.Swap(ctx, gen); err != nil {
		return nil, fmt.Errorf("swap generation: %w", err)
	}
	result.GenerationID = gen.ID

	logger.Info("Build complete: generation %s (%d cache hits)", gen.ID, result.CacheHits)
	return result, nil
}

// compile turns one source file into its compiled document. A nil document
// with a nil error means the document is a draft excluded from this build.
func (s *BuildService) compile(ctx context.Context, col domain.Collection, relPath string) (*domain.CompiledDocument, bool, error) {
	doc, err := s.source.Read(ctx, col, relPath)
	if err != nil {
		return nil, false, err
	}

	key := cacheKey(col, doc.Raw)
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, key)
		if err == nil {
			if cached.Draft && !s.cfg.IncludeDrafts {
				return nil, false, nil
			}
			return cached, true, nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			logger.Warn("Cache lookup failed for %s: %v", relPath, err)
		}
	}

	meta, err := frontmatter.Validate(col.Type, relPath, doc.FrontMatter)
	if err != nil {
		return nil, false, err
	}

	docDir := path.Join(col.SourceDir, path.Dir(relPath))
	expanded, err := markup.ExpandImports([]byte(doc.Body), docDir)
	if err != nil {
		return nil, false, &domain.ParseError{Path: relPath, Err: err}
	}

	tree := s.parser.Parse(expanded)

	tctx := transform.NewContext(relPath, expanded)
	if err := transform.Run(tctx, tree, transform.Pipeline(s.highlighter)); err != nil {
		return nil, false, err
	}

	compiledBody, err := render.Document(tree, expanded, tctx.Annotations)
	if err != nil {
		return nil, false, err
	}

	out, err := s.assembler.Assemble(assemble.Input{
		Collection:   col,
		Path:         relPath,
		Meta:         meta,
		Body:         doc.Body,
		CompiledBody: compiledBody,
	})
	if err != nil {
		return nil, false, err
	}

	if s.cache != nil {
		if err := s.cache.Put(ctx, key, out); err != nil {
			logger.Warn("Cache store failed for %s: %v", relPath, err)
		}
	}

	if out.Draft && !s.cfg.IncludeDrafts {
		return nil, false, nil
	}
	return out, false, nil
}

// cacheKey fingerprints the source bytes together with the collection
// settings that influence compilation, so a config change invalidates the
// cached entries it affects.
func cacheKey(col domain.Collection, raw []byte) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s\x00%s\x00%s\x00", col.Name, col.Type, col.RoutePrefix)
	h.Write(raw)
	return hex.EncodeToString(h.Sum(nil))
}

// detectCollisions fails the build when two documents share a slug.
// Routing would be ambiguous, so this aborts instead of being collected
// per document.
func detectCollisions(collection string, docs []compiled) error {
	bySlug := make(map[string][]string, len(docs))
	for _, c := range docs {
		bySlug[c.doc.Slug] = append(bySlug[c.doc.Slug], c.path)
	}
	for slug, paths := range bySlug {
		if len(paths) > 1 {
			sort.Strings(paths)
			return &domain.SlugCollisionError{Collection: collection, Slug: slug, Paths: paths}
		}
	}
	return nil
}
