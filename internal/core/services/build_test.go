package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huynhsang/contentkit/internal/adapters/driven/storage/memory"
	"github.com/huynhsang/contentkit/internal/assemble"
	"github.com/huynhsang/contentkit/internal/core/domain"
	"github.com/huynhsang/contentkit/internal/core/ports/driven"
)

// fakeDoc is one source document held by the fake source.
type fakeDoc struct {
	meta map[string]any
	body string
}

// fakeSource serves documents from memory, keyed by collection name then
// relative path.
type fakeSource struct {
	docs map[string]map[string]fakeDoc
}

func (s *fakeSource) List(_ context.Context, collection domain.Collection) ([]string, error) {
	paths := make([]string, 0, len(s.docs[collection.Name]))
	for p := range s.docs[collection.Name] {
		paths = append(paths, p)
	}
	return paths, nil
}

func (s *fakeSource) Read(_ context.Context, collection domain.Collection, path string) (*domain.Document, error) {
	doc, ok := s.docs[collection.Name][path]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &domain.Document{
		Collection:  collection.Name,
		Path:        path,
		FrontMatter: doc.meta,
		Body:        doc.body,
		Raw:         []byte(fmt.Sprintf("%v\n%s", doc.meta, doc.body)),
	}, nil
}

// fakeCache is an in-memory build cache.
type fakeCache struct {
	entries map[string]*domain.CompiledDocument
	puts    int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string]*domain.CompiledDocument)}
}

func (c *fakeCache) Get(_ context.Context, key string) (*domain.CompiledDocument, error) {
	doc, ok := c.entries[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := *doc
	return &clone, nil
}

func (c *fakeCache) Put(_ context.Context, key string, doc *domain.CompiledDocument) error {
	clone := *doc
	c.entries[key] = &clone
	c.puts++
	return nil
}

func (c *fakeCache) Close() error { return nil }

var (
	blogCollection = domain.Collection{
		Name:        "blog",
		Type:        domain.CollectionBlog,
		SourceDir:   "content/blog",
		FilePattern: "**/*.mdx",
		RoutePrefix: "/blog",
	}
	docsCollection = domain.Collection{
		Name:        "docs",
		Type:        domain.CollectionDocs,
		SourceDir:   "content/docs",
		FilePattern: "**/*.mdx",
	}
)

func blogMeta(title string) map[string]any {
	return map[string]any{
		"title":     title,
		"date":      "2024-03-01",
		"author_id": "huynhsang",
	}
}

func testAssembler() *assemble.Assembler {
	return assemble.New(assemble.Config{
		DefaultLocale: "en",
		Authors: map[string]domain.Author{
			"huynhsang": {
				ID:   "huynhsang",
				Name: "Huỳnh Sang",
				Bio:  map[string]string{"en": "Engineer.", "vi": "Kỹ sư."},
			},
		},
	})
}

func newTestService(t *testing.T, cfg BuildConfig, src driven.DocumentSource, cache *fakeCache) (*BuildService, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	var c driven.BuildCache
	if cache != nil {
		c = cache
	}
	svc := NewBuildService(cfg, src, store, c, testAssembler())
	return svc, store
}

func TestBuild_Success(t *testing.T) {
	src := &fakeSource{docs: map[string]map[string]fakeDoc{
		"blog": {
			"vi/my-post.mdx": {meta: blogMeta("Bài viết"), body: "# Xin chào\n\nNội dung."},
			"en/other.mdx":   {meta: blogMeta("Other"), body: "# Hello\n\nBody."},
		},
	}}
	svc, store := newTestService(t, BuildConfig{Collections: []domain.Collection{blogCollection}}, src, nil)

	result, err := svc.Build(context.Background())
	require.NoError(t, err)

	assert.False(t, result.Failed())
	assert.NotEmpty(t, result.GenerationID)
	assert.Equal(t, 2, result.Compiled["blog"])

	docs, err := store.Collection(context.Background(), "blog")
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "/blog/en/other", docs[0].Slug, "documents ordered by slug")
	assert.Equal(t, "/blog/vi/my-post", docs[1].Slug)
	assert.Equal(t, result.GenerationID, store.GenerationID(context.Background()))
}

func TestBuild_ValidationFailureBlocksSwap(t *testing.T) {
	src := &fakeSource{docs: map[string]map[string]fakeDoc{
		"blog": {
			"vi/good.mdx": {meta: blogMeta("Good"), body: "Fine."},
			"vi/bad.mdx":  {meta: map[string]any{"date": "not-a-date"}, body: "Broken."},
		},
	}}
	svc, store := newTestService(t, BuildConfig{Collections: []domain.Collection{blogCollection}}, src, nil)

	result, err := svc.Build(context.Background())
	require.ErrorIs(t, err, domain.ErrBuildFailed)
	require.NotNil(t, result)

	require.Len(t, result.Errors, 1)
	assert.Equal(t, "vi/bad.mdx", result.Errors[0].Path)

	var schemaErr *domain.SchemaValidationError
	require.ErrorAs(t, result.Errors[0].Err, &schemaErr)

	assert.Empty(t, store.GenerationID(context.Background()), "failed build must not swap")
}

func TestBuild_ErrorsSortedByCollectionThenPath(t *testing.T) {
	src := &fakeSource{docs: map[string]map[string]fakeDoc{
		"blog": {
			"z.mdx": {meta: map[string]any{}, body: ""},
			"a.mdx": {meta: map[string]any{}, body: ""},
		},
		"docs": {
			"m.mdx": {meta: map[string]any{}, body: ""},
		},
	}}
	svc, _ := newTestService(t, BuildConfig{
		Collections: []domain.Collection{blogCollection, docsCollection},
	}, src, nil)

	result, err := svc.Build(context.Background())
	require.ErrorIs(t, err, domain.ErrBuildFailed)

	got := make([]string, len(result.Errors))
	for i, e := range result.Errors {
		got[i] = e.Collection + "/" + e.Path
	}
	assert.Equal(t, []string{"blog/a.mdx", "blog/z.mdx", "docs/m.mdx"}, got)
}

func TestBuild_DraftsExcludedByDefault(t *testing.T) {
	meta := blogMeta("Draft post")
	meta["draft"] = true
	src := &fakeSource{docs: map[string]map[string]fakeDoc{
		"blog": {
			"vi/draft.mdx":     {meta: meta, body: "WIP."},
			"vi/published.mdx": {meta: blogMeta("Published"), body: "Done."},
		},
	}}
	svc, store := newTestService(t, BuildConfig{Collections: []domain.Collection{blogCollection}}, src, nil)

	result, err := svc.Build(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Compiled["blog"])

	_, err = store.BySlug(context.Background(), "blog", "/blog/vi/draft")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBuild_DraftsIncludedOnRequest(t *testing.T) {
	meta := blogMeta("Draft post")
	meta["draft"] = true
	src := &fakeSource{docs: map[string]map[string]fakeDoc{
		"blog": {"vi/draft.mdx": {meta: meta, body: "WIP."}},
	}}
	svc, _ := newTestService(t, BuildConfig{
		Collections:   []domain.Collection{blogCollection},
		IncludeDrafts: true,
	}, src, nil)

	result, err := svc.Build(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Compiled["blog"])
}

func TestBuild_CacheHitOnSecondBuild(t *testing.T) {
	src := &fakeSource{docs: map[string]map[string]fakeDoc{
		"blog": {"vi/my-post.mdx": {meta: blogMeta("Cached"), body: "Body text."}},
	}}
	cache := newFakeCache()
	svc, _ := newTestService(t, BuildConfig{Collections: []domain.Collection{blogCollection}}, src, cache)

	first, err := svc.Build(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, first.CacheHits)
	assert.Equal(t, 1, cache.puts)

	second, err := svc.Build(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, second.CacheHits)
	assert.Equal(t, 1, cache.puts, "hit must not rewrite the entry")

	assert.NotEqual(t, first.GenerationID, second.GenerationID)
}

func TestBuild_SlugCollisionAborts(t *testing.T) {
	src := &fakeSource{docs: map[string]map[string]fakeDoc{
		"docs": {
			"vi/guide.mdx":       {meta: map[string]any{"title": "Guide"}, body: "One."},
			"vi/guide/index.mdx": {meta: map[string]any{"title": "Guide too"}, body: "Two."},
		},
	}}
	svc, store := newTestService(t, BuildConfig{Collections: []domain.Collection{docsCollection}}, src, nil)

	_, err := svc.Build(context.Background())
	var collision *domain.SlugCollisionError
	require.ErrorAs(t, err, &collision)

	assert.Equal(t, "docs", collision.Collection)
	assert.Equal(t, "/vi/guide", collision.Slug)
	assert.Equal(t, []string{"vi/guide.mdx", "vi/guide/index.mdx"}, collision.Paths)
	assert.Empty(t, store.GenerationID(context.Background()))
}

func TestBuild_CompilesFullPost(t *testing.T) {
	var body strings.Builder
	body.WriteString("# Giới thiệu\n\n")
	for i := 0; i < 350; i++ {
		body.WriteString("từ ")
	}
	body.WriteString("\n\n```go {2}\npackage main\n\nfunc main() {}\n```\n")

	src := &fakeSource{docs: map[string]map[string]fakeDoc{
		"blog": {"vi/my-post.mdx": {meta: blogMeta("Bài viết"), body: body.String()}},
	}}
	svc, store := newTestService(t, BuildConfig{Collections: []domain.Collection{blogCollection}}, src, nil)

	_, err := svc.Build(context.Background())
	require.NoError(t, err)

	doc, err := store.BySlug(context.Background(), "blog", "/blog/vi/my-post")
	require.NoError(t, err)

	assert.Equal(t, "vi", doc.Locale)
	assert.Equal(t, 2, doc.ReadTimeMinutes, "~360 words at 200wpm")
	require.NotNil(t, doc.Author)
	assert.Equal(t, "Huỳnh Sang", doc.Author.Name)
	assert.Equal(t, "Kỹ sư.", doc.Author.Bio)

	assert.Contains(t, doc.CompiledBody, `id="giới-thiệu"`)
	assert.Contains(t, doc.CompiledBody, `class="heading-anchor"`)
	assert.Contains(t, doc.CompiledBody, `data-language="go"`)
	assert.Contains(t, doc.CompiledBody, "line-highlighted", "line 2 flagged for highlighting")
}

func TestBuild_ReadErrorReported(t *testing.T) {
	// List and Read disagree: simulates a file deleted mid-build.
	src := &listOnlySource{paths: []string{"vi/ghost.mdx"}}
	svc, _ := newTestService(t, BuildConfig{Collections: []domain.Collection{blogCollection}}, src, nil)

	result, err := svc.Build(context.Background())
	require.ErrorIs(t, err, domain.ErrBuildFailed)
	require.Len(t, result.Errors, 1)
	assert.True(t, errors.Is(result.Errors[0].Err, domain.ErrNotFound))
}

// listOnlySource lists paths it can never read.
type listOnlySource struct {
	paths []string
}

func (s *listOnlySource) List(context.Context, domain.Collection) ([]string, error) {
	return s.paths, nil
}

func (s *listOnlySource) Read(context.Context, domain.Collection, string) (*domain.Document, error) {
	return nil, domain.ErrNotFound
}
