package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huynhsang/contentkit/internal/core/domain"
)

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	cache, err := NewCache(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = cache.Close() })
	return cache
}

func TestCache_MissReturnsNotFound(t *testing.T) {
	cache := newTestCache(t)

	_, err := cache.Get(context.Background(), "no-such-key")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCache_PutThenGet(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	doc := &domain.CompiledDocument{
		Collection:      "blog",
		Slug:            "/blog/vi/my-post",
		Title:           "Bài viết",
		ReadTimeMinutes: 2,
		Author:          &domain.ResolvedAuthor{ID: "huynhsang", Name: "Huỳnh Sang"},
	}
	require.NoError(t, cache.Put(ctx, "key-1", doc))

	got, err := cache.Get(ctx, "key-1")
	require.NoError(t, err)
	assert.Equal(t, doc, got)
}

func TestCache_PutOverwrites(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Put(ctx, "key", &domain.CompiledDocument{Title: "old"}))
	require.NoError(t, cache.Put(ctx, "key", &domain.CompiledDocument{Title: "new"}))

	got, err := cache.Get(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, "new", got.Title)
}

func TestCache_SurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	cache, err := NewCache(dir)
	require.NoError(t, err)
	require.NoError(t, cache.Put(ctx, "key", &domain.CompiledDocument{Title: "persisted"}))
	require.NoError(t, cache.Close())

	reopened, err := NewCache(dir)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Get(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, "persisted", got.Title)
}
