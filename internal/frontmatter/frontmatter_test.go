package frontmatter

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huynhsang/contentkit/internal/core/domain"
)

func TestSplit(t *testing.T) {
	raw := []byte(`---
title: My Post
tags:
  - go
---
# Heading

Body text.
`)

	meta, body, err := Split(raw)
	require.NoError(t, err)
	assert.Equal(t, "My Post", meta["title"])
	assert.Equal(t, []any{"go"}, meta["tags"])
	assert.Contains(t, string(body), "# Heading")
	assert.NotContains(t, string(body), "title:")
}

func TestSplit_NoFrontMatter(t *testing.T) {
	meta, body, err := Split([]byte("# Just a heading\n"))
	require.NoError(t, err)
	assert.Empty(t, meta)
	assert.Equal(t, "# Just a heading\n", string(body))
}

func TestValidate_Blog_Success(t *testing.T) {
	meta := map[string]any{
		"title":     "My Post",
		"excerpt":   "A teaser.",
		"date":      "2024-01-01",
		"tags":      []any{"x"},
		"author_id": "huynhsang",
	}

	fm, err := Validate(domain.CollectionBlog, "vi/my-post.mdx", meta)
	require.NoError(t, err)
	assert.Equal(t, "My Post", fm.Title)
	assert.Equal(t, "A teaser.", fm.Excerpt)
	assert.Equal(t, "2024-01-01", fm.Date)
	assert.Equal(t, []string{"x"}, fm.Tags)
	assert.Equal(t, "huynhsang", fm.AuthorID)
	assert.False(t, fm.Draft)
}

func TestValidate_Blog_MissingTitle(t *testing.T) {
	meta := map[string]any{
		"date":      "2024-01-01",
		"author_id": "huynhsang",
	}

	_, err := Validate(domain.CollectionBlog, "vi/my-post.mdx", meta)
	require.Error(t, err)

	var schemaErr *domain.SchemaValidationError
	require.True(t, errors.As(err, &schemaErr))
	assert.Equal(t, "vi/my-post.mdx", schemaErr.Path)
	require.Len(t, schemaErr.Fields, 1)
	assert.Equal(t, "title", schemaErr.Fields[0].Field)
}

func TestValidate_Blog_AllViolationsReported(t *testing.T) {
	_, err := Validate(domain.CollectionBlog, "vi/my-post.mdx", map[string]any{
		"date": "not-a-date",
	})
	require.Error(t, err)

	var schemaErr *domain.SchemaValidationError
	require.True(t, errors.As(err, &schemaErr))

	fields := make([]string, len(schemaErr.Fields))
	for i, f := range schemaErr.Fields {
		fields[i] = f.Field
	}
	assert.Contains(t, fields, "title")
	assert.Contains(t, fields, "date")
	assert.Contains(t, fields, "author_id")
}

func TestValidate_Docs_TOCDefaultsTrue(t *testing.T) {
	fm, err := Validate(domain.CollectionDocs, "vi/guide.mdx", map[string]any{
		"title": "Guide",
	})
	require.NoError(t, err)
	assert.True(t, fm.TOC)
}

func TestValidate_Docs_TOCExplicitFalse(t *testing.T) {
	fm, err := Validate(domain.CollectionDocs, "vi/guide.mdx", map[string]any{
		"title": "Guide",
		"toc":   false,
	})
	require.NoError(t, err)
	assert.False(t, fm.TOC)
}

func TestValidate_UnknownCollectionType(t *testing.T) {
	_, err := Validate(domain.CollectionType("wiki"), "x.mdx", map[string]any{"title": "A"})
	assert.ErrorIs(t, err, domain.ErrUnknownCollectionType)
}
