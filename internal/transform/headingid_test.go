package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yuin/goldmark/ast"

	"github.com/huynhsang/contentkit/internal/markup"
)

// parseDoc builds a tree and a fresh transform context for pass tests.
func parseDoc(t *testing.T, src string) (*Context, *ast.Document) {
	t.Helper()
	ctx := NewContext("test.mdx", []byte(src))
	return ctx, markup.NewParser().Parse(ctx.Source)
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"Getting Started", "getting-started"},
		{"Giới thiệu", "giới-thiệu"},
		{"Hooks & State!", "hooks-state"},
		{"  spaced  out  ", "spaced-out"},
		{"¡¿?!", ""},
		{"v1.2.3", "v123"},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.text))
		})
	}
}

func TestHeadingIDs_AssignsIDs(t *testing.T) {
	ctx, doc := parseDoc(t, "# Giới thiệu\n\n## Getting Started\n")

	require.NoError(t, NewHeadingIDs().Apply(ctx, doc))

	var ids []string
	_ = walk(doc, func(n ast.Node) error {
		if h, ok := n.(*ast.Heading); ok {
			id, ok := h.Attribute([]byte("id"))
			require.True(t, ok)
			ids = append(ids, string(id.([]byte)))

			ann, ok := ctx.Annotations.Get(h)
			require.True(t, ok)
			assert.Equal(t, string(id.([]byte)), ann.HeadingID)
		}
		return nil
	})
	assert.Equal(t, []string{"giới-thiệu", "getting-started"}, ids)
}

func TestHeadingIDs_DuplicatesGetSuffixes(t *testing.T) {
	ctx, doc := parseDoc(t, "## Setup\n\n## Setup\n\n## Setup\n")

	require.NoError(t, NewHeadingIDs().Apply(ctx, doc))

	var ids []string
	_ = walk(doc, func(n ast.Node) error {
		if h, ok := n.(*ast.Heading); ok {
			id, _ := h.Attribute([]byte("id"))
			ids = append(ids, string(id.([]byte)))
		}
		return nil
	})
	assert.Equal(t, []string{"setup", "setup-1", "setup-2"}, ids)
}

func TestHeadingIDs_SuffixNeverCollidesWithLiteralHeading(t *testing.T) {
	ctx, doc := parseDoc(t, "## Setup 1\n\n## Setup\n\n## Setup\n")

	require.NoError(t, NewHeadingIDs().Apply(ctx, doc))

	var ids []string
	_ = walk(doc, func(n ast.Node) error {
		if h, ok := n.(*ast.Heading); ok {
			id, _ := h.Attribute([]byte("id"))
			ids = append(ids, string(id.([]byte)))
		}
		return nil
	})
	// The duplicated "Setup" skips the -1 suffix already claimed by the
	// literal "Setup 1" heading.
	assert.Equal(t, []string{"setup-1", "setup", "setup-2"}, ids)
}

func TestHeadingIDs_EmptyHeadingGetsFallback(t *testing.T) {
	ctx, doc := parseDoc(t, "## !!!\n")

	require.NoError(t, NewHeadingIDs().Apply(ctx, doc))

	var ids []string
	_ = walk(doc, func(n ast.Node) error {
		if h, ok := n.(*ast.Heading); ok {
			id, _ := h.Attribute([]byte("id"))
			ids = append(ids, string(id.([]byte)))
		}
		return nil
	})
	assert.Equal(t, []string{"section-1"}, ids)
}

func TestAnchors_AppendsLinkPerHeading(t *testing.T) {
	ctx, doc := parseDoc(t, "## Setup\n")

	require.NoError(t, NewHeadingIDs().Apply(ctx, doc))
	require.NoError(t, NewAnchors().Apply(ctx, doc))

	var anchors []*AnchorLink
	_ = walk(doc, func(n ast.Node) error {
		if a, ok := n.(*AnchorLink); ok {
			anchors = append(anchors, a)
		}
		return nil
	})
	require.Len(t, anchors, 1)
	assert.Equal(t, "setup", anchors[0].TargetID)
	assert.Equal(t, "Setup", anchors[0].Label)
}

func TestAnchors_FailsWithoutHeadingIDs(t *testing.T) {
	ctx, doc := parseDoc(t, "## Setup\n")

	err := NewAnchors().Apply(ctx, doc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "heading-ids must run before anchors")
}
