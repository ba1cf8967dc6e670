package transform

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/yuin/goldmark/ast"
)

var (
	slugStripRe    = regexp.MustCompile(`[^\p{L}\p{N}-]`)
	slugCollapseRe = regexp.MustCompile(`-+`)
)

// Slugify converts heading text to a URL-safe identifier. Unicode letters
// survive, so Vietnamese headings keep their diacritics.
func Slugify(text string) string {
	slug := strings.ToLower(strings.TrimSpace(text))
	slug = strings.ReplaceAll(slug, " ", "-")
	slug = slugStripRe.ReplaceAllString(slug, "")
	slug = slugCollapseRe.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// headingIDs assigns a unique, slugified id to every heading and records
// it in the annotation table for the anchor pass.
type headingIDs struct{}

// NewHeadingIDs creates the heading-ID assignment pass.
func NewHeadingIDs() Pass { return &headingIDs{} }

// Name implements Pass.
func (p *headingIDs) Name() string { return "heading-ids" }

// Apply implements Pass.
func (p *headingIDs) Apply(ctx *Context, doc *ast.Document) error {
	used := map[string]struct{}{}
	untitled := 0

	return walk(doc, func(n ast.Node) error {
		heading, ok := n.(*ast.Heading)
		if !ok {
			return nil
		}

		text := NodeText(heading, ctx.Source)
		base := Slugify(text)
		if base == "" {
			untitled++
			base = fmt.Sprintf("section-%d", untitled)
		}

		// Suffix repeated headings until the id is free; generated ids
		// count as taken too, so a literal "setup-1" heading never
		// collides with a suffixed duplicate of "setup".
		slug := base
		for n := 1; ; n++ {
			if _, taken := used[slug]; !taken {
				break
			}
			slug = fmt.Sprintf("%s-%d", base, n)
		}
		used[slug] = struct{}{}

		heading.SetAttribute([]byte("id"), []byte(slug))

		ann := ctx.Annotations.At(heading)
		ann.HeadingID = slug
		return nil
	})
}

// NodeText collects the plain text of a node's inline children.
func NodeText(n ast.Node, source []byte) string {
	var sb strings.Builder
	_ = ast.Walk(n, func(child ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := child.(type) {
		case *ast.Text:
			sb.Write(t.Segment.Value(source))
		case *ast.String:
			sb.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return sb.String()
}

// walk visits every node once, entering only, stopping on error.
func walk(doc *ast.Document, fn func(ast.Node) error) error {
	return ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if err := fn(n); err != nil {
			return ast.WalkStop, err
		}
		return ast.WalkContinue, nil
	})
}
