package transform

import (
	"fmt"

	"github.com/yuin/goldmark/ast"
)

// anchors attaches a clickable anchor link to every heading, using the id
// generated by the heading-ids pass. A heading without an id means the
// passes ran out of order, which fails loudly rather than emitting broken
// links.
type anchors struct{}

// NewAnchors creates the anchor-link injection pass.
func NewAnchors() Pass { return &anchors{} }

// Name implements Pass.
func (p *anchors) Name() string { return "anchors" }

// Apply implements Pass.
func (p *anchors) Apply(ctx *Context, doc *ast.Document) error {
	return walk(doc, func(n ast.Node) error {
		heading, ok := n.(*ast.Heading)
		if !ok {
			return nil
		}

		ann, ok := ctx.Annotations.Get(heading)
		if !ok || ann.HeadingID == "" {
			return fmt.Errorf("heading has no id; heading-ids must run before anchors")
		}

		label := NodeText(heading, ctx.Source)
		heading.AppendChild(heading, NewAnchorLink(ann.HeadingID, label))
		return nil
	})
}
