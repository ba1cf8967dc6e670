package transform

import (
	"fmt"

	"github.com/yuin/goldmark/ast"
)

// hoist walks the tree shape produced by the highlight pass and rebinds
// the annotations captured on the original fence node onto the final pre
// element. It also records whether a title bar precedes the code block,
// detected explicitly against our own wrapper shape: the CodeFigure's
// first child being a CodeTitle.
type hoist struct{}

// NewHoist creates the metadata-hoist pass.
func NewHoist() Pass { return &hoist{} }

// Name implements Pass.
func (p *hoist) Name() string { return "hoist" }

// Apply implements Pass.
func (p *hoist) Apply(ctx *Context, doc *ast.Document) error {
	return walk(doc, func(n ast.Node) error {
		pre, ok := n.(*CodePre)
		if !ok {
			return nil
		}

		if _, ok := ctx.Annotations.Get(pre.Origin); !ok {
			return fmt.Errorf("pre element has no origin annotations; highlight must run before hoist")
		}
		ctx.Annotations.Rebind(pre.Origin, pre)

		ann := ctx.Annotations.At(pre)
		if figure, ok := pre.Parent().(*CodeFigure); ok {
			_, hasTitle := figure.FirstChild().(*CodeTitle)
			ann.HasTitleBar = hasTitle
		}
		return nil
	})
}
