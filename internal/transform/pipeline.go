package transform

import (
	"github.com/yuin/goldmark/ast"

	"github.com/huynhsang/contentkit/internal/core/domain"
)

// Context carries the per-document state threaded through the passes.
type Context struct {
	// Path is the document path relative to the collection root, used
	// for error reporting.
	Path string

	// Source is the expanded markup text the tree was parsed from.
	// goldmark nodes reference segments of it.
	Source []byte

	// Annotations is the cross-pass side table.
	Annotations *Table
}

// NewContext creates a transform context with an empty annotation table.
func NewContext(path string, source []byte) *Context {
	return &Context{
		Path:        path,
		Source:      source,
		Annotations: NewTable(),
	}
}

// Pass is one tree-rewriting stage. Passes are deterministic: re-running
// on identical input produces identical output.
type Pass interface {
	// Name identifies the pass in error reports.
	Name() string

	// Apply mutates the tree and the context's annotation table.
	Apply(ctx *Context, doc *ast.Document) error
}

// Pipeline returns the rewrite passes in their fixed order. The order is
// a correctness invariant (see the package documentation); callers must
// apply the passes exactly as returned.
func Pipeline(highlighter *Highlighter) []Pass {
	return []Pass{
		NewHeadingIDs(),
		NewRawCapture(),
		NewHighlight(highlighter),
		NewHoist(),
		NewPackageManagerVariants(),
		NewAnchors(),
	}
}

// Run applies the passes sequentially. The first failing pass aborts the
// document: the partial tree is discarded by the caller, never stored.
func Run(ctx *Context, doc *ast.Document, passes []Pass) error {
	for _, pass := range passes {
		if err := pass.Apply(ctx, doc); err != nil {
			return &domain.TransformError{Path: ctx.Path, Pass: pass.Name(), Err: err}
		}
	}
	return nil
}
