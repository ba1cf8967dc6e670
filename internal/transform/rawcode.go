package transform

import (
	"strings"

	"github.com/yuin/goldmark/ast"
)

// rawCapture copies each fenced code block's literal text and its parsed
// fence directives into the annotation table. It must run before the
// highlight pass destroys the plain-text form; the captured source later
// feeds the copy-to-clipboard UI and the package-manager variant pass.
type rawCapture struct{}

// NewRawCapture creates the raw-source capture pass.
func NewRawCapture() Pass { return &rawCapture{} }

// Name implements Pass.
func (p *rawCapture) Name() string { return "raw-capture" }

// Apply implements Pass.
func (p *rawCapture) Apply(ctx *Context, doc *ast.Document) error {
	return walk(doc, func(n ast.Node) error {
		fence, ok := n.(*ast.FencedCodeBlock)
		if !ok {
			return nil
		}

		info := ""
		if fence.Info != nil {
			info = string(fence.Info.Segment.Value(ctx.Source))
		}

		lang, meta, err := ParseFenceInfo(info)
		if err != nil {
			return err
		}

		ann := ctx.Annotations.At(fence)
		ann.RawSource = fenceText(fence, ctx.Source)
		ann.Language = lang
		ann.Meta = meta
		return nil
	})
}

// fenceText joins the fence's source lines into the literal, unescaped
// code text, without a trailing newline.
func fenceText(fence *ast.FencedCodeBlock, source []byte) string {
	var sb strings.Builder
	lines := fence.Lines()
	for i := 0; i < lines.Len(); i++ {
		segment := lines.At(i)
		sb.Write(segment.Value(source))
	}
	return strings.TrimSuffix(sb.String(), "\n")
}
