package transform

import "github.com/yuin/goldmark/ast"

// Custom node kinds produced by the rewrite passes. The highlight pass
// replaces each fenced code block with a CodeFigure wrapper so that the
// wrapper shape is defined here, in one place, instead of being inferred
// from a third-party highlighter's output.
var (
	// KindCodeFigure is the node kind of the code block wrapper.
	KindCodeFigure = ast.NewNodeKind("CodeFigure")

	// KindCodeTitle is the node kind of the title bar element.
	KindCodeTitle = ast.NewNodeKind("CodeTitle")

	// KindCodePre is the node kind of the highlighted pre element.
	KindCodePre = ast.NewNodeKind("CodePre")

	// KindAnchorLink is the node kind of a heading anchor link.
	KindAnchorLink = ast.NewNodeKind("AnchorLink")
)

// CodeFigure wraps a highlighted code block. Its first child is a
// CodeTitle when the fence declared a title, followed by the CodePre.
type CodeFigure struct {
	ast.BaseBlock
}

// Kind implements ast.Node.
func (n *CodeFigure) Kind() ast.NodeKind { return KindCodeFigure }

// Dump implements ast.Node.
func (n *CodeFigure) Dump(src []byte, level int) {
	ast.DumpHelper(n, src, level, nil, nil)
}

// NewCodeFigure creates an empty code block wrapper.
func NewCodeFigure() *CodeFigure { return &CodeFigure{} }

// CodeTitle is the title bar preceding a highlighted code block.
type CodeTitle struct {
	ast.BaseBlock

	// Title is the display text.
	Title string
}

// Kind implements ast.Node.
func (n *CodeTitle) Kind() ast.NodeKind { return KindCodeTitle }

// Dump implements ast.Node.
func (n *CodeTitle) Dump(src []byte, level int) {
	ast.DumpHelper(n, src, level, map[string]string{"Title": n.Title}, nil)
}

// NewCodeTitle creates a title bar node.
func NewCodeTitle(title string) *CodeTitle { return &CodeTitle{Title: title} }

// CodePre is the highlighted replacement for a fenced code block. Rendered
// holds the per-line token markup; cross-pass metadata (raw source, fence
// directives, variants) stays in the annotation table, rebound to this
// node by the hoist pass.
type CodePre struct {
	ast.BaseBlock

	// Origin is the fenced code block this node replaced. The hoist pass
	// uses it to rebind the annotations captured before highlighting.
	Origin ast.Node

	// Language is the resolved language tag.
	Language string

	// Rendered holds the rendered token spans, one entry per source line.
	// Named so as not to shadow the Lines segment accessor from BaseBlock.
	Rendered []string
}

// Kind implements ast.Node.
func (n *CodePre) Kind() ast.NodeKind { return KindCodePre }

// Dump implements ast.Node.
func (n *CodePre) Dump(src []byte, level int) {
	ast.DumpHelper(n, src, level, map[string]string{"Language": n.Language}, nil)
}

// NewCodePre creates a highlighted pre node replacing origin.
func NewCodePre(origin ast.Node, language string, rendered []string) *CodePre {
	return &CodePre{Origin: origin, Language: language, Rendered: rendered}
}

// AnchorLink is the clickable anchor attached to a heading.
type AnchorLink struct {
	ast.BaseInline

	// TargetID is the heading's generated id; the href is "#" + TargetID.
	TargetID string

	// Label is the heading text, used for the accessible label.
	Label string
}

// Kind implements ast.Node.
func (n *AnchorLink) Kind() ast.NodeKind { return KindAnchorLink }

// Dump implements ast.Node.
func (n *AnchorLink) Dump(src []byte, level int) {
	ast.DumpHelper(n, src, level, map[string]string{"TargetID": n.TargetID}, nil)
}

// NewAnchorLink creates an anchor link for a heading.
func NewAnchorLink(targetID, label string) *AnchorLink {
	return &AnchorLink{TargetID: targetID, Label: label}
}
