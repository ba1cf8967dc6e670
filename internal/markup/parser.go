package markup

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// Parser converts expanded markup text into a goldmark AST. It is
// stateless and safe to share across concurrent document compilations.
type Parser struct {
	md goldmark.Markdown
}

// NewParser creates a parser with the GFM extensions enabled: tables,
// strikethrough and autolinked bare URLs.
func NewParser() *Parser {
	return &Parser{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
		),
	}
}

// Parse produces the AST for src. The rewrite passes receive both the tree
// and the source bytes, since goldmark nodes reference source segments.
func (p *Parser) Parse(src []byte) *ast.Document {
	root := p.md.Parser().Parse(text.NewReader(src))
	doc, ok := root.(*ast.Document)
	if !ok {
		// goldmark's block parser always returns *ast.Document.
		doc = ast.NewDocument()
		doc.AppendChild(doc, root)
	}
	return doc
}
