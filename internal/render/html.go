// Package render serialises a rewritten document tree into the compiled
// HTML payload consumed by the rendering layer.
//
// The custom node kinds produced by the rewrite passes get registered
// renderers; everything else uses goldmark's defaults. Per-node metadata
// (raw source, title-bar flag, package-manager variants) is emitted as
// data attributes so the UI can implement copy-to-clipboard and manager
// tabs without reparsing anything.
package render

import (
	"bytes"
	"fmt"
	"html"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"

	"github.com/huynhsang/contentkit/internal/transform"
)

// Document renders the rewritten tree to HTML. The annotation table must
// be the one threaded through the rewrite passes for this document.
func Document(doc *ast.Document, source []byte, table *transform.Table) (string, error) {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(
			gmhtml.WithUnsafe(),
			renderer.WithNodeRenderers(
				util.Prioritized(&nodeRenderer{table: table}, 100),
			),
		),
	)

	var buf bytes.Buffer
	if err := md.Renderer().Render(&buf, source, doc); err != nil {
		return "", fmt.Errorf("render document: %w", err)
	}
	return buf.String(), nil
}

// nodeRenderer renders the custom node kinds from the transform package.
type nodeRenderer struct {
	table *transform.Table
}

// RegisterFuncs implements renderer.NodeRenderer.
func (r *nodeRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(transform.KindCodeFigure, r.renderCodeFigure)
	reg.Register(transform.KindCodeTitle, r.renderCodeTitle)
	reg.Register(transform.KindCodePre, r.renderCodePre)
	reg.Register(transform.KindAnchorLink, r.renderAnchorLink)
}

func (r *nodeRenderer) renderCodeFigure(w util.BufWriter, _ []byte, _ ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		_, _ = w.WriteString(`<figure class="code-block">` + "\n")
	} else {
		_, _ = w.WriteString("</figure>\n")
	}
	return ast.WalkContinue, nil
}

func (r *nodeRenderer) renderCodeTitle(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	title := node.(*transform.CodeTitle)
	fmt.Fprintf(w, `<figcaption class="code-title">%s</figcaption>`+"\n", html.EscapeString(title.Title))
	return ast.WalkSkipChildren, nil
}

func (r *nodeRenderer) renderCodePre(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	pre := node.(*transform.CodePre)

	var attrs strings.Builder
	attrs.WriteString(` class="chroma"`)
	if pre.Language != "" {
		writeAttr(&attrs, "data-language", pre.Language)
	}

	if ann, ok := r.table.Get(pre); ok {
		writeAttr(&attrs, "data-raw", ann.RawSource)
		if ann.HasTitleBar {
			attrs.WriteString(` data-title-bar="true"`)
		}
		if ann.Meta.ShowLineNumbers {
			attrs.WriteString(` data-line-numbers="true"`)
		}

		// Sorted for byte-identical output across builds.
		managers := make([]string, 0, len(ann.Variants))
		for manager := range ann.Variants {
			managers = append(managers, manager)
		}
		sort.Strings(managers)
		for _, manager := range managers {
			writeAttr(&attrs, "data-pm-"+manager, ann.Variants[manager])
		}
	}

	fmt.Fprintf(w, "<pre%s><code>", attrs.String())
	_, _ = w.WriteString(strings.Join(pre.Rendered, "\n"))
	_, _ = w.WriteString("</code></pre>\n")
	return ast.WalkSkipChildren, nil
}

// writeAttr appends one HTML-escaped attribute. The value is escaped only,
// never re-quoted: newlines and tabs in captured source must reach the
// attribute as the literal characters, not escape sequences.
func writeAttr(sb *strings.Builder, name, value string) {
	sb.WriteString(` ` + name + `="` + html.EscapeString(value) + `"`)
}

func (r *nodeRenderer) renderAnchorLink(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	anchor := node.(*transform.AnchorLink)
	fmt.Fprintf(w,
		`<a class="heading-anchor" href="#%s" aria-label="Link to %s"><span aria-hidden="true">#</span></a>`,
		anchor.TargetID, html.EscapeString(anchor.Label))
	return ast.WalkSkipChildren, nil
}
