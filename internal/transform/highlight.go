package transform

import (
	"fmt"
	"html"
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/yuin/goldmark/ast"
)

// Highlighter tokenises code per declared language. Lexer lookup and
// configuration are memoised per process: the engine is constructed once
// and shared read-only across all concurrent document compilations.
type Highlighter struct {
	mu     sync.Mutex
	lexers map[string]chroma.Lexer
}

// NewHighlighter creates a shared highlighting engine.
func NewHighlighter() *Highlighter {
	return &Highlighter{lexers: make(map[string]chroma.Lexer)}
}

// lexer resolves and caches the lexer for a language tag. An unknown,
// non-empty tag is an error; a missing tag falls back to plain text.
func (h *Highlighter) lexer(language string) (chroma.Lexer, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if lexer, ok := h.lexers[language]; ok {
		return lexer, nil
	}

	var lexer chroma.Lexer
	if language == "" {
		lexer = lexers.Fallback
	} else {
		lexer = lexers.Get(language)
		if lexer == nil {
			return nil, fmt.Errorf("unknown language %q", language)
		}
	}

	lexer = chroma.Coalesce(lexer)
	h.lexers[language] = lexer
	return lexer, nil
}

// Lines tokenises source and renders one HTML fragment per line.
// Lines listed in meta.HighlightLines carry a line-highlighted class;
// meta.WordMarkers wrap matching text in word-highlighted spans. Empty
// lines render a non-breaking-space placeholder so they keep their height.
func (h *Highlighter) Lines(language, source string, meta CodeMeta) ([]string, error) {
	lexer, err := h.lexer(language)
	if err != nil {
		return nil, err
	}

	iterator, err := lexer.Tokenise(nil, strings.TrimSuffix(source, "\n"))
	if err != nil {
		return nil, fmt.Errorf("tokenise: %w", err)
	}

	highlighted := make(map[int]bool, len(meta.HighlightLines))
	for _, n := range meta.HighlightLines {
		highlighted[n] = true
	}

	tokenLines := chroma.SplitTokensIntoLines(iterator.Tokens())
	out := make([]string, 0, len(tokenLines))

	for i, tokens := range tokenLines {
		var sb strings.Builder

		class := "line"
		if highlighted[i+1] {
			class = "line line-highlighted"
		}
		fmt.Fprintf(&sb, `<span class=%q>`, class)

		empty := true
		for _, token := range tokens {
			value := strings.TrimSuffix(token.Value, "\n")
			if value == "" {
				continue
			}
			empty = false
			writeToken(&sb, token.Type, value, meta.WordMarkers)
		}
		if empty {
			// Placeholder keeps empty lines at full height.
			sb.WriteString("&nbsp;")
		}

		sb.WriteString("</span>")
		out = append(out, sb.String())
	}

	return out, nil
}

// writeToken emits one token as a classed span, applying word markers to
// the escaped text.
func writeToken(sb *strings.Builder, tokenType chroma.TokenType, value string, markers []string) {
	escaped := html.EscapeString(value)
	for _, marker := range markers {
		target := html.EscapeString(marker)
		escaped = strings.ReplaceAll(escaped, target,
			`<span class="word-highlighted">`+target+`</span>`)
	}

	if class := tokenClass(tokenType); class != "" {
		fmt.Fprintf(sb, `<span class=%q>%s</span>`, class, escaped)
	} else {
		sb.WriteString(escaped)
	}
}

// tokenClass maps a chroma token type to its stylesheet class, walking up
// the type hierarchy the way chroma's own HTML formatter does.
func tokenClass(t chroma.TokenType) string {
	if class, ok := chroma.StandardTypes[t]; ok {
		return class
	}
	if class, ok := chroma.StandardTypes[t.SubCategory()]; ok {
		return class
	}
	if class, ok := chroma.StandardTypes[t.Category()]; ok {
		return class
	}
	return ""
}

// highlight replaces each fenced code block with a CodeFigure wrapper
// holding an optional CodeTitle and the highlighted CodePre. It consumes
// the language and directives captured by the raw-capture pass; running
// it without that pass is an ordering violation and fails loudly.
type highlight struct {
	engine *Highlighter
}

// NewHighlight creates the syntax-highlighting pass.
func NewHighlight(engine *Highlighter) Pass { return &highlight{engine: engine} }

// Name implements Pass.
func (p *highlight) Name() string { return "highlight" }

// Apply implements Pass.
func (p *highlight) Apply(ctx *Context, doc *ast.Document) error {
	// Collect first: replacing nodes mid-walk confuses the walker.
	var fences []*ast.FencedCodeBlock
	err := walk(doc, func(n ast.Node) error {
		if fence, ok := n.(*ast.FencedCodeBlock); ok {
			fences = append(fences, fence)
		}
		return nil
	})
	if err != nil {
		return err
	}

	for _, fence := range fences {
		ann, ok := ctx.Annotations.Get(fence)
		if !ok {
			return fmt.Errorf("fence has no captured source; raw-capture must run before highlight")
		}

		lines, err := p.engine.Lines(ann.Language, ann.RawSource, ann.Meta)
		if err != nil {
			return err
		}

		figure := NewCodeFigure()
		if ann.Meta.Title != "" {
			title := NewCodeTitle(ann.Meta.Title)
			figure.AppendChild(figure, title)
		}
		figure.AppendChild(figure, NewCodePre(fence, ann.Language, lines))

		parent := fence.Parent()
		if parent == nil {
			return fmt.Errorf("fence has no parent")
		}
		parent.ReplaceChild(parent, fence, figure)
	}

	return nil
}
