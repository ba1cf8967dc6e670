package transform

import "github.com/yuin/goldmark/ast"

// CodeMeta holds the fence-level directive annotations parsed from a code
// fence's info string, e.g.
//
//	```ts {2,5-7} /useState/ title="hooks.ts" showLineNumbers
type CodeMeta struct {
	// Title is the title-bar text, empty when absent.
	Title string

	// ShowLineNumbers requests line numbers in the rendered block.
	ShowLineNumbers bool

	// HighlightLines are the one-based line numbers to emphasise,
	// expanded from range syntax, sorted ascending.
	HighlightLines []int

	// WordMarkers are the /word/ patterns to emphasise inside lines.
	WordMarkers []string
}

// NodeAnnotations carries the transient per-node state written by earlier
// passes and read by later ones. Fields are explicitly typed; a pass only
// writes the fields it owns.
type NodeAnnotations struct {
	// HeadingID is the generated heading slug (pass 1).
	HeadingID string

	// RawSource is the literal, unescaped fence text (pass 2).
	RawSource string

	// Language is the declared fence language tag (pass 2).
	Language string

	// Meta holds the parsed fence directives (pass 2).
	Meta CodeMeta

	// HasTitleBar records whether a title bar precedes the code block in
	// the rewritten tree (pass 4).
	HasTitleBar bool

	// Variants maps a package-manager name to an equivalent command
	// (pass 5). Nil when the fence is not an installer invocation.
	Variants map[string]string
}

// Table is the annotation side table, keyed by node identity. It replaces
// ad-hoc property mutation on tree nodes: when a pass rebuilds a node's
// position, the entry is rebound to the replacement node rather than
// copied field by field.
type Table struct {
	entries map[ast.Node]*NodeAnnotations
}

// NewTable creates an empty annotation table.
func NewTable() *Table {
	return &Table{entries: make(map[ast.Node]*NodeAnnotations)}
}

// At returns the annotations for n, creating an empty entry if absent.
func (t *Table) At(n ast.Node) *NodeAnnotations {
	ann, ok := t.entries[n]
	if !ok {
		ann = &NodeAnnotations{}
		t.entries[n] = ann
	}
	return ann
}

// Get returns the annotations for n without creating an entry.
func (t *Table) Get(n ast.Node) (*NodeAnnotations, bool) {
	ann, ok := t.entries[n]
	return ann, ok
}

// Rebind moves old's annotations to replacement. A no-op when old has no
// entry.
func (t *Table) Rebind(old, replacement ast.Node) {
	ann, ok := t.entries[old]
	if !ok {
		return
	}
	delete(t.entries, old)
	t.entries[replacement] = ann
}

// Len returns the number of annotated nodes.
func (t *Table) Len() int {
	return len(t.entries)
}
