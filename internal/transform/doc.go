// Package transform applies the ordered rewrite passes to a parsed
// document tree.
//
// The pass order is a correctness invariant, not an implementation detail:
// later passes depend on state written by earlier ones. Heading IDs must
// exist before anchor links are injected; raw fence text must be captured
// before highlighting replaces the plain-text form; hoisting must run after
// highlighting rebuilds the code block's position in the tree.
//
//	1. heading-ids   assigns a unique slugified id per heading
//	2. raw-capture   copies literal fence text + fence meta aside
//	3. highlight     replaces fences with styled per-line token spans
//	4. hoist         rebinds captured metadata onto the new pre node and
//	                 records whether a title bar precedes the code
//	5. pm-variants   synthesises package-manager command variants
//	6. anchors       attaches an anchor link to every heading
//
// Passes never mutate untyped node state. All cross-pass data lives in an
// explicit annotation table keyed by node identity, carried through the
// pipeline by the Context.
package transform
