// Package markup converts raw markup text into a goldmark AST.
//
// Parsing happens in two stages: a pre-pass expands code-import directives
// into literal file contents, then goldmark parses the expanded text with
// the GFM extensions (tables, strikethrough, autolinked URLs). Imported
// code participates in every subsequent rewrite pass identically to inline
// code.
package markup
