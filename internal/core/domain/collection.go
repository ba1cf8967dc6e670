package domain

// CollectionType selects the schema and post-assembly enrichment
// applied to a collection's documents.
type CollectionType string

const (
	// CollectionDocs is a documentation collection: table-of-contents
	// flag, no author resolution.
	CollectionDocs CollectionType = "docs"

	// CollectionBlog is a blog collection: author resolution and
	// reading-time estimation.
	CollectionBlog CollectionType = "blog"
)

// Valid reports whether the collection type is a known value.
func (t CollectionType) Valid() bool {
	switch t {
	case CollectionDocs, CollectionBlog:
		return true
	}
	return false
}

// Collection is a named grouping of documents sharing one schema and one
// transform. Every document assigned to a collection must validate against
// the collection's schema or the build fails for that document.
type Collection struct {
	// Name uniquely identifies the collection (e.g. "docs", "blog").
	Name string

	// Type selects schema and enrichment behaviour.
	Type CollectionType

	// SourceDir is the directory holding the collection's content files.
	SourceDir string

	// FilePattern is a doublestar glob matched against paths relative to
	// SourceDir (e.g. "**/*.mdx").
	FilePattern string

	// RoutePrefix is prepended to derived slugs. Empty for collections
	// served at the site root, "/blog" for the blog.
	RoutePrefix string
}
