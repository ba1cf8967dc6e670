package domain

// Document represents a single source content file.
// It is read from the filesystem at build time and is immutable once read.
// One document produces exactly one compiled document.
type Document struct {
	// Collection is the name of the collection this document belongs to.
	Collection string

	// Path is the location relative to the collection's source directory,
	// locale-qualified and slash-separated (e.g. "vi/getting-started.mdx").
	Path string

	// FrontMatter is the raw key-value metadata block, before schema
	// validation. Validated, typed metadata is produced per collection
	// schema and carried separately.
	FrontMatter map[string]any

	// Body is the markup text after the front-matter block.
	Body string

	// Raw is the complete file content, front matter included.
	Raw []byte
}

// FrontMatter is the validated, typed metadata of a document with all
// defaults applied. Fields not used by a collection type stay zero.
type FrontMatter struct {
	// Title is required for every collection type.
	Title string

	// Description is an optional summary (doc collections).
	Description string

	// Excerpt is the teaser text (blog collections).
	Excerpt string

	// Date is the publication date in YYYY-MM-DD form (blog collections).
	Date string

	// Tags are free-form labels.
	Tags []string

	// AuthorID references an entry in the static authors table
	// (blog collections).
	AuthorID string

	// TOC controls the table-of-contents flag (doc collections).
	// Defaults to true.
	TOC bool

	// Order is the sidebar ordering weight (doc collections).
	Order int

	// Draft excludes the document from the stored generation unless
	// drafts are explicitly requested.
	Draft bool
}
