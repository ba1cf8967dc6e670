package domain

// CompiledDocument is the assembled, serialisable result of compiling one
// source document. Nothing mutates a compiled document after assembly; the
// document store exclusively owns it.
type CompiledDocument struct {
	// Collection is the owning collection's name.
	Collection string `json:"collection"`

	// Slug is the derived URL path with a leading slash
	// (e.g. "/blog/vi/my-post").
	Slug string `json:"slug"`

	// SlugAsParams is Slug without the leading slash, for routers that
	// take path segments.
	SlugAsParams string `json:"slugAsParams"`

	// Locale is the locale segment extracted from the document path.
	Locale string `json:"locale"`

	// Title and the other metadata fields mirror the validated front
	// matter after defaults were applied.
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Excerpt     string   `json:"excerpt,omitempty"`
	Date        string   `json:"date,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Draft       bool     `json:"draft,omitempty"`

	// CompiledBody is the serialised rewritten tree, ready for the
	// rendering layer.
	CompiledBody string `json:"compiledBody"`

	// ReadTimeMinutes is the reading-time estimate (blog collections).
	// Always at least 1 for blog documents.
	ReadTimeMinutes int `json:"readTimeMinutes,omitempty"`

	// Author is the resolved author record (blog collections).
	Author *ResolvedAuthor `json:"author,omitempty"`

	// TableOfContentsEnabled reports the TOC flag (doc collections).
	TableOfContentsEnabled bool `json:"tableOfContentsEnabled,omitempty"`

	// Order is the sidebar ordering weight (doc collections).
	Order int `json:"order,omitempty"`

	// ID is the legacy document identifier: the source path relative to
	// the collection root, extension included.
	ID string `json:"_id"`

	// Raw is the legacy source-file descriptor block.
	Raw RawDescriptor `json:"_raw"`

	// Body is the legacy body layout expected by older consumers.
	Body BodyDescriptor `json:"body"`
}

// RawDescriptor is the legacy `_raw` field layout. Older rendering code
// reads source locations from here; the fields must stay stable.
type RawDescriptor struct {
	SourceFilePath string `json:"sourceFilePath"`
	SourceFileName string `json:"sourceFileName"`
	SourceFileDir  string `json:"sourceFileDir"`
	ContentType    string `json:"contentType"`
	FlattenedPath  string `json:"flattenedPath"`
}

// BodyDescriptor is the legacy `body` field layout: the raw markup text
// alongside the compiled payload.
type BodyDescriptor struct {
	Raw  string `json:"raw"`
	Code string `json:"code"`
}
