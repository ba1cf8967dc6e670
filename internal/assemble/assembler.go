// Package assemble turns a rewritten, rendered document into the final
// compiled record: derived slug, locale, reading time, resolved author and
// the legacy field layout older consumers still read.
//
// The assembler is pure: everything it produces is recomputable from the
// source document plus the static configuration passed in at construction.
// One assembler serves both collection types; type-specific behaviour is a
// small enrichment hook.
package assemble

import (
	"fmt"
	"path"
	"strings"

	"github.com/huynhsang/contentkit/internal/core/domain"
)

// wordsPerMinute is the fixed reading-speed constant.
const wordsPerMinute = 200

// indexSegment is the reserved final path segment dropped during slug
// derivation, so section/index resolves to section.
const indexSegment = "index"

// Config is the static site configuration the assembler needs.
type Config struct {
	// DefaultLocale is the bio fallback locale.
	DefaultLocale string

	// Authors is the static authors table, keyed by ID.
	Authors map[string]domain.Author
}

// Input is one document ready for assembly.
type Input struct {
	// Collection is the owning collection.
	Collection domain.Collection

	// Path is the source path relative to the collection root,
	// slash-separated, extension included (e.g. "vi/my-post.mdx").
	Path string

	// Meta is the validated front matter with defaults applied.
	Meta *domain.FrontMatter

	// Body is the raw markup body text.
	Body string

	// CompiledBody is the serialised rewritten tree.
	CompiledBody string
}

// Assembler builds compiled documents from transformed input.
// Safe to share across concurrent document compilations: its
// configuration is read-only.
type Assembler struct {
	cfg Config

	// enrich maps a collection type to its post-assembly hook.
	enrich map[domain.CollectionType]func(*domain.CompiledDocument, Input)
}

// New creates an assembler over the given static configuration.
func New(cfg Config) *Assembler {
	a := &Assembler{cfg: cfg}
	a.enrich = map[domain.CollectionType]func(*domain.CompiledDocument, Input){
		domain.CollectionBlog: a.enrichBlog,
		domain.CollectionDocs: a.enrichDocs,
	}
	return a
}

// Assemble produces the compiled document record.
func (a *Assembler) Assemble(in Input) (*domain.CompiledDocument, error) {
	hook, ok := a.enrich[in.Collection.Type]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownCollectionType, in.Collection.Type)
	}

	slug, slugAsParams, locale := Slug(in.Collection.RoutePrefix, in.Path)

	sourceFilePath := path.Join(in.Collection.Name, in.Path)
	doc := &domain.CompiledDocument{
		Collection:   in.Collection.Name,
		Slug:         slug,
		SlugAsParams: slugAsParams,
		Locale:       locale,
		Title:        in.Meta.Title,
		Description:  in.Meta.Description,
		Draft:        in.Meta.Draft,
		CompiledBody: in.CompiledBody,

		ID: sourceFilePath,
		Raw: domain.RawDescriptor{
			SourceFilePath: sourceFilePath,
			SourceFileName: path.Base(sourceFilePath),
			SourceFileDir:  path.Dir(sourceFilePath),
			ContentType:    strings.TrimPrefix(path.Ext(sourceFilePath), "."),
			FlattenedPath:  strings.TrimSuffix(sourceFilePath, path.Ext(sourceFilePath)),
		},
		Body: domain.BodyDescriptor{
			Raw:  in.Body,
			Code: in.CompiledBody,
		},
	}

	hook(doc, in)
	return doc, nil
}

// enrichBlog adds the blog-specific derived fields: reading time and the
// resolved author.
func (a *Assembler) enrichBlog(doc *domain.CompiledDocument, in Input) {
	doc.Excerpt = in.Meta.Excerpt
	doc.Date = in.Meta.Date
	doc.Tags = in.Meta.Tags
	doc.ReadTimeMinutes = ReadTime(in.Body)
	doc.Author = a.resolveAuthor(in.Meta.AuthorID, doc.Locale)
}

// enrichDocs adds the documentation-specific derived fields.
func (a *Assembler) enrichDocs(doc *domain.CompiledDocument, in Input) {
	doc.TableOfContentsEnabled = in.Meta.TOC
	doc.Order = in.Meta.Order
}

// resolveAuthor looks up an author in the static table. An unknown ID
// yields a stub containing only the ID, so older posts referencing
// removed authors still render.
func (a *Assembler) resolveAuthor(authorID, locale string) *domain.ResolvedAuthor {
	if authorID == "" {
		return nil
	}
	author, ok := a.cfg.Authors[authorID]
	if !ok {
		return &domain.ResolvedAuthor{ID: authorID}
	}
	resolved := author.Resolve(locale, a.cfg.DefaultLocale)
	return &resolved
}

// Slug derives the URL path from a source path. Separators are already
// canonical (slash); the extension is stripped; a trailing index segment
// is dropped, so the collection-root index resolves to just the locale
// segment. The returned slug carries a leading slash, slugAsParams does
// not, and locale is the first path segment.
func Slug(routePrefix, relPath string) (slug, slugAsParams, locale string) {
	trimmed := strings.TrimSuffix(relPath, path.Ext(relPath))
	segments := strings.Split(trimmed, "/")

	if seg := segments[0]; seg != indexSegment {
		locale = seg
	}
	if segments[len(segments)-1] == indexSegment {
		segments = segments[:len(segments)-1]
	}

	slug = path.Join("/", routePrefix, strings.Join(segments, "/"))
	slugAsParams = strings.TrimPrefix(slug, "/")
	return slug, slugAsParams, locale
}

// ReadTime estimates whole minutes of reading at the fixed reading speed,
// rounding up, never below one minute.
func ReadTime(body string) int {
	words := len(strings.Fields(body))
	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}
