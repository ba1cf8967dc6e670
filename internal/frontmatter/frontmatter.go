// Package frontmatter splits and validates document front matter.
//
// Each collection type declares a schema: required fields, types and
// defaults. Validation either produces a typed metadata value with all
// defaults applied, or a SchemaValidationError enumerating every violated
// field. A validation failure aborts compilation of that single document
// only, never the whole collection build.
package frontmatter

import (
	"bytes"
	"fmt"

	"github.com/adrg/frontmatter"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"

	"github.com/huynhsang/contentkit/internal/core/domain"
)

// Split separates the front-matter block from the body. The returned map
// holds the raw, untyped metadata; body is the markup text that follows.
// Files without a front-matter block yield an empty map.
func Split(raw []byte) (map[string]any, []byte, error) {
	meta := map[string]any{}
	body, err := frontmatter.Parse(bytes.NewReader(raw), &meta)
	if err != nil {
		return nil, nil, fmt.Errorf("split front matter: %w", err)
	}
	return meta, body, nil
}

// blogMeta is the declared blog schema. The yaml tags name the authoring
// keys; the json tags control the field names ozzo reports on violation.
type blogMeta struct {
	Title    string   `yaml:"title" json:"title"`
	Excerpt  string   `yaml:"excerpt" json:"excerpt"`
	Date     string   `yaml:"date" json:"date"`
	Tags     []string `yaml:"tags" json:"tags"`
	AuthorID string   `yaml:"author_id" json:"author_id"`
	Draft    bool     `yaml:"draft" json:"draft"`
}

func (m blogMeta) validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.Title, validation.Required),
		validation.Field(&m.Date,
			validation.Required,
			validation.Date("2006-01-02"),
		),
		validation.Field(&m.AuthorID, validation.Required),
		validation.Field(&m.Tags, validation.Each(validation.Required)),
	)
}

// docMeta is the declared docs schema. TOC is a pointer so an absent key
// can default to true.
type docMeta struct {
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
	TOC         *bool  `yaml:"toc" json:"toc"`
	Order       int    `yaml:"order" json:"order"`
	Draft       bool   `yaml:"draft" json:"draft"`
}

func (m docMeta) validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.Title, validation.Required),
		validation.Field(&m.Order, validation.Min(0)),
	)
}

// Validate checks a document's raw metadata against its collection schema
// and returns the typed metadata with defaults applied. On failure it
// returns a *domain.SchemaValidationError with per-field detail.
func Validate(collectionType domain.CollectionType, path string, meta map[string]any) (*domain.FrontMatter, error) {
	encoded, err := yaml.Marshal(meta)
	if err != nil {
		return nil, fmt.Errorf("encode front matter: %w", err)
	}

	switch collectionType {
	case domain.CollectionBlog:
		var m blogMeta
		if err := yaml.Unmarshal(encoded, &m); err != nil {
			return nil, schemaError(path, "front matter", err)
		}
		if err := m.validate(); err != nil {
			return nil, schemaError(path, "", err)
		}
		return &domain.FrontMatter{
			Title:    m.Title,
			Excerpt:  m.Excerpt,
			Date:     m.Date,
			Tags:     m.Tags,
			AuthorID: m.AuthorID,
			Draft:    m.Draft,
		}, nil

	case domain.CollectionDocs:
		var m docMeta
		if err := yaml.Unmarshal(encoded, &m); err != nil {
			return nil, schemaError(path, "front matter", err)
		}
		if err := m.validate(); err != nil {
			return nil, schemaError(path, "", err)
		}
		toc := true
		if m.TOC != nil {
			toc = *m.TOC
		}
		return &domain.FrontMatter{
			Title:       m.Title,
			Description: m.Description,
			TOC:         toc,
			Order:       m.Order,
			Draft:       m.Draft,
		}, nil

	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownCollectionType, collectionType)
	}
}

// schemaError converts an ozzo validation.Errors (or any other error) into
// the domain's SchemaValidationError.
func schemaError(path, field string, err error) error {
	fields := map[string]string{}

	var verrs validation.Errors
	if ok := asValidationErrors(err, &verrs); ok {
		for name, ferr := range verrs {
			fields[name] = ferr.Error()
		}
	} else {
		if field == "" {
			field = "front matter"
		}
		fields[field] = err.Error()
	}

	return domain.NewSchemaValidationError(path, fields)
}

func asValidationErrors(err error, target *validation.Errors) bool {
	verrs, ok := err.(validation.Errors)
	if !ok {
		return false
	}
	*target = verrs
	return true
}
