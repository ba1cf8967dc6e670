package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrBuildFailed indicates at least one document failed to compile.
	// The aggregated per-document report accompanies it.
	ErrBuildFailed = errors.New("build failed")

	// ErrUnknownCollectionType indicates a collection declares a type
	// with no registered schema.
	ErrUnknownCollectionType = errors.New("unknown collection type")
)

// FieldError is one violated front-matter field.
type FieldError struct {
	// Field is the front-matter key.
	Field string

	// Message describes the violation.
	Message string
}

// SchemaValidationError reports front matter that failed its collection
// schema. It enumerates every violated field and is recovered at document
// granularity: the document is skipped and reported, the build continues.
type SchemaValidationError struct {
	// Path is the document path relative to the collection root.
	Path string

	// Fields holds per-field detail, sorted by field name.
	Fields []FieldError
}

// Error implements the error interface.
func (e *SchemaValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = fmt.Sprintf("%s: %s", f.Field, f.Message)
	}
	return fmt.Sprintf("front matter invalid for %s (%s)", e.Path, strings.Join(parts, "; "))
}

// NewSchemaValidationError builds a SchemaValidationError from a field
// name to message map, sorting fields for deterministic reporting.
func NewSchemaValidationError(path string, fields map[string]string) *SchemaValidationError {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	errs := make([]FieldError, len(names))
	for i, name := range names {
		errs[i] = FieldError{Field: name, Message: fields[name]}
	}
	return &SchemaValidationError{Path: path, Fields: errs}
}

// ParseError reports markup that could not be parsed into a tree, including
// unresolvable code-import references. Not recoverable for that document.
type ParseError struct {
	// Path is the document path relative to the collection root.
	Path string

	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying cause.
func (e *ParseError) Unwrap() error { return e.Err }

// TransformError reports a rewrite pass failing for a document. The partial
// tree is discarded entirely; no partially transformed document is stored.
type TransformError struct {
	// Path is the document path relative to the collection root.
	Path string

	// Pass is the name of the failing rewrite pass.
	Pass string

	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *TransformError) Error() string {
	return fmt.Sprintf("transform %s (pass %s): %v", e.Path, e.Pass, e.Err)
}

// Unwrap returns the underlying cause.
func (e *TransformError) Unwrap() error { return e.Err }

// SlugCollisionError reports two documents in one collection resolving to
// the same slug. Routing would be ambiguous, so this is a build-level
// failure, not a document-level one.
type SlugCollisionError struct {
	// Collection is the affected collection's name.
	Collection string

	// Slug is the duplicated slug.
	Slug string

	// Paths are the colliding source paths.
	Paths []string
}

// Error implements the error interface.
func (e *SlugCollisionError) Error() string {
	return fmt.Sprintf("slug %q duplicated in collection %s (%s)",
		e.Slug, e.Collection, strings.Join(e.Paths, ", "))
}

// DocumentError ties a document-level failure to its source file for the
// aggregated build report.
type DocumentError struct {
	// Collection is the owning collection's name.
	Collection string

	// Path is the document path relative to the collection root.
	Path string

	// Err is the validation, parse or transform failure.
	Err error
}

// Error implements the error interface.
func (e *DocumentError) Error() string {
	return fmt.Sprintf("%s/%s: %v", e.Collection, e.Path, e.Err)
}

// Unwrap returns the underlying cause.
func (e *DocumentError) Unwrap() error { return e.Err }
