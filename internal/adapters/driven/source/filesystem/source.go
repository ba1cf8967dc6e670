// Package filesystem reads collection source files from the local
// filesystem and watches their directories for changes in dev mode.
package filesystem

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/huynhsang/contentkit/internal/core/domain"
	"github.com/huynhsang/contentkit/internal/core/ports/driven"
	"github.com/huynhsang/contentkit/internal/frontmatter"
)

// Ensure Source implements the interface.
var _ driven.DocumentSource = (*Source)(nil)

// Source lists and reads collection files from disk.
type Source struct{}

// NewSource creates a filesystem document source.
func NewSource() *Source {
	return &Source{}
}

// List returns the collection's matching file paths, relative to its
// source directory, slash-separated and sorted.
func (s *Source) List(ctx context.Context, collection domain.Collection) ([]string, error) {
	var paths []string

	err := filepath.WalkDir(collection.SourceDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(collection.SourceDir, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		matched, err := doublestar.Match(collection.FilePattern, rel)
		if err != nil {
			return fmt.Errorf("pattern %q: %w", collection.FilePattern, err)
		}
		if matched {
			paths = append(paths, rel)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", collection.Name, err)
	}

	sort.Strings(paths)
	return paths, nil
}

// Read loads one source file and splits its front matter from the body.
func (s *Source) Read(_ context.Context, collection domain.Collection, path string) (*domain.Document, error) {
	full := filepath.Join(collection.SourceDir, filepath.FromSlash(path))

	raw, err := os.ReadFile(full)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	meta, body, err := frontmatter.Split(raw)
	if err != nil {
		return nil, &domain.ParseError{Path: path, Err: err}
	}

	return &domain.Document{
		Collection:  collection.Name,
		Path:        path,
		FrontMatter: meta,
		Body:        string(body),
		Raw:         raw,
	}, nil
}
