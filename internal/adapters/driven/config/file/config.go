// Package file loads the TOML site configuration: collection definitions,
// the static authors table and build settings.
package file

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/huynhsang/contentkit/internal/core/domain"
)

// DefaultPath is the configuration file looked up when none is given.
const DefaultPath = "contentkit.toml"

// SiteConfig is the root of the configuration file.
type SiteConfig struct {
	// DefaultLocale is the bio fallback locale. Defaults to "en".
	DefaultLocale string `toml:"default_locale"`

	// Workers bounds the per-document compile fan-out. Zero lets the
	// builder pick.
	Workers int `toml:"workers"`

	// Cache configures the SQLite build cache.
	Cache CacheConfig `toml:"cache"`

	// Collections declares the content collections.
	Collections []CollectionConfig `toml:"collections"`

	// Authors is the static authors table.
	Authors []AuthorConfig `toml:"authors"`
}

// CacheConfig configures the build cache.
type CacheConfig struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
}

// CollectionConfig declares one content collection.
type CollectionConfig struct {
	Name        string `toml:"name"`
	Type        string `toml:"type"`
	SourceDir   string `toml:"source_dir"`
	FilePattern string `toml:"file_pattern"`
	RoutePrefix string `toml:"route_prefix"`
}

// AuthorConfig declares one author record.
type AuthorConfig struct {
	ID     string            `toml:"id"`
	Name   string            `toml:"name"`
	Avatar string            `toml:"avatar"`
	URL    string            `toml:"url"`
	Email  string            `toml:"email"`
	Bio    map[string]string `toml:"bio"`
	Social map[string]string `toml:"social"`
}

// Load reads and validates the configuration file. Configuration bugs are
// build-level failures: they abort immediately rather than being collected
// per document.
func Load(path string) (*SiteConfig, error) {
	if path == "" {
		path = DefaultPath
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg SiteConfig
	if err := toml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if cfg.DefaultLocale == "" {
		cfg.DefaultLocale = "en"
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *SiteConfig) validate() error {
	if len(c.Collections) == 0 {
		return fmt.Errorf("config declares no collections")
	}

	seen := map[string]bool{}
	for _, col := range c.Collections {
		switch {
		case col.Name == "":
			return fmt.Errorf("collection without a name")
		case seen[col.Name]:
			return fmt.Errorf("collection %q declared twice", col.Name)
		case !domain.CollectionType(col.Type).Valid():
			return fmt.Errorf("collection %q: %w: %q", col.Name, domain.ErrUnknownCollectionType, col.Type)
		case col.SourceDir == "":
			return fmt.Errorf("collection %q: source_dir is required", col.Name)
		}
		seen[col.Name] = true
	}

	seenAuthors := map[string]bool{}
	for _, author := range c.Authors {
		if author.ID == "" {
			return fmt.Errorf("author without an id")
		}
		if seenAuthors[author.ID] {
			return fmt.Errorf("author %q declared twice", author.ID)
		}
		seenAuthors[author.ID] = true
	}

	return nil
}

// DomainCollections converts the declared collections to domain values,
// defaulting the file pattern to all markdown/MDX files.
func (c *SiteConfig) DomainCollections() []domain.Collection {
	out := make([]domain.Collection, len(c.Collections))
	for i, col := range c.Collections {
		pattern := col.FilePattern
		if pattern == "" {
			pattern = "**/*.{md,mdx}"
		}
		out[i] = domain.Collection{
			Name:        col.Name,
			Type:        domain.CollectionType(col.Type),
			SourceDir:   col.SourceDir,
			FilePattern: pattern,
			RoutePrefix: col.RoutePrefix,
		}
	}
	return out
}

// DomainAuthors converts the declared authors to the domain table keyed
// by ID.
func (c *SiteConfig) DomainAuthors() map[string]domain.Author {
	out := make(map[string]domain.Author, len(c.Authors))
	for _, a := range c.Authors {
		out[a.ID] = domain.Author{
			ID:     a.ID,
			Name:   a.Name,
			Avatar: a.Avatar,
			URL:    a.URL,
			Email:  a.Email,
			Bio:    a.Bio,
			Social: a.Social,
		}
	}
	return out
}
