// Package sqlite provides the SQLite-backed build cache.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation
// that requires no CGO, enabling easy cross-compilation. Compiled
// documents are cached by content hash; compilation is deterministic, so
// a hit is byte-identical to a fresh compile. The cache is purely an
// acceleration: deleting the database file only makes the next build
// slower.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/huynhsang/contentkit/internal/core/domain"
	"github.com/huynhsang/contentkit/internal/core/ports/driven"
)

// Ensure Cache implements the interface.
var _ driven.BuildCache = (*Cache)(nil)

const schema = `
CREATE TABLE IF NOT EXISTS compiled_cache (
	key        TEXT PRIMARY KEY,
	payload    BLOB NOT NULL,
	created_at INTEGER NOT NULL
);
`

// Cache is a SQLite-backed build cache.
type Cache struct {
	db   *sql.DB
	path string
}

// NewCache opens (or creates) the cache database under dataDir.
// If dataDir is empty, defaults to .contentkit in the working directory.
func NewCache(dataDir string) (*Cache, error) {
	if dataDir == "" {
		dataDir = ".contentkit"
	}

	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "cache.db")

	// WAL mode tolerates the build's concurrent readers.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening cache database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialising cache schema: %w", err)
	}

	return &Cache{db: db, path: dbPath}, nil
}

// Get returns the cached compiled document for key.
func (c *Cache) Get(ctx context.Context, key string) (*domain.CompiledDocument, error) {
	var payload []byte
	err := c.db.QueryRowContext(ctx,
		"SELECT payload FROM compiled_cache WHERE key = ?", key).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	}

	var doc domain.CompiledDocument
	if err := json.Unmarshal(payload, &doc); err != nil {
		// A corrupt entry behaves like a miss; the build recompiles.
		return nil, domain.ErrNotFound
	}
	return &doc, nil
}

// Put stores a compiled document under key.
func (c *Cache) Put(ctx context.Context, key string, doc *domain.CompiledDocument) error {
	payload, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}

	_, err = c.db.ExecContext(ctx,
		"INSERT OR REPLACE INTO compiled_cache (key, payload, created_at) VALUES (?, ?, ?)",
		key, payload, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("cache put: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Path returns the database file path.
func (c *Cache) Path() string {
	return c.path
}
