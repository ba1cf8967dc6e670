// Package domain defines the core business entities for contentkit.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: A source content file read from disk
//   - Collection: A named grouping of documents sharing one schema
//   - CompiledDocument: The assembled, serialisable build output
//   - Author: A static author record with localised bios
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
