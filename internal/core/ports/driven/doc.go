// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - DocumentSource: Lists and reads a collection's source files
//   - CompiledStore: Holds complete generations of compiled documents
//
// # Optional Interfaces
//
// These can be nil - the build degrades gracefully:
//
//   - BuildCache: Caches compiled documents between builds. Without it,
//     every document is compiled from scratch on every build.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
