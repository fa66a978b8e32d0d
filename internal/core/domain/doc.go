// Package domain defines the core business entities for duxt-mcp.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: A markdown page loaded from the docs tree
//   - SearchResult: A ranked hit returned by the search service
//   - CodeKind / ProjectTemplate: Inputs accepted by the generators
//   - AppSettings: Typed runtime configuration
//   - ReloadResult: Outcome of a scheduled docs reload
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
