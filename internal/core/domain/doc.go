// Package domain defines the core business entities for SARA.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Researcher: A researcher profile, the unit of retrieval
//   - Project: A funded project attached to a researcher
//   - SearchResult: A researcher matched by a similarity search
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
