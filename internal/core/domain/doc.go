// Package domain defines the core business entities for Docmind.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - AnalysisResult: The full structured output of analyzing one document
//   - CategoryRule: A named, weighted set of patterns voting for a category
//   - CategorySuggestion: A proposed category with confidence and reasoning
//   - IndexEntry: The stored, searchable representation of one document
//   - SearchResult: A query-specific projection of an index entry
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
