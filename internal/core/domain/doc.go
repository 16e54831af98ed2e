// Package domain defines the core business entities for kb.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - ContentRecord: The canonical output of every extractor
//   - TagSet: An ordered, duplicate-free set of tags
//   - Classification: The decision made about one raw input
//   - PendingSelection: Tag selection state held between extraction and publish
//
// It also owns the pure functions that need no I/O: URL finding,
// bilingual tag rendering and post formatting.
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
