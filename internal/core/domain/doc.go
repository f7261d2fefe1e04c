// Package domain defines the core business entities for Forgeview.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Message: One role-tagged chat message
//   - History: The ordered message sequence of a session
//   - CodeRegion: A fenced span extracted from model output
//   - ProjectManifest: A multi-file project emitted by the model
//   - PreviewUnit: One renderable, normalized code unit
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
