// Package domain defines the core types of the hook environment.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - ConfigSnapshot: current and previously persisted charm configuration
//   - ToolError: a hook tool that exited unsuccessfully
//   - WorkloadState, LogLevel, Port: hook tool argument types
//   - CharmMetadata: the parts of metadata.yaml hooks rely on
//   - HookSettings: per-charm settings for the hookenv command
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
