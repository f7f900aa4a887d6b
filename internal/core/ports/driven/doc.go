// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Interfaces
//
//   - ToolRunner: Runs hook tools and captures their output
//   - Environment: Hook process environment
//   - SnapshotStore: Persisted configuration snapshots (JSON file, SQLite)
//   - MetadataReader: Charm metadata.yaml
//   - ConfigStore: hookenv settings file
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
