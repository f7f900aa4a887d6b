// Package file provides file-based implementations of driven port interfaces.
// These adapters persist data to the local filesystem.
//
// Adapters:
//   - ConfigStore: TOML-based hookenv settings (hookenv.toml)
//   - SnapshotStore: JSON configuration snapshots guarded by flock(2)
//   - SnapshotWatcher: fsnotify watch on a snapshot file
package file
