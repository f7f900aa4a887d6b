// Package sqlite provides a SQLite-based implementation of driven.SnapshotStore.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO. Each snapshot path is a row in snapshots; each configuration key is a row in
// snapshot_entries holding the JSON encoding of its value.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
//
// # Data Location
//
// The database is stored as .hookenv.db in the data directory, normally the charm
// directory.
//
// # Concurrency
//
// Transactions are opened IMMEDIATE, so a snapshot merge holds the database write
// lock for its whole read-modify-write.
package sqlite
