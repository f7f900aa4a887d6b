// Package memory provides in-memory implementations of driven ports.
// They back the unit tests of the core services and the CLI.
package memory
