// Package hooktool runs the orchestrator's hook tools (config-get,
// relation-get, status-set, ...) as child processes.
//
// Failures are classified for the core: a missing binary wraps
// domain.ErrToolNotFound and a non-zero exit is a *domain.ToolError
// carrying the exit status and stderr.
package hooktool
