package domain

import "strings"

// NormalizeHookName maps a hook or handler name to its dispatch key.
// The orchestrator separates words with hyphens; handler names written
// with underscores resolve to the same key.
func NormalizeHookName(name string) string {
	return strings.ReplaceAll(strings.TrimSpace(name), "_", "-")
}
