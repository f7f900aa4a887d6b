package memory

import (
	"maps"
	"sync"

	"github.com/custodia-labs/hookenv/internal/core/ports/driven"
)

// Ensure Environment implements the interface.
var _ driven.Environment = (*Environment)(nil)

// Environment is a map-backed driven.Environment for testing.
type Environment struct {
	mu   sync.RWMutex
	vars map[string]string
}

// NewEnvironment creates an environment holding a copy of vars.
func NewEnvironment(vars map[string]string) *Environment {
	e := &Environment{vars: make(map[string]string)}
	maps.Copy(e.vars, vars)
	return e
}

// Set assigns a variable.
func (e *Environment) Set(key, value string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.vars[key] = value
}

// Unset removes a variable.
func (e *Environment) Unset(key string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.vars, key)
}

// Lookup returns the value of key and whether it is set.
func (e *Environment) Lookup(key string) (string, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	v, ok := e.vars[key]
	return v, ok
}

// Environ returns a copy of all variables.
func (e *Environment) Environ() map[string]string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return maps.Clone(e.vars)
}
