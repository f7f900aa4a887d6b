// Package osenv exposes the hook process environment through driven.Environment.
package osenv

import (
	"os"
	"strings"

	"github.com/custodia-labs/hookenv/internal/core/ports/driven"
)

// Ensure Environment implements the interface.
var _ driven.Environment = Environment{}

// Environment reads the real process environment.
type Environment struct{}

// Lookup returns the value of key and whether it is set.
func (Environment) Lookup(key string) (string, bool) {
	return os.LookupEnv(key)
}

// Environ returns a copy of the process environment.
func (Environment) Environ() map[string]string {
	env := make(map[string]string)
	for _, kv := range os.Environ() {
		k, v, _ := strings.Cut(kv, "=")
		env[k] = v
	}
	return env
}
