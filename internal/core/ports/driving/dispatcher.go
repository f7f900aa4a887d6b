package driving

import "context"

// HookFunc handles one hook invocation.
type HookFunc func(ctx context.Context) error

// Dispatcher routes a hook invocation to its registered handler.
type Dispatcher interface {
	// Register binds a handler to a hook name.
	Register(name string, fn HookFunc)

	// Execute runs the handler for the hook named by args[0].
	Execute(ctx context.Context, args []string) error

	// Names returns the registered hook names, sorted.
	Names() []string
}
