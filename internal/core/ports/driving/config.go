package driving

import "context"

// Config is the configuration snapshot handed to hook handlers.
type Config interface {
	// Get returns the current value for key, or def if absent.
	Get(key string, def any) any

	// Lookup returns the current value for key or domain.ErrKeyNotFound.
	Lookup(key string) (any, error)

	// Contains reports whether key is present in the current values.
	Contains(key string) bool

	// Set assigns a value.
	Set(key string, value any)

	// Delete removes a key; the next Save removes it from storage too.
	Delete(key string)

	// Keys returns the current keys, sorted.
	Keys() []string

	// Data returns a copy of the current values.
	Data() map[string]any

	// Changed reports whether key differs from the previous snapshot.
	Changed(key string) bool

	// Previous returns the value persisted by an earlier hook, if any.
	Previous(key string) any

	// HasPrevious reports whether a previous snapshot was loaded.
	HasPrevious() bool

	// LoadPrevious reads the persisted snapshot. A non-empty path replaces
	// the remembered storage path.
	LoadPrevious(ctx context.Context, path string) error

	// Save merges the current values into storage.
	Save(ctx context.Context) error

	// Path returns the storage path used by LoadPrevious and Save.
	Path() string

	// ImplicitSave reports whether the dispatcher saves after a hook.
	ImplicitSave() bool

	// SetImplicitSave toggles saving after a successful hook.
	SetImplicitSave(enabled bool)
}
