package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/hookenv/internal/core/domain"
	"github.com/custodia-labs/hookenv/internal/core/ports/driven"
	"github.com/custodia-labs/hookenv/internal/core/ports/driving"
)

// Ensure Config implements the interface.
var _ driving.Config = (*Config)(nil)

// Config is a configuration snapshot bound to a snapshot store.
//
// Save is a merge, not a replace: keys persisted by an earlier save and
// absent from this snapshot survive unless they were explicitly deleted.
type Config struct {
	*domain.ConfigSnapshot

	store        driven.SnapshotStore
	path         string
	implicitSave bool
}

// NewConfig creates a snapshot of values persisted at path in store.
// Implicit saving is enabled.
func NewConfig(store driven.SnapshotStore, path string, values map[string]any) *Config {
	return &Config{
		ConfigSnapshot: domain.NewConfigSnapshot(values),
		store:          store,
		path:           path,
		implicitSave:   true,
	}
}

// Path returns the storage path used by LoadPrevious and Save.
func (c *Config) Path() string {
	return c.path
}

// ImplicitSave reports whether the dispatcher saves after a hook.
func (c *Config) ImplicitSave() bool {
	return c.implicitSave
}

// SetImplicitSave toggles saving after a successful hook.
func (c *Config) SetImplicitSave(enabled bool) {
	c.implicitSave = enabled
}

// LoadPrevious loads the persisted snapshot as the baseline and exposes
// persisted keys the hook did not supply. A non-empty path becomes the
// remembered storage path, so a later Save writes there.
// A missing snapshot is returned as an error wrapping domain.ErrNoSnapshot.
func (c *Config) LoadPrevious(ctx context.Context, path string) error {
	if path != "" {
		c.path = path
	}

	prev, err := c.store.Load(ctx, c.path)
	if err != nil {
		return fmt.Errorf("loading previous config: %w", err)
	}

	c.SetPrevious(prev)
	return nil
}

// Save merges the current values into storage. Afterwards the current
// values equal what was persisted.
func (c *Config) Save(ctx context.Context) error {
	merged, err := c.store.Merge(ctx, c.path, c.Data(), c.Deleted())
	if err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	c.Absorb(merged)
	return nil
}
