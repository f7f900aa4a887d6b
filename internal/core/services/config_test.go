package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/hookenv/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/hookenv/internal/core/domain"
)

func TestConfig_LoadPrevious_NoSnapshot(t *testing.T) {
	store := memory.NewSnapshotStore()
	cfg := NewConfig(store, "/charm/.juju-persistent-config", map[string]any{"foo": "bar"})

	err := cfg.LoadPrevious(context.Background(), "")

	require.ErrorIs(t, err, domain.ErrNoSnapshot)
	assert.False(t, cfg.HasPrevious())
	assert.True(t, cfg.Changed("foo"))
	assert.Nil(t, cfg.Previous("foo"))
}

func TestConfig_LoadPrevious_RemembersPath(t *testing.T) {
	ctx := context.Background()
	store := memory.NewSnapshotStore()
	require.NoError(t, store.Put("/other", map[string]any{"foo": "old"}))

	cfg := NewConfig(store, "/default", map[string]any{"foo": "new"})
	require.NoError(t, cfg.LoadPrevious(ctx, "/other"))

	assert.Equal(t, "/other", cfg.Path())
	assert.Equal(t, "old", cfg.Previous("foo"))
	assert.True(t, cfg.Changed("foo"))

	require.NoError(t, cfg.Save(ctx))
	saved, err := store.Load(ctx, "/other")
	require.NoError(t, err)
	assert.Equal(t, "new", saved["foo"])

	_, err = store.Load(ctx, "/default")
	assert.ErrorIs(t, err, domain.ErrNoSnapshot)
}

func TestConfig_SaveMergesWithStoredKeys(t *testing.T) {
	ctx := context.Background()
	store := memory.NewSnapshotStore()
	require.NoError(t, store.Put("/p", map[string]any{"foo": "bar", "old": "kept"}))

	cfg := NewConfig(store, "/p", map[string]any{"foo": "baz", "new": "value"})
	require.NoError(t, cfg.Save(ctx))

	saved, err := store.Load(ctx, "/p")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"foo": "baz", "old": "kept", "new": "value"}, saved)

	// The in-memory values now match what was persisted.
	assert.Equal(t, "kept", cfg.Get("old", nil))
}

func TestConfig_SaveAppliesDeletions(t *testing.T) {
	ctx := context.Background()
	store := memory.NewSnapshotStore()
	require.NoError(t, store.Put("/p", map[string]any{"foo": "bar", "gone": 1}))

	cfg := NewConfig(store, "/p", map[string]any{"foo": "bar", "gone": 1})
	cfg.Delete("gone")
	require.NoError(t, cfg.Save(ctx))

	saved, err := store.Load(ctx, "/p")
	require.NoError(t, err)
	assert.NotContains(t, saved, "gone")
	assert.False(t, cfg.Contains("gone"))
}

func TestConfig_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := memory.NewSnapshotStore()

	first := NewConfig(store, "/p", map[string]any{"port": 8080, "name": "web"})
	require.NoError(t, first.Save(ctx))

	second := NewConfig(store, "/p", map[string]any{"port": 8080, "name": "api"})
	require.NoError(t, second.LoadPrevious(ctx, ""))

	assert.False(t, second.Changed("port"))
	assert.True(t, second.Changed("name"))
	assert.Equal(t, "web", second.Previous("name"))
}

func TestConfig_LoadPrevious_ExposesPersistedKeys(t *testing.T) {
	ctx := context.Background()
	store := memory.NewSnapshotStore()
	require.NoError(t, NewConfig(store, "/p", map[string]any{"foo": "bar"}).Save(ctx))

	cfg := NewConfig(store, "/p", map[string]any{"baz": "bam"})
	require.NoError(t, cfg.LoadPrevious(ctx, ""))

	v, err := cfg.Lookup("foo")
	require.NoError(t, err)
	assert.Equal(t, "bar", v)
	assert.Equal(t, "bar", cfg.Get("foo", nil))
	assert.True(t, cfg.Contains("foo"))
	assert.False(t, cfg.Changed("foo"))
	assert.True(t, cfg.Changed("baz"))
	assert.Equal(t, []string{"baz", "foo"}, cfg.Keys())
}

func TestConfig_TwoHookInvocations(t *testing.T) {
	ctx := context.Background()
	store := memory.NewSnapshotStore()

	first := NewConfig(store, "/p", map[string]any{"foo": "bar"})
	require.ErrorIs(t, first.LoadPrevious(ctx, ""), domain.ErrNoSnapshot)
	first.Set("a", "b")
	require.NoError(t, first.Save(ctx))

	second := NewConfig(store, "/p", map[string]any{"foo": "baz"})
	require.NoError(t, second.LoadPrevious(ctx, ""))
	assert.True(t, second.Changed("foo"))
	assert.False(t, second.Changed("a"))
	assert.Equal(t, "bar", second.Previous("foo"))
	assert.Equal(t, "b", second.Get("a", nil))
	require.NoError(t, second.Save(ctx))

	saved, err := store.Load(ctx, "/p")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"foo": "baz", "a": "b"}, saved)
}

func TestConfig_LargeIntegerUnchangedAfterReload(t *testing.T) {
	ctx := context.Background()
	store := memory.NewSnapshotStore()
	big := int64(9007199254740993)

	require.NoError(t, NewConfig(store, "/p", map[string]any{"n": big}).Save(ctx))

	cfg := NewConfig(store, "/p", map[string]any{"n": big})
	require.NoError(t, cfg.LoadPrevious(ctx, ""))

	assert.False(t, cfg.Changed("n"))
}

func TestConfig_SaveFailurePropagates(t *testing.T) {
	store := memory.NewSnapshotStore()
	store.MergeErr = errors.New("disk full")

	cfg := NewConfig(store, "/p", map[string]any{"foo": "bar"})
	err := cfg.Save(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestConfig_ImplicitSaveDefault(t *testing.T) {
	cfg := NewConfig(memory.NewSnapshotStore(), "/p", nil)
	assert.True(t, cfg.ImplicitSave())

	cfg.SetImplicitSave(false)
	assert.False(t, cfg.ImplicitSave())
}
