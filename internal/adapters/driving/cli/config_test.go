package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/hookenv/internal/core/domain"
)

func TestConfigGet_All(t *testing.T) {
	e := setupCLI(t, nil)
	e.runner.OnJSON("config-get", map[string]any{"port": 80, "name": "web"})

	require.NoError(t, runCLI("config", "get"))

	assert.JSONEq(t, `{"port": 80, "name": "web"}`, e.out.String())
}

func TestConfigGet_Key(t *testing.T) {
	e := setupCLI(t, nil)
	e.runner.OnJSON("config-get", map[string]any{"port": 80})

	require.NoError(t, runCLI("config", "get", "port"))
	assert.Equal(t, "80\n", e.out.String())
}

func TestConfigGet_MissingKey(t *testing.T) {
	e := setupCLI(t, nil)
	e.runner.OnJSON("config-get", map[string]any{"port": 80})

	err := runCLI("config", "get", "nope")
	assert.ErrorIs(t, err, domain.ErrKeyNotFound)
}

func TestConfigChanged(t *testing.T) {
	e := setupCLI(t, nil)
	require.NoError(t, e.snapshots.Put(e.snapshotPath(), map[string]any{"port": 80, "name": "web"}))
	e.runner.OnJSON("config-get", map[string]any{"port": 8080, "name": "web"})

	require.NoError(t, runCLI("config", "changed", "port"))
	assert.Equal(t, "true\n", e.out.String())

	e.out.Reset()
	err := runCLI("config", "changed", "name")
	assert.Equal(t, "false\n", e.out.String())
	assert.Equal(t, 1, exitCode(err))
}

func TestConfigChanged_FirstHook(t *testing.T) {
	e := setupCLI(t, nil)
	e.runner.OnJSON("config-get", map[string]any{"port": 80})

	require.NoError(t, runCLI("config", "changed", "port"))
	assert.Equal(t, "true\n", e.out.String())
}

func TestConfigPrevious(t *testing.T) {
	e := setupCLI(t, nil)
	require.NoError(t, e.snapshots.Put(e.snapshotPath(), map[string]any{"port": 80}))
	e.runner.OnJSON("config-get", map[string]any{"port": 8080})

	require.NoError(t, runCLI("config", "previous", "port"))
	assert.Equal(t, "80\n", e.out.String())

	e.out.Reset()
	require.NoError(t, runCLI("config", "previous", "unknown"))
	assert.Equal(t, "null\n", e.out.String())
}

func TestConfigSet(t *testing.T) {
	e := setupCLI(t, nil)
	e.runner.OnJSON("config-get", map[string]any{"port": 80})

	require.NoError(t, runCLI("config", "set", "replicas", "3"))
	require.NoError(t, runCLI("config", "set", "mode", "active-passive"))

	saved, err := e.snapshots.Load(context.Background(), e.snapshotPath())
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"port":     float64(80),
		"replicas": float64(3),
		"mode":     "active-passive",
	}, saved)
}

func TestConfigUnset(t *testing.T) {
	e := setupCLI(t, nil)
	require.NoError(t, e.snapshots.Put(e.snapshotPath(), map[string]any{"port": 80, "stale": true}))
	e.runner.OnJSON("config-get", map[string]any{"port": 80})

	require.NoError(t, runCLI("config", "get", "stale"))
	assert.Equal(t, "true\n", e.out.String())

	require.NoError(t, runCLI("config", "unset", "stale"))

	saved, err := e.snapshots.Load(context.Background(), e.snapshotPath())
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"port": float64(80)}, saved)
}

func TestConfigSave(t *testing.T) {
	e := setupCLI(t, nil)
	e.runner.OnJSON("config-get", map[string]any{"a": 1, "b": 2})

	require.NoError(t, runCLI("config", "save"))

	assert.Contains(t, e.out.String(), "Saved 2 keys to "+e.snapshotPath())
	_, err := e.snapshots.Load(context.Background(), e.snapshotPath())
	assert.NoError(t, err)
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		in   string
		want any
	}{
		{"3", float64(3)},
		{"true", true},
		{`"quoted"`, "quoted"},
		{"plain text", "plain text"},
		{`{"a":1}`, map[string]any{"a": float64(1)}},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parseValue(tt.in))
		})
	}
}

func TestConfigWatch_SQLiteUnsupported(t *testing.T) {
	setupCLI(t, nil)
	hookSettings.SnapshotBackend = domain.SnapshotBackendSQLite

	err := runCLI("config", "watch")
	assert.ErrorIs(t, err, domain.ErrUnsupportedType)
}

func TestConfigWatch_StopsWithContext(t *testing.T) {
	e := setupCLI(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rootCmd.SetArgs([]string{"config", "watch"})
	require.NoError(t, rootCmd.ExecuteContext(ctx))
	assert.Empty(t, e.out.String())
}
