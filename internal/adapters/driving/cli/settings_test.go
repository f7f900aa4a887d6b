package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/hookenv/internal/core/domain"
)

func TestSettingsShow(t *testing.T) {
	e := setupCLI(t, nil)
	require.NoError(t, e.settings.Set("snapshot.backend", "sqlite"))
	require.NoError(t, e.settings.Set("hooks.install", "./install.sh"))

	require.NoError(t, runCLI("settings", "show"))

	out := e.out.String()
	assert.Contains(t, out, "Backend: sqlite")
	assert.Contains(t, out, "Path: (not set)")
	assert.Contains(t, out, "Save config: true")
	assert.Contains(t, out, "install: ./install.sh")
}

func TestSettingsShow_NoHooks(t *testing.T) {
	e := setupCLI(t, nil)

	require.NoError(t, runCLI("settings"))

	assert.Contains(t, e.out.String(), "(none)")
}

func TestSettingsBackend(t *testing.T) {
	e := setupCLI(t, nil)

	require.NoError(t, runCLI("settings", "backend", "sqlite"))
	assert.Equal(t, "sqlite", e.settings.GetString("snapshot.backend"))
	assert.Contains(t, e.out.String(), "Snapshot backend set to sqlite")

	err := runCLI("settings", "backend", "redis")
	assert.ErrorIs(t, err, domain.ErrUnsupportedType)
}

func TestSettingsHook(t *testing.T) {
	e := setupCLI(t, nil)

	require.NoError(t, runCLI("settings", "hook", "config_changed", "./render.sh"))

	assert.Equal(t, "./render.sh", e.settings.GetString("hooks.config-changed"))
	assert.Contains(t, e.out.String(), `Hook config-changed runs "./render.sh"`)
}
