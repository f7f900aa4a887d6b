package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/hookenv/internal/adapters/driven/metadata"
	"github.com/custodia-labs/hookenv/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/hookenv/internal/core/domain"
	"github.com/custodia-labs/hookenv/internal/core/services"
	"github.com/custodia-labs/hookenv/internal/logger"
)

type cliEnv struct {
	charmDir  string
	runner    *memory.ToolRunner
	env       *memory.Environment
	snapshots *memory.SnapshotStore
	settings  *memory.ConfigStore
	out       *bytes.Buffer
}

func (e *cliEnv) snapshotPath() string {
	return filepath.Join(e.charmDir, domain.DefaultSnapshotFile)
}

// setupCLI wires the command globals to in-memory adapters.
func setupCLI(t *testing.T, vars map[string]string) *cliEnv {
	t.Helper()

	e := &cliEnv{
		charmDir:  t.TempDir(),
		runner:    memory.NewToolRunner(),
		snapshots: memory.NewSnapshotStore(),
		settings:  memory.NewConfigStore(),
		out:       new(bytes.Buffer),
	}

	base := map[string]string{
		services.EnvCharmDir: e.charmDir,
		services.EnvUnitName: "wordpress/0",
	}
	for k, v := range vars {
		base[k] = v
	}
	e.env = memory.NewEnvironment(base)

	hookEnv = services.NewHookEnv(e.runner, e.env, e.snapshots, metadata.NewReader())
	settingsService = services.NewSettingsService(e.settings)
	hookSettings = domain.DefaultHookSettings()

	rootCmd.SetOut(e.out)
	rootCmd.SetErr(e.out)

	t.Cleanup(func() {
		hookEnv = nil
		settingsService = nil
		hookSettings = domain.DefaultHookSettings()
		relationID = ""
		verbose = false
		charmDir = ""
		logger.SetVerbose(false)
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})
	return e
}

func (e *cliEnv) writeMetadata(t *testing.T, content string) {
	t.Helper()
	path := filepath.Join(e.charmDir, domain.MetadataFile)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func runCLI(args ...string) error {
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(context.Background())
}
