package cli

import (
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/hookenv/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage hookenv settings",
	Long: `View and change the settings stored in hookenv.toml in the charm directory.

Use subcommands to select the snapshot backend or bind hooks to commands.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsBackendCmd = &cobra.Command{
	Use:   "backend json|sqlite",
	Short: "Select the snapshot backend",
	Long: `Select where configuration snapshots are stored.

Available backends:
  json   - JSON file at snapshot.path (default $CHARM_DIR/.juju-persistent-config)
  sqlite - SQLite database .hookenv.db in the charm directory`,
	Args: cobra.ExactArgs(1),
	RunE: runSettingsBackend,
}

var settingsHookCmd = &cobra.Command{
	Use:   "hook NAME COMMAND",
	Short: "Bind a hook to a shell command",
	Args:  cobra.ExactArgs(2),
	RunE:  runSettingsHook,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsBackendCmd)
	settingsCmd.AddCommand(settingsHookCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Load()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("[Snapshot]")
	writeField(cmd, "  Backend", settings.SnapshotBackend.String())
	writeField(cmd, "  Path", settings.SnapshotPath)
	cmd.Println()

	cmd.Println("[Dispatch]")
	writeField(cmd, "  Save config", settings.ConfigSave)
	writeField(cmd, "  Tools dir", settings.ToolsDir)
	writeField(cmd, "  Verbose", settings.Verbose)
	cmd.Println()

	cmd.Println("[Hooks]")
	if len(settings.Hooks) == 0 {
		cmd.Println("  (none)")
		return nil
	}
	names := make([]string, 0, len(settings.Hooks))
	for name := range settings.Hooks {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		writeField(cmd, "  "+name, settings.Hooks[name])
	}
	return nil
}

func runSettingsBackend(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	backend := domain.SnapshotBackend(args[0])
	if err := settingsService.SetSnapshotBackend(backend); err != nil {
		return err
	}
	cmd.Printf("Snapshot backend set to %s\n", backend)
	return nil
}

func runSettingsHook(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	if err := settingsService.SetHook(args[0], args[1]); err != nil {
		return err
	}
	cmd.Printf("Hook %s runs %q\n", domain.NormalizeHookName(args[0]), args[1])
	return nil
}
