package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/hookenv/internal/adapters/driven/config/file"
	"github.com/custodia-labs/hookenv/internal/core/domain"
	"github.com/custodia-labs/hookenv/internal/core/ports/driving"
	"github.com/custodia-labs/hookenv/internal/logger"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and persist charm configuration",
	Long: `Read the charm configuration through config-get and compare it with the
snapshot saved by the previous hook.`,
}

var configGetCmd = &cobra.Command{
	Use:   "get [KEY]",
	Short: "Print the configuration, or a single option",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConfigGet,
}

var configChangedCmd = &cobra.Command{
	Use:   "changed KEY",
	Short: "Report whether an option changed since the last saved snapshot",
	Long: `Print true or false. Exits with status 1 when the option is unchanged,
so it can be used directly in shell conditions.`,
	Args: cobra.ExactArgs(1),
	RunE: runConfigChanged,
}

var configPreviousCmd = &cobra.Command{
	Use:   "previous KEY",
	Short: "Print the value saved by the previous hook",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigPrevious,
}

var configSetCmd = &cobra.Command{
	Use:   "set KEY VALUE",
	Short: "Store a value in the snapshot and save it",
	Long:  `VALUE is parsed as JSON when possible and stored as a string otherwise.`,
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

var configUnsetCmd = &cobra.Command{
	Use:   "unset KEY",
	Short: "Remove a value from the snapshot and save it",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigUnset,
}

var configSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Save the current configuration as the snapshot",
	Args:  cobra.NoArgs,
	RunE:  runConfigSave,
}

var configWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print the saved snapshot every time it changes",
	Long: `Print the saved snapshot as JSON every time a hook saves it, until
interrupted. Only the json snapshot backend can be watched.`,
	Args: cobra.NoArgs,
	RunE: runConfigWatch,
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configChangedCmd)
	configCmd.AddCommand(configPreviousCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configUnsetCmd)
	configCmd.AddCommand(configSaveCmd)
	configCmd.AddCommand(configWatchCmd)
	rootCmd.AddCommand(configCmd)
}

func loadConfig(cmd *cobra.Command) (driving.Config, error) {
	if err := requireHookEnv(); err != nil {
		return nil, err
	}
	cfg, err := hookEnv.Config(cmd.Context())
	if err != nil {
		return nil, fmt.Errorf("failed to get config: %w", err)
	}
	return cfg, nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return writeJSON(cmd, cfg.Data())
	}

	v, err := cfg.Lookup(args[0])
	if err != nil {
		return err
	}
	return writeJSON(cmd, v)
}

func runConfigChanged(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	changed := cfg.Changed(args[0])
	if err := writeJSON(cmd, changed); err != nil {
		return err
	}
	if !changed {
		return &exitError{code: 1}
	}
	return nil
}

func runConfigPrevious(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	return writeJSON(cmd, cfg.Previous(args[0]))
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	cfg.Set(args[0], parseValue(args[1]))
	return cfg.Save(cmd.Context())
}

func runConfigUnset(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	cfg.Delete(args[0])
	return cfg.Save(cmd.Context())
}

func runConfigSave(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Save(cmd.Context()); err != nil {
		return err
	}
	cmd.Printf("Saved %d keys to %s\n", len(cfg.Keys()), cfg.Path())
	return nil
}

func runConfigWatch(cmd *cobra.Command, _ []string) error {
	if err := requireHookEnv(); err != nil {
		return err
	}
	if hookSettings.SnapshotBackend != domain.SnapshotBackendJSON {
		return fmt.Errorf("%w: cannot watch %s snapshots", domain.ErrUnsupportedType, hookSettings.SnapshotBackend)
	}

	path := hookEnv.SnapshotPath()
	changes, err := file.NewSnapshotWatcher(path).Watch(cmd.Context())
	if err != nil {
		return err
	}
	logger.Info("watching %s", path)

	for change := range changes {
		switch {
		case change.Err != nil:
			logger.Warn("reading %s: %v", change.Path, change.Err)
		case change.Removed:
			if err := writeJSON(cmd, nil); err != nil {
				return err
			}
		default:
			if err := writeJSON(cmd, change.Data); err != nil {
				return err
			}
		}
	}
	return nil
}

// parseValue decodes s as JSON, falling back to the raw string.
func parseValue(s string) any {
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return s
	}
	return v
}
