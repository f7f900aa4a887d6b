package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/hookenv/internal/core/domain"
)

var relationID string

var relationCmd = &cobra.Command{
	Use:   "relation",
	Short: "Read and write relation settings",
}

var relationListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print settings of every unit on every relation",
	Long: `Print relation settings keyed by relation type, relation id and unit.
The local unit's own settings are included.`,
	Args: cobra.NoArgs,
	RunE: runRelationList,
}

var relationIDsCmd = &cobra.Command{
	Use:   "ids [TYPE]",
	Short: "Print relation ids (default: the current relation type)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runRelationIDs,
}

var relationGetCmd = &cobra.Command{
	Use:   "get [ATTRIBUTE] [UNIT]",
	Short: "Print relation settings of a unit",
	Args:  cobra.MaximumNArgs(2),
	RunE:  runRelationGet,
}

var relationSetCmd = &cobra.Command{
	Use:   "set KEY=VALUE...",
	Short: "Publish settings for the local unit (KEY= unsets)",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runRelationSet,
}

var relationClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Unset every local setting except the unit addresses",
	Args:  cobra.NoArgs,
	RunE:  runRelationClear,
}

func init() {
	for _, c := range []*cobra.Command{relationGetCmd, relationSetCmd, relationClearCmd} {
		c.Flags().StringVarP(&relationID, "relation", "r", "", "relation id (default: current relation)")
	}
	relationCmd.AddCommand(relationListCmd)
	relationCmd.AddCommand(relationIDsCmd)
	relationCmd.AddCommand(relationGetCmd)
	relationCmd.AddCommand(relationSetCmd)
	relationCmd.AddCommand(relationClearCmd)
	rootCmd.AddCommand(relationCmd)
}

func runRelationList(cmd *cobra.Command, _ []string) error {
	if err := requireHookEnv(); err != nil {
		return err
	}
	rels, err := hookEnv.Relations(cmd.Context())
	if err != nil {
		return err
	}
	return writeJSON(cmd, rels)
}

func runRelationIDs(cmd *cobra.Command, args []string) error {
	if err := requireHookEnv(); err != nil {
		return err
	}
	reltype := ""
	if len(args) > 0 {
		reltype = args[0]
	}
	ids, err := hookEnv.RelationIDs(cmd.Context(), reltype)
	if err != nil {
		return err
	}
	return writeJSON(cmd, ids)
}

func runRelationGet(cmd *cobra.Command, args []string) error {
	if err := requireHookEnv(); err != nil {
		return err
	}
	var attribute, unit string
	if len(args) > 0 && args[0] != "-" {
		attribute = args[0]
	}
	if len(args) > 1 {
		unit = args[1]
	}
	v, err := hookEnv.RelationGet(cmd.Context(), attribute, unit, relationID)
	if err != nil {
		return err
	}
	return writeJSON(cmd, v)
}

func runRelationSet(cmd *cobra.Command, args []string) error {
	if err := requireHookEnv(); err != nil {
		return err
	}
	settings, err := parseSettings(args)
	if err != nil {
		return err
	}
	return hookEnv.RelationSet(cmd.Context(), relationID, settings)
}

func runRelationClear(cmd *cobra.Command, _ []string) error {
	if err := requireHookEnv(); err != nil {
		return err
	}
	return hookEnv.RelationClear(cmd.Context(), relationID)
}

// parseSettings turns KEY=VALUE arguments into settings. An empty VALUE
// becomes nil, which unsets the key.
func parseSettings(args []string) (map[string]any, error) {
	settings := make(map[string]any, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("%w: expected KEY=VALUE, got %q", domain.ErrInvalidInput, arg)
		}
		if value == "" {
			settings[key] = nil
			continue
		}
		settings[key] = value
	}
	return settings, nil
}
