package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/hookenv/internal/core/domain"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Get or set the workload status",
}

var statusGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Print the workload state",
	Args:  cobra.NoArgs,
	RunE:  runStatusGet,
}

var statusSetCmd = &cobra.Command{
	Use:   "set STATE [MESSAGE...]",
	Short: "Set the workload state",
	Long: `Set the workload state to one of maintenance, blocked, waiting or active.
When status-set is unavailable the status is written to the unit log.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runStatusSet,
}

var leaderCmd = &cobra.Command{
	Use:   "is-leader",
	Short: "Report whether this unit is the application leader",
	Long:  `Print true or false. Exits with status 1 when the unit is not the leader.`,
	Args:  cobra.NoArgs,
	RunE:  runIsLeader,
}

func init() {
	statusCmd.AddCommand(statusGetCmd)
	statusCmd.AddCommand(statusSetCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(leaderCmd)
}

func runStatusGet(cmd *cobra.Command, _ []string) error {
	if err := requireHookEnv(); err != nil {
		return err
	}
	state, err := hookEnv.StatusGet(cmd.Context())
	if err != nil {
		return err
	}
	cmd.Println(state)
	return nil
}

func runStatusSet(cmd *cobra.Command, args []string) error {
	if err := requireHookEnv(); err != nil {
		return err
	}
	state := domain.WorkloadState(args[0])
	return hookEnv.StatusSet(cmd.Context(), state, strings.Join(args[1:], " "))
}

func runIsLeader(cmd *cobra.Command, _ []string) error {
	if err := requireHookEnv(); err != nil {
		return err
	}
	leader, err := hookEnv.IsLeader(cmd.Context())
	if err != nil {
		return err
	}
	if err := writeJSON(cmd, leader); err != nil {
		return err
	}
	if !leader {
		return &exitError{code: 1}
	}
	return nil
}
