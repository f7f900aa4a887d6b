package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/hookenv/internal/core/domain"
)

var portCmd = &cobra.Command{
	Use:   "port",
	Short: "Open or close unit ports",
}

var portOpenCmd = &cobra.Command{
	Use:   "open PORT[/PROTOCOL]",
	Short: "Open a port (protocol defaults to TCP)",
	Args:  cobra.ExactArgs(1),
	RunE:  runPortOpen,
}

var portCloseCmd = &cobra.Command{
	Use:   "close PORT[/PROTOCOL]",
	Short: "Close a port (protocol defaults to TCP)",
	Args:  cobra.ExactArgs(1),
	RunE:  runPortClose,
}

func init() {
	portCmd.AddCommand(portOpenCmd)
	portCmd.AddCommand(portCloseCmd)
	rootCmd.AddCommand(portCmd)
}

func runPortOpen(cmd *cobra.Command, args []string) error {
	if err := requireHookEnv(); err != nil {
		return err
	}
	port, err := domain.ParsePort(args[0])
	if err != nil {
		return err
	}
	return hookEnv.OpenPort(cmd.Context(), port)
}

func runPortClose(cmd *cobra.Command, args []string) error {
	if err := requireHookEnv(); err != nil {
		return err
	}
	port, err := domain.ParsePort(args[0])
	if err != nil {
		return err
	}
	return hookEnv.ClosePort(cmd.Context(), port)
}
