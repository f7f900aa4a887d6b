package cli

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/hookenv/internal/core/domain"
	"github.com/custodia-labs/hookenv/internal/core/ports/driving"
	"github.com/custodia-labs/hookenv/internal/core/services"
	"github.com/custodia-labs/hookenv/internal/logger"
)

// shell runs configured hook commands.
var shell = "/bin/sh"

var dispatchCmd = &cobra.Command{
	Use:   "dispatch HOOK [ARGS...]",
	Short: "Run the command configured for a hook",
	Long: `Run the command configured for HOOK under [hooks] in hookenv.toml.

The command runs through /bin/sh in the charm directory with ARGS as its
positional parameters. After it succeeds the charm configuration snapshot
is saved, unless dispatch.config_save is false.

  [hooks]
  install = "apt-get install -y nginx"
  config-changed = "./bin/render-config"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDispatch,
}

func init() {
	rootCmd.AddCommand(dispatchCmd)
}

func runDispatch(cmd *cobra.Command, args []string) error {
	if err := requireHookEnv(); err != nil {
		return err
	}

	name := domain.NormalizeHookName(filepath.Base(args[0]))
	logger.SetHook(name)
	defer logger.SetHook("")

	hooks := services.NewHooks(hookEnv, services.WithConfigSave(hookSettings.ConfigSave))
	for hook, command := range hookSettings.Hooks {
		hooks.Register(hook, shellHook(cmd, command, args[1:]))
	}

	err := hooks.Execute(cmd.Context(), args)
	if errors.Is(err, domain.ErrUnregisteredHook) {
		logger.Warn("registered hooks: %v", hooks.Names())
	}
	return err
}

// shellHook runs command through the shell with args as $1, $2, ...
func shellHook(cmd *cobra.Command, command string, args []string) driving.HookFunc {
	return func(ctx context.Context) error {
		shArgs := append([]string{"-c", command, "hookenv"}, args...)
		c := exec.CommandContext(ctx, shell, shArgs...)
		c.Dir = hookEnv.CharmDir()
		c.Stdin = cmd.InOrStdin()
		c.Stdout = cmd.OutOrStdout()
		c.Stderr = cmd.ErrOrStderr()

		logger.Debug("running %q", command)
		if err := c.Run(); err != nil {
			var ee *exec.ExitError
			if errors.As(err, &ee) {
				return &exitError{
					code: ee.ExitCode(),
					err:  fmt.Errorf("%q exited with status %d", command, ee.ExitCode()),
				}
			}
			return fmt.Errorf("running %q: %w", command, err)
		}
		return nil
	}
}
