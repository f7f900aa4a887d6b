// Package cli implements the hookenv command line.
//
// The binary is normally installed once and symlinked into a charm's
// hooks directory under each hook name. Invoked as hooks/config-changed
// it behaves like "hookenv dispatch config-changed".
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/hookenv/internal/adapters/driven/config/file"
	"github.com/custodia-labs/hookenv/internal/adapters/driven/hooktool"
	"github.com/custodia-labs/hookenv/internal/adapters/driven/metadata"
	"github.com/custodia-labs/hookenv/internal/adapters/driven/osenv"
	"github.com/custodia-labs/hookenv/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/hookenv/internal/core/domain"
	"github.com/custodia-labs/hookenv/internal/core/ports/driven"
	"github.com/custodia-labs/hookenv/internal/core/services"
	"github.com/custodia-labs/hookenv/internal/logger"
)

// version is set at build time with -ldflags "-X ...cli.version=v1.2.3".
var version = "dev"

// skipSetup marks commands that run without a hook environment.
const skipSetup = "hookenv/skip-setup"

var (
	verbose  bool
	charmDir string
)

// Services used by the commands. setupServices wires them on first use;
// tests assign them directly.
var (
	hookEnv         *services.HookEnv
	settingsService *services.SettingsService
	hookSettings    = domain.DefaultHookSettings()
	closers         []func() error
)

var rootCmd = &cobra.Command{
	Use:   "hookenv",
	Short: "Charm hook environment helper",
	Long: `hookenv wraps the hook tools of a charm unit. It dispatches hooks to
the commands configured in hookenv.toml, persists a snapshot of the charm
configuration after every successful hook, and exposes configuration,
relation, status and port operations as subcommands.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupServices,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print debug output to stderr")
	rootCmd.PersistentFlags().StringVar(&charmDir, "charm-dir", "", "charm directory (default $CHARM_DIR)")
}

// Execute runs the command line for argv as passed to the process and
// returns the exit status. Errors are printed to stderr.
func Execute(ctx context.Context, argv []string) int {
	defer closeServices()

	rootCmd.SetArgs(commandArgs(argv))
	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	var ee *exitError
	if !errors.As(err, &ee) || ee.err != nil {
		fmt.Fprintln(rootCmd.ErrOrStderr(), "Error:", err)
	}
	return exitCode(err)
}

// commandArgs maps a hook symlink invocation onto the dispatch command.
func commandArgs(argv []string) []string {
	if len(argv) == 0 {
		return nil
	}
	name := strings.TrimSuffix(filepath.Base(argv[0]), ".exe")
	if name == rootCmd.Name() {
		return argv[1:]
	}
	return append([]string{dispatchCmd.Name(), name}, argv[1:]...)
}

func setupServices(cmd *cobra.Command, _ []string) error {
	if verbose {
		logger.SetVerbose(true)
	}
	if cmd.Annotations[skipSetup] == "true" || hookEnv != nil {
		return nil
	}

	dir, err := resolveCharmDir()
	if err != nil {
		return err
	}

	store, err := file.NewConfigStore(dir)
	if err != nil {
		return fmt.Errorf("opening settings: %w", err)
	}
	settingsService = services.NewSettingsService(store)

	settings, err := settingsService.Load()
	if err != nil {
		return err
	}
	hookSettings = settings
	logger.SetVerbose(verbose || settings.Verbose)
	logger.Debug("charm dir %s, settings %s", dir, store.Path())

	snapshots, err := openSnapshotStore(dir, settings.SnapshotBackend)
	if err != nil {
		return err
	}

	var opts []services.HookEnvOption
	if settings.SnapshotPath != "" {
		opts = append(opts, services.WithSnapshotPath(settings.SnapshotPath))
	}
	hookEnv = services.NewHookEnv(
		hooktool.NewRunner(settings.ToolsDir),
		osenv.Environment{},
		snapshots,
		metadata.NewReader(),
		opts...,
	)
	return nil
}

// resolveCharmDir returns --charm-dir, $CHARM_DIR or the working directory.
// A --charm-dir value is exported so hook tools and handlers see it too.
func resolveCharmDir() (string, error) {
	if charmDir != "" {
		abs, err := filepath.Abs(charmDir)
		if err != nil {
			return "", fmt.Errorf("resolving charm dir: %w", err)
		}
		if err := os.Setenv(services.EnvCharmDir, abs); err != nil {
			return "", err
		}
		return abs, nil
	}
	if dir := os.Getenv(services.EnvCharmDir); dir != "" {
		return dir, nil
	}

	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("resolving charm dir: %w", err)
	}
	if err := os.Setenv(services.EnvCharmDir, dir); err != nil {
		return "", err
	}
	return dir, nil
}

func openSnapshotStore(dir string, backend domain.SnapshotBackend) (driven.SnapshotStore, error) {
	switch backend {
	case domain.SnapshotBackendJSON:
		return file.NewSnapshotStore(), nil
	case domain.SnapshotBackendSQLite:
		store, err := sqlite.NewStore(dir)
		if err != nil {
			return nil, fmt.Errorf("opening snapshot database: %w", err)
		}
		closers = append(closers, store.Close)
		return store.SnapshotStore(), nil
	default:
		return nil, fmt.Errorf("%w: snapshot backend %q", domain.ErrUnsupportedType, backend)
	}
}

func closeServices() {
	for _, closeFn := range closers {
		if err := closeFn(); err != nil {
			logger.Warn("closing: %v", err)
		}
	}
	closers = nil
}

// exitError carries a process exit status. A nil err exits silently.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err != nil {
		return e.err.Error()
	}
	return fmt.Sprintf("exit status %d", e.code)
}

func (e *exitError) Unwrap() error {
	return e.err
}

func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return 1
}

func requireHookEnv() error {
	if hookEnv == nil {
		return errors.New("hook environment not configured")
	}
	return nil
}
