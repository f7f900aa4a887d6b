package hooktool

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/custodia-labs/hookenv/internal/core/domain"
	"github.com/custodia-labs/hookenv/internal/core/ports/driven"
	"github.com/custodia-labs/hookenv/internal/logger"
)

// Ensure Runner implements the interface.
var _ driven.ToolRunner = (*Runner)(nil)

// Runner executes hook tools as child processes.
type Runner struct {
	toolsDir string
}

// NewRunner creates a runner. If toolsDir is non-empty, tools found there
// take precedence over PATH.
func NewRunner(toolsDir string) *Runner {
	return &Runner{toolsDir: toolsDir}
}

// Output runs the tool and returns its standard output.
func (r *Runner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, r.resolve(name), args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logger.Debug("exec %s %v", name, args)
	if err := cmd.Run(); err != nil {
		return stdout.Bytes(), classify(name, args, err, stderr.String())
	}
	return stdout.Bytes(), nil
}

// Run runs the tool, discarding its standard output.
func (r *Runner) Run(ctx context.Context, name string, args ...string) error {
	_, err := r.Output(ctx, name, args...)
	return err
}

func (r *Runner) resolve(name string) string {
	if r.toolsDir == "" || filepath.IsAbs(name) {
		return name
	}
	candidate := filepath.Join(r.toolsDir, name)
	if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
		return candidate
	}
	return name
}

func classify(name string, args []string, err error, stderr string) error {
	if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s: %w", domain.ErrToolNotFound, name, err)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &domain.ToolError{
			Tool:     name,
			Args:     args,
			ExitCode: exitErr.ExitCode(),
			Stderr:   stderr,
		}
	}
	return fmt.Errorf("running %s: %w", name, err)
}
