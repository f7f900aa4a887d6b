package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Domain errors represent hook environment failures.
// These are distinct from the raw process errors returned by hook tools.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrKeyNotFound indicates strict access to a key missing from a mapping.
	ErrKeyNotFound = fmt.Errorf("key %w", ErrNotFound)

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates the orchestrator does not provide the
	// requested hook tool (for example is-leader on old agents).
	ErrNotImplemented = errors.New("not implemented")

	// ErrNoSnapshot indicates no configuration snapshot has been persisted yet.
	// The first hook a unit runs always sees this.
	ErrNoSnapshot = errors.New("no persisted snapshot")

	// ErrToolNotFound indicates a hook tool binary could not be located.
	ErrToolNotFound = errors.New("hook tool not found")

	// ErrUnregisteredHook indicates dispatch of a hook with no handler.
	ErrUnregisteredHook = errors.New("unregistered hook")

	// ErrUnsupportedType indicates an unknown snapshot backend.
	ErrUnsupportedType = errors.New("unsupported type")
)

// ToolError describes a hook tool that ran but exited unsuccessfully.
type ToolError struct {
	Tool     string
	Args     []string
	ExitCode int
	Stderr   string
}

func (e *ToolError) Error() string {
	msg := fmt.Sprintf("%s %s: exit status %d", e.Tool, strings.Join(e.Args, " "), e.ExitCode)
	if e.Stderr != "" {
		msg += ": " + strings.TrimSpace(e.Stderr)
	}
	return msg
}

// UnregisteredHookError is returned when a hook name has no handler.
type UnregisteredHookError struct {
	Name string
}

func (e *UnregisteredHookError) Error() string {
	return fmt.Sprintf("no handler registered for hook %q", e.Name)
}

// Is reports whether target is ErrUnregisteredHook.
func (e *UnregisteredHookError) Is(target error) bool {
	return target == ErrUnregisteredHook
}

// ExitCode returns the exit status of a failed hook tool, or -1 if err
// does not wrap a ToolError.
func ExitCode(err error) int {
	var te *ToolError
	if errors.As(err, &te) {
		return te.ExitCode
	}
	return -1
}
