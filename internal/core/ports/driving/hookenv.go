package driving

import (
	"context"

	"github.com/custodia-labs/hookenv/internal/core/domain"
)

// HookEnvironment exposes the orchestrator state visible to a hook.
type HookEnvironment interface {
	// Log sends a message to the orchestrator's log.
	Log(ctx context.Context, msg any, level domain.LogLevel) error

	// Config returns the charm configuration snapshot for this hook.
	Config(ctx context.Context) (Config, error)

	// ConfigValue returns a single configuration value, nil if unset.
	ConfigValue(ctx context.Context, key string) (any, error)

	// LocalUnit returns the name of the unit running the hook.
	LocalUnit() string

	// ServiceName returns the application name of the local unit.
	ServiceName() string

	// HookName returns the name of the hook being run.
	HookName() string

	// CharmDir returns the charm directory.
	CharmDir() string

	// Relations returns relation data keyed by type, id and unit.
	Relations(ctx context.Context) (map[string]map[string]map[string]map[string]any, error)

	// RelationSet publishes settings on a relation.
	RelationSet(ctx context.Context, relationID string, settings map[string]any) error

	// OpenPort opens a port on the unit.
	OpenPort(ctx context.Context, port domain.Port) error

	// ClosePort closes a port on the unit.
	ClosePort(ctx context.Context, port domain.Port) error

	// StatusSet reports the workload state.
	StatusSet(ctx context.Context, state domain.WorkloadState, message string) error

	// StatusGet returns the workload state.
	StatusGet(ctx context.Context) (domain.WorkloadState, error)

	// ResetCache forgets memoised hook tool results.
	ResetCache()
}
