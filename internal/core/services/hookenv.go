package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/custodia-labs/hookenv/internal/core/domain"
	"github.com/custodia-labs/hookenv/internal/core/ports/driven"
	"github.com/custodia-labs/hookenv/internal/core/ports/driving"
	"github.com/custodia-labs/hookenv/internal/logger"
)

// Environment variables set by the orchestrator for every hook.
const (
	EnvCharmDir   = "CHARM_DIR"
	EnvUnitName   = "JUJU_UNIT_NAME"
	EnvHookName   = "JUJU_HOOK_NAME"
	EnvRelation   = "JUJU_RELATION"
	EnvRelationID = "JUJU_RELATION_ID"
	EnvRemoteUnit = "JUJU_REMOTE_UNIT"
)

// Ensure HookEnv implements the interface.
var _ driving.HookEnvironment = (*HookEnv)(nil)

// HookEnv wraps the hook tools and environment of a single hook invocation.
// Tool results are memoised until ResetCache.
type HookEnv struct {
	runner       driven.ToolRunner
	env          driven.Environment
	snapshots    driven.SnapshotStore
	metadata     driven.MetadataReader
	cache        *Cache
	snapshotPath string
	acceptsFile  *bool
}

// HookEnvOption configures a HookEnv.
type HookEnvOption func(*HookEnv)

// WithSnapshotPath overrides the default $CHARM_DIR/.juju-persistent-config.
func WithSnapshotPath(path string) HookEnvOption {
	return func(h *HookEnv) {
		h.snapshotPath = path
	}
}

// WithCache shares an existing call cache.
func WithCache(cache *Cache) HookEnvOption {
	return func(h *HookEnv) {
		h.cache = cache
	}
}

// NewHookEnv creates a hook environment.
func NewHookEnv(
	runner driven.ToolRunner,
	env driven.Environment,
	snapshots driven.SnapshotStore,
	metadata driven.MetadataReader,
	opts ...HookEnvOption,
) *HookEnv {
	h := &HookEnv{
		runner:    runner,
		env:       env,
		snapshots: snapshots,
		metadata:  metadata,
		cache:     NewCache(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Cache returns the call cache.
func (h *HookEnv) Cache() *Cache {
	return h.cache
}

// ResetCache forgets memoised hook tool results.
func (h *HookEnv) ResetCache() {
	h.cache.Reset()
}

// SnapshotPath returns where the configuration snapshot is persisted.
func (h *HookEnv) SnapshotPath() string {
	if h.snapshotPath != "" {
		return h.snapshotPath
	}
	return filepath.Join(h.CharmDir(), domain.DefaultSnapshotFile)
}

func (h *HookEnv) getenv(key string) string {
	v, _ := h.env.Lookup(key)
	return v
}

// CharmDir returns the charm directory.
func (h *HookEnv) CharmDir() string { return h.getenv(EnvCharmDir) }

// LocalUnit returns the local unit name, e.g. "mysql/0".
func (h *HookEnv) LocalUnit() string { return h.getenv(EnvUnitName) }

// ServiceName returns the application part of the local unit name.
func (h *HookEnv) ServiceName() string { return domain.ServiceName(h.LocalUnit()) }

// RemoteUnit returns the remote unit of a relation hook.
func (h *HookEnv) RemoteUnit() string { return h.getenv(EnvRemoteUnit) }

// RelationType returns the relation name of a relation hook.
func (h *HookEnv) RelationType() string { return h.getenv(EnvRelation) }

// RelationID returns the relation id of a relation hook, e.g. "db:1".
func (h *HookEnv) RelationID() string { return h.getenv(EnvRelationID) }

// InRelationHook reports whether the current hook is a relation hook.
func (h *HookEnv) InRelationHook() bool {
	_, ok := h.env.Lookup(EnvRelation)
	return ok
}

// HookName returns the running hook's name as reported by the orchestrator.
func (h *HookEnv) HookName() string { return h.getenv(EnvHookName) }

// Log sends msg to juju-log. Non-string messages are rendered with %#v.
// A non-zero exit from juju-log is ignored.
func (h *HookEnv) Log(ctx context.Context, msg any, level domain.LogLevel) error {
	text, ok := msg.(string)
	if !ok {
		text = fmt.Sprintf("%#v", msg)
	}

	var args []string
	if level != domain.LevelDefault {
		args = append(args, "-l", level.String())
	}
	args = append(args, text)

	logger.Debug("juju-log %s: %s", level, text)

	err := h.runner.Run(ctx, "juju-log", args...)
	var te *domain.ToolError
	if errors.As(err, &te) {
		return nil
	}
	return err
}

// ConfigValue returns a single configuration option, nil if unset.
func (h *HookEnv) ConfigValue(ctx context.Context, key string) (any, error) {
	return cached(h.cache, cacheKey("config-get", key), func() (any, error) {
		out, err := h.runner.Output(ctx, "config-get", key, "--format=json")
		if err != nil {
			return nil, err
		}
		return decodeJSON(out)
	})
}

// Config returns the charm configuration with the previous snapshot loaded
// when one exists. The same instance is returned until ResetCache so the
// dispatcher saves what handlers changed.
func (h *HookEnv) Config(ctx context.Context) (driving.Config, error) {
	return cached(h.cache, cacheKey("config-get"), func() (driving.Config, error) {
		out, err := h.runner.Output(ctx, "config-get", "--format=json")
		if err != nil {
			return nil, err
		}
		values, err := decodeObject(out)
		if err != nil {
			return nil, fmt.Errorf("config-get: %w", err)
		}

		cfg := NewConfig(h.snapshots, h.SnapshotPath(), values)
		if err := cfg.LoadPrevious(ctx, ""); err != nil {
			if !errors.Is(err, domain.ErrNoSnapshot) {
				return nil, err
			}
			logger.Debug("no previous config at %s", cfg.Path())
		}
		return cfg, nil
	})
}

// UnitGet returns an attribute of the local unit.
func (h *HookEnv) UnitGet(ctx context.Context, attribute string) (any, error) {
	return cached(h.cache, cacheKey("unit-get", attribute), func() (any, error) {
		out, err := h.runner.Output(ctx, "unit-get", "--format=json", attribute)
		if err != nil {
			return nil, err
		}
		return decodeJSON(out)
	})
}

// UnitPublicIP returns the public address of the local unit.
func (h *HookEnv) UnitPublicIP(ctx context.Context) (string, error) {
	return h.unitAddress(ctx, "public-address")
}

// UnitPrivateIP returns the private address of the local unit.
func (h *HookEnv) UnitPrivateIP(ctx context.Context) (string, error) {
	return h.unitAddress(ctx, "private-address")
}

func (h *HookEnv) unitAddress(ctx context.Context, attribute string) (string, error) {
	v, err := h.UnitGet(ctx, attribute)
	if err != nil {
		return "", err
	}
	if v == nil {
		return "", nil
	}
	return valueString(v), nil
}

// Metadata returns the parsed charm metadata.
func (h *HookEnv) Metadata() (*domain.CharmMetadata, error) {
	return cached(h.cache, cacheKey("metadata"), func() (*domain.CharmMetadata, error) {
		return h.metadata.Read(h.CharmDir())
	})
}

// RelationTypes returns the relation names declared in metadata.
func (h *HookEnv) RelationTypes() ([]string, error) {
	md, err := h.Metadata()
	if err != nil {
		return nil, err
	}
	return md.RelationTypes(), nil
}

// CharmName returns the charm name declared in metadata.
func (h *HookEnv) CharmName() (string, error) {
	md, err := h.Metadata()
	if err != nil {
		return "", err
	}
	return md.Name, nil
}

// ExecutionEnvironment collects the configuration, unit, relations and
// process environment of the hook. Inside a relation hook it also carries
// reltype, relid and the remote settings as rel.
func (h *HookEnv) ExecutionEnvironment(ctx context.Context) (map[string]any, error) {
	cfg, err := h.Config(ctx)
	if err != nil {
		return nil, err
	}
	rels, err := h.Relations(ctx)
	if err != nil {
		return nil, err
	}

	env := map[string]any{
		"conf": cfg.Data(),
		"unit": h.LocalUnit(),
		"rels": rels,
		"env":  h.env.Environ(),
	}

	if relid := h.RelationID(); relid != "" {
		rel, err := h.RelationGet(ctx, "", "", "")
		if err != nil {
			return nil, err
		}
		env["reltype"] = h.RelationType()
		env["relid"] = relid
		env["rel"] = rel
	}
	return env, nil
}

// decodeJSON decodes tool output. Empty output decodes to nil.
func decodeJSON(out []byte) (any, error) {
	out = bytes.TrimSpace(out)
	if len(out) == 0 {
		return nil, nil
	}
	var v any
	if err := json.Unmarshal(out, &v); err != nil {
		return nil, fmt.Errorf("decoding tool output: %w", err)
	}
	return v, nil
}

// decodeObject decodes tool output that must be a JSON object or null.
func decodeObject(out []byte) (map[string]any, error) {
	v, err := decodeJSON(out)
	if err != nil {
		return nil, err
	}
	switch m := v.(type) {
	case nil:
		return map[string]any{}, nil
	case map[string]any:
		return m, nil
	default:
		return nil, fmt.Errorf("%w: expected object, got %T", domain.ErrInvalidInput, v)
	}
}

// decodeStrings decodes tool output that must be a JSON list of strings or null.
func decodeStrings(out []byte) ([]string, error) {
	out = bytes.TrimSpace(out)
	if len(out) == 0 {
		return []string{}, nil
	}
	var list []string
	if err := json.Unmarshal(out, &list); err != nil {
		return nil, fmt.Errorf("decoding tool output: %w", err)
	}
	if list == nil {
		list = []string{}
	}
	return list, nil
}

// valueString renders a setting for a key=value tool argument.
func valueString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case fmt.Stringer:
		return s.String()
	}
	encoded, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(encoded)
}
