package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/custodia-labs/hookenv/internal/core/domain"
)

// StatusSet reports the workload state and message. When status-set is
// unavailable or fails the status is written to juju-log instead.
func (h *HookEnv) StatusSet(ctx context.Context, state domain.WorkloadState, message string) error {
	if !state.IsValid() {
		return fmt.Errorf("%w: workload state %q must be one of %v",
			domain.ErrInvalidInput, state, domain.ValidWorkloadStates())
	}

	err := h.runner.Run(ctx, "status-set", state.String(), message)
	if err == nil {
		return nil
	}

	var te *domain.ToolError
	if !errors.Is(err, domain.ErrToolNotFound) && !errors.As(err, &te) {
		return err
	}
	return h.Log(ctx, fmt.Sprintf("status-set failed: %s %s", state, message), domain.LevelInfo)
}

// StatusGet returns the workload state, unknown when status-get is unavailable.
func (h *HookEnv) StatusGet(ctx context.Context) (domain.WorkloadState, error) {
	out, err := h.runner.Output(ctx, "status-get")
	if err != nil {
		if errors.Is(err, domain.ErrToolNotFound) {
			return domain.StateUnknown, nil
		}
		return "", err
	}
	return domain.WorkloadState(strings.TrimSpace(string(out))), nil
}

// OpenPort opens port on the unit.
func (h *HookEnv) OpenPort(ctx context.Context, port domain.Port) error {
	return h.runner.Run(ctx, "open-port", port.String())
}

// ClosePort closes port on the unit.
func (h *HookEnv) ClosePort(ctx context.Context, port domain.Port) error {
	return h.runner.Run(ctx, "close-port", port.String())
}

// IsLeader reports whether the local unit is the application leader.
// Agents without is-leader yield domain.ErrNotImplemented.
func (h *HookEnv) IsLeader(ctx context.Context) (bool, error) {
	return cached(h.cache, cacheKey("is-leader"), func() (bool, error) {
		out, err := h.runner.Output(ctx, "is-leader", "--format=json")
		if err != nil {
			if errors.Is(err, domain.ErrToolNotFound) {
				return false, fmt.Errorf("%w: is-leader", domain.ErrNotImplemented)
			}
			return false, err
		}
		v, err := decodeJSON(out)
		if err != nil {
			return false, err
		}
		leader, ok := v.(bool)
		if !ok {
			return false, fmt.Errorf("%w: is-leader returned %T", domain.ErrInvalidInput, v)
		}
		return leader, nil
	})
}

// ActionGet returns an action parameter, or all parameters when key is empty.
func (h *HookEnv) ActionGet(ctx context.Context, key string) (any, error) {
	var args []string
	if key != "" {
		args = append(args, key)
	}
	args = append(args, "--format=json")

	out, err := h.runner.Output(ctx, "action-get", args...)
	if err != nil {
		return nil, err
	}
	return decodeJSON(out)
}

// ActionSet records action results.
func (h *HookEnv) ActionSet(ctx context.Context, values map[string]any) error {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	args := make([]string, 0, len(keys))
	for _, k := range keys {
		args = append(args, k+"="+valueString(values[k]))
	}
	return h.runner.Run(ctx, "action-set", args...)
}

// ActionFail marks the running action as failed.
func (h *HookEnv) ActionFail(ctx context.Context, message string) error {
	return h.runner.Run(ctx, "action-fail", message)
}
