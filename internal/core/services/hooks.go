package services

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"sync"

	"github.com/custodia-labs/hookenv/internal/core/domain"
	"github.com/custodia-labs/hookenv/internal/core/ports/driving"
	"github.com/custodia-labs/hookenv/internal/logger"
)

// Ensure Hooks implements the interface.
var _ driving.Dispatcher = (*Hooks)(nil)

// ConfigSource provides the configuration a hook saves after it succeeds.
type ConfigSource interface {
	Config(ctx context.Context) (driving.Config, error)
	ResetCache()
}

// Hooks dispatches a hook invocation to its registered handler.
type Hooks struct {
	mu         sync.RWMutex
	handlers   map[string]driving.HookFunc
	env        ConfigSource
	configSave bool
}

// HooksOption configures a Hooks dispatcher.
type HooksOption func(*Hooks)

// WithConfigSave toggles saving the configuration after a successful hook.
func WithConfigSave(enabled bool) HooksOption {
	return func(h *Hooks) {
		h.configSave = enabled
	}
}

// NewHooks creates a dispatcher. env may be nil when config saving is disabled.
func NewHooks(env ConfigSource, opts ...HooksOption) *Hooks {
	h := &Hooks{
		handlers:   make(map[string]driving.HookFunc),
		env:        env,
		configSave: true,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register binds fn to name. Underscores in name are treated as hyphens,
// so "config_changed" and "config-changed" are the same hook.
func (h *Hooks) Register(name string, fn driving.HookFunc) {
	h.mu.Lock()
	defer h.mu.Unlock()

	key := domain.NormalizeHookName(name)
	h.handlers[key] = fn
	logger.Debug("registered hook %s", key)
}

// Hook binds fn to every name.
func (h *Hooks) Hook(fn driving.HookFunc, names ...string) {
	for _, name := range names {
		h.Register(name, fn)
	}
}

// Names returns the registered hook names, sorted.
func (h *Hooks) Names() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	names := make([]string, 0, len(h.handlers))
	for name := range h.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Execute runs the handler for the hook named by the base name of args[0].
// After a successful handler the configuration is saved unless saving is
// disabled on the dispatcher or on the configuration itself.
func (h *Hooks) Execute(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: no hook name", domain.ErrInvalidInput)
	}

	base := filepath.Base(args[0])
	name := domain.NormalizeHookName(base)

	h.mu.RLock()
	fn, ok := h.handlers[name]
	h.mu.RUnlock()
	if !ok {
		return &domain.UnregisteredHookError{Name: base}
	}

	if h.env != nil {
		h.env.ResetCache()
	}

	logger.Section("hook " + name)
	if err := fn(ctx); err != nil {
		return fmt.Errorf("hook %s: %w", name, err)
	}

	if !h.configSave || h.env == nil {
		return nil
	}

	cfg, err := h.env.Config(ctx)
	if err != nil {
		return fmt.Errorf("loading config after %s: %w", name, err)
	}
	if !cfg.ImplicitSave() {
		logger.Debug("implicit save disabled, not saving %s", cfg.Path())
		return nil
	}
	if err := cfg.Save(ctx); err != nil {
		return err
	}
	logger.Debug("saved config to %s", cfg.Path())
	return nil
}
