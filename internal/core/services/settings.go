package services

import (
	"fmt"

	"github.com/custodia-labs/hookenv/internal/core/domain"
	"github.com/custodia-labs/hookenv/internal/core/ports/driven"
)

// Settings keys in hookenv.toml.
const (
	keySnapshotBackend = "snapshot.backend"
	keySnapshotPath    = "snapshot.path"
	keyConfigSave      = "dispatch.config_save"
	keyToolsDir        = "tools.dir"
	keyVerbose         = "log.verbose"
	keyHooks           = "hooks"
)

// SettingsService reads and updates hookenv settings.
type SettingsService struct {
	store driven.ConfigStore
}

// NewSettingsService creates a settings service.
func NewSettingsService(store driven.ConfigStore) *SettingsService {
	return &SettingsService{store: store}
}

// Load returns the settings, filling unset keys with defaults.
func (s *SettingsService) Load() (domain.HookSettings, error) {
	settings := domain.DefaultHookSettings()
	if err := s.store.Load(); err != nil {
		return settings, fmt.Errorf("loading settings: %w", err)
	}

	if backend := s.store.GetString(keySnapshotBackend); backend != "" {
		settings.SnapshotBackend = domain.SnapshotBackend(backend)
	}
	if !settings.SnapshotBackend.IsValid() {
		return settings, fmt.Errorf("%w: snapshot backend %q", domain.ErrUnsupportedType, settings.SnapshotBackend)
	}

	settings.SnapshotPath = s.store.GetString(keySnapshotPath)
	if _, ok := s.store.Get(keyConfigSave); ok {
		settings.ConfigSave = s.store.GetBool(keyConfigSave)
	}
	settings.ToolsDir = s.store.GetString(keyToolsDir)
	settings.Verbose = s.store.GetBool(keyVerbose)
	for name, command := range s.store.GetStringMap(keyHooks) {
		settings.Hooks[domain.NormalizeHookName(name)] = command
	}
	return settings, nil
}

// SetSnapshotBackend selects and persists the snapshot backend.
func (s *SettingsService) SetSnapshotBackend(backend domain.SnapshotBackend) error {
	if !backend.IsValid() {
		return fmt.Errorf("%w: snapshot backend %q", domain.ErrUnsupportedType, backend)
	}
	if err := s.store.Set(keySnapshotBackend, backend.String()); err != nil {
		return err
	}
	return s.store.Save()
}

// SetHook binds a hook name to a command and persists it.
func (s *SettingsService) SetHook(name, command string) error {
	if command == "" {
		return fmt.Errorf("%w: empty command for hook %s", domain.ErrInvalidInput, name)
	}
	if err := s.store.Set(keyHooks+"."+domain.NormalizeHookName(name), command); err != nil {
		return err
	}
	return s.store.Save()
}

// Path returns the settings file path.
func (s *SettingsService) Path() string {
	return s.store.Path()
}
