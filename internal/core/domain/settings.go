package domain

// SnapshotBackend selects where configuration snapshots are persisted.
type SnapshotBackend string

// Available snapshot backends.
const (
	// SnapshotBackendJSON stores the snapshot as a JSON object in a file.
	SnapshotBackendJSON SnapshotBackend = "json"

	// SnapshotBackendSQLite stores snapshot entries in a SQLite database.
	SnapshotBackendSQLite SnapshotBackend = "sqlite"
)

// IsValid returns true if the backend is recognised.
func (b SnapshotBackend) IsValid() bool {
	switch b {
	case SnapshotBackendJSON, SnapshotBackendSQLite:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (b SnapshotBackend) String() string {
	return string(b)
}

// HookSettings configures the hookenv command for one charm.
type HookSettings struct {
	// SnapshotBackend selects the snapshot store.
	SnapshotBackend SnapshotBackend
	// SnapshotPath overrides the default snapshot location.
	SnapshotPath string
	// ConfigSave saves the cached configuration after a successful hook.
	ConfigSave bool
	// ToolsDir, if set, is searched for hook tools before PATH.
	ToolsDir string
	// Verbose enables debug logging to stderr.
	Verbose bool
	// Hooks maps hook names to the command that handles them.
	Hooks map[string]string
}

// DefaultHookSettings returns settings used when no settings file exists.
func DefaultHookSettings() HookSettings {
	return HookSettings{
		SnapshotBackend: SnapshotBackendJSON,
		ConfigSave:      true,
		Hooks:           make(map[string]string),
	}
}
