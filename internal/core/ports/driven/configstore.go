package driven

// ConfigStore provides read access to the hookenv settings file.
// Implementations handle persistence (e.g., TOML files) and type conversion.
// Nested tables are exposed with dot-notation keys ("snapshot.backend").
type ConfigStore interface {
	// Get retrieves a setting by key.
	// Returns the value and a boolean indicating if the key exists.
	Get(key string) (any, bool)

	// GetString retrieves a string setting.
	// Returns empty string if key doesn't exist or isn't a string.
	GetString(key string) string

	// GetBool retrieves a boolean setting.
	// Returns false if key doesn't exist or isn't a boolean.
	GetBool(key string) bool

	// GetStringMap retrieves all string settings below a table prefix,
	// keyed by the remainder of their key ("hooks" -> {"install": "..."}).
	GetStringMap(prefix string) map[string]string

	// Set stores a setting in memory. Call Save to persist it.
	Set(key string, value any) error

	// Save persists the current settings to storage.
	Save() error

	// Load reads settings from storage. A missing file yields no settings.
	Load() error

	// Path returns the settings file path.
	Path() string
}
