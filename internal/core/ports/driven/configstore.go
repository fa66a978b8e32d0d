package driven

// ConfigStore provides access to application configuration.
// Keys use dot notation matching the config file tables, e.g. "server.port".
type ConfigStore interface {
	// Get retrieves a configuration value by key.
	// Returns the value and a boolean indicating if the key exists.
	Get(key string) (any, bool)

	// GetString returns "" if the key doesn't exist or isn't a string.
	GetString(key string) string

	// GetInt returns 0 if the key doesn't exist or isn't an integer.
	GetInt(key string) int

	// GetFloat returns 0 if the key doesn't exist or isn't numeric.
	// Integers are widened.
	GetFloat(key string) float64

	// GetBool returns false if the key doesn't exist or isn't a boolean.
	GetBool(key string) bool

	// Update stores all values and persists them in one write.
	// On error nothing is changed.
	Update(values map[string]any) error

	// Path returns the configuration file path, or "" when nothing is persisted.
	Path() string
}
