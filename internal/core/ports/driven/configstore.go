package driven

// ConfigStore is the persisted key/value layer under SettingsService.
// Keys are dot-separated ("github.token", "history.max_runs"); typed
// getters return the zero value for a missing key or a value of another type.
type ConfigStore interface {
	// Get returns the raw value and whether the key is set.
	Get(key string) (any, bool)

	GetString(key string) string
	GetInt(key string) int
	GetBool(key string) bool
	GetStringSlice(key string) []string

	// Set stores a value and persists it immediately.
	Set(key string, value any) error

	// Save writes every value to storage.
	Save() error

	// Load replaces the in-memory values with what storage holds.
	Load() error

	// Path identifies the backing file, or ":memory:".
	Path() string
}
