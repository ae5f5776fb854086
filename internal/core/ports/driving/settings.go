package driving

import "github.com/custodia-labs/ronin/internal/core/domain"

// SettingsService resolves application settings.
type SettingsService interface {
	// Get returns the effective settings: defaults, then the config file,
	// then environment overrides.
	Get() (*domain.Settings, error)

	// GetDefaults returns the built-in settings.
	GetDefaults() domain.Settings

	// Set stores a single config file key.
	// Unknown keys are rejected with domain.ErrInvalidInput.
	Set(key string, value any) error

	// Keys returns every recognised config key in display order.
	Keys() []string

	// ConfigPath returns the config file location, or empty when no store is wired.
	ConfigPath() string
}
