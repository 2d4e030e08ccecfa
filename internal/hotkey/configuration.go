package hotkey

import "strings"

const (
	configurationModifiersKeyConstant = "modifiers"
	configurationKeyKeyConstant       = "key"

	defaultModifiersConstant = "cmd+ctrl"
	defaultKeyConstant       = "d"
)

// Configuration captures the hotkey chord settings.
type Configuration struct {
	Modifiers string `mapstructure:"modifiers"`
	Key       string `mapstructure:"key"`
}

// DefaultConfiguration provides the baseline chord.
func DefaultConfiguration() Configuration {
	return Configuration{
		Modifiers: defaultModifiersConstant,
		Key:       defaultKeyConstant,
	}
}

// DefaultConfigurationValues produces Viper defaults for the hotkey chord.
func DefaultConfigurationValues(rootKey string) map[string]any {
	defaults := DefaultConfiguration()
	return map[string]any{
		rootKey + "." + configurationModifiersKeyConstant: defaults.Modifiers,
		rootKey + "." + configurationKeyKeyConstant:       defaults.Key,
	}
}

// Sanitize trims the chord settings and restores defaults for blank values.
func (configuration Configuration) Sanitize() Configuration {
	sanitized := configuration

	sanitized.Modifiers = strings.TrimSpace(configuration.Modifiers)
	if len(sanitized.Modifiers) == 0 {
		sanitized.Modifiers = defaultModifiersConstant
	}

	sanitized.Key = strings.TrimSpace(configuration.Key)
	if len(sanitized.Key) == 0 {
		sanitized.Key = defaultKeyConstant
	}

	return sanitized
}
