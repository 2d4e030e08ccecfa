package history

import (
	"strings"

	pathutils "github.com/okanin/summon/internal/utils/path"
)

var historyConfigurationHomeExpander = pathutils.NewHomeExpander()

const (
	configurationCommandFileKeyConstant = "command_history_file"
	configurationAppFileKeyConstant     = "app_history_file"
	configurationMaxCommandsKeyConstant = "max_commands"
	configurationMaxAppsKeyConstant     = "max_apps"

	defaultCommandHistoryFileConstant    = "~/.summon_history.json"
	defaultAppHistoryFileConstant        = "~/.summon_app_history.json"
	defaultMaximumCommandEntriesConstant = 100
	defaultMaximumAppEntriesConstant     = 50
)

// Configuration captures persistence settings for both history stores.
type Configuration struct {
	CommandHistoryFile    string `mapstructure:"command_history_file"`
	AppHistoryFile        string `mapstructure:"app_history_file"`
	MaximumCommandEntries int    `mapstructure:"max_commands"`
	MaximumAppEntries     int    `mapstructure:"max_apps"`
}

// DefaultConfiguration provides baseline history settings.
func DefaultConfiguration() Configuration {
	return Configuration{
		CommandHistoryFile:    defaultCommandHistoryFileConstant,
		AppHistoryFile:        defaultAppHistoryFileConstant,
		MaximumCommandEntries: defaultMaximumCommandEntriesConstant,
		MaximumAppEntries:     defaultMaximumAppEntriesConstant,
	}
}

// DefaultConfigurationValues produces Viper defaults for history settings.
func DefaultConfigurationValues(rootKey string) map[string]any {
	defaults := DefaultConfiguration()
	return map[string]any{
		rootKey + "." + configurationCommandFileKeyConstant: defaults.CommandHistoryFile,
		rootKey + "." + configurationAppFileKeyConstant:     defaults.AppHistoryFile,
		rootKey + "." + configurationMaxCommandsKeyConstant: defaults.MaximumCommandEntries,
		rootKey + "." + configurationMaxAppsKeyConstant:     defaults.MaximumAppEntries,
	}
}

// Sanitize expands home-relative paths and clamps invalid values to defaults.
func (configuration Configuration) Sanitize() Configuration {
	sanitized := configuration

	sanitized.CommandHistoryFile = strings.TrimSpace(configuration.CommandHistoryFile)
	if len(sanitized.CommandHistoryFile) == 0 {
		sanitized.CommandHistoryFile = defaultCommandHistoryFileConstant
	}
	sanitized.CommandHistoryFile = historyConfigurationHomeExpander.Expand(sanitized.CommandHistoryFile)

	sanitized.AppHistoryFile = strings.TrimSpace(configuration.AppHistoryFile)
	if len(sanitized.AppHistoryFile) == 0 {
		sanitized.AppHistoryFile = defaultAppHistoryFileConstant
	}
	sanitized.AppHistoryFile = historyConfigurationHomeExpander.Expand(sanitized.AppHistoryFile)

	if sanitized.MaximumCommandEntries <= 0 {
		sanitized.MaximumCommandEntries = defaultMaximumCommandEntriesConstant
	}
	if sanitized.MaximumAppEntries <= 0 {
		sanitized.MaximumAppEntries = defaultMaximumAppEntriesConstant
	}

	return sanitized
}
