package launcher

import (
	"os"
	"strings"

	pathutils "github.com/okanin/summon/internal/utils/path"
)

var launcherConfigurationHomeExpander = pathutils.NewHomeExpander()

const (
	configurationShellKeyConstant                 = "shell"
	configurationWorkingDirectoryKeyConstant      = "working_directory"
	configurationCommandTimeoutSecondsKeyConstant = "command_timeout_seconds"
	configurationNotificationsEnabledKeyConstant  = "notifications_enabled"

	shellEnvironmentVariableConstant     = "SHELL"
	fallbackShellPathConstant            = "/bin/sh"
	defaultWorkingDirectoryConstant      = "~"
	defaultCommandTimeoutSecondsConstant = 10
	defaultNotificationsEnabledConstant  = true
)

// Configuration captures how submitted commands are run.
type Configuration struct {
	Shell                 string `mapstructure:"shell"`
	WorkingDirectory      string `mapstructure:"working_directory"`
	CommandTimeoutSeconds int    `mapstructure:"command_timeout_seconds"`
	NotificationsEnabled  bool   `mapstructure:"notifications_enabled"`
}

// DefaultConfiguration provides baseline execution settings. The shell is
// left empty so sanitization can resolve it from the environment.
func DefaultConfiguration() Configuration {
	return Configuration{
		WorkingDirectory:      defaultWorkingDirectoryConstant,
		CommandTimeoutSeconds: defaultCommandTimeoutSecondsConstant,
		NotificationsEnabled:  defaultNotificationsEnabledConstant,
	}
}

// DefaultConfigurationValues produces Viper defaults for execution settings.
func DefaultConfigurationValues(rootKey string) map[string]any {
	defaults := DefaultConfiguration()
	return map[string]any{
		rootKey + "." + configurationShellKeyConstant:                 defaults.Shell,
		rootKey + "." + configurationWorkingDirectoryKeyConstant:      defaults.WorkingDirectory,
		rootKey + "." + configurationCommandTimeoutSecondsKeyConstant: defaults.CommandTimeoutSeconds,
		rootKey + "." + configurationNotificationsEnabledKeyConstant:  defaults.NotificationsEnabled,
	}
}

// Sanitize resolves the shell from the environment when unset, expands the
// working directory, and clamps a non-positive timeout to the default.
func (configuration Configuration) Sanitize() Configuration {
	sanitized := configuration

	sanitized.Shell = strings.TrimSpace(configuration.Shell)
	if len(sanitized.Shell) == 0 {
		sanitized.Shell = strings.TrimSpace(os.Getenv(shellEnvironmentVariableConstant))
	}
	if len(sanitized.Shell) == 0 {
		sanitized.Shell = fallbackShellPathConstant
	}

	sanitized.WorkingDirectory = strings.TrimSpace(configuration.WorkingDirectory)
	if len(sanitized.WorkingDirectory) == 0 {
		sanitized.WorkingDirectory = defaultWorkingDirectoryConstant
	}
	sanitized.WorkingDirectory = launcherConfigurationHomeExpander.Expand(sanitized.WorkingDirectory)

	if sanitized.CommandTimeoutSeconds <= 0 {
		sanitized.CommandTimeoutSeconds = defaultCommandTimeoutSecondsConstant
	}

	return sanitized
}
