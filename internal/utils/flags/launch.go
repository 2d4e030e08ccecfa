// Package flags provides helpers for binding standardized execution flags to Cobra commands.
package flags

import "github.com/spf13/cobra"

const (
	// HistoryLimitFlagName exposes the shared history limit flag name.
	HistoryLimitFlagName = "limit"
	// HistoryLimitFlagUsage describes the shared history limit flag purpose.
	HistoryLimitFlagUsage = "Maximum number of entries to display"
	// CommandTimeoutFlagName exposes the shared command timeout flag name.
	CommandTimeoutFlagName = "timeout"
	// CommandTimeoutFlagUsage describes the shared command timeout flag purpose.
	CommandTimeoutFlagUsage = "Command timeout in seconds"
	// ShellFlagName exposes the shared shell interpreter flag name.
	ShellFlagName = "shell"
	// ShellFlagUsage describes the shared shell interpreter flag purpose.
	ShellFlagUsage = "Shell interpreter used to run commands"
	// NotifyFlagName exposes the shared notification toggle flag name.
	NotifyFlagName = "notify"
	// NotifyFlagUsage describes the shared notification toggle flag purpose.
	NotifyFlagUsage = "Send a desktop notification when the command finishes"
)

// LaunchFlagDefinition captures configuration for a single launch flag.
type LaunchFlagDefinition struct {
	Name    string
	Usage   string
	Enabled bool
}

// LaunchFlagDefinitions groups launch flag definitions.
type LaunchFlagDefinitions struct {
	Shell   LaunchFlagDefinition
	Timeout LaunchFlagDefinition
	Notify  LaunchFlagDefinition
}

// LaunchFlagValues stores launch flag values.
type LaunchFlagValues struct {
	Shell          string
	TimeoutSeconds int
	Notify         bool
}

// BindLaunchFlags attaches launcher execution flags to the provided command.
func BindLaunchFlags(command *cobra.Command, defaults LaunchFlagValues, definitions LaunchFlagDefinitions) *LaunchFlagValues {
	values := defaults
	if command == nil {
		return &values
	}

	flagSet := command.Flags()
	if definitions.Shell.Enabled && len(definitions.Shell.Name) > 0 {
		flagSet.StringVar(&values.Shell, definitions.Shell.Name, defaults.Shell, definitions.Shell.Usage)
	}
	if definitions.Timeout.Enabled && len(definitions.Timeout.Name) > 0 {
		flagSet.IntVar(&values.TimeoutSeconds, definitions.Timeout.Name, defaults.TimeoutSeconds, definitions.Timeout.Usage)
	}
	if definitions.Notify.Enabled && len(definitions.Notify.Name) > 0 {
		AddToggleFlag(flagSet, &values.Notify, definitions.Notify.Name, "", defaults.Notify, definitions.Notify.Usage)
	}

	return &values
}

// HistoryLimitFlagDefinition captures configuration for the history limit flag.
type HistoryLimitFlagDefinition struct {
	Name    string
	Usage   string
	Enabled bool
}

// HistoryLimitFlagValues stores history limit flag values.
type HistoryLimitFlagValues struct {
	Limit int
}

// BindHistoryLimitFlag attaches the shared history limit flag to the provided command.
func BindHistoryLimitFlag(command *cobra.Command, defaults HistoryLimitFlagValues, definition HistoryLimitFlagDefinition) *HistoryLimitFlagValues {
	values := defaults
	if command == nil {
		return &values
	}
	if !definition.Enabled {
		return &values
	}

	flagName := definition.Name
	if len(flagName) == 0 {
		flagName = HistoryLimitFlagName
	}
	flagUsage := definition.Usage
	if len(flagUsage) == 0 {
		flagUsage = HistoryLimitFlagUsage
	}

	if command.Flags().Lookup(flagName) == nil {
		command.Flags().IntVar(&values.Limit, flagName, defaults.Limit, flagUsage)
	}

	return &values
}
