package launcher

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/okanin/summon/internal/apps"
	"github.com/okanin/summon/internal/execshell"
	"github.com/okanin/summon/internal/history"
	"github.com/okanin/summon/internal/notify"
	"github.com/okanin/summon/internal/utils"
	flagutils "github.com/okanin/summon/internal/utils/flags"
)

const (
	commandUseConstant              = "run <command>"
	commandShortDescriptionConstant = "Run one submission through the launcher pipeline"
	commandLongDescriptionConstant  = "run treats its arguments as popup input: text matching a known application focuses it, anything else executes in the user's shell with history and notifications."

	argumentSeparatorConstant           = " "
	focusedApplicationTemplateConstant  = "Focused %s\n"
	launchedApplicationTemplateConstant = "Launched %s\n"
	nothingSubmittedMessageConstant     = "Nothing to run\n"
)

// LoggerProvider supplies a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the run command and wires the full submission
// pipeline behind it.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	ConfigurationProvider        func() Configuration
	HistoryConfigurationProvider func() history.Configuration
	AppsConfigurationProvider    func() apps.Configuration
	HumanReadableLoggingProvider func() bool
	ProcessLister                apps.ProcessLister
	launchFlagValues             *flagutils.LaunchFlagValues
}

// Build constructs the run command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		Args:  cobra.MinimumNArgs(1),
		RunE:  builder.run,
	}

	flagDefaults := DefaultConfiguration().Sanitize()
	builder.launchFlagValues = flagutils.BindLaunchFlags(command, flagutils.LaunchFlagValues{
		Shell:          flagDefaults.Shell,
		TimeoutSeconds: flagDefaults.CommandTimeoutSeconds,
		Notify:         flagDefaults.NotificationsEnabled,
	}, flagutils.LaunchFlagDefinitions{
		Shell:   flagutils.LaunchFlagDefinition{Name: flagutils.ShellFlagName, Usage: flagutils.ShellFlagUsage, Enabled: true},
		Timeout: flagutils.LaunchFlagDefinition{Name: flagutils.CommandTimeoutFlagName, Usage: flagutils.CommandTimeoutFlagUsage, Enabled: true},
		Notify:  flagutils.LaunchFlagDefinition{Name: flagutils.NotifyFlagName, Usage: flagutils.NotifyFlagUsage, Enabled: true},
	})

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	logger := builder.resolveLogger()
	configuration := builder.applyFlagOverrides(command, builder.resolveConfiguration())

	orchestrator, wiringError := builder.buildService(logger, configuration)
	if wiringError != nil {
		return wiringError
	}

	submissionOutcome, submissionError := orchestrator.Submit(command.Context(), strings.Join(arguments, argumentSeparatorConstant))
	if submissionError != nil {
		return submissionError
	}

	return builder.reportOutcome(command, submissionOutcome)
}

func (builder *CommandBuilder) buildService(logger *zap.Logger, configuration Configuration) (*Service, error) {
	commandRunner := execshell.NewOSCommandRunner()
	shellExecutor, executorError := execshell.NewShellExecutor(logger, commandRunner, builder.resolveHumanReadableLogging())
	if executorError != nil {
		return nil, executorError
	}

	historyConfiguration := builder.resolveHistoryConfiguration()
	commandHistory, commandHistoryError := history.NewStore[history.CommandRecord](logger, historyConfiguration.CommandHistoryFile, historyConfiguration.MaximumCommandEntries)
	if commandHistoryError != nil {
		return nil, commandHistoryError
	}
	appHistory, appHistoryError := history.NewStore[history.AppUsageRecord](logger, historyConfiguration.AppHistoryFile, historyConfiguration.MaximumAppEntries)
	if appHistoryError != nil {
		return nil, appHistoryError
	}

	applicationRegistry, registryError := apps.NewRegistry(logger, builder.resolveAppsConfiguration(), builder.ProcessLister)
	if registryError != nil {
		return nil, registryError
	}
	applicationActivator, activatorError := apps.NewActivator(shellExecutor, configuration.Shell)
	if activatorError != nil {
		return nil, activatorError
	}
	notificationDispatcher, dispatcherError := notify.NewDispatcher(logger, shellExecutor)
	if dispatcherError != nil {
		return nil, dispatcherError
	}

	return NewService(ServiceDependencies{
		Logger:         logger,
		Executor:       shellExecutor,
		Registry:       applicationRegistry,
		Activator:      applicationActivator,
		CommandHistory: commandHistory,
		AppHistory:     appHistory,
		Notifier:       notificationDispatcher,
		Configuration:  configuration,
	})
}

func (builder *CommandBuilder) reportOutcome(command *cobra.Command, submissionOutcome SubmissionOutcome) error {
	outputWriter := utils.NewFlushingWriter(command.OutOrStdout())

	switch submissionOutcome.Kind {
	case SubmissionKindApp:
		if submissionOutcome.Failure != nil {
			return submissionOutcome.Failure
		}
		applicationTemplate := launchedApplicationTemplateConstant
		if submissionOutcome.Application.IsRunning {
			applicationTemplate = focusedApplicationTemplateConstant
		}
		fmt.Fprintf(outputWriter, applicationTemplate, submissionOutcome.Application.DisplayName)
		return nil
	case SubmissionKindCommand:
		if len(submissionOutcome.ExecutionResult.StandardOutput) > 0 {
			fmt.Fprint(outputWriter, submissionOutcome.ExecutionResult.StandardOutput)
		}
		if submissionOutcome.Failure != nil {
			if len(submissionOutcome.ExecutionResult.StandardError) > 0 {
				errorWriter := utils.NewFlushingWriter(command.ErrOrStderr())
				fmt.Fprint(errorWriter, submissionOutcome.ExecutionResult.StandardError)
			}
			return submissionOutcome.Failure
		}
		return nil
	default:
		fmt.Fprint(outputWriter, nothingSubmittedMessageConstant)
		return nil
	}
}

func (builder *CommandBuilder) applyFlagOverrides(command *cobra.Command, configuration Configuration) Configuration {
	if builder.launchFlagValues == nil {
		return configuration
	}

	if command.Flags().Changed(flagutils.ShellFlagName) {
		configuration.Shell = builder.launchFlagValues.Shell
	}
	if command.Flags().Changed(flagutils.CommandTimeoutFlagName) {
		configuration.CommandTimeoutSeconds = builder.launchFlagValues.TimeoutSeconds
	}
	if command.Flags().Changed(flagutils.NotifyFlagName) {
		configuration.NotificationsEnabled = builder.launchFlagValues.Notify
	}

	return configuration
}

func (builder *CommandBuilder) resolveConfiguration() Configuration {
	if builder.ConfigurationProvider == nil {
		return DefaultConfiguration().Sanitize()
	}
	return builder.ConfigurationProvider().Sanitize()
}

func (builder *CommandBuilder) resolveHistoryConfiguration() history.Configuration {
	if builder.HistoryConfigurationProvider == nil {
		return history.DefaultConfiguration().Sanitize()
	}
	return builder.HistoryConfigurationProvider().Sanitize()
}

func (builder *CommandBuilder) resolveAppsConfiguration() apps.Configuration {
	if builder.AppsConfigurationProvider == nil {
		return apps.DefaultConfiguration().Sanitize()
	}
	return builder.AppsConfigurationProvider().Sanitize()
}

func (builder *CommandBuilder) resolveHumanReadableLogging() bool {
	if builder.HumanReadableLoggingProvider == nil {
		return false
	}
	return builder.HumanReadableLoggingProvider()
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
