package execshell

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

const (
	commandStartingLogMessageConstant         = "shell command starting"
	commandCompletedLogMessageConstant        = "shell command completed"
	commandFailedLogMessageConstant           = "shell command failed"
	commandTimedOutLogMessageConstant         = "shell command timed out"
	commandExecutionFailedLogMessageConstant  = "shell command execution failed"
	detachedCommandLaunchedLogMessageConstant = "detached command launched"
	logFieldCommandNameConstant               = "command_name"
	logFieldArgumentsConstant                 = "arguments"
	logFieldWorkingDirectoryConstant          = "working_directory"
	logFieldTimeoutConstant                   = "timeout"
	logFieldExitCodeConstant                  = "exit_code"
	logFieldProcessIdentifierConstant         = "process_id"
)

// CommandRunner abstracts process execution for the executor.
type CommandRunner interface {
	Run(executionContext context.Context, command ShellCommand) (ExecutionResult, error)
}

// ProcessStarter launches a command without waiting for it to finish.
type ProcessStarter interface {
	Start(executionContext context.Context, command ShellCommand) (int, error)
}

// ShellExecutor coordinates command execution with structured logging and
// lifecycle events. Each execution emits exactly one start event and exactly
// one completion or failure event.
type ShellExecutor struct {
	logger               *zap.Logger
	commandRunner        CommandRunner
	messageFormatter     CommandMessageFormatter
	eventObserver        CommandEventObserver
	humanReadableLogging bool
}

// NewShellExecutor validates dependencies and constructs a ShellExecutor.
func NewShellExecutor(logger *zap.Logger, commandRunner CommandRunner, humanReadableLogging bool) (*ShellExecutor, error) {
	if logger == nil {
		return nil, ErrLoggerNotConfigured
	}
	if commandRunner == nil {
		return nil, ErrCommandRunnerNotConfigured
	}

	return &ShellExecutor{
		logger:               logger,
		commandRunner:        commandRunner,
		messageFormatter:     CommandMessageFormatter{},
		eventObserver:        noopCommandEventObserver{},
		humanReadableLogging: humanReadableLogging,
	}, nil
}

// SetEventObserver replaces the observer receiving command lifecycle events.
func (executor *ShellExecutor) SetEventObserver(observer CommandEventObserver) {
	if observer == nil {
		executor.eventObserver = noopCommandEventObserver{}
		return
	}
	executor.eventObserver = observer
}

// ExecuteShell runs the supplied details through the given shell interpreter.
func (executor *ShellExecutor) ExecuteShell(executionContext context.Context, interpreterPath string, details CommandDetails) (ExecutionResult, error) {
	trimmedInterpreterPath := strings.TrimSpace(interpreterPath)
	if len(trimmedInterpreterPath) == 0 {
		return ExecutionResult{}, ErrShellPathNotConfigured
	}
	shellCommand := ShellCommand{Name: CommandName(trimmedInterpreterPath), Details: details}
	return executor.executeCommand(executionContext, shellCommand)
}

// ExecuteNotifySend runs notify-send with the provided details.
func (executor *ShellExecutor) ExecuteNotifySend(executionContext context.Context, details CommandDetails) (ExecutionResult, error) {
	notifyCommand := ShellCommand{Name: CommandNotifySend, Details: details}
	return executor.executeCommand(executionContext, notifyCommand)
}

// ExecuteOsascript runs osascript with the provided details.
func (executor *ShellExecutor) ExecuteOsascript(executionContext context.Context, details CommandDetails) (ExecutionResult, error) {
	osascriptCommand := ShellCommand{Name: CommandOsascript, Details: details}
	return executor.executeCommand(executionContext, osascriptCommand)
}

// LaunchDetached starts the supplied command in its own session without waiting
// for completion and returns the process identifier of the new session leader.
func (executor *ShellExecutor) LaunchDetached(executionContext context.Context, command ShellCommand) (int, error) {
	processStarter, starterAvailable := executor.commandRunner.(ProcessStarter)
	if !starterAvailable {
		return 0, ErrDetachedLaunchUnsupported
	}

	executor.eventObserver.CommandStarted(command)
	executor.logCommandStart(command)

	processIdentifier, startError := processStarter.Start(executionContext, command)
	if startError != nil {
		launchFailure := CommandExecutionError{CommandName: command.Name, Cause: startError}
		executor.eventObserver.CommandExecutionFailed(command, launchFailure)
		executor.logExecutionFailure(command, launchFailure)
		return 0, launchFailure
	}

	executor.eventObserver.CommandLaunched(command, processIdentifier)
	executor.logDetachedLaunch(command, processIdentifier)
	return processIdentifier, nil
}

func (executor *ShellExecutor) executeCommand(executionContext context.Context, command ShellCommand) (ExecutionResult, error) {
	executor.eventObserver.CommandStarted(command)
	executor.logCommandStart(command)

	executionResult, runError := executor.commandRunner.Run(executionContext, command)
	if runError != nil {
		executionFailure := CommandExecutionError{CommandName: command.Name, Cause: runError}
		executor.eventObserver.CommandExecutionFailed(command, executionFailure)
		executor.logExecutionFailure(command, executionFailure)
		return ExecutionResult{}, executionFailure
	}

	executor.eventObserver.CommandCompleted(command, executionResult)

	if executionResult.TimedOut {
		executor.logTimeout(command, executionResult)
		return executionResult, CommandTimedOutError{CommandName: command.Name, Timeout: command.Details.Timeout, Result: executionResult}
	}

	if executionResult.ExitCode != 0 {
		executor.logFailure(command, executionResult)
		return executionResult, CommandFailedError{CommandName: command.Name, Result: executionResult}
	}

	executor.logSuccess(command, executionResult)
	return executionResult, nil
}

func (executor *ShellExecutor) logCommandStart(command ShellCommand) {
	if executor.humanReadableLogging {
		executor.logger.Info(executor.messageFormatter.BuildStartedMessage(command))
		return
	}
	executor.logger.Info(
		commandStartingLogMessageConstant,
		zap.String(logFieldCommandNameConstant, string(command.Name)),
		zap.Strings(logFieldArgumentsConstant, command.Details.Arguments),
		zap.String(logFieldWorkingDirectoryConstant, command.Details.WorkingDirectory),
		zap.Duration(logFieldTimeoutConstant, command.Details.Timeout),
	)
}

func (executor *ShellExecutor) logSuccess(command ShellCommand, result ExecutionResult) {
	if executor.humanReadableLogging {
		executor.logger.Info(executor.messageFormatter.BuildSuccessMessage(command))
		return
	}
	executor.logger.Info(
		commandCompletedLogMessageConstant,
		zap.String(logFieldCommandNameConstant, string(command.Name)),
		zap.Int(logFieldExitCodeConstant, result.ExitCode),
	)
}

func (executor *ShellExecutor) logFailure(command ShellCommand, result ExecutionResult) {
	if executor.humanReadableLogging {
		executor.logger.Warn(executor.messageFormatter.BuildFailureMessage(command, result))
		return
	}
	executor.logger.Warn(
		commandFailedLogMessageConstant,
		zap.String(logFieldCommandNameConstant, string(command.Name)),
		zap.Int(logFieldExitCodeConstant, result.ExitCode),
	)
}

func (executor *ShellExecutor) logTimeout(command ShellCommand, result ExecutionResult) {
	if executor.humanReadableLogging {
		executor.logger.Warn(executor.messageFormatter.BuildTimeoutMessage(command))
		return
	}
	executor.logger.Warn(
		commandTimedOutLogMessageConstant,
		zap.String(logFieldCommandNameConstant, string(command.Name)),
		zap.Duration(logFieldTimeoutConstant, command.Details.Timeout),
	)
}

func (executor *ShellExecutor) logExecutionFailure(command ShellCommand, failure error) {
	if executor.humanReadableLogging {
		executor.logger.Error(executor.messageFormatter.BuildExecutionFailureMessage(command, failure))
		return
	}
	executor.logger.Error(
		commandExecutionFailedLogMessageConstant,
		zap.String(logFieldCommandNameConstant, string(command.Name)),
		zap.Error(failure),
	)
}

func (executor *ShellExecutor) logDetachedLaunch(command ShellCommand, processIdentifier int) {
	if executor.humanReadableLogging {
		executor.logger.Info(executor.messageFormatter.BuildSuccessMessage(command))
		return
	}
	executor.logger.Info(
		detachedCommandLaunchedLogMessageConstant,
		zap.String(logFieldCommandNameConstant, string(command.Name)),
		zap.Int(logFieldProcessIdentifierConstant, processIdentifier),
	)
}
