package execshell

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	loggerNotConfiguredMessageConstant        = "logger not configured"
	commandRunnerNotConfiguredMessageConstant = "command runner not configured"
	shellPathNotConfiguredMessageConstant     = "shell path not configured"
	detachedLaunchUnsupportedMessageConstant  = "command runner does not support detached launches"
	commandFailedTemplateConstant             = "%s failed with exit code %d%s"
	commandTimedOutTemplateConstant           = "%s timed out after %s"
	commandExecutionFailedTemplateConstant    = "%s execution failed: %v"
	standardErrorDetailTemplateConstant       = ": %s"
)

// ErrLoggerNotConfigured indicates the executor was constructed without a logger.
var ErrLoggerNotConfigured = errors.New(loggerNotConfiguredMessageConstant)

// ErrCommandRunnerNotConfigured indicates the executor was constructed without a command runner.
var ErrCommandRunnerNotConfigured = errors.New(commandRunnerNotConfiguredMessageConstant)

// ErrShellPathNotConfigured indicates an interpreter invocation was requested without a shell binary.
var ErrShellPathNotConfigured = errors.New(shellPathNotConfiguredMessageConstant)

// ErrDetachedLaunchUnsupported indicates the configured runner cannot start processes without waiting.
var ErrDetachedLaunchUnsupported = errors.New(detachedLaunchUnsupportedMessageConstant)

// CommandFailedError describes a command that ran to completion with a non-zero exit code.
type CommandFailedError struct {
	CommandName CommandName
	Result      ExecutionResult
}

// Error renders the failure including any captured standard error output.
func (failure CommandFailedError) Error() string {
	standardErrorDetail := ""
	if trimmedStandardError := strings.TrimSpace(failure.Result.StandardError); len(trimmedStandardError) > 0 {
		standardErrorDetail = fmt.Sprintf(standardErrorDetailTemplateConstant, trimmedStandardError)
	}
	return fmt.Sprintf(commandFailedTemplateConstant, failure.CommandName, failure.Result.ExitCode, standardErrorDetail)
}

// CommandTimedOutError describes a command whose process group was terminated after exceeding its deadline.
type CommandTimedOutError struct {
	CommandName CommandName
	Timeout     time.Duration
	Result      ExecutionResult
}

// Error renders the timeout failure.
func (failure CommandTimedOutError) Error() string {
	return fmt.Sprintf(commandTimedOutTemplateConstant, failure.CommandName, failure.Timeout)
}

// CommandExecutionError describes a command that could not be started or monitored.
type CommandExecutionError struct {
	CommandName CommandName
	Cause       error
}

// Error renders the execution failure.
func (failure CommandExecutionError) Error() string {
	return fmt.Sprintf(commandExecutionFailedTemplateConstant, failure.CommandName, failure.Cause)
}

// Unwrap exposes the underlying cause for errors.Is and errors.As inspection.
func (failure CommandExecutionError) Unwrap() error {
	return failure.Cause
}
