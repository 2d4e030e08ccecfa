package execshell

import (
	"fmt"
	"strings"
)

type messageStage int

const (
	messageStageStart messageStage = iota
	messageStageSuccess
	messageStageFailure
	messageStageTimeout
	messageStageExecutionFailure
)

const (
	genericStartTemplateConstant            = "Running %s"
	genericSuccessTemplateConstant          = "Completed %s"
	genericFailureTemplateConstant          = "%s failed with exit code %d%s"
	genericTimeoutTemplateConstant          = "%s timed out after %s"
	genericExecutionFailureTemplateConstant = "%s failed: %s"
	commandLabelTemplateConstant            = "%s%s"
	workingDirectorySuffixTemplateConstant  = " (in %s)"
	commandArgumentsJoinSeparatorConstant   = " "
	standardErrorSuffixTemplateConstant     = ": %s"
	unknownFailureMessageConstant           = "unknown error"
	emptyStringConstant                     = ""
	defaultWorkingDirectoryLabelConstant    = "current directory"
	fallbackUnknownValueLabelConstant       = "unknown"
)

const (
	shellCommandFlagConstant        = "-c"
	shellSourcePrefixConstant       = "source "
	shellStatementSeparatorConstant = "; "
	osascriptExpressionFlagConstant = "-e"
	osascriptTitleMarkerConstant    = `with title "`
	notificationQuoteConstant       = `"`
)

const (
	shellStartTemplateConstant                        = "Running shell command %q in %s"
	shellSuccessTemplateConstant                      = "Shell command %q completed"
	shellFailureTemplateConstant                      = "Shell command %q failed with exit code %d%s"
	shellTimeoutTemplateConstant                      = "Shell command %q timed out after %s"
	shellExecutionFailureTemplateConstant             = "Unable to run shell command %q: %s"
	notificationStartTemplateConstant                 = "Sending notification %q"
	notificationSuccessTemplateConstant               = "Sent notification %q"
	notificationFailureTemplateConstant               = "Failed to send notification %q (exit code %d%s)"
	notificationTimeoutTemplateConstant               = "Sending notification %q timed out after %s"
	notificationExecutionFailureTemplateConstant      = "Unable to send notification %q: %s"
	applicationLaunchStartTemplateConstant            = "Launching application %s"
	applicationLaunchSuccessTemplateConstant          = "Launched application %s"
	applicationLaunchFailureTemplateConstant          = "Failed to launch application %s (exit code %d%s)"
	applicationLaunchTimeoutTemplateConstant          = "Launching application %s timed out after %s"
	applicationLaunchExecutionFailureTemplateConstant = "Unable to launch application %s: %s"
)

// CommandMessageFormatter builds human-readable messages for command lifecycle events.
type CommandMessageFormatter struct{}

// BuildStartedMessage formats the message describing a command about to run.
func (formatter CommandMessageFormatter) BuildStartedMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageStart)
}

// BuildSuccessMessage formats the message describing a completed command with a zero exit code.
func (formatter CommandMessageFormatter) BuildSuccessMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageSuccess)
}

// BuildFailureMessage formats the message describing a command that returned a non-zero exit code.
func (formatter CommandMessageFormatter) BuildFailureMessage(command ShellCommand, result ExecutionResult) string {
	return formatter.buildMessage(command, result, nil, messageStageFailure)
}

// BuildTimeoutMessage formats the message describing a command stopped at its deadline.
func (formatter CommandMessageFormatter) BuildTimeoutMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageTimeout)
}

// BuildExecutionFailureMessage formats the message describing an unexpected execution failure.
func (formatter CommandMessageFormatter) BuildExecutionFailureMessage(command ShellCommand, failure error) string {
	return formatter.buildMessage(command, ExecutionResult{}, failure, messageStageExecutionFailure)
}

func (formatter CommandMessageFormatter) buildMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	switch command.Name {
	case CommandNotifySend:
		return formatter.describeNotificationMessage(command, result, failure, stage)
	case CommandOsascript:
		return formatter.describeNotificationMessage(command, result, failure, stage)
	case CommandGtkLaunch:
		return formatter.describeApplicationLaunchMessage(command, result, failure, stage)
	default:
		script := formatter.extractShellScript(command.Details.Arguments)
		if len(script) > 0 {
			return formatter.describeShellMessage(command, result, failure, stage)
		}
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeShellMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	script := formatter.extractShellScript(command.Details.Arguments)
	displayScript := formatter.trimSourcePrefix(script)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(shellStartTemplateConstant, displayScript, formatter.describeWorkingDirectory(command))
	case messageStageSuccess:
		return fmt.Sprintf(shellSuccessTemplateConstant, displayScript)
	case messageStageFailure:
		return fmt.Sprintf(shellFailureTemplateConstant, displayScript, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageTimeout:
		return fmt.Sprintf(shellTimeoutTemplateConstant, displayScript, command.Details.Timeout)
	case messageStageExecutionFailure:
		return fmt.Sprintf(shellExecutionFailureTemplateConstant, displayScript, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeNotificationMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	notificationTitle := formatter.ensureValue(formatter.extractNotificationTitle(command))
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(notificationStartTemplateConstant, notificationTitle)
	case messageStageSuccess:
		return fmt.Sprintf(notificationSuccessTemplateConstant, notificationTitle)
	case messageStageFailure:
		return fmt.Sprintf(notificationFailureTemplateConstant, notificationTitle, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageTimeout:
		return fmt.Sprintf(notificationTimeoutTemplateConstant, notificationTitle, command.Details.Timeout)
	case messageStageExecutionFailure:
		return fmt.Sprintf(notificationExecutionFailureTemplateConstant, notificationTitle, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeApplicationLaunchMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	applicationLabel := formatter.ensureValue(formatter.argumentAtIndex(command.Details.Arguments, 0))
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(applicationLaunchStartTemplateConstant, applicationLabel)
	case messageStageSuccess:
		return fmt.Sprintf(applicationLaunchSuccessTemplateConstant, applicationLabel)
	case messageStageFailure:
		return fmt.Sprintf(applicationLaunchFailureTemplateConstant, applicationLabel, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageTimeout:
		return fmt.Sprintf(applicationLaunchTimeoutTemplateConstant, applicationLabel, command.Details.Timeout)
	case messageStageExecutionFailure:
		return fmt.Sprintf(applicationLaunchExecutionFailureTemplateConstant, applicationLabel, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) buildGenericMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	commandLabel := formatter.formatCommandLabel(command)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(genericStartTemplateConstant, commandLabel)
	case messageStageSuccess:
		return fmt.Sprintf(genericSuccessTemplateConstant, commandLabel)
	case messageStageFailure:
		return fmt.Sprintf(genericFailureTemplateConstant, commandLabel, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageTimeout:
		return fmt.Sprintf(genericTimeoutTemplateConstant, commandLabel, command.Details.Timeout)
	case messageStageExecutionFailure:
		return fmt.Sprintf(genericExecutionFailureTemplateConstant, commandLabel, formatter.describeFailure(failure))
	default:
		return emptyStringConstant
	}
}

func (formatter CommandMessageFormatter) formatCommandLabel(command ShellCommand) string {
	commandLabel := string(command.Name)
	if len(command.Details.Arguments) > 0 {
		commandLabel = fmt.Sprintf("%s %s", commandLabel, strings.Join(command.Details.Arguments, commandArgumentsJoinSeparatorConstant))
	}
	workingDirectorySuffix := formatter.formatWorkingDirectorySuffix(command)
	return fmt.Sprintf(commandLabelTemplateConstant, commandLabel, workingDirectorySuffix)
}

func (formatter CommandMessageFormatter) formatWorkingDirectorySuffix(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(workingDirectorySuffixTemplateConstant, trimmedWorkingDirectory)
}

func (formatter CommandMessageFormatter) formatStandardErrorSuffix(standardError string) string {
	trimmedStandardError := strings.TrimSpace(standardError)
	if len(trimmedStandardError) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(standardErrorSuffixTemplateConstant, trimmedStandardError)
}

func (formatter CommandMessageFormatter) describeWorkingDirectory(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return defaultWorkingDirectoryLabelConstant
	}
	return trimmedWorkingDirectory
}

func (formatter CommandMessageFormatter) describeFailure(failure error) string {
	if failure == nil {
		return unknownFailureMessageConstant
	}
	return failure.Error()
}

func (formatter CommandMessageFormatter) extractShellScript(arguments []string) string {
	return findFlagValue(arguments, shellCommandFlagConstant)
}

// trimSourcePrefix hides the rc-sourcing preamble so messages show the command
// the user actually typed.
func (formatter CommandMessageFormatter) trimSourcePrefix(script string) string {
	trimmedScript := strings.TrimSpace(script)
	if !strings.HasPrefix(trimmedScript, shellSourcePrefixConstant) {
		return trimmedScript
	}
	separatorIndex := strings.Index(trimmedScript, shellStatementSeparatorConstant)
	if separatorIndex < 0 {
		return trimmedScript
	}
	return strings.TrimSpace(trimmedScript[separatorIndex+len(shellStatementSeparatorConstant):])
}

func (formatter CommandMessageFormatter) extractNotificationTitle(command ShellCommand) string {
	if command.Name == CommandOsascript {
		return formatter.extractOsascriptTitle(findFlagValue(command.Details.Arguments, osascriptExpressionFlagConstant))
	}
	return formatter.extractFirstNonFlagArgument(command.Details.Arguments)
}

func (formatter CommandMessageFormatter) extractOsascriptTitle(script string) string {
	markerIndex := strings.Index(script, osascriptTitleMarkerConstant)
	if markerIndex < 0 {
		return emptyStringConstant
	}
	remainder := script[markerIndex+len(osascriptTitleMarkerConstant):]
	closingIndex := strings.Index(remainder, notificationQuoteConstant)
	if closingIndex < 0 {
		return remainder
	}
	return remainder[:closingIndex]
}

func (formatter CommandMessageFormatter) argumentAtIndex(arguments []string, index int) string {
	if index >= 0 && index < len(arguments) {
		return arguments[index]
	}
	return emptyStringConstant
}

func (formatter CommandMessageFormatter) ensureValue(value string) string {
	trimmed := strings.TrimSpace(value)
	if len(trimmed) == 0 {
		return fallbackUnknownValueLabelConstant
	}
	return trimmed
}

func (formatter CommandMessageFormatter) extractFirstNonFlagArgument(arguments []string) string {
	for _, argument := range arguments {
		trimmed := strings.TrimSpace(argument)
		if len(trimmed) == 0 {
			continue
		}
		if strings.HasPrefix(trimmed, "-") {
			continue
		}
		return trimmed
	}
	return emptyStringConstant
}

func findFlagValue(arguments []string, flag string) string {
	for index := 0; index < len(arguments); index++ {
		if strings.TrimSpace(arguments[index]) == flag && index+1 < len(arguments) {
			return strings.TrimSpace(arguments[index+1])
		}
	}
	return emptyStringConstant
}
