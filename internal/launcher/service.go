package launcher

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/okanin/summon/internal/apps"
	"github.com/okanin/summon/internal/execshell"
	"github.com/okanin/summon/internal/history"
	"github.com/okanin/summon/internal/notify"
)

const (
	loggerNotConfiguredMessageConstant          = "logger not configured"
	commandExecutorNotConfiguredMessageConstant = "command executor not configured"
	commandHistoryNotConfiguredMessageConstant  = "command history store not configured"
	appHistoryNotConfiguredMessageConstant      = "app history store not configured"
	submissionInFlightMessageConstant           = "submission already in flight"

	commandSubmissionLogMessageConstant           = "command submission"
	applicationSubmissionLogMessageConstant       = "application submission"
	applicationActivationFailedLogMessageConstant = "application activation failed"
	logFieldSubmissionIdentifierConstant          = "submission_id"
	logFieldApplicationIdentifierConstant         = "application_id"
	logFieldCommandTextConstant                   = "command_text"
)

// Orchestrator construction errors.
var (
	ErrLoggerNotConfigured          = errors.New(loggerNotConfiguredMessageConstant)
	ErrCommandExecutorNotConfigured = errors.New(commandExecutorNotConfiguredMessageConstant)
	ErrCommandHistoryNotConfigured  = errors.New(commandHistoryNotConfiguredMessageConstant)
	ErrAppHistoryNotConfigured      = errors.New(appHistoryNotConfiguredMessageConstant)
)

// ErrSubmissionInFlight indicates a submission arrived while another was still running.
var ErrSubmissionInFlight = errors.New(submissionInFlightMessageConstant)

// CommandExecutor runs submitted text through the user's shell.
type CommandExecutor interface {
	ExecuteShell(executionContext context.Context, interpreterPath string, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// ApplicationLister reports the known applications ordered by usage recency.
type ApplicationLister interface {
	List(executionContext context.Context, recentIdentifiers []string) []apps.Application
}

// ApplicationActivator brings an application to the foreground.
type ApplicationActivator interface {
	ActivateOrLaunch(executionContext context.Context, application apps.Application) (int, error)
}

// SubmissionKind identifies how the launcher resolved a submission.
type SubmissionKind string

const (
	// SubmissionKindNone marks blank input that was ignored.
	SubmissionKindNone SubmissionKind = "none"
	// SubmissionKindApp marks input resolved to an application.
	SubmissionKindApp SubmissionKind = "app"
	// SubmissionKindCommand marks input executed as a shell command.
	SubmissionKindCommand SubmissionKind = "command"
)

// SubmissionOutcome reports what a single submission did. Failure carries the
// activation, spawn, timeout, or non-zero-exit error; it is informational and
// never aborts the pipeline.
type SubmissionOutcome struct {
	SubmissionIdentifier string
	Kind                 SubmissionKind
	Application          apps.Application
	ExecutionResult      execshell.ExecutionResult
	Failure              error
}

// ServiceDependencies carries the orchestrator's collaborators. Registry and
// Activator are optional; without them every submission runs as a command.
// Notifier defaults to a no-op.
type ServiceDependencies struct {
	Logger         *zap.Logger
	Executor       CommandExecutor
	Registry       ApplicationLister
	Activator      ApplicationActivator
	CommandHistory *history.Store[history.CommandRecord]
	AppHistory     *history.Store[history.AppUsageRecord]
	Notifier       notify.Notifier
	Configuration  Configuration
}

// Service decides whether submitted text names an application or a shell
// command, drives the matching collaborator, records history, and dispatches
// the outcome notification. At most one submission runs at a time.
type Service struct {
	logger             *zap.Logger
	executor           CommandExecutor
	registry           ApplicationLister
	activator          ApplicationActivator
	commandHistory     *history.Store[history.CommandRecord]
	appHistory         *history.Store[history.AppUsageRecord]
	notifier           notify.Notifier
	configuration      Configuration
	submissionInFlight atomic.Bool
}

// NewService validates dependencies and constructs the orchestrator.
func NewService(dependencies ServiceDependencies) (*Service, error) {
	if dependencies.Logger == nil {
		return nil, ErrLoggerNotConfigured
	}
	if dependencies.Executor == nil {
		return nil, ErrCommandExecutorNotConfigured
	}
	if dependencies.CommandHistory == nil {
		return nil, ErrCommandHistoryNotConfigured
	}
	if dependencies.AppHistory == nil {
		return nil, ErrAppHistoryNotConfigured
	}

	resolvedNotifier := dependencies.Notifier
	if resolvedNotifier == nil {
		resolvedNotifier = notify.NopNotifier{}
	}

	return &Service{
		logger:         dependencies.Logger,
		executor:       dependencies.Executor,
		registry:       dependencies.Registry,
		activator:      dependencies.Activator,
		commandHistory: dependencies.CommandHistory,
		appHistory:     dependencies.AppHistory,
		notifier:       resolvedNotifier,
		configuration:  dependencies.Configuration.Sanitize(),
	}, nil
}

// Submit runs the decision rule on the supplied text. Blank input is a no-op.
// Execution and activation failures are reported through the outcome and the
// notifier, not the error return; the error is reserved for submissions that
// could not start at all.
func (service *Service) Submit(executionContext context.Context, submittedText string) (SubmissionOutcome, error) {
	trimmedText := strings.TrimSpace(submittedText)
	if len(trimmedText) == 0 {
		return SubmissionOutcome{Kind: SubmissionKindNone}, nil
	}

	if !service.submissionInFlight.CompareAndSwap(false, true) {
		return SubmissionOutcome{}, ErrSubmissionInFlight
	}
	defer service.submissionInFlight.Store(false)

	submissionIdentifier := uuid.New().String()
	submissionLogger := service.logger.With(zap.String(logFieldSubmissionIdentifierConstant, submissionIdentifier))

	if matchedApplication, matched := service.matchApplication(executionContext, trimmedText); matched {
		submissionOutcome := service.focusApplication(executionContext, submissionLogger, matchedApplication)
		submissionOutcome.SubmissionIdentifier = submissionIdentifier
		return submissionOutcome, nil
	}

	submissionOutcome := service.executeCommand(executionContext, submissionLogger, trimmedText)
	submissionOutcome.SubmissionIdentifier = submissionIdentifier
	return submissionOutcome, nil
}

func (service *Service) matchApplication(executionContext context.Context, submittedText string) (apps.Application, bool) {
	if service.registry == nil || service.activator == nil {
		return apps.Application{}, false
	}

	usageRecords := service.appHistory.Records()
	recentIdentifiers := make([]string, 0, len(usageRecords))
	for _, usageRecord := range usageRecords {
		recentIdentifiers = append(recentIdentifiers, usageRecord.Identifier)
	}
	return apps.MatchApplication(service.registry.List(executionContext, recentIdentifiers), submittedText)
}

// focusApplication activates the matched application and records the attempt
// in app history whether or not activation succeeded.
func (service *Service) focusApplication(executionContext context.Context, submissionLogger *zap.Logger, application apps.Application) SubmissionOutcome {
	submissionLogger.Info(applicationSubmissionLogMessageConstant,
		zap.String(logFieldApplicationIdentifierConstant, application.Identifier))

	_, activationError := service.activator.ActivateOrLaunch(executionContext, application)
	service.appHistory.Touch(history.NewAppUsageRecord(application.Identifier))

	if activationError != nil {
		submissionLogger.Warn(applicationActivationFailedLogMessageConstant,
			zap.String(logFieldApplicationIdentifierConstant, application.Identifier),
			zap.Error(activationError))
		if service.configuration.NotificationsEnabled {
			service.notifier.Notify(executionContext, notify.NewAppFocusFailurePayload(application.DisplayName, activationError))
		}
	}

	return SubmissionOutcome{Kind: SubmissionKindApp, Application: application, Failure: activationError}
}

// executeCommand records the text in command history before invoking the
// executor, so a slow or hanging command still shows up in recent commands
// immediately. The notification is dispatched after the executor returns.
func (service *Service) executeCommand(executionContext context.Context, submissionLogger *zap.Logger, commandText string) SubmissionOutcome {
	submissionLogger.Info(commandSubmissionLogMessageConstant,
		zap.String(logFieldCommandTextConstant, commandText))

	service.commandHistory.Touch(history.NewCommandRecord(commandText))

	commandTimeout := time.Duration(service.configuration.CommandTimeoutSeconds) * time.Second
	commandDetails := execshell.CommandDetails{
		Arguments: []string{
			shellScriptFlagConstant,
			buildShellScript(resolveResourceFilePath(service.configuration.Shell), commandText),
		},
		WorkingDirectory: service.configuration.WorkingDirectory,
		Timeout:          commandTimeout,
	}

	executionResult, executionError := service.executor.ExecuteShell(executionContext, service.configuration.Shell, commandDetails)
	service.notifyCommandOutcome(executionContext, commandText, executionResult, executionError, commandTimeout)

	return SubmissionOutcome{Kind: SubmissionKindCommand, ExecutionResult: executionResult, Failure: executionError}
}

func (service *Service) notifyCommandOutcome(executionContext context.Context, commandText string, executionResult execshell.ExecutionResult, executionError error, commandTimeout time.Duration) {
	if !service.configuration.NotificationsEnabled {
		return
	}

	var timeoutFailure execshell.CommandTimedOutError
	var commandFailure execshell.CommandFailedError
	switch {
	case executionError == nil:
		service.notifier.Notify(executionContext, notify.NewSuccessPayload(commandText, executionResult.StandardOutput))
	case errors.As(executionError, &timeoutFailure):
		service.notifier.Notify(executionContext, notify.NewTimeoutPayload(commandText, commandTimeout))
	case errors.As(executionError, &commandFailure):
		service.notifier.Notify(executionContext, notify.NewFailurePayload(commandText, executionResult))
	default:
		service.notifier.Notify(executionContext, notify.NewExecutionFailurePayload(commandText, executionError))
	}
}
