package notify

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/okanin/summon/internal/execshell"
)

const (
	loggerNotConfiguredMessageConstant          = "logger not configured"
	commandExecutorNotConfiguredMessageConstant = "command executor not configured"

	darwinOperatingSystemConstant                = "darwin"
	notifySendApplicationNameArgumentConstant    = "--app-name=summon"
	notifySendCriticalUrgencyArgumentConstant    = "--urgency=critical"
	osascriptExpressionFlagConstant              = "-e"
	osascriptNotificationScriptTemplateConstant  = `display notification "%s" with title "%s"`
	notificationDeliveryTimeoutConstant          = 5 * time.Second
	notificationDeliveryFailedLogMessageConstant = "notification delivery failed"
	logFieldNotificationTitleConstant            = "notification_title"
)

// ErrLoggerNotConfigured indicates the dispatcher was constructed without a logger.
var ErrLoggerNotConfigured = errors.New(loggerNotConfiguredMessageConstant)

// ErrCommandExecutorNotConfigured indicates the dispatcher was constructed without an executor.
var ErrCommandExecutorNotConfigured = errors.New(commandExecutorNotConfiguredMessageConstant)

// CommandExecutor runs the platform notification binaries.
type CommandExecutor interface {
	ExecuteNotifySend(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
	ExecuteOsascript(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// Dispatcher delivers payloads through notify-send, or osascript on darwin.
// Delivery failures are logged and swallowed.
type Dispatcher struct {
	logger          *zap.Logger
	commandExecutor CommandExecutor
	operatingSystem string
}

// NewDispatcher validates dependencies and prepares a dispatcher for the
// current platform.
func NewDispatcher(logger *zap.Logger, commandExecutor CommandExecutor) (*Dispatcher, error) {
	if logger == nil {
		return nil, ErrLoggerNotConfigured
	}
	if commandExecutor == nil {
		return nil, ErrCommandExecutorNotConfigured
	}

	return &Dispatcher{
		logger:          logger,
		commandExecutor: commandExecutor,
		operatingSystem: runtime.GOOS,
	}, nil
}

// SetOperatingSystem overrides the platform used to select the transport.
func (dispatcher *Dispatcher) SetOperatingSystem(operatingSystem string) {
	trimmedOperatingSystem := strings.TrimSpace(operatingSystem)
	if len(trimmedOperatingSystem) == 0 {
		trimmedOperatingSystem = runtime.GOOS
	}
	dispatcher.operatingSystem = trimmedOperatingSystem
}

// Notify delivers the payload and swallows any delivery failure.
func (dispatcher *Dispatcher) Notify(executionContext context.Context, payload Payload) {
	var deliveryError error
	switch dispatcher.operatingSystem {
	case darwinOperatingSystemConstant:
		deliveryError = dispatcher.deliverThroughOsascript(executionContext, payload)
	default:
		deliveryError = dispatcher.deliverThroughNotifySend(executionContext, payload)
	}

	if deliveryError != nil {
		dispatcher.logger.Warn(notificationDeliveryFailedLogMessageConstant,
			zap.String(logFieldNotificationTitleConstant, payload.Title),
			zap.Error(deliveryError))
	}
}

func (dispatcher *Dispatcher) deliverThroughNotifySend(executionContext context.Context, payload Payload) error {
	arguments := []string{notifySendApplicationNameArgumentConstant}
	if payload.IsError {
		arguments = append(arguments, notifySendCriticalUrgencyArgumentConstant)
	}
	arguments = append(arguments, payload.Title, payload.Body)

	_, executionError := dispatcher.commandExecutor.ExecuteNotifySend(executionContext, execshell.CommandDetails{
		Arguments: arguments,
		Timeout:   notificationDeliveryTimeoutConstant,
	})
	return executionError
}

func (dispatcher *Dispatcher) deliverThroughOsascript(executionContext context.Context, payload Payload) error {
	notificationScript := fmt.Sprintf(osascriptNotificationScriptTemplateConstant,
		escapeScriptLiteral(payload.Body), escapeScriptLiteral(payload.Title))

	_, executionError := dispatcher.commandExecutor.ExecuteOsascript(executionContext, execshell.CommandDetails{
		Arguments: []string{osascriptExpressionFlagConstant, notificationScript},
		Timeout:   notificationDeliveryTimeoutConstant,
	})
	return executionError
}

func escapeScriptLiteral(value string) string {
	escaped := strings.ReplaceAll(value, `\`, `\\`)
	escaped = strings.ReplaceAll(escaped, `"`, `\"`)
	return strings.ReplaceAll(escaped, "\n", `\n`)
}
