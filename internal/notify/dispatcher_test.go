package notify_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/okanin/summon/internal/execshell"
	"github.com/okanin/summon/internal/notify"
)

const (
	linuxOperatingSystemConstant              = "linux"
	darwinOperatingSystemConstant             = "darwin"
	notifySendAppNameArgumentConstant         = "--app-name=summon"
	notifySendUrgencyArgumentConstant         = "--urgency=critical"
	osascriptExpressionFlagConstant           = "-e"
	expectedDeliveryTimeoutConstant           = 5 * time.Second
	deliveryFailureLogMessageConstant         = "notification delivery failed"
	nilLoggerValidationCaseNameConstant       = "nil_logger"
	nilExecutorValidationCaseNameConstant     = "nil_executor"
	quotedBodyConstant                        = `$ echo "hi"`
	expectedOsascriptScriptConstant           = `display notification "$ echo \"hi\"" with title "Command Succeeded"`
	transportFailureMessageConstant           = "transport failed"
	expectedSingleInvocationConstant          = 1
	expectedErrorPayloadArgumentCountConstant = 4
)

type recordingNotificationExecutor struct {
	executionResult execshell.ExecutionResult
	executionError  error
	notifySendCalls []execshell.CommandDetails
	osascriptCalls  []execshell.CommandDetails
}

func (executor *recordingNotificationExecutor) ExecuteNotifySend(_ context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	executor.notifySendCalls = append(executor.notifySendCalls, details)
	return executor.executionResult, executor.executionError
}

func (executor *recordingNotificationExecutor) ExecuteOsascript(_ context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	executor.osascriptCalls = append(executor.osascriptCalls, details)
	return executor.executionResult, executor.executionError
}

func TestDispatcherInitializationValidation(t *testing.T) {
	testCases := []struct {
		name            string
		logger          *zap.Logger
		commandExecutor notify.CommandExecutor
		expectedError   error
	}{
		{
			name:            nilLoggerValidationCaseNameConstant,
			logger:          nil,
			commandExecutor: &recordingNotificationExecutor{},
			expectedError:   notify.ErrLoggerNotConfigured,
		},
		{
			name:            nilExecutorValidationCaseNameConstant,
			logger:          zap.NewNop(),
			commandExecutor: nil,
			expectedError:   notify.ErrCommandExecutorNotConfigured,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(testInstance *testing.T) {
			dispatcher, creationError := notify.NewDispatcher(testCase.logger, testCase.commandExecutor)

			require.Nil(testInstance, dispatcher)
			require.ErrorIs(testInstance, creationError, testCase.expectedError)
		})
	}
}

func TestDispatcherDeliversThroughNotifySend(t *testing.T) {
	recordingExecutor := &recordingNotificationExecutor{}
	dispatcher, creationError := notify.NewDispatcher(zap.NewNop(), recordingExecutor)
	require.NoError(t, creationError)
	dispatcher.SetOperatingSystem(linuxOperatingSystemConstant)

	payload := notify.NewSuccessPayload("true", "")
	dispatcher.Notify(context.Background(), payload)

	require.Len(t, recordingExecutor.notifySendCalls, expectedSingleInvocationConstant)
	require.Empty(t, recordingExecutor.osascriptCalls)
	deliveredDetails := recordingExecutor.notifySendCalls[0]
	require.Equal(t, []string{notifySendAppNameArgumentConstant, payload.Title, payload.Body}, deliveredDetails.Arguments)
	require.Equal(t, expectedDeliveryTimeoutConstant, deliveredDetails.Timeout)
}

func TestDispatcherMarksErrorPayloadsCritical(t *testing.T) {
	recordingExecutor := &recordingNotificationExecutor{}
	dispatcher, creationError := notify.NewDispatcher(zap.NewNop(), recordingExecutor)
	require.NoError(t, creationError)
	dispatcher.SetOperatingSystem(linuxOperatingSystemConstant)

	payload := notify.NewFailurePayload("make test", execshell.ExecutionResult{ExitCode: 2})
	dispatcher.Notify(context.Background(), payload)

	require.Len(t, recordingExecutor.notifySendCalls, expectedSingleInvocationConstant)
	deliveredArguments := recordingExecutor.notifySendCalls[0].Arguments
	require.Len(t, deliveredArguments, expectedErrorPayloadArgumentCountConstant)
	require.Equal(t, notifySendUrgencyArgumentConstant, deliveredArguments[1])
}

func TestDispatcherDeliversThroughOsascript(t *testing.T) {
	recordingExecutor := &recordingNotificationExecutor{}
	dispatcher, creationError := notify.NewDispatcher(zap.NewNop(), recordingExecutor)
	require.NoError(t, creationError)
	dispatcher.SetOperatingSystem(darwinOperatingSystemConstant)

	dispatcher.Notify(context.Background(), notify.Payload{Title: successTitleConstant, Body: quotedBodyConstant})

	require.Len(t, recordingExecutor.osascriptCalls, expectedSingleInvocationConstant)
	require.Empty(t, recordingExecutor.notifySendCalls)
	deliveredArguments := recordingExecutor.osascriptCalls[0].Arguments
	require.Equal(t, osascriptExpressionFlagConstant, deliveredArguments[0])
	require.Equal(t, expectedOsascriptScriptConstant, deliveredArguments[1])
}

func TestDispatcherSwallowsDeliveryFailures(t *testing.T) {
	recordingExecutor := &recordingNotificationExecutor{executionError: errors.New(transportFailureMessageConstant)}
	observedCore, observedLogs := observer.New(zapcore.WarnLevel)
	dispatcher, creationError := notify.NewDispatcher(zap.New(observedCore), recordingExecutor)
	require.NoError(t, creationError)
	dispatcher.SetOperatingSystem(linuxOperatingSystemConstant)

	dispatcher.Notify(context.Background(), notify.NewSuccessPayload("true", ""))

	require.Len(t, recordingExecutor.notifySendCalls, expectedSingleInvocationConstant)
	require.Equal(t, expectedSingleInvocationConstant, observedLogs.FilterMessage(deliveryFailureLogMessageConstant).Len())
}
