package execshell

import (
	"context"
	"path/filepath"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestOSCommandRunnerCapturesOutputAndExitCode(t *testing.T) {
	runner := NewOSCommandRunner()

	result, runError := runner.Run(context.Background(), ShellCommand{
		Name:    CommandName("/bin/sh"),
		Details: CommandDetails{Arguments: []string{"-c", "printf out; printf err >&2; exit 7"}},
	})

	require.NoError(t, runError)
	require.Equal(t, "out", result.StandardOutput)
	require.Equal(t, "err", result.StandardError)
	require.Equal(t, 7, result.ExitCode)
	require.False(t, result.TimedOut)
}

func TestOSCommandRunnerStopsTimedOutProcessGroup(t *testing.T) {
	runner := NewOSCommandRunner()
	startedAt := time.Now()

	result, runError := runner.Run(context.Background(), ShellCommand{
		Name: CommandName("/bin/sh"),
		Details: CommandDetails{
			Arguments: []string{"-c", "printf started; sleep 30 & wait"},
			Timeout:   200 * time.Millisecond,
		},
	})

	require.NoError(t, runError)
	require.True(t, result.TimedOut)
	require.Equal(t, -1, result.ExitCode)
	require.Equal(t, "started", result.StandardOutput)
	require.Less(t, time.Since(startedAt), 5*time.Second)
}

func TestOSCommandRunnerTimeoutCoversBackgroundChildren(t *testing.T) {
	runner := NewOSCommandRunner()
	startedAt := time.Now()

	// The background child inherits the output pipe, so only a group-wide
	// signal lets the runner collect output without waiting on it.
	result, runError := runner.Run(context.Background(), ShellCommand{
		Name: CommandName("/bin/sh"),
		Details: CommandDetails{
			Arguments: []string{"-c", "sleep 30 &"},
			Timeout:   200 * time.Millisecond,
		},
	})

	require.NoError(t, runError)
	require.True(t, result.TimedOut)
	require.Less(t, time.Since(startedAt), 5*time.Second)
}

func TestOSCommandRunnerReportsSpawnFailure(t *testing.T) {
	runner := NewOSCommandRunner()

	result, runError := runner.Run(context.Background(), ShellCommand{
		Name: CommandName("/nonexistent/interpreter"),
	})

	require.Error(t, runError)
	require.Equal(t, ExecutionResult{}, result)
}

func TestOSCommandRunnerAppliesWorkingDirectory(t *testing.T) {
	runner := NewOSCommandRunner()
	workingDirectory, symlinkError := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, symlinkError)

	result, runError := runner.Run(context.Background(), ShellCommand{
		Name:    CommandName("/bin/sh"),
		Details: CommandDetails{Arguments: []string{"-c", "pwd"}, WorkingDirectory: workingDirectory},
	})

	require.NoError(t, runError)
	require.Equal(t, workingDirectory, strings.TrimSpace(result.StandardOutput))
}

func TestOSCommandRunnerMergesEnvironmentVariables(t *testing.T) {
	runner := NewOSCommandRunner()

	result, runError := runner.Run(context.Background(), ShellCommand{
		Name: CommandName("/bin/sh"),
		Details: CommandDetails{
			Arguments:            []string{"-c", `printf "$LAUNCH_CHANNEL"`},
			EnvironmentVariables: map[string]string{"LAUNCH_CHANNEL": "hotkey"},
		},
	})

	require.NoError(t, runError)
	require.Equal(t, "hotkey", result.StandardOutput)
}

func TestOSCommandRunnerSuppliesStandardInput(t *testing.T) {
	runner := NewOSCommandRunner()

	result, runError := runner.Run(context.Background(), ShellCommand{
		Name:    CommandName("/bin/sh"),
		Details: CommandDetails{Arguments: []string{"-c", "cat"}, StandardInput: []byte("piped")},
	})

	require.NoError(t, runError)
	require.Equal(t, "piped", result.StandardOutput)
}

func TestOSCommandRunnerHonorsContextCancellation(t *testing.T) {
	runner := NewOSCommandRunner()
	executionContext, cancelExecution := context.WithTimeout(context.Background(), 150*time.Millisecond)
	defer cancelExecution()
	startedAt := time.Now()

	_, runError := runner.Run(executionContext, ShellCommand{
		Name:    CommandName("/bin/sh"),
		Details: CommandDetails{Arguments: []string{"-c", "sleep 30"}},
	})

	require.ErrorIs(t, runError, context.DeadlineExceeded)
	require.Less(t, time.Since(startedAt), 5*time.Second)
}

func TestOSCommandRunnerStartsDetachedProcess(t *testing.T) {
	runner := NewOSCommandRunner()

	processIdentifier, startError := runner.Start(context.Background(), ShellCommand{
		Name:    CommandName("/bin/sh"),
		Details: CommandDetails{Arguments: []string{"-c", "sleep 30"}},
	})

	require.NoError(t, startError)
	require.Greater(t, processIdentifier, 0)
	_ = syscall.Kill(-processIdentifier, syscall.SIGKILL)
}

func TestOSCommandRunnerStartRejectsCancelledContext(t *testing.T) {
	runner := NewOSCommandRunner()
	cancelledContext, cancelExecution := context.WithCancel(context.Background())
	cancelExecution()

	_, startError := runner.Start(cancelledContext, ShellCommand{
		Name:    CommandName("/bin/sh"),
		Details: CommandDetails{Arguments: []string{"-c", "true"}},
	})

	require.Error(t, startError)
}
