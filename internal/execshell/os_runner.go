package execshell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"syscall"
	"time"
)

const (
	environmentAssignmentSeparatorConstant = "="
	environmentAssignmentTemplateConstant  = "%s%s%s"
	processGroupTerminationGraceConstant   = 250 * time.Millisecond
	timedOutExitCodeConstant               = -1
)

// OSCommandRunner executes commands using the operating system facilities. Every
// child starts as the leader of a new session so the runner can signal the whole
// process group, descendants included, when a deadline or cancellation arrives.
type OSCommandRunner struct{}

// NewOSCommandRunner constructs a runner backed by os/exec.
func NewOSCommandRunner() *OSCommandRunner {
	return &OSCommandRunner{}
}

// Run executes the supplied command and blocks until it finishes. When
// Details.Timeout is positive a watchdog races the wait; the first to finish
// wins and an expired watchdog terminates the entire process group.
func (runner *OSCommandRunner) Run(executionContext context.Context, command ShellCommand) (ExecutionResult, error) {
	executable := runner.buildExecutable(command)

	var standardOutputBuffer bytes.Buffer
	var standardErrorBuffer bytes.Buffer
	executable.Stdout = &standardOutputBuffer
	executable.Stderr = &standardErrorBuffer

	if len(command.Details.StandardInput) > 0 {
		executable.Stdin = bytes.NewReader(command.Details.StandardInput)
	}

	if startError := executable.Start(); startError != nil {
		return ExecutionResult{}, startError
	}

	waitCompletion := make(chan error, 1)
	go func() {
		waitCompletion <- executable.Wait()
	}()

	var deadlineExpired <-chan time.Time
	if command.Details.Timeout > 0 {
		deadlineTimer := time.NewTimer(command.Details.Timeout)
		defer deadlineTimer.Stop()
		deadlineExpired = deadlineTimer.C
	}

	select {
	case waitError := <-waitCompletion:
		return runner.buildResult(&standardOutputBuffer, &standardErrorBuffer, waitError)
	case <-deadlineExpired:
		runner.terminateProcessGroup(executable.Process.Pid, waitCompletion)
		return ExecutionResult{
			StandardOutput: standardOutputBuffer.String(),
			StandardError:  standardErrorBuffer.String(),
			ExitCode:       timedOutExitCodeConstant,
			TimedOut:       true,
		}, nil
	case <-executionContext.Done():
		runner.terminateProcessGroup(executable.Process.Pid, waitCompletion)
		return ExecutionResult{}, executionContext.Err()
	}
}

// Start launches the command in its own session without waiting for completion.
// The child is reaped in the background and keeps running independently of the
// caller.
func (runner *OSCommandRunner) Start(executionContext context.Context, command ShellCommand) (int, error) {
	if contextError := executionContext.Err(); contextError != nil {
		return 0, contextError
	}

	executable := runner.buildExecutable(command)

	if startError := executable.Start(); startError != nil {
		return 0, startError
	}

	processIdentifier := executable.Process.Pid
	go func() {
		_ = executable.Wait()
	}()

	return processIdentifier, nil
}

func (runner *OSCommandRunner) buildExecutable(command ShellCommand) *exec.Cmd {
	commandArguments := append([]string{}, command.Details.Arguments...)
	executable := exec.Command(string(command.Name), commandArguments...)
	executable.SysProcAttr = &syscall.SysProcAttr{Setsid: true}

	if len(command.Details.WorkingDirectory) > 0 {
		executable.Dir = command.Details.WorkingDirectory
	}

	if len(command.Details.EnvironmentVariables) > 0 {
		mergedEnvironment := append([]string{}, os.Environ()...)
		for environmentKey, environmentValue := range command.Details.EnvironmentVariables {
			mergedEnvironment = append(mergedEnvironment, fmt.Sprintf(environmentAssignmentTemplateConstant, environmentKey, environmentAssignmentSeparatorConstant, environmentValue))
		}
		executable.Env = mergedEnvironment
	}

	return executable
}

// terminateProcessGroup signals the whole group, allows a short grace period,
// then force-kills survivors. It returns only after the wait goroutine has
// observed the child, so the output buffers are safe to read afterwards.
func (runner *OSCommandRunner) terminateProcessGroup(processIdentifier int, waitCompletion <-chan error) {
	_ = syscall.Kill(-processIdentifier, syscall.SIGTERM)

	graceTimer := time.NewTimer(processGroupTerminationGraceConstant)
	defer graceTimer.Stop()

	select {
	case <-waitCompletion:
		return
	case <-graceTimer.C:
	}

	_ = syscall.Kill(-processIdentifier, syscall.SIGKILL)
	<-waitCompletion
}

func (runner *OSCommandRunner) buildResult(standardOutputBuffer *bytes.Buffer, standardErrorBuffer *bytes.Buffer, waitError error) (ExecutionResult, error) {
	if waitError != nil {
		exitError := &exec.ExitError{}
		if errors.As(waitError, &exitError) {
			return ExecutionResult{
				StandardOutput: standardOutputBuffer.String(),
				StandardError:  standardErrorBuffer.String(),
				ExitCode:       exitError.ExitCode(),
			}, nil
		}
		return ExecutionResult{}, waitError
	}

	return ExecutionResult{
		StandardOutput: standardOutputBuffer.String(),
		StandardError:  standardErrorBuffer.String(),
		ExitCode:       0,
	}, nil
}
