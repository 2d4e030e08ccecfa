package execshell

import "time"

const (
	notifySendToolNameConstant = "notify-send"
	osascriptToolNameConstant  = "osascript"
	gtkLaunchToolNameConstant  = "gtk-launch"
)

// CommandName identifies the executable invoked by the runner.
type CommandName string

// Supported tool enumerations.
const (
	CommandNotifySend CommandName = CommandName(notifySendToolNameConstant)
	CommandOsascript  CommandName = CommandName(osascriptToolNameConstant)
	CommandGtkLaunch  CommandName = CommandName(gtkLaunchToolNameConstant)
)

// CommandDetails describes a single invocation of an executable.
type CommandDetails struct {
	Arguments            []string
	WorkingDirectory     string
	EnvironmentVariables map[string]string
	StandardInput        []byte
	Timeout              time.Duration
}

// ShellCommand combines a CommandName with specific invocation details.
type ShellCommand struct {
	Name    CommandName
	Details CommandDetails
}

// ExecutionResult captures the observable results of executing a command.
type ExecutionResult struct {
	StandardOutput string
	StandardError  string
	ExitCode       int
	TimedOut       bool
}
