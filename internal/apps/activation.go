package apps

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/okanin/summon/internal/execshell"
)

const (
	detachedLauncherNotConfiguredMessageConstant = "detached launcher not configured"
	activationFailedTemplateConstant             = "activating %s: %w"
	shellScriptFlagConstant                      = "-c"
	fallbackShellPathConstant                    = "/bin/sh"
)

// ErrDetachedLauncherNotConfigured indicates the activator was constructed without a launcher.
var ErrDetachedLauncherNotConfigured = errors.New(detachedLauncherNotConfiguredMessageConstant)

// DetachedLauncher starts a command in its own session without waiting.
type DetachedLauncher interface {
	LaunchDetached(executionContext context.Context, command execshell.ShellCommand) (int, error)
}

// Activator launches applications in the background. Desktop entries go
// through gtk-launch so the desktop environment applies the entry's
// activation semantics; catalog entries run their configured command through
// the user shell.
type Activator struct {
	detachedLauncher DetachedLauncher
	shellPath        string
}

// NewActivator validates the launcher dependency and prepares an activator
// that runs catalog commands through the supplied shell.
func NewActivator(detachedLauncher DetachedLauncher, shellPath string) (*Activator, error) {
	if detachedLauncher == nil {
		return nil, ErrDetachedLauncherNotConfigured
	}

	trimmedShellPath := strings.TrimSpace(shellPath)
	if len(trimmedShellPath) == 0 {
		trimmedShellPath = fallbackShellPathConstant
	}

	return &Activator{detachedLauncher: detachedLauncher, shellPath: trimmedShellPath}, nil
}

// ActivateOrLaunch starts the application without waiting for it and returns
// the spawn failure, if any.
func (activator *Activator) ActivateOrLaunch(executionContext context.Context, application Application) (int, error) {
	var launchCommand execshell.ShellCommand
	if application.Source == ApplicationSourceCatalog {
		launchCommand = execshell.ShellCommand{
			Name: execshell.CommandName(activator.shellPath),
			Details: execshell.CommandDetails{
				Arguments: []string{shellScriptFlagConstant, application.LaunchCommand},
			},
		}
	} else {
		launchCommand = execshell.ShellCommand{
			Name: execshell.CommandGtkLaunch,
			Details: execshell.CommandDetails{
				Arguments: []string{application.Identifier},
			},
		}
	}

	processIdentifier, launchError := activator.detachedLauncher.LaunchDetached(executionContext, launchCommand)
	if launchError != nil {
		return 0, fmt.Errorf(activationFailedTemplateConstant, application.Identifier, launchError)
	}

	return processIdentifier, nil
}
