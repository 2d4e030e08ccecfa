package launcher

import (
	"fmt"
	"path/filepath"
)

const (
	shellScriptFlagConstant       = "-c"
	sourcedScriptTemplateConstant = "source %s 2>/dev/null; %s"
	zshShellNameConstant          = "zsh"
	bashShellNameConstant         = "bash"
	zshResourceFileConstant       = "~/.zshrc"
	bashResourceFileConstant      = "~/.bashrc"
)

// resolveResourceFilePath maps a shell binary to the rc file its interactive
// sessions read. Shells without a known rc file return an empty path.
func resolveResourceFilePath(shellPath string) string {
	switch filepath.Base(shellPath) {
	case zshShellNameConstant:
		return zshResourceFileConstant
	case bashShellNameConstant:
		return bashResourceFileConstant
	default:
		return ""
	}
}

// buildShellScript prefixes the submitted command with a best-effort source
// of the shell's rc file. Popup-launched processes start outside a terminal
// session and would otherwise miss the PATH and aliases configured there.
// The tilde is left for the shell to expand.
func buildShellScript(resourceFilePath string, commandText string) string {
	if len(resourceFilePath) == 0 {
		return commandText
	}
	return fmt.Sprintf(sourcedScriptTemplateConstant, resourceFilePath, commandText)
}
