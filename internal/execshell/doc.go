// Package execshell provides structured helpers for invoking external tools.
//
// It wraps os/exec with logging, deadlines, and process-group cleanup via
// ShellExecutor and OSCommandRunner. Every child process starts in its own
// session so a timed-out command can be stopped together with any descendants
// it spawned. Detached launches hand a program its own session and return
// immediately, which is how desktop applications are started.
package execshell
