// Package apps discovers launchable applications and brings them to the
// foreground. It merges a YAML catalog with freedesktop desktop entries,
// marks applications whose executables are currently running, orders the
// result by launch recency, and activates matches either through gtk-launch
// or a detached shell command.
package apps
