package apps

import (
	"path/filepath"
	"strings"
)

// ApplicationSource identifies where an application definition came from.
type ApplicationSource string

const (
	// ApplicationSourceCatalog marks entries from the user catalog file.
	ApplicationSourceCatalog ApplicationSource = "catalog"
	// ApplicationSourceDesktopEntry marks entries scanned from .desktop files.
	ApplicationSourceDesktopEntry ApplicationSource = "desktop-entry"
)

// Application describes one launchable application known to the registry.
type Application struct {
	Identifier     string
	DisplayName    string
	LaunchCommand  string
	ExecutableName string
	Source         ApplicationSource
	IsRunning      bool
}

// MatchApplication resolves user input against the listed applications.
// Matching is case-insensitive and prefers an exact display name, then a
// prefix, then a substring; ties go to the earliest listed application.
func MatchApplication(applications []Application, query string) (Application, bool) {
	normalizedQuery := strings.ToLower(strings.TrimSpace(query))
	if len(normalizedQuery) == 0 {
		return Application{}, false
	}

	prefixMatchIndex := -1
	substringMatchIndex := -1
	for applicationIndex, application := range applications {
		normalizedName := strings.ToLower(application.DisplayName)
		if normalizedName == normalizedQuery {
			return application, true
		}
		if prefixMatchIndex < 0 && strings.HasPrefix(normalizedName, normalizedQuery) {
			prefixMatchIndex = applicationIndex
		}
		if substringMatchIndex < 0 && strings.Contains(normalizedName, normalizedQuery) {
			substringMatchIndex = applicationIndex
		}
	}

	if prefixMatchIndex >= 0 {
		return applications[prefixMatchIndex], true
	}
	if substringMatchIndex >= 0 {
		return applications[substringMatchIndex], true
	}
	return Application{}, false
}

// executableNameFromCommand derives the process name a launched command will
// run under, which is how the registry recognizes running applications.
func executableNameFromCommand(commandLine string) string {
	commandFields := strings.Fields(commandLine)
	if len(commandFields) == 0 {
		return ""
	}
	return filepath.Base(commandFields[0])
}
