package apps

import (
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

const (
	desktopEntryFileExtensionConstant            = ".desktop"
	desktopEntrySectionHeaderConstant            = "[Desktop Entry]"
	sectionHeaderPrefixConstant                  = "["
	keyValueSeparatorConstant                    = "="
	commentPrefixConstant                        = "#"
	desktopEntryNameKeyConstant                  = "Name"
	desktopEntryExecKeyConstant                  = "Exec"
	desktopEntryNoDisplayKeyConstant             = "NoDisplay"
	booleanTrueValueConstant                     = "true"
	fieldCodePrefixConstant                      = "%"
	desktopDirectoryUnreadableLogMessageConstant = "application directory unreadable"
	desktopEntryUnreadableLogMessageConstant     = "desktop entry unreadable"
	logFieldApplicationDirectoryConstant         = "application_directory"
	logFieldDesktopEntryConstant                 = "desktop_entry"
	expectedKeyValuePartsConstant                = 2
	desktopEntryFieldCodeTokenLengthConstant     = 2
)

// ScanDesktopEntries walks the configured application directories,
// non-recursively, and parses every .desktop file into an Application.
// Missing directories are skipped; a duplicate desktop-file id keeps the
// first definition found.
func ScanDesktopEntries(logger *zap.Logger, applicationDirectories []string) []Application {
	applications := make([]Application, 0)
	seenIdentifiers := make(map[string]struct{})

	for _, applicationDirectory := range applicationDirectories {
		directoryEntries, readError := os.ReadDir(applicationDirectory)
		if readError != nil {
			if !os.IsNotExist(readError) {
				logger.Warn(desktopDirectoryUnreadableLogMessageConstant,
					zap.String(logFieldApplicationDirectoryConstant, applicationDirectory),
					zap.Error(readError))
			}
			continue
		}

		for _, directoryEntry := range directoryEntries {
			if directoryEntry.IsDir() || !strings.HasSuffix(directoryEntry.Name(), desktopEntryFileExtensionConstant) {
				continue
			}

			entryPath := filepath.Join(applicationDirectory, directoryEntry.Name())
			parsedApplication, parsed := parseDesktopEntry(logger, entryPath)
			if !parsed {
				continue
			}
			if _, seen := seenIdentifiers[parsedApplication.Identifier]; seen {
				continue
			}

			seenIdentifiers[parsedApplication.Identifier] = struct{}{}
			applications = append(applications, parsedApplication)
		}
	}

	return applications
}

// parseDesktopEntry extracts the launcher-relevant keys from the main
// [Desktop Entry] section. Entries marked NoDisplay and entries missing a
// name or exec line are not applications the launcher should offer.
func parseDesktopEntry(logger *zap.Logger, entryPath string) (Application, bool) {
	fileContents, readError := os.ReadFile(entryPath)
	if readError != nil {
		logger.Warn(desktopEntryUnreadableLogMessageConstant,
			zap.String(logFieldDesktopEntryConstant, entryPath),
			zap.Error(readError))
		return Application{}, false
	}

	displayName := ""
	execLine := ""
	noDisplay := false
	insideMainSection := false
	for _, rawLine := range strings.Split(string(fileContents), "\n") {
		line := strings.TrimSpace(rawLine)
		if len(line) == 0 || strings.HasPrefix(line, commentPrefixConstant) {
			continue
		}
		if strings.HasPrefix(line, sectionHeaderPrefixConstant) {
			insideMainSection = line == desktopEntrySectionHeaderConstant
			continue
		}
		if !insideMainSection {
			continue
		}

		keyValueParts := strings.SplitN(line, keyValueSeparatorConstant, expectedKeyValuePartsConstant)
		if len(keyValueParts) != expectedKeyValuePartsConstant {
			continue
		}
		entryKey := strings.TrimSpace(keyValueParts[0])
		entryValue := strings.TrimSpace(keyValueParts[1])

		switch entryKey {
		case desktopEntryNameKeyConstant:
			if len(displayName) == 0 {
				displayName = entryValue
			}
		case desktopEntryExecKeyConstant:
			if len(execLine) == 0 {
				execLine = entryValue
			}
		case desktopEntryNoDisplayKeyConstant:
			noDisplay = strings.EqualFold(entryValue, booleanTrueValueConstant)
		}
	}

	if noDisplay || len(displayName) == 0 || len(execLine) == 0 {
		return Application{}, false
	}

	strippedExecLine := stripFieldCodes(execLine)
	return Application{
		Identifier:     strings.TrimSuffix(filepath.Base(entryPath), desktopEntryFileExtensionConstant),
		DisplayName:    displayName,
		LaunchCommand:  strippedExecLine,
		ExecutableName: executableNameFromCommand(strippedExecLine),
		Source:         ApplicationSourceDesktopEntry,
	}, true
}

// stripFieldCodes removes desktop-entry substitution tokens such as %u or %F
// from an exec line.
func stripFieldCodes(execLine string) string {
	execFields := strings.Fields(execLine)
	keptFields := make([]string, 0, len(execFields))
	for _, execField := range execFields {
		if strings.HasPrefix(execField, fieldCodePrefixConstant) && len(execField) == desktopEntryFieldCodeTokenLengthConstant {
			continue
		}
		keptFields = append(keptFields, execField)
	}
	return strings.Join(keptFields, " ")
}
