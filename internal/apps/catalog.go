package apps

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

const (
	catalogUnreadableLogMessageConstant     = "app catalog unreadable"
	catalogMalformedLogMessageConstant      = "app catalog malformed"
	catalogEntriesSkippedLogMessageConstant = "app catalog entries skipped"
	logFieldCatalogFileConstant             = "catalog_file"
	logFieldSkippedEntriesConstant          = "skipped_entries"
)

type catalogDocument struct {
	Apps []catalogEntry `yaml:"apps"`
}

type catalogEntry struct {
	Identifier    string `yaml:"id"`
	DisplayName   string `yaml:"name"`
	LaunchCommand string `yaml:"command"`
}

// LoadCatalog decodes the user application catalog. A missing file yields an
// empty list; unreadable or malformed files are logged and also yield an
// empty list. Entries without an identifier, name, or command are skipped.
func LoadCatalog(logger *zap.Logger, catalogFilePath string) []Application {
	fileContents, readError := os.ReadFile(catalogFilePath)
	if readError != nil {
		if !errors.Is(readError, fs.ErrNotExist) {
			logger.Warn(catalogUnreadableLogMessageConstant,
				zap.String(logFieldCatalogFileConstant, catalogFilePath),
				zap.Error(readError))
		}
		return nil
	}

	var decodedDocument catalogDocument
	if decodeError := yaml.Unmarshal(fileContents, &decodedDocument); decodeError != nil {
		logger.Warn(catalogMalformedLogMessageConstant,
			zap.String(logFieldCatalogFileConstant, catalogFilePath),
			zap.Error(decodeError))
		return nil
	}

	applications := make([]Application, 0, len(decodedDocument.Apps))
	skippedEntries := 0
	for _, decodedEntry := range decodedDocument.Apps {
		identifier := strings.TrimSpace(decodedEntry.Identifier)
		displayName := strings.TrimSpace(decodedEntry.DisplayName)
		launchCommand := strings.TrimSpace(decodedEntry.LaunchCommand)
		if len(identifier) == 0 || len(displayName) == 0 || len(launchCommand) == 0 {
			skippedEntries++
			continue
		}

		applications = append(applications, Application{
			Identifier:     identifier,
			DisplayName:    displayName,
			LaunchCommand:  launchCommand,
			ExecutableName: executableNameFromCommand(launchCommand),
			Source:         ApplicationSourceCatalog,
		})
	}

	if skippedEntries > 0 {
		logger.Warn(catalogEntriesSkippedLogMessageConstant,
			zap.String(logFieldCatalogFileConstant, catalogFilePath),
			zap.Int(logFieldSkippedEntriesConstant, skippedEntries))
	}

	return applications
}
