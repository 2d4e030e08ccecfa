package apps_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/okanin/summon/internal/apps"
)

const (
	configurationRootKeyConstant            = "apps"
	expectedCatalogFileKeyConstant          = "apps.catalog_file"
	expectedDesktopDirectoriesKeyConstant   = "apps.desktop_directories"
	expectedConfigurationValueCountConstant = 2
	absentDirectoryNameConstant             = "absent"
	defaultCatalogRelativePathConstant      = ".config/summon/apps.yaml"
)

func TestConfigurationSanitizeExpandsAndFiltersDirectories(testInstance *testing.T) {
	existingDirectory := testInstance.TempDir()
	missingDirectory := filepath.Join(existingDirectory, absentDirectoryNameConstant)

	configuration := apps.Configuration{
		CatalogFile:        "   ",
		DesktopDirectories: []string{existingDirectory, missingDirectory},
	}
	sanitized := configuration.Sanitize()

	homeDirectory, homeError := os.UserHomeDir()
	require.NoError(testInstance, homeError)
	require.Equal(testInstance, filepath.Join(homeDirectory, defaultCatalogRelativePathConstant), sanitized.CatalogFile)
	require.Equal(testInstance, []string{existingDirectory}, sanitized.DesktopDirectories)
}

func TestDefaultConfigurationValuesUsesRootKey(testInstance *testing.T) {
	configurationValues := apps.DefaultConfigurationValues(configurationRootKeyConstant)

	require.Len(testInstance, configurationValues, expectedConfigurationValueCountConstant)
	require.Contains(testInstance, configurationValues, expectedCatalogFileKeyConstant)
	require.Contains(testInstance, configurationValues, expectedDesktopDirectoriesKeyConstant)
}
