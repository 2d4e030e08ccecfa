package apps

import (
	"strings"

	pathutils "github.com/okanin/summon/internal/utils/path"
)

var (
	appsConfigurationHomeExpander       = pathutils.NewHomeExpander()
	appsConfigurationDirectorySanitizer = pathutils.NewSearchPathSanitizerWithConfiguration(appsConfigurationHomeExpander, pathutils.SearchPathSanitizerConfiguration{DropMissingDirectories: true})
)

const (
	configurationCatalogFileKeyConstant        = "catalog_file"
	configurationDesktopDirectoriesKeyConstant = "desktop_directories"

	defaultCatalogFileConstant            = "~/.config/summon/apps.yaml"
	defaultSystemApplicationsPathConstant = "/usr/share/applications"
	defaultUserApplicationsPathConstant   = "~/.local/share/applications"
)

// Configuration captures the application registry sources.
type Configuration struct {
	CatalogFile        string   `mapstructure:"catalog_file"`
	DesktopDirectories []string `mapstructure:"desktop_directories"`
}

// DefaultConfiguration provides baseline registry sources.
func DefaultConfiguration() Configuration {
	return Configuration{
		CatalogFile: defaultCatalogFileConstant,
		DesktopDirectories: []string{
			defaultSystemApplicationsPathConstant,
			defaultUserApplicationsPathConstant,
		},
	}
}

// DefaultConfigurationValues produces Viper defaults for registry sources.
func DefaultConfigurationValues(rootKey string) map[string]any {
	defaults := DefaultConfiguration()
	return map[string]any{
		rootKey + "." + configurationCatalogFileKeyConstant:        defaults.CatalogFile,
		rootKey + "." + configurationDesktopDirectoriesKeyConstant: defaults.DesktopDirectories,
	}
}

// Sanitize expands home-relative paths and drops duplicate or missing
// application directories.
func (configuration Configuration) Sanitize() Configuration {
	sanitized := configuration

	sanitized.CatalogFile = strings.TrimSpace(configuration.CatalogFile)
	if len(sanitized.CatalogFile) == 0 {
		sanitized.CatalogFile = defaultCatalogFileConstant
	}
	sanitized.CatalogFile = appsConfigurationHomeExpander.Expand(sanitized.CatalogFile)

	directories := configuration.DesktopDirectories
	if len(directories) == 0 {
		directories = DefaultConfiguration().DesktopDirectories
	}
	sanitized.DesktopDirectories = appsConfigurationDirectorySanitizer.Sanitize(directories)

	return sanitized
}
