package apps

import (
	"context"
	"errors"
	"sort"
	"strings"

	"go.uber.org/zap"
)

const (
	registryLoggerNotConfiguredMessageConstant = "logger not configured"
	processListingFailedLogMessageConstant     = "process listing failed"
	unrankedRecencyScoreConstant               = 999
)

// ErrLoggerNotConfigured indicates the registry was constructed without a logger.
var ErrLoggerNotConfigured = errors.New(registryLoggerNotConfiguredMessageConstant)

// Registry merges the user catalog with scanned desktop entries and decorates
// the result with running state and usage ordering.
type Registry struct {
	logger        *zap.Logger
	configuration Configuration
	processLister ProcessLister
}

// NewRegistry validates dependencies and prepares a registry over the
// configured catalog file and application directories.
func NewRegistry(logger *zap.Logger, configuration Configuration, processLister ProcessLister) (*Registry, error) {
	if logger == nil {
		return nil, ErrLoggerNotConfigured
	}
	if processLister == nil {
		processLister = NewGopsutilProcessLister()
	}

	return &Registry{
		logger:        logger,
		configuration: configuration,
		processLister: processLister,
	}, nil
}

// List assembles every known application, catalog definitions winning over
// desktop entries with the same identifier. The result is ordered by the
// supplied usage recency (most recent first), then by display name.
func (registry *Registry) List(executionContext context.Context, recentIdentifiers []string) []Application {
	applications := LoadCatalog(registry.logger, registry.configuration.CatalogFile)
	catalogIdentifiers := make(map[string]struct{}, len(applications))
	for _, catalogApplication := range applications {
		catalogIdentifiers[catalogApplication.Identifier] = struct{}{}
	}

	for _, desktopApplication := range ScanDesktopEntries(registry.logger, registry.configuration.DesktopDirectories) {
		if _, shadowed := catalogIdentifiers[desktopApplication.Identifier]; shadowed {
			continue
		}
		applications = append(applications, desktopApplication)
	}

	registry.markRunningApplications(executionContext, applications)

	recencyRanks := make(map[string]int, len(recentIdentifiers))
	for recencyRank, recentIdentifier := range recentIdentifiers {
		recencyRanks[recentIdentifier] = recencyRank
	}
	sort.SliceStable(applications, func(firstIndex, secondIndex int) bool {
		firstRank := resolveRecencyRank(recencyRanks, applications[firstIndex].Identifier)
		secondRank := resolveRecencyRank(recencyRanks, applications[secondIndex].Identifier)
		if firstRank != secondRank {
			return firstRank < secondRank
		}
		return strings.ToLower(applications[firstIndex].DisplayName) < strings.ToLower(applications[secondIndex].DisplayName)
	})

	return applications
}

func (registry *Registry) markRunningApplications(executionContext context.Context, applications []Application) {
	processNames, listError := registry.processLister.RunningProcessNames(executionContext)
	if listError != nil {
		registry.logger.Warn(processListingFailedLogMessageConstant, zap.Error(listError))
		return
	}

	runningNames := make(map[string]struct{}, len(processNames))
	for _, processName := range processNames {
		runningNames[strings.ToLower(processName)] = struct{}{}
	}

	for applicationIndex := range applications {
		executableName := strings.ToLower(applications[applicationIndex].ExecutableName)
		if len(executableName) == 0 {
			continue
		}
		if _, running := runningNames[executableName]; running {
			applications[applicationIndex].IsRunning = true
		}
	}
}

func resolveRecencyRank(recencyRanks map[string]int, applicationIdentifier string) int {
	if recencyRank, ranked := recencyRanks[applicationIdentifier]; ranked {
		return recencyRank
	}
	return unrankedRecencyScoreConstant
}
