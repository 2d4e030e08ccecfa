package apps

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/okanin/summon/internal/history"
	"github.com/okanin/summon/internal/utils"
)

const (
	commandUseConstant              = "apps"
	commandShortDescriptionConstant = "List known applications"
	commandLongDescriptionConstant  = "apps prints every application from the user catalog and desktop entries, most recently used first."

	applicationLineTemplateConstant = "%s\n"
	notRunningSuffixConstant        = "  (not running)"
	noApplicationsMessageConstant   = "No applications found\n"
)

// LoggerProvider supplies a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the apps listing command.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	ConfigurationProvider        func() Configuration
	HistoryConfigurationProvider func() history.Configuration
	ProcessLister                ProcessLister
}

// Build constructs the apps command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE:  builder.run,
	}

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, _ []string) error {
	logger := builder.resolveLogger()

	registry, registryError := NewRegistry(logger, builder.resolveConfiguration(), builder.ProcessLister)
	if registryError != nil {
		return registryError
	}

	recentIdentifiers, historyError := builder.loadRecentIdentifiers(logger)
	if historyError != nil {
		return historyError
	}

	applications := registry.List(command.Context(), recentIdentifiers)
	outputWriter := utils.NewFlushingWriter(command.OutOrStdout())
	if len(applications) == 0 {
		fmt.Fprint(outputWriter, noApplicationsMessageConstant)
		return nil
	}
	for _, application := range applications {
		displayLine := application.DisplayName
		if !application.IsRunning {
			displayLine += notRunningSuffixConstant
		}
		fmt.Fprintf(outputWriter, applicationLineTemplateConstant, displayLine)
	}

	return nil
}

func (builder *CommandBuilder) loadRecentIdentifiers(logger *zap.Logger) ([]string, error) {
	historyConfiguration := builder.resolveHistoryConfiguration()
	appStore, storeError := history.NewStore[history.AppUsageRecord](logger, historyConfiguration.AppHistoryFile, historyConfiguration.MaximumAppEntries)
	if storeError != nil {
		return nil, storeError
	}

	usageRecords := appStore.Records()
	recentIdentifiers := make([]string, 0, len(usageRecords))
	for _, usageRecord := range usageRecords {
		recentIdentifiers = append(recentIdentifiers, usageRecord.Identifier)
	}
	return recentIdentifiers, nil
}

func (builder *CommandBuilder) resolveConfiguration() Configuration {
	if builder.ConfigurationProvider == nil {
		return DefaultConfiguration().Sanitize()
	}
	return builder.ConfigurationProvider().Sanitize()
}

func (builder *CommandBuilder) resolveHistoryConfiguration() history.Configuration {
	if builder.HistoryConfigurationProvider == nil {
		return history.DefaultConfiguration().Sanitize()
	}
	return builder.HistoryConfigurationProvider().Sanitize()
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
