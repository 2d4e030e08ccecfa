package history

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/okanin/summon/internal/utils"
	flagutils "github.com/okanin/summon/internal/utils/flags"
)

const (
	commandUseConstant              = "history"
	commandShortDescriptionConstant = "Show recently used commands and applications"
	commandLongDescriptionConstant  = "history prints the most recent launcher submissions, newest first."

	commandsSubcommandUseConstant              = "commands"
	commandsSubcommandShortDescriptionConstant = "List recently executed shell commands"
	appsSubcommandUseConstant                  = "apps"
	appsSubcommandShortDescriptionConstant     = "List recently launched applications"

	defaultRecentEntryLimitConstant = 10

	commandEntryTemplateConstant = "%s\n"
	appEntryTemplateConstant     = "%s (launches: %d)\n"
	noCommandsMessageConstant    = "No recent commands\n"
	noAppsMessageConstant        = "No recent applications\n"
)

// LoggerProvider supplies a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the history command with its list subcommands.
type CommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider func() Configuration
}

// Build constructs the history command tree.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	historyCommand := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
	}

	commandsCommand := &cobra.Command{
		Use:   commandsSubcommandUseConstant,
		Short: commandsSubcommandShortDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE:  builder.runCommands,
	}
	flagutils.BindHistoryLimitFlag(commandsCommand, flagutils.HistoryLimitFlagValues{Limit: defaultRecentEntryLimitConstant}, flagutils.HistoryLimitFlagDefinition{Enabled: true})

	appsCommand := &cobra.Command{
		Use:   appsSubcommandUseConstant,
		Short: appsSubcommandShortDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE:  builder.runApps,
	}
	flagutils.BindHistoryLimitFlag(appsCommand, flagutils.HistoryLimitFlagValues{Limit: defaultRecentEntryLimitConstant}, flagutils.HistoryLimitFlagDefinition{Enabled: true})

	historyCommand.AddCommand(commandsCommand, appsCommand)

	return historyCommand, nil
}

func (builder *CommandBuilder) runCommands(command *cobra.Command, _ []string) error {
	configuration := builder.resolveConfiguration()

	commandStore, storeError := NewStore[CommandRecord](builder.resolveLogger(), configuration.CommandHistoryFile, configuration.MaximumCommandEntries)
	if storeError != nil {
		return storeError
	}

	recentRecords := commandStore.RecentRecords(resolveEntryLimit(command))
	outputWriter := utils.NewFlushingWriter(command.OutOrStdout())
	if len(recentRecords) == 0 {
		fmt.Fprint(outputWriter, noCommandsMessageConstant)
		return nil
	}
	for _, record := range recentRecords {
		fmt.Fprintf(outputWriter, commandEntryTemplateConstant, record.Text)
	}

	return nil
}

func (builder *CommandBuilder) runApps(command *cobra.Command, _ []string) error {
	configuration := builder.resolveConfiguration()

	appStore, storeError := NewStore[AppUsageRecord](builder.resolveLogger(), configuration.AppHistoryFile, configuration.MaximumAppEntries)
	if storeError != nil {
		return storeError
	}

	recentRecords := appStore.RecentRecords(resolveEntryLimit(command))
	outputWriter := utils.NewFlushingWriter(command.OutOrStdout())
	if len(recentRecords) == 0 {
		fmt.Fprint(outputWriter, noAppsMessageConstant)
		return nil
	}
	for _, record := range recentRecords {
		fmt.Fprintf(outputWriter, appEntryTemplateConstant, record.Identifier, record.Count)
	}

	return nil
}

func resolveEntryLimit(command *cobra.Command) int {
	limitValue, _ := command.Flags().GetInt(flagutils.HistoryLimitFlagName)
	if limitValue <= 0 {
		limitValue = defaultRecentEntryLimitConstant
	}
	return limitValue
}

func (builder *CommandBuilder) resolveConfiguration() Configuration {
	if builder.ConfigurationProvider == nil {
		return DefaultConfiguration().Sanitize()
	}
	return builder.ConfigurationProvider().Sanitize()
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
