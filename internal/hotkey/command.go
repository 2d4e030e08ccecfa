package hotkey

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/okanin/summon/internal/utils"
)

const (
	commandUseConstant              = "hotkey"
	commandShortDescriptionConstant = "Show the configured launcher hotkey"
	commandLongDescriptionConstant  = "hotkey resolves the configured chord and prints its canonical form with the virtual key code."

	chordSummaryTemplateConstant = "Hotkey: %s (key code %d)\n"
)

// CommandBuilder assembles the hotkey diagnostics command.
type CommandBuilder struct {
	ConfigurationProvider func() Configuration
}

// Build constructs the hotkey command.
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
	configuration := builder.resolveConfiguration()
	parsedChord, parseError := ParseChord(configuration.Modifiers, configuration.Key)
	if parseError != nil {
		return parseError
	}

	outputWriter := utils.NewFlushingWriter(command.OutOrStdout())
	fmt.Fprintf(outputWriter, chordSummaryTemplateConstant, parsedChord.String(), parsedChord.KeyCode)
	return nil
}

func (builder *CommandBuilder) resolveConfiguration() Configuration {
	if builder.ConfigurationProvider == nil {
		return DefaultConfiguration().Sanitize()
	}
	return builder.ConfigurationProvider().Sanitize()
}
