package config

import (
	"modelwatch/internal/config"

	"github.com/spf13/cobra"
)

// NewCommand returns the "config" parent command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage modelwatch configuration",
		Long: "View and modify persistent modelwatch settings.\n\n" +
			"Configuration is stored at ~/.config/modelwatch/config.json.\n\n" +
			"Keys:\n" + config.Describe(),
	}

	cmd.AddCommand(SetCommand())
	cmd.AddCommand(GetCommand())

	return cmd
}
