package endpoint

import "github.com/spf13/cobra"

// NewCommand returns the "endpoint" parent command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "endpoint",
		Short: "Manage evaluation endpoints",
		Long: `Manage the evaluation endpoints configured on the monitoring backend.

An evaluation endpoint binds a deployed model to the metrics and
population subgroups it is evaluated on.`,
	}

	cmd.AddCommand(ListCommand())
	cmd.AddCommand(CreateCommand())
	cmd.AddCommand(DeleteCommand())
	cmd.AddCommand(LogsCommand())

	return cmd
}
