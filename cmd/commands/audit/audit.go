// Package audit implements the local audit trail commands. Every mutating
// operation the CLI performs is recorded in a local SQLite database so a
// deployment can answer who changed what even when the backend's own logs
// are unavailable.
package audit

import (
	"github.com/spf13/cobra"
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Inspect the local audit trail",
		Long: `Inspect the local audit trail of administrative and evaluation
operations. Entries are stored in ~/.config/modelwatch/modelwatch.db.`,
	}

	cmd.AddCommand(ListCommand())
	cmd.AddCommand(PruneCommand())

	return cmd
}
