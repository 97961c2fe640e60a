package endpoint

import (
	"context"
	"errors"
	"fmt"
	"time"

	"modelwatch/cmd/commands/cmdutil"
	"modelwatch/internal/auditlog"
	"modelwatch/internal/tui"

	"github.com/spf13/cobra"
)

func DeleteCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <endpoint-name>",
		Short: "Delete an evaluation endpoint",
		Long: `Delete an evaluation endpoint from the backend.

Deletion removes the endpoint's configuration and its evaluation history.
Without --yes a confirmation prompt is shown first.

Examples:
  modelwatch endpoint delete sepsis-prod
  modelwatch endpoint delete sepsis-prod --yes`,
		Args:         cobra.ExactArgs(1),
		RunE:         runDelete,
		SilenceUsage: true,
	}

	cmd.Flags().Bool("yes", false, "Skip the confirmation prompt")

	return cmd
}

func runDelete(cmd *cobra.Command, args []string) error {
	name := args[0]

	skipConfirm, _ := cmd.Flags().GetBool("yes")
	if !skipConfirm {
		confirmed, err := tui.ConfirmDelete(name)
		if err != nil {
			if errors.Is(err, tui.ErrAborted) {
				fmt.Fprintln(cmd.ErrOrStderr(), "Deletion cancelled.")
				return nil
			}
			return err
		}
		if !confirmed {
			fmt.Fprintln(cmd.ErrOrStderr(), "Deletion cancelled.")
			return nil
		}
	}

	svc, backend, err := cmdutil.Service()
	if err != nil {
		return err
	}

	start := time.Now()
	message, err := svc.DeleteEndpoint(context.Background(), name)
	auditlog.Record(&auditlog.AuditEntry{
		Command:    "endpoint delete",
		Backend:    backend,
		Endpoint:   name,
		Outcome:    auditlog.Outcome(err),
		Detail:     detailFor(err, message),
		DurationMs: auditlog.Since(start),
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s\n", message)
	return nil
}
