package auth

import (
	"context"
	"errors"
	"fmt"

	"modelwatch/cmd/commands/cmdutil"
	"modelwatch/internal/config"
	authsvc "modelwatch/internal/services/auth"

	"github.com/spf13/cobra"
)

func StatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show authentication and backend connectivity status",
		Run: func(cmd *cobra.Command, args []string) {
			cfg, err := config.Load()
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), err)
				return
			}
			if cfg.APIURL == "" {
				fmt.Fprintln(cmd.OutOrStdout(), "Backend: not configured (run 'modelwatch config set api-url <url>')")
				return
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Backend: %s\n", cfg.APIURL)

			_, err = cmdutil.Store().GetToken(cfg.APIURL)
			switch {
			case errors.Is(err, authsvc.ErrTokenNotFound):
				fmt.Fprintln(cmd.OutOrStdout(), "Token:   none stored")
			case err != nil:
				fmt.Fprintf(cmd.OutOrStdout(), "Token:   unavailable (%v)\n", err)
			default:
				fmt.Fprintln(cmd.OutOrStdout(), "Token:   stored")
			}

			client, err := cmdutil.Dial()
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
				return
			}
			if err := client.Ping(context.Background()); err != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "Reachable: no (%v)\n", err)
				return
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Reachable: yes")
		},
	}
}
