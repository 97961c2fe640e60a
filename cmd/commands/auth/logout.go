package auth

import (
	"errors"
	"fmt"

	"modelwatch/cmd/commands/cmdutil"
	"modelwatch/internal/config"
	authsvc "modelwatch/internal/services/auth"

	"github.com/spf13/cobra"
)

func LogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the stored token for the configured backend",
		Run: func(cmd *cobra.Command, args []string) {
			cfg, err := config.Load()
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), err)
				return
			}
			if cfg.APIURL == "" {
				fmt.Fprintln(cmd.ErrOrStderr(), "no API URL configured")
				return
			}

			err = cmdutil.Store().DeleteToken(cfg.APIURL)
			if errors.Is(err, authsvc.ErrTokenNotFound) {
				fmt.Fprintf(cmd.OutOrStdout(), "No token stored for %s\n", cfg.APIURL)
				return
			}
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), err)
				return
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed token for %s\n", cfg.APIURL)
		},
	}
}
