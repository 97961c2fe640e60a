package auth

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"modelwatch/cmd/commands/cmdutil"
	"modelwatch/internal/config"

	"golang.org/x/term"

	"github.com/spf13/cobra"
)

func LoginCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to the configured monitoring backend",
		Long: `Log in to the configured monitoring backend and store the issued
access token in the local keychain. Deployments that verify credentials
without issuing tokens still get a login check.

Example:
  modelwatch auth login --username hospital1`,
		Run: func(cmd *cobra.Command, args []string) {
			cfg, err := config.Load()
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), err)
				return
			}
			if cfg.APIURL == "" {
				fmt.Fprintln(cmd.ErrOrStderr(), "no API URL configured: run 'modelwatch config set api-url <url>'")
				return
			}

			username, _ := cmd.Flags().GetString("username")
			username = strings.TrimSpace(username)
			if username == "" {
				fmt.Fprint(cmd.OutOrStdout(), "Username: ")
				reader := bufio.NewReader(cmd.InOrStdin())
				line, err := reader.ReadString('\n')
				if err != nil {
					fmt.Fprintln(cmd.ErrOrStderr(), err)
					return
				}
				username = strings.TrimSpace(line)
			}
			if username == "" {
				fmt.Fprintln(cmd.ErrOrStderr(), "username cannot be empty")
				return
			}

			password, _ := cmd.Flags().GetString("password")
			password = strings.TrimSpace(password)
			if password == "" {
				fmt.Fprint(os.Stdout, "Password: ")
				bytes, err := term.ReadPassword(int(os.Stdin.Fd()))
				fmt.Fprintln(os.Stdout)
				if err != nil {
					fmt.Fprintln(cmd.ErrOrStderr(), err)
					return
				}
				password = strings.TrimSpace(string(bytes))
			}
			if password == "" {
				fmt.Fprintln(cmd.ErrOrStderr(), "password cannot be empty")
				return
			}

			client, err := cmdutil.Dial()
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), err)
				return
			}

			result, err := client.Login(context.Background(), username, password)
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Login failed: %v\n", err)
				return
			}

			if result.AccessToken != "" {
				if err := cmdutil.Store().SetToken(cfg.APIURL, result.AccessToken); err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "Login succeeded but storing the token failed: %v\n", err)
					return
				}
			}

			msg := result.Message
			if msg == "" {
				msg = "Login successful"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", msg, cfg.APIURL)
		},
	}

	cmd.Flags().String("username", "", "Username (optional, overrides prompt)")
	cmd.Flags().String("password", "", "Password (optional, overrides prompt)")

	return cmd
}
