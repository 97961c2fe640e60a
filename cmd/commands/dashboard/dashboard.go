// Package dashboard launches the interactive terminal dashboard.
package dashboard

import (
	"errors"

	"modelwatch/cmd/commands/cmdutil"
	"modelwatch/internal/config"
	"modelwatch/internal/tui"

	"github.com/spf13/cobra"
)

func NewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Open the interactive monitoring dashboard",
		Long: `Open the interactive terminal dashboard: browse evaluation endpoints,
drill into per-model performance, trends, safety, and health.`,
		RunE:         runDashboard,
		SilenceUsage: true,
	}
}

func runDashboard(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.APIURL == "" {
		return errors.New("no API URL configured: run 'modelwatch config set api-url <url>'")
	}

	client, err := cmdutil.Dial()
	if err != nil {
		return err
	}

	return tui.RunDashboard(client, cfg.APIURL)
}
