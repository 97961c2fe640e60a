package cmd

import (
	"os"

	"modelwatch/cmd/commands/audit"
	"modelwatch/cmd/commands/auth"
	cfgcmd "modelwatch/cmd/commands/config"
	"modelwatch/cmd/commands/dashboard"
	"modelwatch/cmd/commands/endpoint"
	"modelwatch/cmd/commands/evaluate"
	"modelwatch/cmd/commands/metrics"
	"modelwatch/cmd/commands/model"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands.
func rootCmd() *cobra.Command {
	var cmd = &cobra.Command{
		Use:   "modelwatch",
		Short: "A CLI dashboard for monitoring clinical ML models",
		Long: `modelwatch is a command-line dashboard for a clinical model monitoring
backend. It shows per-model performance, safety, and operational health,
manages evaluation endpoints, and triggers evaluation runs.

Quick start:
  modelwatch config set api-url http://localhost:8000
  modelwatch endpoint list                 # List evaluation endpoints
  modelwatch dashboard                     # Interactive dashboard
  modelwatch metrics overview sepsis-triage
  modelwatch model safety sepsis_xgb_v2`,
	}

	cmd.AddCommand(auth.NewCommand())
	cmd.AddCommand(cfgcmd.NewCommand())
	cmd.AddCommand(endpoint.NewCommand())
	cmd.AddCommand(metrics.NewCommand())
	cmd.AddCommand(model.NewCommand())
	cmd.AddCommand(evaluate.NewCommand())
	cmd.AddCommand(dashboard.NewCommand())
	cmd.AddCommand(audit.NewCommand())

	return cmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	var root = rootCmd()
	err := root.Execute()
	if err != nil {
		os.Exit(1)
	}
}
