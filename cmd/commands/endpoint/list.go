package endpoint

import (
	"context"
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"modelwatch/cmd/commands/cmdutil"

	"github.com/spf13/cobra"
)

func ListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List evaluation endpoints",
		Long: `List every evaluation endpoint configured on the backend.

Examples:
  modelwatch endpoint list
  modelwatch endpoint list -o json`,
		RunE:         runList,
		SilenceUsage: true,
	}

	cmd.Flags().StringP("output", "o", "table", "Output format: table or json")

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	svc, _, err := cmdutil.Service()
	if err != nil {
		return err
	}

	endpoints, err := svc.ListEndpoints(context.Background())
	if err != nil {
		return err
	}

	output, _ := cmd.Flags().GetString("output")
	if output == "json" {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(endpoints)
	}
	if output != "table" {
		return fmt.Errorf("unsupported output format %q", output)
	}

	if len(endpoints) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No evaluation endpoints configured.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ENDPOINT\tMODEL\tDESCRIPTION")
	fmt.Fprintln(w, "--------\t-----\t-----------")
	for _, e := range endpoints {
		desc := e.ModelDescription
		if desc == "" {
			desc = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", e.EndpointName, e.ModelName, desc)
	}
	return w.Flush()
}
