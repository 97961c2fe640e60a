package config

import (
	"fmt"
	"net/url"
	"strings"

	"modelwatch/internal/config"
	"modelwatch/internal/util"

	"github.com/spf13/cobra"
)

// SetCommand returns the "config set" command.
func SetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Long: "Set a persistent configuration value.\n\n" +
			"Keys:\n" + config.Describe() +
			"\nExamples:\n" +
			"  modelwatch config set api-url http://localhost:8000\n" +
			"  modelwatch config set default-endpoint sepsis-triage",
		Args: cobra.ExactArgs(2),
		Run:  runSet,
	}
}

// validators maps key names to optional pre-save validation functions.
// Keys not present in this map have no extra validation.
var validators = map[string]func(cmd *cobra.Command, value string) error{
	"api-url":          validateAPIURL,
	"default-endpoint": validateEndpoint,
}

func runSet(cmd *cobra.Command, args []string) {
	key := util.NormalizeKey(args[0])
	value := strings.TrimSpace(args[1])

	spec := config.Lookup(key)
	if spec == nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: unknown configuration key %q\n", args[0])
		fmt.Fprintf(cmd.ErrOrStderr(), "Valid keys: %s\n", strings.Join(config.KeyNames(), ", "))
		return
	}

	if validate, ok := validators[spec.Name]; ok {
		if err := validate(cmd, value); err != nil {
			return // validate already printed the error
		}
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		return
	}

	spec.Set(cfg, value)
	if err := cfg.Save(); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		return
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s set to %q\n", spec.Name, spec.Get(cfg))
}

// validateAPIURL checks that the value parses as an absolute http(s) URL.
func validateAPIURL(cmd *cobra.Command, value string) error {
	u, err := url.Parse(value)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %q is not a valid http(s) URL\n", value)
		return fmt.Errorf("invalid api-url %q", value)
	}
	return nil
}

// validateEndpoint applies the same naming rules the backend enforces.
func validateEndpoint(cmd *cobra.Command, value string) error {
	if err := util.ValidateEndpointName(value); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		return err
	}
	return nil
}
