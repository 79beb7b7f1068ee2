package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Execute runs the ramlgen CLI.
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd constructs the root command so tests can exercise the CLI easily.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "ramlgen",
		Short:         "Generate client, server, and test code from RAML specs",
		Long:          "ramlgen parses a RAML API specification and generates a Python requests client, a Flask route/model skeleton, and a pytest suite, or converts the spec to OpenAPI 3.",
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	// Convert Cobra flag errors (like unknown flags) into friendly usage errors
	// that also show the command's help text.
	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return newUsageError(fmt.Sprintf("%v\n\n%s", err, c.UsageString()))
	})

	cmd.PersistentFlags().StringP("config", "c", "", "Config file path (YAML)")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging output")

	for _, sub := range []*cobra.Command{newGenerateCmd(), newConvertCmd(), newInitCmd()} {
		sub.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
			return newUsageError(fmt.Sprintf("%v\n\n%s", err, c.UsageString()))
		})
		cmd.AddCommand(sub)
	}

	return cmd
}
