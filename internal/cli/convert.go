package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/apiforge/ramlgen/internal/convert"
)

// ConvertConfig captures the options for the convert command.
type ConvertConfig struct {
	Input   string
	BaseDir string
	Out     string
	Format  string
	Force   bool
	Verbose bool
}

var convertRunner = runConvert

func newConvertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert a RAML specification to an OpenAPI 3 document",
		Example: strings.TrimSpace(`  ramlgen convert --input api.raml --out api.openapi.yaml
  ramlgen convert --input api.raml --format json --out -`),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := &ConvertConfig{}
			var err error
			if cfg.Input, err = cmd.Flags().GetString("input"); err != nil {
				return err
			}
			if cfg.BaseDir, err = cmd.Flags().GetString("base-dir"); err != nil {
				return err
			}
			if cfg.Out, err = cmd.Flags().GetString("out"); err != nil {
				return err
			}
			if cfg.Format, err = cmd.Flags().GetString("format"); err != nil {
				return err
			}
			if cfg.Force, err = cmd.Flags().GetBool("force"); err != nil {
				return err
			}
			if cfg.Verbose, err = cmd.Root().PersistentFlags().GetBool("verbose"); err != nil {
				cfg.Verbose = false
			}
			return convertRunner(cmd.Context(), cfg)
		},
	}

	flags := cmd.Flags()
	flags.String("input", "", "Path to the RAML specification file")
	flags.String("base-dir", "", "Directory for resolving !include paths (defaults to the input file's directory)")
	flags.String("out", "", "Output file; \"-\" writes to stdout (derived from input when omitted)")
	flags.String("format", "yaml", "Output format (yaml|json)")
	flags.Bool("force", false, "Overwrite the output file if it already exists")

	return cmd
}

func runConvert(ctx context.Context, cfg *ConvertConfig) error {
	_ = ctx

	input := strings.TrimSpace(cfg.Input)
	if input == "" {
		return newUsageError("convert: --input is required")
	}
	format := strings.ToLower(strings.TrimSpace(cfg.Format))
	if format == "" {
		format = "yaml"
	}
	if format != "yaml" && format != "json" {
		return newUsageError(fmt.Sprintf("convert: unsupported --format %q (allowed: yaml, json)", format))
	}

	spec, err := loadSpec(input, strings.TrimSpace(cfg.BaseDir), cfg.Verbose)
	if err != nil {
		return err
	}

	doc, err := convert.ToOpenAPI(spec)
	if err != nil {
		return err
	}

	var out []byte
	if format == "json" {
		if out, err = doc.MarshalJSON(); err != nil {
			return fmt.Errorf("convert: marshal document: %w", err)
		}
		out = append(out, '\n')
	} else {
		if out, err = convert.ToYAML(doc); err != nil {
			return err
		}
	}

	target := strings.TrimSpace(cfg.Out)
	if target == "-" {
		_, err = os.Stdout.Write(out)
		return err
	}
	if target == "" {
		ext := ".openapi." + format
		target = strings.TrimSuffix(input, filepath.Ext(input)) + ext
	}

	if _, err := os.Stat(target); err == nil && !cfg.Force {
		return newUsageError(fmt.Sprintf("convert: %q already exists (use --force to overwrite)", target))
	}
	if err := os.WriteFile(target, out, 0o644); err != nil {
		return newUsageError(fmt.Sprintf("convert: write %q: %v", target, err))
	}
	fmt.Fprintf(os.Stdout, "Wrote OpenAPI document to %s\n", target)
	return nil
}
