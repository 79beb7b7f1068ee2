package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/apiforge/ramlgen/internal/emitter"
	"github.com/apiforge/ramlgen/internal/emitter/clientemitter"
	"github.com/apiforge/ramlgen/internal/emitter/flaskemitter"
	"github.com/apiforge/ramlgen/internal/emitter/pytestemitter"
	"github.com/apiforge/ramlgen/internal/raml"
)

// GenerateConfig captures all inputs that influence the generate command
// after merging defaults, config file values, and CLI overrides.
type GenerateConfig struct {
	Input      string
	BaseDir    string
	Out        string
	ToolName   string
	Client     bool
	Server     bool
	Tests      bool
	ConfigPath string
	DryRun     bool
	Force      bool
	Verbose    bool
}

var generateRunner = runGenerate

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate code artifacts from a RAML specification",
		Long: "Generate a Python requests client, a Flask skeleton, and a pytest suite from a RAML specification. " +
			"Options can be provided via flags, config files, or defaults.",
		Example: strings.TrimSpace(`  ramlgen generate --input api.raml --out ./out
  ramlgen generate --input api.raml --client --tests
  ramlgen --config config.yaml generate --force --dry-run`),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveGenerateConfig(cmd)
			if err != nil {
				return err
			}
			return generateRunner(cmd.Context(), cfg)
		},
	}

	flags := cmd.Flags()
	flags.String("input", "", "Path to the RAML specification file")
	flags.String("base-dir", "", "Directory for resolving !include paths (defaults to the input file's directory)")
	flags.String("out", "", "Output directory (derived from spec when omitted)")
	flags.String("tool-name", "", "Override the generated artifact base name")
	flags.Bool("client", false, "Generate the Python client")
	flags.Bool("server", false, "Generate the Flask server skeleton")
	flags.Bool("tests", false, "Generate the pytest suite")
	flags.Bool("dry-run", false, "Preview planned outputs without writing files")
	flags.Bool("force", false, "Overwrite existing output when set")

	return cmd
}

func resolveGenerateConfig(cmd *cobra.Command) (*GenerateConfig, error) {
	cfg := GenerateConfig{}

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	configPath = strings.TrimSpace(configPath)
	if configPath != "" {
		cfg.ConfigPath = configPath
		if err := applyGenerateConfigFromFile(&cfg, configPath); err != nil {
			return nil, err
		}
	}

	if err := applyGenerateFlagOverrides(cmd.Flags(), &cfg); err != nil {
		return nil, err
	}

	cfg.normalize()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func applyGenerateFlagOverrides(flags *pflag.FlagSet, cfg *GenerateConfig) error {
	stringFlags := map[string]*string{
		"input":     &cfg.Input,
		"base-dir":  &cfg.BaseDir,
		"out":       &cfg.Out,
		"tool-name": &cfg.ToolName,
	}
	for name, dst := range stringFlags {
		if !flags.Changed(name) {
			continue
		}
		value, err := flags.GetString(name)
		if err != nil {
			return err
		}
		*dst = strings.TrimSpace(value)
	}

	boolFlags := map[string]*bool{
		"client":  &cfg.Client,
		"server":  &cfg.Server,
		"tests":   &cfg.Tests,
		"dry-run": &cfg.DryRun,
		"force":   &cfg.Force,
		"verbose": &cfg.Verbose,
	}
	for name, dst := range boolFlags {
		if !flags.Changed(name) {
			continue
		}
		value, err := flags.GetBool(name)
		if err != nil {
			return err
		}
		*dst = value
	}

	return nil
}

func (c *GenerateConfig) normalize() {
	c.Input = strings.TrimSpace(c.Input)
	c.BaseDir = strings.TrimSpace(c.BaseDir)
	c.Out = strings.TrimSpace(c.Out)
	c.ToolName = strings.TrimSpace(c.ToolName)
	// No artifact selection means all three.
	if !c.Client && !c.Server && !c.Tests {
		c.Client, c.Server, c.Tests = true, true, true
	}
}

func (c *GenerateConfig) validate() error {
	if c.Input == "" {
		return newUsageError("generate: --input is required (set via flag or config file)")
	}
	return nil
}

func runGenerate(ctx context.Context, cfg *GenerateConfig) error {
	spec, err := loadSpec(cfg.Input, cfg.BaseDir, cfg.Verbose)
	if err != nil {
		return err
	}

	toolName := resolveToolName(cfg.ToolName, spec.Title)
	base := strings.ReplaceAll(toolName, "-", "_")

	files := map[string][]byte{}
	if cfg.Client {
		src, err := clientemitter.Render(ctx, spec)
		if err != nil {
			return fmt.Errorf("generate client: %w", err)
		}
		files[base+"_client.py"] = []byte(src)
	}
	if cfg.Server {
		src, err := flaskemitter.Render(ctx, spec)
		if err != nil {
			return fmt.Errorf("generate server: %w", err)
		}
		files["app.py"] = []byte(src)
	}
	if cfg.Tests {
		src, err := pytestemitter.Render(ctx, spec)
		if err != nil {
			return fmt.Errorf("generate tests: %w", err)
		}
		files["test_"+base+".py"] = []byte(src)
	}

	outDir := cfg.Out
	if outDir == "" {
		outDir = toolName
	}
	absOut := outDir
	if ap, err := filepath.Abs(outDir); err == nil {
		absOut = ap
	}

	if cfg.DryRun {
		planned := emitter.Plan(files)
		fmt.Fprintf(os.Stdout, "Planned writes to %s (%d files):\n", absOut, len(planned))
		for _, p := range planned {
			fmt.Fprintf(os.Stdout, "- %s\n", p.RelPath)
		}
		return emitter.ValidateOutputDir(absOut, cfg.Force)
	}

	if err := emitter.WriteFiles(outDir, files, cfg.Force); err != nil {
		return wrapOutputError(err, absOut)
	}
	return nil
}

// loadSpec reads the RAML file and parses it, mapping parser errors into
// friendly usage errors.
func loadSpec(input, baseDir string, verbose bool) (*raml.NormalizedSpec, error) {
	data, err := os.ReadFile(input)
	if err != nil {
		return nil, newUsageError(fmt.Sprintf("read spec %q: %v", input, err))
	}
	if baseDir == "" {
		baseDir = filepath.Dir(input)
	}

	level := slog.LevelWarn
	if verbose {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	spec, err := raml.Parse(string(data), raml.WithBaseDir(baseDir), raml.WithLogger(logger))
	if err != nil {
		var re *raml.RAMLError
		if errors.As(err, &re) {
			msg := fmt.Sprintf("spec: %s", re.Message)
			if re.Location != "" {
				msg = fmt.Sprintf("%s\nLocation: %s", msg, re.Location)
			}
			return nil, newUsageError(msg)
		}
		return nil, err
	}
	return spec, nil
}

func resolveToolName(override, title string) string {
	name := sanitizeToolName(override)
	if name == "" {
		name = deriveToolName(title)
	}
	if name == "" {
		name = "generated-api"
	}
	return name
}

func wrapOutputError(err error, outDir string) error {
	// Provide clearer guidance for common FS failures.
	msg := err.Error()
	lower := strings.ToLower(msg)
	if strings.Contains(lower, "permission") || strings.Contains(lower, "read-only") || strings.Contains(lower, "mkdir") || strings.Contains(lower, "rename") || strings.Contains(lower, "output directory") {
		return newUsageError(fmt.Sprintf("output error for %s: %s\nHint: choose a different --out or use --force when appropriate.", outDir, msg))
	}
	return err
}

func sanitizeToolName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	name = strings.ReplaceAll(name, " ", "-")
	name = strings.ReplaceAll(name, "/", "-")
	name = strings.ToLower(name)
	var b strings.Builder
	for _, r := range name {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			b.WriteRune(r)
		}
	}
	return strings.Trim(b.String(), "-")
}

func deriveToolName(title string) string {
	t := strings.TrimSpace(title)
	if t == "" {
		return ""
	}
	t = strings.ToLower(t)
	repl := strings.NewReplacer("/", " ", "_", " ", ".", " ", ",", " ", ":", " ")
	t = repl.Replace(t)
	parts := strings.Fields(t)
	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, "-")
}

func applyGenerateConfigFromFile(cfg *GenerateConfig, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return newUsageError(fmt.Sprintf("read config file %q: %v", path, err))
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return newUsageError(fmt.Sprintf("parse config file %q: %v", path, err))
	}

	for key, value := range raw {
		switch normalizeKey(key) {
		case "input":
			str, err := valueAsString(value)
			if err != nil {
				return newUsageError(fmt.Sprintf("config field %q: %v", key, err))
			}
			cfg.Input = str
		case "basedir":
			str, err := valueAsString(value)
			if err != nil {
				return newUsageError(fmt.Sprintf("config field %q: %v", key, err))
			}
			cfg.BaseDir = str
		case "out":
			str, err := valueAsString(value)
			if err != nil {
				return newUsageError(fmt.Sprintf("config field %q: %v", key, err))
			}
			cfg.Out = str
		case "toolname":
			str, err := valueAsString(value)
			if err != nil {
				return newUsageError(fmt.Sprintf("config field %q: %v", key, err))
			}
			cfg.ToolName = str
		case "client":
			val, err := valueAsBool(value)
			if err != nil {
				return newUsageError(fmt.Sprintf("config field %q: %v", key, err))
			}
			cfg.Client = val
		case "server":
			val, err := valueAsBool(value)
			if err != nil {
				return newUsageError(fmt.Sprintf("config field %q: %v", key, err))
			}
			cfg.Server = val
		case "tests":
			val, err := valueAsBool(value)
			if err != nil {
				return newUsageError(fmt.Sprintf("config field %q: %v", key, err))
			}
			cfg.Tests = val
		case "dryrun":
			val, err := valueAsBool(value)
			if err != nil {
				return newUsageError(fmt.Sprintf("config field %q: %v", key, err))
			}
			cfg.DryRun = val
		case "force":
			val, err := valueAsBool(value)
			if err != nil {
				return newUsageError(fmt.Sprintf("config field %q: %v", key, err))
			}
			cfg.Force = val
		case "verbose":
			val, err := valueAsBool(value)
			if err != nil {
				return newUsageError(fmt.Sprintf("config field %q: %v", key, err))
			}
			cfg.Verbose = val
		default:
			return newUsageError(fmt.Sprintf("config file %q: unknown field %q", path, key))
		}
	}

	return nil
}

func normalizeKey(raw string) string {
	lowered := strings.ToLower(strings.TrimSpace(raw))
	lowered = strings.ReplaceAll(lowered, "-", "")
	lowered = strings.ReplaceAll(lowered, "_", "")
	return lowered
}

func valueAsString(v any) (string, error) {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val), nil
	case nil:
		return "", nil
	default:
		return "", fmt.Errorf("expected string, got %T", v)
	}
}

func valueAsBool(v any) (bool, error) {
	switch val := v.(type) {
	case bool:
		return val, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(val)) {
		case "true", "t", "1", "yes", "y":
			return true, nil
		case "false", "f", "0", "no", "n", "":
			return false, nil
		default:
			return false, fmt.Errorf("invalid boolean value %q", val)
		}
	case nil:
		return false, nil
	default:
		return false, fmt.Errorf("expected boolean, got %T", v)
	}
}
