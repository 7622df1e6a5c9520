package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	env "github.com/caarlos0/env/v11"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/kolah/paydoc/internal/model"
	"github.com/kolah/paydoc/internal/selector"
	"github.com/kolah/paydoc/internal/specerr"
	"github.com/spf13/cobra"
)

// DefaultFile is read from the working directory when no --config is given.
const DefaultFile = "paydoc.yaml"

// EnvPrefix prefixes every environment override.
const EnvPrefix = "PAYDOC_"

type Config struct {
	Version   string         `koanf:"version"`
	Features  []string       `koanf:"features"`
	OpenAPI   string         `koanf:"openapi"`
	Info      InfoConfig     `koanf:"info"`
	Servers   []ServerConfig `koanf:"servers"`
	Output    OutputConfig   `koanf:"output"`
	Lint      LintConfig     `koanf:"lint"`
	Templates TemplateConfig `koanf:"templates"`
}

type InfoConfig struct {
	Title       string `koanf:"title"`
	Description string `koanf:"description"`
}

type ServerConfig struct {
	URL         string `koanf:"url"`
	Description string `koanf:"description"`
}

type OutputConfig struct {
	Dir         string   `koanf:"dir"`
	File        string   `koanf:"file"`
	Format      string   `koanf:"format"`
	Package     string   `koanf:"package"`
	Initialisms []string `koanf:"initialisms"`
}

type LintConfig struct {
	Unreachable string `koanf:"unreachable"`
}

type TemplateConfig struct {
	Dir string `koanf:"dir"`
}

const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatGo   = "go"

	LintIgnore = "ignore"
	LintWarn   = "warn"
	LintError  = "error"
)

func defaults() map[string]any {
	features := make([]string, 0, len(selector.Features()))
	for _, f := range selector.Features() {
		features = append(features, string(f))
	}
	return map[string]any{
		"version":          string(model.V1),
		"features":         features,
		"openapi":          "3.0.3",
		"info.title":       "Payments API",
		"info.description": "Payments, refunds, payouts and related resources.",
		"servers": []map[string]any{
			{"url": "https://sandbox.payments.example.com", "description": "Sandbox"},
			{"url": "https://api.payments.example.com", "description": "Production"},
		},
		"output.dir":       ".",
		"output.format":    FormatJSON,
		"output.package":   "apidoc",
		"lint.unreachable": LintWarn,
	}
}

// envOverrides holds PAYDOC_* variables. Empty values are treated as unset.
type envOverrides struct {
	Version         string   `env:"VERSION"`
	Features        []string `env:"FEATURES" envSeparator:","`
	OpenAPI         string   `env:"OPENAPI"`
	InfoTitle       string   `env:"INFO_TITLE"`
	InfoDescription string   `env:"INFO_DESCRIPTION"`
	OutputDir       string   `env:"OUTPUT_DIR"`
	OutputFile      string   `env:"OUTPUT_FILE"`
	OutputFormat    string   `env:"OUTPUT_FORMAT"`
	OutputPackage   string   `env:"OUTPUT_PACKAGE"`
	LintUnreachable string   `env:"LINT_UNREACHABLE"`
	TemplatesDir    string   `env:"TEMPLATES_DIR"`
}

func (o envOverrides) toMap() map[string]any {
	m := make(map[string]any)
	set := func(key, v string) {
		if v != "" {
			m[key] = v
		}
	}
	set("version", o.Version)
	set("openapi", o.OpenAPI)
	set("info.title", o.InfoTitle)
	set("info.description", o.InfoDescription)
	set("output.dir", o.OutputDir)
	set("output.file", o.OutputFile)
	set("output.format", o.OutputFormat)
	set("output.package", o.OutputPackage)
	set("lint.unreachable", o.LintUnreachable)
	set("templates.dir", o.TemplatesDir)
	if o.Features != nil {
		m["features"] = trimAll(o.Features)
	}
	return m
}

// BindCommonFlags binds the flags shared by every command that assembles a document.
func BindCommonFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()

	flags.StringP("config", "c", "", "Config file path (default: paydoc.yaml)")
	flags.String("api-version", "", "API version to assemble: v1, v2")
	flags.StringSlice("features", nil, "Enabled features (empty to disable all optional features)")
	flags.String("openapi", "", "OpenAPI version written to the document")
	flags.String("title", "", "Document title")
	flags.String("lint-unreachable", "", "Unreachable schema handling: ignore, warn, error")
	flags.String("templates", "", "Custom templates directory")
	flags.BoolP("verbose", "v", false, "Log debug output")
}

// BindOutputFlags binds the flags of commands that write an artifact.
func BindOutputFlags(cmd *cobra.Command) {
	flags := cmd.Flags()

	flags.StringP("output-dir", "o", "", "Output directory")
	flags.String("output-file", "", "Output file name (default: openapi_<version>.<format>)")
	flags.StringP("format", "f", "", "Output format: json, yaml, go")
	flags.StringP("package", "p", "", "Go package name for the go format")
	flags.StringSlice("initialisms", nil, "Additional initialisms for generated Go identifiers")
	flags.Bool("dry-run", false, "Print output without writing files")
}

// Load layers defaults, the config file, PAYDOC_* environment variables and
// flags, in that order, and validates the result.
func Load(cmd *cobra.Command) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	configFile, _ := cmd.Flags().GetString("config")
	if configFile == "" {
		configFile, _ = cmd.PersistentFlags().GetString("config")
	}
	if configFile == "" {
		if _, err := os.Stat(DefaultFile); err == nil {
			configFile = DefaultFile
		}
	}

	if configFile != "" {
		if err := k.Load(file.Provider(configFile), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var overrides envOverrides
	if err := env.ParseWithOptions(&overrides, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}
	if m := overrides.toMap(); len(m) > 0 {
		if err := k.Load(confmap.Provider(m, "."), nil); err != nil {
			return nil, fmt.Errorf("loading environment: %w", err)
		}
	}

	flagsMap := buildFlagsMap(cmd)
	if len(flagsMap) > 0 {
		if err := k.Load(confmap.Provider(flagsMap, "."), nil); err != nil {
			return nil, fmt.Errorf("loading flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	cfg.Features = trimAll(cfg.Features)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func buildFlagsMap(cmd *cobra.Command) map[string]any {
	m := make(map[string]any)

	getString := func(name string) string {
		if v, err := cmd.Flags().GetString(name); err == nil && v != "" {
			return v
		}
		if v, err := cmd.PersistentFlags().GetString(name); err == nil && v != "" {
			return v
		}
		return ""
	}

	getStringSlice := func(name string) []string {
		if v, err := cmd.Flags().GetStringSlice(name); err == nil {
			return v
		}
		if v, err := cmd.PersistentFlags().GetStringSlice(name); err == nil {
			return v
		}
		return nil
	}

	flagChanged := func(name string) bool {
		return cmd.Flags().Changed(name) || cmd.PersistentFlags().Changed(name)
	}

	stringFlags := map[string]string{
		"api-version":      "version",
		"openapi":          "openapi",
		"title":            "info.title",
		"lint-unreachable": "lint.unreachable",
		"templates":        "templates.dir",
		"output-dir":       "output.dir",
		"output-file":      "output.file",
		"format":           "output.format",
		"package":          "output.package",
	}
	for flag, key := range stringFlags {
		if v := getString(flag); v != "" {
			m[key] = v
		}
	}

	// An explicitly empty --features disables every optional feature.
	if flagChanged("features") {
		m["features"] = getStringSlice("features")
	}
	if v := getStringSlice("initialisms"); len(v) > 0 {
		m["output.initialisms"] = v
	}

	return m
}

func (c *Config) Validate() error {
	if !model.APIVersion(c.Version).Valid() {
		return &specerr.ConfigError{Option: "version", Value: c.Version, Message: "valid: v1, v2"}
	}
	if _, err := selector.ParseFeatures(c.Features); err != nil {
		return err
	}
	if !strings.HasPrefix(c.OpenAPI, "3.0.") {
		return &specerr.ConfigError{Option: "openapi", Value: c.OpenAPI, Message: "only 3.0.x documents are produced"}
	}
	if c.Info.Title == "" {
		return &specerr.ConfigError{Option: "info.title", Message: "title is required"}
	}
	for i, s := range c.Servers {
		if s.URL == "" {
			return &specerr.ConfigError{Option: fmt.Sprintf("servers[%d].url", i), Message: "url is required"}
		}
	}

	validFormats := map[string]bool{FormatJSON: true, FormatYAML: true, FormatGo: true}
	if !validFormats[c.Output.Format] {
		return &specerr.ConfigError{Option: "output.format", Value: c.Output.Format, Message: "valid: json, yaml, go"}
	}
	if c.Output.Format == FormatGo && c.Output.Package == "" {
		return &specerr.ConfigError{Option: "output.package", Message: "package name is required for the go format"}
	}
	if c.Output.Dir == "" {
		return &specerr.ConfigError{Option: "output.dir", Message: "output directory is required"}
	}
	if c.Output.File != "" && filepath.Base(c.Output.File) != c.Output.File {
		return &specerr.ConfigError{Option: "output.file", Value: c.Output.File, Message: "must be a file name, not a path"}
	}

	validLint := map[string]bool{LintIgnore: true, LintWarn: true, LintError: true}
	if !validLint[c.Lint.Unreachable] {
		return &specerr.ConfigError{Option: "lint.unreachable", Value: c.Lint.Unreachable, Message: "valid: ignore, warn, error"}
	}

	return nil
}

func (c *Config) APIVersion() model.APIVersion {
	return model.APIVersion(c.Version)
}

// EnabledFeatures returns the parsed feature list. Load has already validated it.
func (c *Config) EnabledFeatures() []selector.Feature {
	features, _ := selector.ParseFeatures(c.Features)
	return features
}

// Filename is the artifact name: output.file, or openapi_<version>.<format>.
func (c *Config) Filename() string {
	if c.Output.File != "" {
		return c.Output.File
	}
	return "openapi_" + c.Version + "." + c.Output.Format
}

func (c *Config) OutputPath() string {
	return filepath.Join(c.Output.Dir, c.Filename())
}

func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
