package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kolah/paydoc/internal/model"
	"github.com/kolah/paydoc/internal/selector"
	"github.com/kolah/paydoc/internal/specerr"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	return Config{
		Version:  "v1",
		Features: []string{"refunds"},
		OpenAPI:  "3.0.3",
		Info:     InfoConfig{Title: "Payments API"},
		Output:   OutputConfig{Dir: ".", Format: FormatJSON},
		Lint:     LintConfig{Unreachable: LintWarn},
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(c *Config)
		wantErr     bool
		errContains string
	}{
		{
			name:   "valid config",
			mutate: func(c *Config) {},
		},
		{
			name:        "unknown version",
			mutate:      func(c *Config) { c.Version = "v3" },
			wantErr:     true,
			errContains: "version (value: v3)",
		},
		{
			name:        "unknown feature",
			mutate:      func(c *Config) { c.Features = []string{"disputes"} },
			wantErr:     true,
			errContains: "disputes",
		},
		{
			name:   "no features",
			mutate: func(c *Config) { c.Features = nil },
		},
		{
			name:        "openapi 3.1",
			mutate:      func(c *Config) { c.OpenAPI = "3.1.0" },
			wantErr:     true,
			errContains: "openapi",
		},
		{
			name:        "missing title",
			mutate:      func(c *Config) { c.Info.Title = "" },
			wantErr:     true,
			errContains: "title is required",
		},
		{
			name:        "server without url",
			mutate:      func(c *Config) { c.Servers = []ServerConfig{{Description: "Sandbox"}} },
			wantErr:     true,
			errContains: "servers[0].url",
		},
		{
			name:        "invalid format",
			mutate:      func(c *Config) { c.Output.Format = "toml" },
			wantErr:     true,
			errContains: "output.format",
		},
		{
			name: "go format without package",
			mutate: func(c *Config) {
				c.Output.Format = FormatGo
				c.Output.Package = ""
			},
			wantErr:     true,
			errContains: "package name is required",
		},
		{
			name: "go format with package",
			mutate: func(c *Config) {
				c.Output.Format = FormatGo
				c.Output.Package = "apidoc"
			},
		},
		{
			name:        "missing output dir",
			mutate:      func(c *Config) { c.Output.Dir = "" },
			wantErr:     true,
			errContains: "output directory is required",
		},
		{
			name:        "output file with directory",
			mutate:      func(c *Config) { c.Output.File = "docs/openapi.json" },
			wantErr:     true,
			errContains: "output.file",
		},
		{
			name:        "invalid lint mode",
			mutate:      func(c *Config) { c.Lint.Unreachable = "fatal" },
			wantErr:     true,
			errContains: "lint.unreachable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				require.ErrorIs(t, err, specerr.ErrConfig)
				require.Contains(t, err.Error(), tt.errContains)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func newCommand() *cobra.Command {
	cmd := &cobra.Command{}
	BindCommonFlags(cmd)
	BindOutputFlags(cmd)
	return cmd
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	oldWd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(oldWd) })
}

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load(newCommand())
	require.NoError(t, err)

	require.Equal(t, model.V1, cfg.APIVersion())
	require.Equal(t, selector.Features(), cfg.EnabledFeatures())
	require.Equal(t, "3.0.3", cfg.OpenAPI)
	require.Equal(t, FormatJSON, cfg.Output.Format)
	require.Equal(t, LintWarn, cfg.Lint.Unreachable)
	require.Len(t, cfg.Servers, 2)
	require.Equal(t, "openapi_v1.json", cfg.Filename())
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()

	configContent := `
version: v2
features: [refunds, tokenization]
info:
  title: Acme Payments
servers:
  - url: https://api.acme.test
output:
  dir: ./docs
  format: yaml
lint:
  unreachable: error
`
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, DefaultFile), []byte(configContent), 0o644))
	chdir(t, tmpDir)

	cfg, err := Load(newCommand())
	require.NoError(t, err)

	require.Equal(t, model.V2, cfg.APIVersion())
	require.Equal(t, []selector.Feature{selector.FeatureRefunds, selector.FeatureTokenization}, cfg.EnabledFeatures())
	require.Equal(t, "Acme Payments", cfg.Info.Title)
	require.Equal(t, []ServerConfig{{URL: "https://api.acme.test"}}, cfg.Servers)
	require.Equal(t, filepath.Join("docs", "openapi_v2.yaml"), cfg.OutputPath())
	require.Equal(t, LintError, cfg.Lint.Unreachable)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, DefaultFile), []byte("version: v1\noutput:\n  format: yaml\n"), 0o644))
	chdir(t, tmpDir)

	t.Setenv("PAYDOC_VERSION", "v2")
	t.Setenv("PAYDOC_FEATURES", "payouts, refunds")

	cfg, err := Load(newCommand())
	require.NoError(t, err)

	require.Equal(t, model.V2, cfg.APIVersion())
	require.Equal(t, []string{"payouts", "refunds"}, cfg.Features)
	require.Equal(t, FormatYAML, cfg.Output.Format)
}

func TestLoadFlagsOverrideEnv(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("PAYDOC_VERSION", "v2")
	t.Setenv("PAYDOC_OUTPUT_FORMAT", "yaml")

	cmd := newCommand()
	require.NoError(t, cmd.PersistentFlags().Set("api-version", "v1"))
	require.NoError(t, cmd.Flags().Set("format", "go"))
	require.NoError(t, cmd.Flags().Set("package", "paymentsv1"))

	cfg, err := Load(cmd)
	require.NoError(t, err)

	require.Equal(t, model.V1, cfg.APIVersion())
	require.Equal(t, FormatGo, cfg.Output.Format)
	require.Equal(t, "paymentsv1", cfg.Output.Package)
}

func TestLoadEmptyFeaturesFlag(t *testing.T) {
	chdir(t, t.TempDir())

	cmd := newCommand()
	require.NoError(t, cmd.PersistentFlags().Set("features", ""))

	cfg, err := Load(cmd)
	require.NoError(t, err)
	require.Empty(t, cfg.EnabledFeatures())
}

func TestLoadWithExplicitConfigPath(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "custom-config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("version: v2\noutput:\n  file: payments.json\n"), 0o644))
	chdir(t, t.TempDir())

	cmd := newCommand()
	require.NoError(t, cmd.PersistentFlags().Set("config", configPath))

	cfg, err := Load(cmd)
	require.NoError(t, err)
	require.Equal(t, model.V2, cfg.APIVersion())
	require.Equal(t, "payments.json", cfg.Filename())
}

func TestLoadRejectsInvalid(t *testing.T) {
	chdir(t, t.TempDir())

	cmd := newCommand()
	require.NoError(t, cmd.PersistentFlags().Set("api-version", "v9"))

	_, err := Load(cmd)
	require.ErrorIs(t, err, specerr.ErrConfig)
}

func TestBuildFlagsMap(t *testing.T) {
	cmd := newCommand()

	require.NoError(t, cmd.PersistentFlags().Set("api-version", "v2"))
	require.NoError(t, cmd.PersistentFlags().Set("title", "Acme"))
	require.NoError(t, cmd.Flags().Set("output-dir", "./out"))
	require.NoError(t, cmd.Flags().Set("package", "apidoc"))
	require.NoError(t, cmd.Flags().Set("initialisms", "PSP,FRM"))

	m := buildFlagsMap(cmd)

	require.Equal(t, "v2", m["version"])
	require.Equal(t, "Acme", m["info.title"])
	require.Equal(t, "./out", m["output.dir"])
	require.Equal(t, "apidoc", m["output.package"])
	require.Equal(t, []string{"PSP", "FRM"}, m["output.initialisms"])
	require.NotContains(t, m, "features")
}
