package cli

import (
	"context"
	"log/slog"

	"github.com/kolah/paydoc/internal/assemble"
	"github.com/kolah/paydoc/internal/config"
	"github.com/kolah/paydoc/internal/domains"
	"github.com/kolah/paydoc/internal/model"
	"github.com/spf13/cobra"
)

func newLogger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelInfo
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}

func assembleOptions(cfg *config.Config) assemble.Options {
	opts := assemble.Options{
		Version:  cfg.APIVersion(),
		Features: cfg.EnabledFeatures(),
		OpenAPI:  cfg.OpenAPI,
		Info: model.Info{
			Title:       cfg.Info.Title,
			Description: cfg.Info.Description,
		},
		Unreachable: assemble.Lint(cfg.Lint.Unreachable),
	}
	for _, s := range cfg.Servers {
		opts.Servers = append(opts.Servers, model.Server{URL: s.URL, Description: s.Description})
	}
	return opts
}

func assembleDocument(ctx context.Context, cfg *config.Config, log *slog.Logger) (*assemble.Result, error) {
	return assemble.New(domains.All(), log).Assemble(ctx, assembleOptions(cfg))
}
