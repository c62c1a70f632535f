// Package commands implements the gridforge subcommands.
package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/openfab-labs/gridforge/internal/cli/config"
	"github.com/openfab-labs/gridforge/internal/cli/output"
)

type contextKey string

const (
	configKey contextKey = "gridforge.config"
	loggerKey contextKey = "gridforge.logger"
)

// WithConfig stores the loaded configuration on the context.
func WithConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, configKey, cfg)
}

// WithLogger stores the logger on the context.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// CommandContext bundles what every subcommand needs to run.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// setup extracts the configuration and logger placed on the command context
// by the root command and builds a renderer over the command's writers.
func setup(cmd *cobra.Command) (*CommandContext, error) {
	cfg, ok := cmd.Context().Value(configKey).(*config.Config)
	if !ok || cfg == nil {
		return nil, fmt.Errorf("configuration not loaded")
	}
	logger, ok := cmd.Context().Value(loggerKey).(*slog.Logger)
	if !ok || logger == nil {
		logger = slog.Default()
	}
	renderer := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.Output))
	return &CommandContext{Cfg: cfg, Logger: logger, Renderer: renderer}, nil
}
