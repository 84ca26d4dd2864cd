// Package commands implements the teardown subcommands.
package commands

import (
	"context"
	"log/slog"
	"os"

	"github.com/benchtop-labs/teardown/internal/cli/output"
	"github.com/benchtop-labs/teardown/internal/config"
	"github.com/benchtop-labs/teardown/internal/session"
	"github.com/spf13/cobra"
)

type ctxKey int

const (
	configKey ctxKey = iota
	rendererKey
	loggerKey
)

// WithConfig stores the loaded config in the command context.
func WithConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, configKey, cfg)
}

// WithRenderer stores the output renderer in the command context.
func WithRenderer(ctx context.Context, r *output.Renderer) context.Context {
	return context.WithValue(ctx, rendererKey, r)
}

// WithLogger stores the logger in the command context.
func WithLogger(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// ConfigFrom retrieves the config from the command context.
func ConfigFrom(ctx context.Context) *config.Config {
	if c, ok := ctx.Value(configKey).(*config.Config); ok {
		return c
	}
	return &config.Config{
		StepsFile:     config.DefaultStepsFile,
		PartsFile:     config.DefaultPartsFile,
		StepImagesDir: config.DefaultStepImagesDir,
		PartImagesDir: config.DefaultPartImagesDir,
		OutputFormat:  config.DefaultOutput,
	}
}

// RendererFrom retrieves the renderer from the command context.
func RendererFrom(ctx context.Context) *output.Renderer {
	if r, ok := ctx.Value(rendererKey).(*output.Renderer); ok {
		return r
	}
	return output.NewRenderer(os.Stdout, os.Stderr, output.ModeAuto)
}

// LoggerFrom retrieves the logger from the command context.
func LoggerFrom(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey).(*slog.Logger); ok {
		return l
	}
	// Discard logger as safe fallback
	return slog.New(slog.DiscardHandler)
}

// CommandContext bundles what every subcommand needs.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
	Session  *session.Session
}

// NewCommandContext assembles the command context from the cobra context.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	ctx := cmd.Context()
	cfg := ConfigFrom(ctx)
	logger := LoggerFrom(ctx)
	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: RendererFrom(ctx),
		Session:  session.New(cfg, logger),
	}
}
