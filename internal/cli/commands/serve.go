package commands

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/benchtop-labs/teardown/internal/server"
)

// ServeOptions holds options for the serve command.
type ServeOptions struct {
	Port  int
	Watch bool
}

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	opts := &ServeOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the guide over HTTP",
		Long: `Start a local web server exposing the part catalog, the sequenced
steps, and the photographs, so the guide can be followed from a phone or
a second machine at the workbench.

Endpoints:
  GET /api/parts            Part catalog
  GET /api/parts/{id}       Single part
  GET /api/steps            Steps in dependency order
  GET /api/steps/{id}       Single step
  GET /api/guide            Steps with their parts embedded
  GET /images/steps/...     Step photographs
  GET /images/parts/...     Part photographs

With --watch, edits to the data files are picked up without a restart.`,
		Example: `  # Serve on the default port
  teardown serve

  # Custom port, reload on data file changes
  teardown serve --port 3000 --watch`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, opts)
		},
	}

	cmd.Flags().IntVar(&opts.Port, "port", 0, "Port to serve on (default: 8765)")
	cmd.Flags().BoolVar(&opts.Watch, "watch", false, "Reload when a data file changes")

	return cmd
}

func runServe(cmd *cobra.Command, opts *ServeOptions) error {
	cmdCtx := NewCommandContext(cmd)
	cfg := cmdCtx.Cfg

	uiCfg := cfg.GetUIConfig()
	port := uiCfg.Port
	if opts.Port != 0 {
		port = opts.Port
	}
	watch := uiCfg.Watch
	if cmd.Flags().Changed("watch") {
		watch = opts.Watch
	}

	// Load eagerly so a broken data file fails at startup, not on the
	// first request.
	if _, err := cmdCtx.Session.Catalog(); err != nil {
		return fmt.Errorf("failed to load data: %w", err)
	}

	srv := server.New(server.Config{
		Session:   cmdCtx.Session,
		Port:      port,
		Watch:     watch,
		StepsFile: cfg.StepsFile,
		PartsFile: cfg.PartsFile,
		StepDir:   cmdCtx.Session.StepImagesDir(),
		PartDir:   cmdCtx.Session.PartImagesDir(),
		Logger:    cmdCtx.Logger,
	})

	cmdCtx.Renderer.Printf("Serving guide on http://localhost:%d\n", port)
	cmdCtx.Renderer.Println("Press Ctrl+C to stop")

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := srv.Serve(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
