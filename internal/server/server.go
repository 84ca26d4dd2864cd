// Package server exposes the guide over HTTP: the part catalog, the
// sequenced steps, and the step photographs as static files. It exists
// so the data can be browsed from a machine other than the workbench.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/benchtop-labs/teardown/internal/session"
)

// Config holds configuration for the guide server.
type Config struct {
	Session   *session.Session
	Port      int
	Watch     bool
	StepsFile string
	PartsFile string
	StepDir   string
	PartDir   string
	Logger    *slog.Logger
}

// Server serves the guide API and image files.
type Server struct {
	session   *session.Session
	port      int
	watch     bool
	stepsFile string
	partsFile string
	stepDir   string
	partDir   string
	logger    *slog.Logger
}

// New creates a guide server.
func New(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Server{
		session:   cfg.Session,
		port:      cfg.Port,
		watch:     cfg.Watch,
		stepsFile: cfg.StepsFile,
		partsFile: cfg.PartsFile,
		stepDir:   cfg.StepDir,
		partDir:   cfg.PartDir,
		logger:    logger,
	}
}

// Serve starts the server and blocks until the context is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Info("starting guide server", "addr", fmt.Sprintf("http://localhost:%d", s.port))

	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Addr:    addr,
		Handler: s.Handler(),
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	if s.watch {
		eg.Go(func() error {
			return s.watchFiles(egctx)
		})
	}

	eg.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Debug("shutting down guide server...")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}

// Handler builds the route tree. Split out from Serve so tests can hit it
// with httptest.
func (s *Server) Handler() http.Handler {
	r := chi.NewMux()
	r.Use(
		middleware.Logger,
		middleware.Recoverer,
		middleware.Compress(5),
	)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/parts", s.handleParts)
		r.Get("/parts/{id}", s.handlePart)
		r.Get("/steps", s.handleSteps)
		r.Get("/steps/{id}", s.handleStep)
		r.Get("/guide", s.handleGuide)
	})

	r.Handle("/images/steps/*", http.StripPrefix("/images/steps/", http.FileServer(http.Dir(s.stepDir))))
	r.Handle("/images/parts/*", http.StripPrefix("/images/parts/", http.FileServer(http.Dir(s.partDir))))

	return r
}

// watchFiles reloads the session whenever one of the data files changes.
// Editors replace files rather than write in place, so creates and renames
// count as changes too.
func (s *Server) watchFiles(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	watched := map[string]bool{
		filepath.Clean(s.stepsFile): true,
		filepath.Clean(s.partsFile): true,
	}
	dirs := map[string]bool{}
	for f := range watched {
		dirs[filepath.Dir(f)] = true
	}
	for d := range dirs {
		if err := watcher.Add(d); err != nil {
			s.logger.Error("failed to watch directory", "dir", d, "error", err)
		}
	}

	var debounceTimer *time.Timer

	for {
		select {
		case <-ctx.Done():
			return nil

		case event := <-watcher.Events:
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if !watched[filepath.Clean(event.Name)] {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(100*time.Millisecond, func() {
				s.logger.Debug("data file changed, reloading", "file", event.Name)
				if err := s.session.Reload(); err != nil {
					s.logger.Error("reload failed", "error", err)
				}
			})

		case err := <-watcher.Errors:
			s.logger.Error("watcher error", "error", err)
		}
	}
}
