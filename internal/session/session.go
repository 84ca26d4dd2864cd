// Package session ties the data stores together for one interactive
// session: it loads the part catalog and the step collection lazily on
// first access, sequences the steps once, and caches everything for the
// remainder of the session. Reload invalidates the cache for watch mode.
package session

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/benchtop-labs/teardown/internal/assets"
	"github.com/benchtop-labs/teardown/internal/catalog"
	"github.com/benchtop-labs/teardown/internal/config"
	"github.com/benchtop-labs/teardown/internal/workflow"
)

// Sentinel conditions for empty data sources. Callers are expected to show
// a terminal empty-state message rather than crash.
var (
	ErrNoSteps = errors.New("no steps available")
	ErrNoParts = errors.New("no parts available")
)

// Session is the memoized read path over the two data files.
type Session struct {
	cfg    *config.Config
	logger *slog.Logger

	mu      sync.RWMutex
	loaded  bool
	catalog *catalog.Catalog
	steps   []workflow.Step
	ordered []workflow.Step
	graph   *workflow.Graph
}

// New creates a session for the given configuration. Nothing is read from
// disk until the first accessor runs.
func New(cfg *config.Config, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Session{cfg: cfg, logger: logger}
}

// load reads both collections and sequences the steps. Called with mu held
// for writing.
func (s *Session) load() error {
	cat, err := catalog.Load(s.cfg.PartsFile)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	steps, err := workflow.LoadSteps(s.cfg.StepsFile)
	if err != nil {
		return fmt.Errorf("load steps: %w", err)
	}

	s.catalog = cat
	s.steps = steps
	s.ordered = workflow.Order(steps)
	s.graph = workflow.NewGraph(steps)
	s.loaded = true

	s.logger.Debug("session loaded",
		"parts", cat.Len(),
		"steps", len(steps),
		"edges", s.graph.EdgeCount())
	return nil
}

func (s *Session) ensure() error {
	s.mu.RLock()
	loaded := s.loaded
	s.mu.RUnlock()
	if loaded {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loaded {
		return nil
	}
	return s.load()
}

// Reload drops the cached collections and reads them again. Used by the
// serve command when a data file changes on disk.
func (s *Session) Reload() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Catalog returns the loaded part catalog.
func (s *Session) Catalog() (*catalog.Catalog, error) {
	if err := s.ensure(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog, nil
}

// Steps returns the step collection in raw file order.
func (s *Session) Steps() ([]workflow.Step, error) {
	if err := s.ensure(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.steps, nil
}

// OrderedSteps returns the dependency-ordered step sequence. An empty step
// collection is reported as ErrNoSteps.
func (s *Session) OrderedSteps() ([]workflow.Step, error) {
	if err := s.ensure(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.ordered) == 0 {
		return nil, ErrNoSteps
	}
	return s.ordered, nil
}

// Graph returns the tolerant reference graph over the step collection.
func (s *Session) Graph() (*workflow.Graph, error) {
	if err := s.ensure(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.graph, nil
}

// StepImagesDir returns the directory holding step photographs, falling
// back to a space/underscore spelling variant when the configured one does
// not exist.
func (s *Session) StepImagesDir() string {
	return assets.ResolveDir(s.cfg.StepImagesDir, assets.DirVariants(s.cfg.StepImagesDir)...)
}

// PartImagesDir returns the directory holding part photographs.
func (s *Session) PartImagesDir() string {
	return assets.ResolveDir(s.cfg.PartImagesDir, assets.DirVariants(s.cfg.PartImagesDir)...)
}
