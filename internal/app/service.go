// Package service provides the core business service that implements
// the dependencies required by the HTTP API and the CLI.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/teamfit/internal/config"
	"github.com/okian/teamfit/internal/domain/model"
	"github.com/okian/teamfit/internal/domain/placement"
	"github.com/okian/teamfit/internal/domain/scoring"
	"github.com/okian/teamfit/internal/domain/simulation"
	"github.com/okian/teamfit/internal/worker"
	"github.com/okian/teamfit/pkg/logger"
	"github.com/okian/teamfit/pkg/metrics"
)

var (
	// ErrNotStarted is returned when an operation runs before Start.
	ErrNotStarted = errors.New("service not started")
	// ErrTooManyCandidates is returned when a batch exceeds the configured cap.
	ErrTooManyCandidates = errors.New("too many candidates")
)

const shutdownTimeout = 30 * time.Second

// Service implements the API dependencies for fit scoring, simulation and
// batch placement.
type Service struct {
	mu sync.RWMutex

	// Core components
	calculator *scoring.Calculator
	simulator  *simulation.Engine
	pool       *worker.Pool
	optimizer  *placement.Optimizer

	// Configuration
	cfg      *config.Config
	modes    scoring.Modes
	signals  scoring.HistoricalSignals
	strategy placement.Strategy

	// State
	started bool
	cancel  context.CancelFunc
	runs    atomic.Int64

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithConfig sets the configuration. Defaults to config.New.
func WithConfig(cfg *config.Config) Option {
	return func(s *Service) {
		if cfg != nil {
			s.cfg = cfg
		}
	}
}

// WithWorkerCount sets the number of scoring workers.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.cfg.WorkerCount = count
		}
	}
}

// WithSignals replaces the configured static historical signals.
func WithSignals(sig scoring.HistoricalSignals) Option {
	return func(s *Service) {
		if sig != nil {
			s.signals = sig
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a new Service. Components are built by Start.
func New(opts ...Option) *Service {
	s := &Service{
		cfg: config.New(context.Background()),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start builds and starts the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}

	modes, err := s.cfg.Modes()
	if err != nil {
		return err
	}
	strategy, err := placement.ParseStrategy(s.cfg.BatchStrategy)
	if err != nil {
		return fmt.Errorf("%w: %w", config.ErrInvalidConfig, err)
	}
	if s.signals == nil {
		s.signals = scoring.NewStaticSignals(s.cfg.Signals())
	}

	s.logger.Info(ctx, "starting teamfit service...")

	s.modes = modes
	s.strategy = strategy
	s.calculator = scoring.NewCalculator(
		scoring.WithModes(modes),
		scoring.WithSignals(s.signals),
		scoring.WithCatalog(scoring.MapCatalog(s.cfg.SkillNames)),
		scoring.WithLogger(s.logger.Named("scoring")),
	)
	s.simulator = simulation.NewEngine(simulation.WithLogger(s.logger.Named("simulation")))
	s.pool = worker.NewPool(s.calculator,
		worker.WithSize(s.cfg.WorkerCount),
		worker.WithLogger(s.logger.Named("worker")),
	)

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	s.cancel = cancel
	s.pool.Start(runCtx)

	s.optimizer = s.newOptimizer(strategy)

	s.started = true
	s.logger.Info(ctx, "teamfit service started",
		logger.Int("workers", s.cfg.WorkerCount),
		logger.Int("modes", len(modes)),
		logger.String("strategy", string(strategy)),
	)
	return nil
}

func (s *Service) newOptimizer(strategy placement.Strategy) *placement.Optimizer {
	return placement.NewOptimizer(s.calculator,
		placement.WithBatchScorer(s.pool),
		placement.WithMode(model.PreferenceMode(s.cfg.BatchMode)),
		placement.WithStrategy(strategy),
		placement.WithTransferThreshold(s.cfg.TransferThreshold),
		placement.WithBaseline(s.cfg.OrganizationBaseline),
		placement.WithDepartmentFit(s.cfg.DepartmentFitBefore, s.cfg.DepartmentFitAfter),
		placement.WithConcurrency(s.cfg.WorkerCount),
		placement.WithLogger(s.logger.Named("placement")),
	)
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	s.logger.Info(ctx, "stopping teamfit service...")
	if err := s.pool.Shutdown(ctx); err != nil {
		s.logger.Warn(ctx, "worker pool shutdown", logger.Error(err))
	}
	s.cancel()

	s.started = false
	s.logger.Info(ctx, "teamfit service stopped")
}

// ComputeFitScore validates the pair and scores it under mode. An empty mode
// selects the configured default.
func (s *Service) ComputeFitScore(ctx context.Context, cand *model.Candidate, team *model.Team, mode model.PreferenceMode) (model.FitScoreResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return model.FitScoreResult{}, ErrNotStarted
	}
	if err := validatePair(cand, team); err != nil {
		return model.FitScoreResult{}, err
	}
	if mode == "" {
		mode = model.PreferenceMode(s.cfg.DefaultMode)
	}
	return s.calculator.Score(ctx, cand, team, mode)
}

// Simulate validates the pair and projects the team culture after adding cand.
func (s *Service) Simulate(ctx context.Context, team *model.Team, cand *model.Candidate) (model.SimulationResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return model.SimulationResult{}, ErrNotStarted
	}
	if err := validatePair(cand, team); err != nil {
		return model.SimulationResult{}, err
	}
	return s.simulator.Simulate(ctx, team, cand), nil
}

// AssignBatch validates every record and runs the batch optimizer.
func (s *Service) AssignBatch(ctx context.Context, req model.BatchRequest) (model.BatchAssignmentResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return model.BatchAssignmentResult{}, ErrNotStarted
	}
	if n := len(req.Candidates); n > s.cfg.MaxBatchCandidates {
		return model.BatchAssignmentResult{}, fmt.Errorf("%w: %w: %d exceeds %d",
			model.ErrInvalidInput, ErrTooManyCandidates, n, s.cfg.MaxBatchCandidates)
	}
	if err := model.ValidateAll(req.Candidates); err != nil {
		return model.BatchAssignmentResult{}, fmt.Errorf("candidates: %w", err)
	}
	if err := model.ValidateAll(req.Teams); err != nil {
		return model.BatchAssignmentResult{}, fmt.Errorf("teams: %w", err)
	}
	if err := model.ValidateAll(req.Employees); err != nil {
		return model.BatchAssignmentResult{}, fmt.Errorf("employees: %w", err)
	}

	opt := s.optimizer
	if req.Strategy != "" {
		strategy, err := placement.ParseStrategy(req.Strategy)
		if err != nil {
			return model.BatchAssignmentResult{}, fmt.Errorf("%w: %w", model.ErrInvalidInput, err)
		}
		if strategy != s.strategy {
			opt = s.newOptimizer(strategy)
		}
	}

	res, err := opt.Assign(ctx, req.Candidates, req.Teams, req.Employees)
	if err != nil {
		return model.BatchAssignmentResult{}, err
	}
	s.runs.Add(1)
	return res, nil
}

// Modes returns the registered preference modes sorted by name.
func (s *Service) Modes() []scoring.ModeConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.modes != nil {
		return s.modes.List()
	}
	modes, err := s.cfg.Modes()
	if err != nil {
		return scoring.DefaultModes().List()
	}
	return modes.List()
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":       s.started,
		"workerCount":   s.cfg.WorkerCount,
		"defaultMode":   s.cfg.DefaultMode,
		"batchMode":     s.cfg.BatchMode,
		"batchStrategy": s.cfg.BatchStrategy,
		"batchRuns":     s.runs.Load(),
	}
	if s.started {
		stats["modes"] = len(s.modes)
		metrics.UpdateWorkerCount(s.pool.Size())
	}
	return stats
}

func validatePair(cand *model.Candidate, team *model.Team) error {
	if cand == nil || team == nil {
		return fmt.Errorf("%w: candidate and team are required", model.ErrInvalidInput)
	}
	if err := model.Validate(cand); err != nil {
		return fmt.Errorf("candidate: %w", err)
	}
	if err := model.Validate(team); err != nil {
		return fmt.Errorf("team: %w", err)
	}
	return nil
}
