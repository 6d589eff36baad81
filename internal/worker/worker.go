// Package worker runs fit score computations on a fixed set of goroutines.
package worker

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/teamfit/internal/domain/model"
	"github.com/okian/teamfit/internal/domain/scoring"
	"github.com/okian/teamfit/pkg/logger"
	"github.com/okian/teamfit/pkg/metrics"
)

const (
	defaultQueueMultiplier = 4
	poolShutdownTimeout    = 30 * time.Second
)

var (
	// ErrNotStarted is returned when jobs are submitted before Start.
	ErrNotStarted = errors.New("worker pool not started")
	// ErrPoolClosed is returned once the pool is shutting down.
	ErrPoolClosed = errors.New("worker pool closed")
)

// Job is one candidate/team pair to score. The scorer runs under the
// submitter's context.
type Job struct {
	Index     int
	Candidate *model.Candidate
	Team      *model.Team
	Mode      model.PreferenceMode

	ctx   context.Context //nolint:containedctx // carries request scope across the queue
	reply chan<- Result
}

// Result is the outcome of a Job. Index matches the submitted job.
type Result struct {
	Index int
	Score model.FitScoreResult
	Err   error
}

// Worker scores jobs read from the pool's queue.
type Worker struct {
	name   string
	jobs   <-chan Job
	scorer scoring.Scorer
	logger logger.Logger

	shutdown <-chan struct{}
	done     chan struct{}
}

// Run processes jobs until ctx is canceled or the pool shuts down.
func (w *Worker) Run(ctx context.Context) {
	defer close(w.done)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case job := <-w.jobs:
			job.reply <- w.process(ctx, job)
		}
	}
}

func (w *Worker) process(runCtx context.Context, job Job) Result {
	ctx := job.ctx
	if ctx == nil {
		ctx = runCtx
	}
	if err := ctx.Err(); err != nil {
		return Result{Index: job.Index, Err: fmt.Errorf("score %s for %s: %w", job.Candidate.ID, job.Team.ID, err)}
	}

	start := time.Now()
	metrics.AddWorkerActive(1)
	defer func() {
		metrics.AddWorkerActive(-1)
		metrics.RecordWorkerProcessingLatency(float64(time.Since(start).Microseconds()) / 1000)
	}()

	res, err := w.scorer.Score(ctx, job.Candidate, job.Team, job.Mode)
	if err != nil {
		metrics.RecordWorkerError()
		w.logger.Error(ctx, "scoring failed",
			logger.String("worker", w.name),
			logger.String("candidate_id", job.Candidate.ID),
			logger.String("team_id", job.Team.ID),
			logger.Error(err),
		)
		return Result{Index: job.Index, Err: fmt.Errorf("score %s for %s: %w", job.Candidate.ID, job.Team.ID, err)}
	}
	return Result{Index: job.Index, Score: res}
}

// Pool manages a fixed set of workers sharing one job queue.
type Pool struct {
	size      int
	queueSize int
	scorer    scoring.Scorer
	logger    logger.Logger

	jobs     chan Job
	workers  []*Worker
	started  atomic.Bool
	shutdown chan struct{}
	stopOnce sync.Once
}

// NewPool creates a pool of workers that score with scorer.
func NewPool(scorer scoring.Scorer, opts ...Option) *Pool {
	p := &Pool{
		size:     runtime.NumCPU(),
		scorer:   scorer,
		logger:   logger.Nop(),
		shutdown: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.queueSize == 0 {
		p.queueSize = p.size * defaultQueueMultiplier
	}
	p.jobs = make(chan Job, p.queueSize)

	p.workers = make([]*Worker, p.size)
	for i := range p.workers {
		name := "worker-" + strconv.Itoa(i)
		p.workers[i] = &Worker{
			name:     name,
			jobs:     p.jobs,
			scorer:   scorer,
			logger:   p.logger.Named(name),
			shutdown: p.shutdown,
			done:     make(chan struct{}),
		}
	}
	return p
}

// Size returns the number of workers.
func (p *Pool) Size() int {
	return p.size
}

// Start launches the workers. Calling Start twice is a no-op.
func (p *Pool) Start(ctx context.Context) {
	if !p.started.CompareAndSwap(false, true) {
		return
	}
	for _, w := range p.workers {
		go w.Run(ctx)
	}
	metrics.UpdateWorkerCount(p.size)
	p.logger.Info(ctx, "worker pool started", logger.Int("workers", p.size))
}

// ScoreAll scores cand against every team under mode and returns the results
// in team order. The first scoring error is returned after all jobs finish.
func (p *Pool) ScoreAll(ctx context.Context, cand *model.Candidate, teams []*model.Team, mode model.PreferenceMode) ([]model.FitScoreResult, error) {
	if !p.started.Load() {
		return nil, ErrNotStarted
	}
	select {
	case <-p.shutdown:
		return nil, ErrPoolClosed
	default:
	}

	replies := make(chan Result, len(teams))
	for i, team := range teams {
		job := Job{Index: i, Candidate: cand, Team: team, Mode: mode, ctx: ctx, reply: replies}
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("submit job: %w", ctx.Err())
		case <-p.shutdown:
			return nil, ErrPoolClosed
		case p.jobs <- job:
		}
	}

	out := make([]model.FitScoreResult, len(teams))
	var firstErr error
	for range teams {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("await results: %w", ctx.Err())
		case <-p.shutdown:
			return nil, ErrPoolClosed
		case r := <-replies:
			if r.Err != nil && firstErr == nil {
				firstErr = r.Err
			}
			out[r.Index] = r.Score
		}
	}
	if firstErr != nil {
		return nil, firstErr
	}
	return out, nil
}

// Shutdown stops all workers and waits for them to exit.
func (p *Pool) Shutdown(ctx context.Context) error {
	p.stopOnce.Do(func() { close(p.shutdown) })
	if !p.started.Load() {
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, poolShutdownTimeout)
	defer cancel()
	for i, w := range p.workers {
		select {
		case <-w.done:
		case <-shutdownCtx.Done():
			p.logger.Warn(ctx, "worker shutdown timed out", logger.Int("worker_id", i))
			return fmt.Errorf("shutdown timed out: %w", shutdownCtx.Err())
		}
	}
	metrics.UpdateWorkerCount(0)
	return nil
}
