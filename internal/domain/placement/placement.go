// Package placement assigns a batch of candidates to teams and looks for
// single-hop transfers that make room for them.
package placement

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/okian/teamfit/internal/domain/model"
	"github.com/okian/teamfit/internal/domain/scoremath"
	"github.com/okian/teamfit/internal/domain/scoring"
	"github.com/okian/teamfit/pkg/logger"
	"github.com/okian/teamfit/pkg/metrics"
)

// Defaults for the optimizer.
const (
	DefaultTransferThreshold = 5
	DefaultBaseline          = 44.6
	DefaultDepartmentBefore  = 45
	DefaultDepartmentAfter   = 47
)

// BatchScorer scores one candidate against several teams and returns results
// in team order.
type BatchScorer interface {
	ScoreAll(ctx context.Context, cand *model.Candidate, teams []*model.Team, mode model.PreferenceMode) ([]model.FitScoreResult, error)
}

// Option applies a configuration option to the Optimizer.
type Option func(*Optimizer)

// WithBatchScorer fans pairwise scoring out through b, typically a worker
// pool.
func WithBatchScorer(b BatchScorer) Option {
	return func(o *Optimizer) {
		if b != nil {
			o.batch = b
		}
	}
}

// WithMode sets the preference mode used for every pair.
func WithMode(mode model.PreferenceMode) Option {
	return func(o *Optimizer) {
		if mode != "" {
			o.mode = mode
		}
	}
}

// WithStrategy sets the unmatched-candidate strategy.
func WithStrategy(s Strategy) Option {
	return func(o *Optimizer) {
		if s != "" {
			o.strategy = s
		}
	}
}

// WithTransferThreshold sets the minimum improvement a transfer must beat.
func WithTransferThreshold(t float64) Option {
	return func(o *Optimizer) {
		if t >= 0 {
			o.threshold = t
		}
	}
}

// WithBaseline sets the organization-wide fit reference value.
func WithBaseline(b float64) Option {
	return func(o *Optimizer) {
		o.baseline = b
	}
}

// WithDepartmentFit sets the per-department before/after reference values.
func WithDepartmentFit(before, after float64) Option {
	return func(o *Optimizer) {
		o.departmentBefore = before
		o.departmentAfter = after
	}
}

// WithConcurrency bounds the number of assignments searched for transfers at
// once.
func WithConcurrency(n int) Option {
	return func(o *Optimizer) {
		if n > 0 {
			o.concurrency = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(o *Optimizer) {
		if l != nil {
			o.log = l
		}
	}
}

// Optimizer runs greedy batch placement. It is safe for concurrent use.
type Optimizer struct {
	scorer scoring.Scorer
	batch  BatchScorer

	mode             model.PreferenceMode
	strategy         Strategy
	threshold        float64
	baseline         float64
	departmentBefore float64
	departmentAfter  float64
	concurrency      int

	log logger.Logger
}

// NewOptimizer creates an optimizer that scores pairs with scorer.
func NewOptimizer(scorer scoring.Scorer, opts ...Option) *Optimizer {
	o := &Optimizer{
		scorer:           scorer,
		mode:             model.ModeStability,
		strategy:         StrategyStopAtFirstUnmatched,
		threshold:        DefaultTransferThreshold,
		baseline:         DefaultBaseline,
		departmentBefore: DefaultDepartmentBefore,
		departmentAfter:  DefaultDepartmentAfter,
		concurrency:      runtime.NumCPU(),
		log:              logger.Nop(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

type placed struct {
	cand  *model.Candidate
	team  *model.Team
	score float64
}

// Assign places candidates in input order, then searches each placement's team
// for one employee worth moving within the department.
func (o *Optimizer) Assign(ctx context.Context, candidates []model.Candidate, teams []model.Team, employees []model.Employee) (model.BatchAssignmentResult, error) {
	start := time.Now()
	runID := uuid.NewString()

	byID := make(map[string]*model.Team, len(teams))
	for i := range teams {
		byID[teams[i].ID] = &teams[i]
	}

	placements, unplaced, reason, err := o.assignGreedy(ctx, candidates, teams)
	if err != nil {
		return model.BatchAssignmentResult{}, err
	}

	transfers, err := o.searchTransfers(ctx, placements, teams, employees)
	if err != nil {
		return model.BatchAssignmentResult{}, err
	}

	assignments := make([]model.Assignment, len(placements))
	for i, p := range placements {
		assignments[i] = model.Assignment{
			CandidateID:   p.cand.ID,
			CandidateName: p.cand.Name,
			TeamID:        p.team.ID,
			TeamName:      p.team.Name,
			Department:    p.team.Department,
			FitScore:      p.score,
			Reason:        AssignmentReason(p.score),
		}
	}

	res := model.BatchAssignmentResult{
		RunID:              runID,
		Assignments:        assignments,
		Transfers:          transfers,
		OrganizationImpact: o.organizationImpact(assignments, transfers, byID),
		StopReason:         reason,
		UnplacedCandidates: unplaced,
	}

	metrics.RecordBatchRun(string(o.strategy), len(assignments), len(transfers), len(unplaced), reason == model.StopNoRelevantTeam)
	o.log.Info(ctx, "batch placement finished",
		logger.String("run_id", runID),
		logger.String("strategy", string(o.strategy)),
		logger.Int("assignments", len(assignments)),
		logger.Int("transfers", len(transfers)),
		logger.Int("unplaced", len(unplaced)),
		logger.String("stop_reason", string(reason)),
		logger.Duration("took", time.Since(start)),
	)
	return res, nil
}

// assignGreedy is phase 1. Team exclusion depends on earlier picks, so
// candidates are handled strictly in order; only the per-team scoring of one
// candidate runs in parallel.
func (o *Optimizer) assignGreedy(ctx context.Context, candidates []model.Candidate, teams []model.Team) ([]placed, []string, model.StopReason, error) {
	taken := map[string]bool{}
	placements := []placed{}
	unplaced := []string{}

	for i := range candidates {
		cand := &candidates[i]
		relevant := relevantTeams(teams, taken, cand.TargetRole)
		if len(relevant) == 0 {
			o.log.Warn(ctx, "no relevant team left",
				logger.String("candidate_id", cand.ID),
				logger.String("target_role", cand.TargetRole),
			)
			if o.strategy == StrategyStopAtFirstUnmatched {
				for j := i; j < len(candidates); j++ {
					unplaced = append(unplaced, candidates[j].ID)
				}
				return placements, unplaced, model.StopNoRelevantTeam, nil
			}
			unplaced = append(unplaced, cand.ID)
			continue
		}

		scores, err := o.scoreAll(ctx, cand, relevant)
		if err != nil {
			return nil, nil, "", err
		}
		best := 0
		for j := 1; j < len(scores); j++ {
			if scores[j].TotalScore > scores[best].TotalScore {
				best = j
			}
		}

		team := relevant[best]
		taken[team.ID] = true
		placements = append(placements, placed{cand: cand, team: team, score: scores[best].TotalScore})
		o.log.Debug(ctx, "candidate placed",
			logger.String("candidate_id", cand.ID),
			logger.String("team_id", team.ID),
			logger.Float64("fit_score", scores[best].TotalScore),
		)
	}
	return placements, unplaced, model.StopCompleted, nil
}

func relevantTeams(teams []model.Team, taken map[string]bool, role string) []*model.Team {
	out := []*model.Team{}
	for i := range teams {
		t := &teams[i]
		if !taken[t.ID] && t.Recruits(role) {
			out = append(out, t)
		}
	}
	return out
}

func (o *Optimizer) scoreAll(ctx context.Context, cand *model.Candidate, teams []*model.Team) ([]model.FitScoreResult, error) {
	if o.batch != nil {
		return o.batch.ScoreAll(ctx, cand, teams, o.mode)
	}
	out := make([]model.FitScoreResult, len(teams))
	for i, t := range teams {
		res, err := o.scorer.Score(ctx, cand, t, o.mode)
		if err != nil {
			return nil, fmt.Errorf("score %s for %s: %w", cand.ID, t.ID, err)
		}
		out[i] = res
	}
	return out, nil
}

// searchTransfers is phase 2. Each placement is searched independently and
// results are kept in placement order.
func (o *Optimizer) searchTransfers(ctx context.Context, placements []placed, teams []model.Team, employees []model.Employee) ([]model.TransferProposal, error) {
	slots := make([]*model.TransferProposal, len(placements))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.concurrency)
	for i := range placements {
		i := i
		g.Go(func() error {
			proposal, err := o.bestTransfer(gctx, placements[i], teams, employees)
			if err != nil {
				return err
			}
			slots[i] = proposal
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("transfer search: %w", err)
	}

	transfers := []model.TransferProposal{}
	for _, p := range slots {
		if p != nil {
			transfers = append(transfers, *p)
		}
	}
	return transfers, nil
}

// bestTransfer returns the single employee move with the largest improvement
// over the placement's own score, provided it beats the threshold.
func (o *Optimizer) bestTransfer(ctx context.Context, p placed, teams []model.Team, employees []model.Employee) (*model.TransferProposal, error) {
	sameDept := []*model.Team{}
	for i := range teams {
		t := &teams[i]
		if t.Department == p.team.Department && t.ID != p.team.ID {
			sameDept = append(sameDept, t)
		}
	}
	if len(sameDept) == 0 {
		return nil, nil
	}

	var best *model.TransferProposal
	bestImprovement := o.threshold
	for i := range employees {
		emp := &employees[i]
		if emp.TeamID != p.team.ID {
			continue
		}
		view := EmployeeAsCandidate(emp)
		scores, err := o.scoreAll(ctx, &view, sameDept)
		if err != nil {
			return nil, err
		}
		for j, res := range scores {
			// Compared at the reported precision so an emitted improvement
			// always exceeds the threshold.
			improvement := scoremath.Round(res.TotalScore-p.score, 1)
			if improvement <= bestImprovement {
				continue
			}
			bestImprovement = improvement
			best = &model.TransferProposal{
				EmployeeID:     emp.ID,
				EmployeeName:   emp.Name,
				FromTeamID:     p.team.ID,
				FromTeamName:   p.team.Name,
				ToTeamID:       sameDept[j].ID,
				ToTeamName:     sameDept[j].Name,
				Department:     p.team.Department,
				Reason:         TransferReason(emp.Name, sameDept[j].Name, res.TotalScore),
				FitImprovement: improvement,
			}
		}
	}
	return best, nil
}
