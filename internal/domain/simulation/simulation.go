// Package simulation projects a team's culture after adding one candidate.
package simulation

import (
	"context"

	"github.com/okian/teamfit/internal/domain/model"
	"github.com/okian/teamfit/internal/domain/scoremath"
	"github.com/okian/teamfit/pkg/logger"
	"github.com/okian/teamfit/pkg/metrics"
)

// Simulator predicts the effect of a single placement.
type Simulator interface {
	Simulate(ctx context.Context, team *model.Team, cand *model.Candidate) model.SimulationResult
}

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// Engine implements Simulator. The team is never modified.
type Engine struct {
	log logger.Logger
}

// NewEngine creates a simulation engine.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Simulate returns the before/after projection of adding cand to team.
// Variances are carried over unchanged and the post-addition balance is
// estimated from trait distance, not recomputed.
func (e *Engine) Simulate(ctx context.Context, team *model.Team, cand *model.Candidate) model.SimulationResult {
	before := model.SimulationSnapshot{
		Culture:      team.CultureProfile,
		BalanceIndex: BalanceIndex(team.CultureProfile),
		MemberCount:  team.Size,
	}

	tc, cp := team.CultureProfile, cand.PersonalityProfile
	afterCulture := tc
	afterCulture.Openness = scoremath.WeightedAverageUpdate(tc.Openness, team.Size, cp.Openness)
	afterCulture.Conscientiousness = scoremath.WeightedAverageUpdate(tc.Conscientiousness, team.Size, cp.Conscientiousness)
	afterCulture.Extraversion = scoremath.WeightedAverageUpdate(tc.Extraversion, team.Size, cp.Extraversion)
	afterCulture.Agreeableness = scoremath.WeightedAverageUpdate(tc.Agreeableness, team.Size, cp.Agreeableness)
	afterCulture.Neuroticism = scoremath.WeightedAverageUpdate(tc.Neuroticism, team.Size, cp.Neuroticism)

	after := model.SimulationSnapshot{
		Culture:      afterCulture,
		BalanceIndex: BalanceIndexAfterAddition(tc.PersonalityProfile, cp),
		MemberCount:  team.Size + 1,
	}

	diff := model.CultureDiff{
		Openness:          after.Culture.Openness - before.Culture.Openness,
		Conscientiousness: after.Culture.Conscientiousness - before.Culture.Conscientiousness,
		Extraversion:      after.Culture.Extraversion - before.Culture.Extraversion,
		Agreeableness:     after.Culture.Agreeableness - before.Culture.Agreeableness,
		Neuroticism:       after.Culture.Neuroticism - before.Culture.Neuroticism,
		BalanceIndex:      after.BalanceIndex - before.BalanceIndex,
	}

	res := model.SimulationResult{
		CandidateID:    cand.ID,
		TeamID:         team.ID,
		Before:         before,
		After:          after,
		Diff:           diff,
		ImpactAnalysis: analyzeImpact(diff, team, cand),
	}

	metrics.RecordSimulation()
	if e.log != nil {
		e.log.Debug(ctx, "team simulated",
			logger.String("team_id", team.ID),
			logger.String("candidate_id", cand.ID),
			logger.Float64("balance_diff", diff.BalanceIndex),
			logger.Float64("retention_estimate", res.ImpactAnalysis.RetentionEstimate),
		)
	}
	return res
}
