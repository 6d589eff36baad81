// Package scoring computes the fit score of a candidate for a team.
package scoring

import (
	"context"
	"fmt"
	"time"

	"github.com/okian/teamfit/internal/domain/model"
	"github.com/okian/teamfit/internal/domain/scoremath"
	"github.com/okian/teamfit/pkg/logger"
	"github.com/okian/teamfit/pkg/metrics"
)

// Scorer computes a FitScoreResult for one candidate/team pair.
type Scorer interface {
	Score(ctx context.Context, cand *model.Candidate, team *model.Team, mode model.PreferenceMode) (model.FitScoreResult, error)
}

// Option applies a configuration option to the Calculator.
type Option func(*Calculator)

// WithModes replaces the preference mode registry.
func WithModes(modes Modes) Option {
	return func(c *Calculator) {
		if len(modes) > 0 {
			c.modes = modes
		}
	}
}

// WithSignals sets the historical signals provider.
func WithSignals(signals HistoricalSignals) Option {
	return func(c *Calculator) {
		if signals != nil {
			c.signals = signals
		}
	}
}

// WithCatalog sets the skill name resolver used in explanations.
func WithCatalog(catalog SkillCatalog) Option {
	return func(c *Calculator) {
		if catalog != nil {
			c.catalog = catalog
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(c *Calculator) {
		if l != nil {
			c.log = l
		}
	}
}

// WithClock sets the time source stamped on results.
func WithClock(now func() time.Time) Option {
	return func(c *Calculator) {
		if now != nil {
			c.now = now
		}
	}
}

// Calculator implements Scorer. It holds no per-call state and is safe for
// concurrent use.
type Calculator struct {
	modes   Modes
	signals HistoricalSignals
	catalog SkillCatalog
	log     logger.Logger
	now     func() time.Time
}

// NewCalculator creates a calculator with the canonical modes and default
// historical signals.
func NewCalculator(opts ...Option) *Calculator {
	c := &Calculator{
		modes:   DefaultModes(),
		signals: NewStaticSignals(DefaultSignals()),
		catalog: MapCatalog{},
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Modes returns the registered preference modes.
func (c *Calculator) Modes() Modes {
	return c.modes
}

// Score computes the fit score of cand for team under mode. An unknown mode
// fails with ErrUnknownMode.
func (c *Calculator) Score(ctx context.Context, cand *model.Candidate, team *model.Team, mode model.PreferenceMode) (model.FitScoreResult, error) {
	start := time.Now()

	weights, err := c.modes.Lookup(mode)
	if err != nil {
		metrics.RecordScoringError()
		return model.FitScoreResult{}, err
	}
	sig, err := c.signals.Signals(ctx, cand.ID, team.ID)
	if err != nil {
		metrics.RecordScoringError()
		return model.FitScoreResult{}, fmt.Errorf("historical signals for %s/%s: %w", cand.ID, team.ID, err)
	}

	pSim := PersonalitySimilarity(cand.PersonalityProfile, team.CultureProfile.PersonalityProfile)
	raw := model.FitScoreBreakdown{
		SkillMatch: SkillMatch(cand.Skills, team.Requirements),
		Retention:  Retention(pSim, team.WorkloadAverage, sig),
		Friction:   Friction(pSim, sig),
	}
	total := scoremath.Clamp(weights.Alpha*raw.SkillMatch+weights.Beta*raw.Retention-weights.Gamma*raw.Friction, 0, maxScore)
	total = scoremath.Round(total, 1)

	res := model.FitScoreResult{
		CandidateID:   cand.ID,
		CandidateName: cand.Name,
		TeamID:        team.ID,
		TeamName:      team.Name,
		Department:    team.Department,
		Mode:          mode,
		TotalScore:    total,
		Grade:         Grade(total),
		Breakdown: model.FitScoreBreakdown{
			SkillMatch: scoremath.Round(raw.SkillMatch, 1),
			Retention:  scoremath.Round(raw.Retention, 1),
			Friction:   scoremath.Round(raw.Friction, 1),
		},
		Confidence:      scoremath.Round(Confidence(len(cand.Skills), len(team.Requirements)), 2),
		Strengths:       c.strengths(raw, cand, team),
		Risks:           c.risks(raw, cand, team),
		Recommendations: recommendations(raw, team),
		CalculatedAt:    c.now(),
	}

	metrics.RecordFitScore(string(mode), total, float64(time.Since(start).Microseconds())/1000)
	if c.log != nil {
		c.log.Debug(ctx, "fit score computed",
			logger.String("candidate_id", cand.ID),
			logger.String("team_id", team.ID),
			logger.String("mode", string(mode)),
			logger.Float64("total_score", total),
		)
	}
	return res, nil
}
