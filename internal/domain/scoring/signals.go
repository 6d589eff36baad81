package scoring

import (
	"context"
	"math"
)

// Historical signal defaults.
const (
	DefaultManagerSimilarity = 50
	DefaultHandoverLoad      = 20

	recentMoveRisk     = 50
	managerChangeScore = 50
	moveScoreStep      = 30
	moveScoreTail      = 20
	maxSignalScore     = 100
)

// Signals are the per-pair historical inputs that feed Retention and Friction.
type Signals struct {
	ManagerSimilarity float64 `json:"manager_similarity"`
	RecentMove        bool    `json:"recent_move"`
	MoveCountLastYear int     `json:"move_count_last_year"`
	HandoverLoad      float64 `json:"handover_load"`
	ManagerChange     bool    `json:"manager_change"`
}

// DefaultSignals returns the values used when no history is available.
func DefaultSignals() Signals {
	return Signals{
		ManagerSimilarity: DefaultManagerSimilarity,
		HandoverLoad:      DefaultHandoverLoad,
	}
}

// RecentMoveRisk is 50 when the person moved recently, else 0.
func (s Signals) RecentMoveRisk() float64 {
	if s.RecentMove {
		return recentMoveRisk
	}
	return 0
}

// MoveScore grows with the number of moves in the last year.
func (s Signals) MoveScore() float64 {
	switch {
	case s.MoveCountLastYear <= 0:
		return 0
	case s.MoveCountLastYear <= 2:
		return float64(s.MoveCountLastYear * moveScoreStep)
	default:
		return math.Min(maxSignalScore, 2*moveScoreStep+float64(s.MoveCountLastYear-2)*moveScoreTail)
	}
}

// HandoverScore is the handover load capped at 100.
func (s Signals) HandoverScore() float64 {
	return math.Max(0, math.Min(maxSignalScore, s.HandoverLoad))
}

// ManagerChangeScore is 50 when the placement changes the person's manager.
func (s Signals) ManagerChangeScore() float64 {
	if s.ManagerChange {
		return managerChangeScore
	}
	return 0
}

// HistoricalSignals supplies history for a candidate/team pair.
type HistoricalSignals interface {
	Signals(ctx context.Context, candidateID, teamID string) (Signals, error)
}

// StaticSignals returns the same signals for every pair.
type StaticSignals struct {
	Values Signals
}

// NewStaticSignals returns a provider for the given constant signals.
func NewStaticSignals(values Signals) *StaticSignals {
	return &StaticSignals{Values: values}
}

// Signals implements HistoricalSignals.
func (s *StaticSignals) Signals(_ context.Context, _, _ string) (Signals, error) {
	return s.Values, nil
}
